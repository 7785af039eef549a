package events

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/MakeNowJust/heredoc"
	"github.com/bwmarrin/discordgo"

	"translatepal/internal/config"
	"translatepal/internal/translate"
)

const commandPrefix = "/translate"

// Fetch failure classifications for the referenced message.
var (
	ErrNotFound  = errors.New("message not found")
	ErrForbidden = errors.New("missing read permission")
)

// FetchMessage retrieves the message a reply-command points at.
type FetchMessage func(channelID, messageID string) (*discordgo.Message, error)

// Translator is the part of the translation relay the dispatcher needs.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) translate.Result
}

var usageMessage = heredoc.Doc(`
	Usage: reply to a message with ` + "`/translate <language_code>`" + `.
	The code must be a 2-letter ISO 639-1 code, for example ` + "`/translate fr`" + `.
`)

// HandleMessage runs the full dispatch pipeline for one inbound message and
// returns the reply to send, or the empty string when no reply is owed. The
// referenced-message fetch is injected so the pipeline can be exercised
// without a live session.
func HandleMessage(ctx context.Context, cfg *config.Config, tr Translator, fetch FetchMessage, m *discordgo.Message, selfID string) string {
	if m.Author == nil || m.Author.ID == selfID {
		return ""
	}

	// Direct messages carry no guild ID and bypass the allowlist.
	if m.GuildID != "" && !cfg.AllowedGuild(m.GuildID) {
		cfg.Logger.Infof("Ignoring message from unauthorized server: %s", m.GuildID)
		return ""
	}

	// Only replies are inspected for the command.
	if m.MessageReference == nil || m.MessageReference.MessageID == "" {
		return ""
	}

	content := strings.ToLower(m.Content)
	if !strings.HasPrefix(content, commandPrefix) {
		return ""
	}

	parts := strings.SplitN(content, " ", 2)
	if len(parts) < 2 {
		return usageMessage
	}

	targetLang := strings.TrimSpace(parts[1])
	if !validLanguageCode(targetLang) {
		return fmt.Sprintf("Invalid language code: `%s`. Please use a 2-letter ISO 639-1 code.", targetLang)
	}

	reply, err := translateReferenced(ctx, cfg, tr, fetch, m, targetLang)
	if err != nil {
		cfg.Logger.Errorf("Unexpected error during translation processing: %v", err)
		return fmt.Sprintf("An internal error occurred: %v. Please try again later.", err)
	}
	return reply
}

// translateReferenced fetches the replied-to message and runs the relay.
// Known fetch failures map to user-visible messages; anything else bubbles
// up to the generic error reply.
func translateReferenced(ctx context.Context, cfg *config.Config, tr Translator, fetch FetchMessage, m *discordgo.Message, targetLang string) (string, error) {
	referenced, err := fetch(m.ChannelID, m.MessageReference.MessageID)
	switch {
	case errors.Is(err, ErrNotFound):
		return "The message you replied to could not be found.", nil
	case errors.Is(err, ErrForbidden):
		return "I don't have permissions to read the message you replied to.", nil
	case err != nil:
		return "", err
	}

	if referenced == nil {
		return "Could not retrieve the original message you replied to. It might be too old or deleted.", nil
	}

	if referenced.Content == "" {
		return "The message you replied to has no text content to translate.", nil
	}

	cfg.Logger.Infof("Translating a message to %q for %s", targetLang, m.Author.Username)

	result := tr.Translate(ctx, referenced.Content, targetLang)
	switch result.Outcome {
	case translate.Translated:
		return fmt.Sprintf("Translation of %s's message to `%s`:\n>>> %s",
			authorMention(referenced), strings.ToUpper(targetLang), result.Text), nil
	case translate.Notice:
		return result.Text, nil
	default:
		return fmt.Sprintf("Sorry, I couldn't translate that message to `%s`. Both translation services failed or returned no result.", targetLang), nil
	}
}

// validLanguageCode reports whether code is exactly 2 alphabetic characters.
// Characters, not bytes: a single multibyte letter is not a valid code.
func validLanguageCode(code string) bool {
	runes := []rune(code)
	if len(runes) != 2 {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func authorMention(m *discordgo.Message) string {
	if m.Author == nil {
		return "the original author"
	}
	return m.Author.Mention()
}

// OnMessageCreate handles message events
func OnMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate, cfg *config.Config, tr Translator) {
	var selfID string
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}

	fetch := func(channelID, messageID string) (*discordgo.Message, error) {
		msg, err := s.ChannelMessage(channelID, messageID)
		if err != nil {
			return nil, classifyFetchError(err)
		}
		return msg, nil
	}

	reply := HandleMessage(context.Background(), cfg, tr, fetch, m.Message, selfID)
	if reply == "" {
		return
	}

	if _, err := s.ChannelMessageSendReply(m.ChannelID, reply, m.Reference()); err != nil {
		cfg.Logger.Errorf("Error sending reply: %v", err)
	}
}

// classifyFetchError maps discordgo REST errors onto the dispatcher's fetch
// failure classes. Anything else passes through unchanged.
func classifyFetchError(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusForbidden:
			return ErrForbidden
		}
	}
	return err
}
