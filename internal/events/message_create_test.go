package events

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translatepal/internal/config"
	"translatepal/internal/translate"
)

const selfID = "bot-user"

type fakeTranslator struct {
	result   translate.Result
	calls    int
	lastText string
	lastLang string
}

func (f *fakeTranslator) Translate(_ context.Context, text, targetLang string) translate.Result {
	f.calls++
	f.lastText = text
	f.lastLang = targetLang
	return f.result
}

func testConfig() *config.Config {
	return config.NewMockConfig(map[string]interface{}{
		"whitelisted_server_ids": "123",
	})
}

func fetchReturning(msg *discordgo.Message, err error) FetchMessage {
	return func(channelID, messageID string) (*discordgo.Message, error) {
		return msg, err
	}
}

func command(content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   "123",
		Content:   content,
		Author:    &discordgo.User{ID: "u1", Username: "alice"},
		MessageReference: &discordgo.MessageReference{
			MessageID: "m0",
			ChannelID: "c1",
		},
	}
}

func referencedMessage(content string) *discordgo.Message {
	return &discordgo.Message{
		ID:      "m0",
		Content: content,
		Author:  &discordgo.User{ID: "u0", Username: "bob"},
	}
}

func TestHandleMessage_IgnoresSelf(t *testing.T) {
	cfg := testConfig()
	tr := &fakeTranslator{}

	m := command("/translate fr")
	m.Author.ID = selfID

	reply := HandleMessage(context.Background(), cfg, tr, fetchReturning(referencedMessage("hello"), nil), m, selfID)

	assert.Empty(t, reply)
	assert.Zero(t, tr.calls)
}

func TestHandleMessage_IgnoresUnauthorizedGuild(t *testing.T) {
	cfg := testConfig()
	tr := &fakeTranslator{result: translate.Result{Outcome: translate.Translated, Text: "bonjour"}}

	m := command("/translate fr")
	m.GuildID = "999"

	reply := HandleMessage(context.Background(), cfg, tr, fetchReturning(referencedMessage("hello"), nil), m, selfID)

	assert.Empty(t, reply)
	assert.Zero(t, tr.calls, "no provider call for unauthorized guilds")
}

func TestHandleMessage_DirectMessageBypassesAllowlist(t *testing.T) {
	cfg := testConfig()
	tr := &fakeTranslator{result: translate.Result{Outcome: translate.Translated, Text: "bonjour"}}

	m := command("/translate fr")
	m.GuildID = ""

	reply := HandleMessage(context.Background(), cfg, tr, fetchReturning(referencedMessage("hello"), nil), m, selfID)

	require.Equal(t, 1, tr.calls)
	assert.Contains(t, reply, "bonjour")
}

func TestHandleMessage_IgnoresNonReplies(t *testing.T) {
	cfg := testConfig()
	tr := &fakeTranslator{}

	m := command("/translate fr")
	m.MessageReference = nil

	reply := HandleMessage(context.Background(), cfg, tr, fetchReturning(referencedMessage("hello"), nil), m, selfID)

	assert.Empty(t, reply)
	assert.Zero(t, tr.calls)
}

func TestHandleMessage_IgnoresNonCommands(t *testing.T) {
	cfg := testConfig()
	tr := &fakeTranslator{}

	reply := HandleMessage(context.Background(), cfg, tr, fetchReturning(referencedMessage("hello"), nil), command("what does this mean?"), selfID)

	assert.Empty(t, reply)
	assert.Zero(t, tr.calls)
}

func TestHandleMessage_MissingArgument(t *testing.T) {
	cfg := testConfig()
	tr := &fakeTranslator{}

	reply := HandleMessage(context.Background(), cfg, tr, fetchReturning(referencedMessage("hello"), nil), command("/translate"), selfID)

	assert.Contains(t, reply, "Usage:")
	assert.Zero(t, tr.calls)
}

func TestHandleMessage_InvalidLanguageCode(t *testing.T) {
	cfg := testConfig()
	tr := &fakeTranslator{}

	tests := []struct {
		name string
		code string
	}{
		{name: "single character", code: "f"},
		{name: "single multibyte letter", code: "é"},
		{name: "three characters", code: "fra"},
		{name: "digits", code: "12"},
		{name: "mixed", code: "f1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := HandleMessage(context.Background(), cfg, tr, fetchReturning(referencedMessage("hello"), nil), command("/translate "+tt.code), selfID)

			assert.Contains(t, reply, "Invalid language code")
			assert.Contains(t, reply, tt.code, "the rejected code is named in the reply")
		})
	}

	assert.Zero(t, tr.calls, "no provider call for invalid codes")
}

func TestValidLanguageCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{code: "fr", want: true},
		{code: "éà", want: true}, // two letters, regardless of byte width
		{code: "é", want: false},
		{code: "f", want: false},
		{code: "fra", want: false},
		{code: "f1", want: false},
		{code: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, validLanguageCode(tt.code))
		})
	}
}

func TestHandleMessage_ReferencedNotFound(t *testing.T) {
	cfg := testConfig()
	tr := &fakeTranslator{}

	reply := HandleMessage(context.Background(), cfg, tr, fetchReturning(nil, ErrNotFound), command("/translate fr"), selfID)

	assert.Contains(t, reply, "could not be found")
	assert.Zero(t, tr.calls)
}

func TestHandleMessage_ReferencedForbidden(t *testing.T) {
	cfg := testConfig()
	tr := &fakeTranslator{}

	reply := HandleMessage(context.Background(), cfg, tr, fetchReturning(nil, ErrForbidden), command("/translate fr"), selfID)

	assert.Contains(t, reply, "permissions")
	assert.Zero(t, tr.calls)
}

func TestHandleMessage_ReferencedEmpty(t *testing.T) {
	cfg := testConfig()
	tr := &fakeTranslator{}

	reply := HandleMessage(context.Background(), cfg, tr, fetchReturning(referencedMessage(""), nil), command("/translate fr"), selfID)

	assert.Contains(t, reply, "no text content to translate")
	assert.Zero(t, tr.calls)
}

func TestHandleMessage_TranslationSuccess(t *testing.T) {
	cfg := testConfig()
	tr := &fakeTranslator{result: translate.Result{Outcome: translate.Translated, Text: "bonjour"}}

	reply := HandleMessage(context.Background(), cfg, tr, fetchReturning(referencedMessage("hello"), nil), command("/translate fr"), selfID)

	require.Equal(t, 1, tr.calls)
	assert.Equal(t, "hello", tr.lastText)
	assert.Equal(t, "fr", tr.lastLang)

	assert.Contains(t, reply, "<@u0>", "attributed to the original author")
	assert.Contains(t, reply, "`FR`", "target code labeled upper case")
	assert.Contains(t, reply, ">>> bonjour")
}

func TestHandleMessage_CommandIsCaseInsensitive(t *testing.T) {
	cfg := testConfig()
	tr := &fakeTranslator{result: translate.Result{Outcome: translate.Translated, Text: "bonjour"}}

	reply := HandleMessage(context.Background(), cfg, tr, fetchReturning(referencedMessage("hello"), nil), command("/TRANSLATE FR"), selfID)

	require.Equal(t, 1, tr.calls)
	assert.Equal(t, "fr", tr.lastLang)
	assert.Contains(t, reply, "bonjour")
}

func TestHandleMessage_TranslationAbsent(t *testing.T) {
	cfg := testConfig()
	tr := &fakeTranslator{result: translate.Result{Outcome: translate.Absent}}

	reply := HandleMessage(context.Background(), cfg, tr, fetchReturning(referencedMessage("hello"), nil), command("/translate fr"), selfID)

	assert.Contains(t, reply, "Both translation services failed")
}

func TestHandleMessage_UnexpectedFetchError(t *testing.T) {
	cfg := testConfig()
	tr := &fakeTranslator{}

	reply := HandleMessage(context.Background(), cfg, tr, fetchReturning(nil, errors.New("websocket exploded")), command("/translate fr"), selfID)

	assert.Contains(t, reply, "An internal error occurred")
	assert.Contains(t, reply, "websocket exploded")
	assert.Zero(t, tr.calls)
}

func TestClassifyFetchError(t *testing.T) {
	notFound := &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusNotFound}}
	forbidden := &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusForbidden}}
	teapot := &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusTeapot}}

	assert.ErrorIs(t, classifyFetchError(notFound), ErrNotFound)
	assert.ErrorIs(t, classifyFetchError(forbidden), ErrForbidden)
	assert.Equal(t, teapot, classifyFetchError(teapot))
	plain := errors.New("plain")
	assert.Equal(t, plain, classifyFetchError(plain))
}
