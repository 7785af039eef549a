package bot

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"translatepal/internal/config"
	"translatepal/internal/events"
	"translatepal/internal/scheduler"
	"translatepal/internal/translate"
)

// Bot represents the Discord bot
type Bot struct {
	session   *discordgo.Session
	config    *config.Config
	relay     *translate.Relay
	scheduler *scheduler.Scheduler
}

// New creates a new Bot instance
func New(cfg *config.Config) (*Bot, error) {
	// Create Discord session
	session, err := discordgo.New("Bot " + cfg.GetBotToken())
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	relay := translate.NewRelay(translate.NewGoogleProvider(), translate.NewMyMemoryProvider(), cfg.Logger)

	bot := &Bot{
		session: session,
		config:  cfg,
		relay:   relay,
	}

	// Set intents - message content must also be enabled for the bot in the
	// developer portal.
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent | discordgo.IntentDirectMessages

	// Add event handlers
	session.AddHandler(bot.onReady)

	// Wrapped with anonymous function to pass config and the relay
	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		events.OnMessageCreate(s, m, cfg, relay)
	})

	return bot, nil
}

// Start starts the bot and blocks until the process is interrupted
func (b *Bot) Start() error {
	// Open connection
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening Discord connection: %w", err)
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			b.config.Logger.Warn("error closing Discord session:", err)
		}
	}()

	if err := b.session.UpdateGameStatus(0, "Reply with /translate <code>"); err != nil {
		b.config.Logger.Warn("error updating bot status:", err)
	}

	// Create scheduler and register log rotation
	b.scheduler = scheduler.NewScheduler(b.config)
	if err := b.scheduler.RegisterFunc("@hourly", "log-rotation", func() error {
		return b.config.RotateAndPruneLogs()
	}); err != nil {
		b.config.Logger.Errorf("Failed to register log rotation: %v", err)
	}

	b.scheduler.Start()
	defer b.scheduler.Stop()

	b.config.Logger.Info("TranslatePal bot is now running. Press CTRL+C to exit.")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	return nil
}

// onReady handles the ready event
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.config.Logger.Infof("Logged in as: %s#%s", r.User.Username, r.User.Discriminator)
	b.config.Logger.Infof("Bot is configured for servers: %v", b.config.AllowedGuildIDs())
}
