package main

import (
	"log"

	"github.com/joho/godotenv"

	"translatepal/internal/bot"
	"translatepal/internal/config"
)

func main() {
	// Load from .env (if present) and then from the environment
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not found or failed to load: %v", err)
	}

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create and start bot
	translateBot, err := bot.New(cfg)
	if err != nil {
		log.Fatal("Failed to create bot:", err)
	}

	if err := translateBot.Start(); err != nil {
		log.Fatal("Failed to start bot:", err)
	}
}
