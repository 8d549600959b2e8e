package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/jj-morpho/granola-digest/pkg/ai"
	"github.com/jj-morpho/granola-digest/pkg/api"
	"github.com/jj-morpho/granola-digest/pkg/archive"
	"github.com/jj-morpho/granola-digest/pkg/automation"
	"github.com/jj-morpho/granola-digest/pkg/config"
	"github.com/jj-morpho/granola-digest/pkg/db"
	"github.com/jj-morpho/granola-digest/pkg/digest"
	"github.com/jj-morpho/granola-digest/pkg/fetch"
	"github.com/jj-morpho/granola-digest/pkg/integration/discord"
	"github.com/jj-morpho/granola-digest/pkg/integration/telegram"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize DB
	database, err := db.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer database.Close()

	if err := database.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}

	repo := db.NewRepository(database)

	// Initialize Archive (Optional)
	var archiveManager *archive.Manager
	if cfg.Archive.Path != "" {
		archiveManager, err = archive.NewManager(cfg.Archive.Path, cfg.Archive.Push)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
	}

	// Initialize Digest Pipeline
	fetcher := fetch.NewClient(cfg.IndexURL)
	svc := digest.NewService(fetcher, repo, archiveManager)

	// Initialize AI Client (Optional)
	var aiClient ai.Generator
	switch cfg.AI.Provider {
	case "":
		// Narrative endpoint disabled.
	case "moonshot":
		key := os.Getenv("MOONSHOT_API_KEY")
		if key == "" {
			log.Fatal("MOONSHOT_API_KEY environment variable is required when using moonshot provider")
		}
		aiClient = ai.NewMoonshotClient(key)
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			log.Fatal("GEMINI_API_KEY environment variable is required when using gemini provider")
		}
		geminiClient, err := ai.NewClient(context.Background(), key)
		if err != nil {
			log.Fatalf("Failed to create AI client: %v", err)
		}
		defer geminiClient.Close()
		aiClient = geminiClient
	default:
		log.Fatalf("Unknown AI provider: %s", cfg.AI.Provider)
	}

	// Initialize Router
	router := api.NewRouter(svc, repo, aiClient)

	// Initialize Discord Bot (Optional)
	var discordBot *discord.Bot
	discordToken := os.Getenv("DISCORD_TOKEN")
	if discordToken != "" {
		discordBot, err = discord.NewBot(discordToken, svc, repo, cfg.LookbackDays)
		if err != nil {
			log.Printf("Failed to create Discord bot: %v", err)
		} else {
			if err := discordBot.Start(); err != nil {
				log.Printf("Failed to start Discord bot: %v", err)
				discordBot = nil
			} else {
				log.Println("Discord Bot started")
				defer discordBot.Stop()
			}
		}
	}

	// Initialize Telegram Bot (Optional)
	var telegramBot *telegram.Bot
	telegramToken := os.Getenv("TELEGRAM_TOKEN")
	if telegramToken != "" {
		telegramBot, err = telegram.NewBot(telegramToken, svc, repo, cfg.LookbackDays)
		if err != nil {
			log.Printf("Failed to create Telegram bot: %v", err)
		} else {
			if err := telegramBot.Start(); err != nil {
				log.Printf("Failed to start Telegram bot: %v", err)
				telegramBot = nil
			} else {
				log.Println("Telegram Bot started")
				defer telegramBot.Stop()
			}
		}
	}

	// Initialize Scheduler
	scheduler := automation.NewScheduler(0)
	if err := scheduler.AddJob("refresh", "interval", cfg.RefreshInterval, "", func(ctx context.Context) error {
		stored, err := svc.Refresh(ctx)
		if err != nil {
			return err
		}
		log.Printf("Refreshed %d weeks", stored)
		return nil
	}); err != nil {
		log.Fatalf("Failed to schedule refresh: %v", err)
	}

	if cfg.Delivery.ScheduleKind != "" {
		if err := scheduler.AddJob("delivery", cfg.Delivery.ScheduleKind, cfg.Delivery.ScheduleExpr, cfg.Delivery.Timezone, func(ctx context.Context) error {
			if discordBot != nil && cfg.Delivery.DiscordChannel != "" {
				if err := discordBot.PostDigest(cfg.Delivery.DiscordChannel, cfg.LookbackDays); err != nil {
					log.Printf("Discord delivery failed: %v", err)
				}
			}
			if telegramBot != nil && cfg.Delivery.TelegramChatID != 0 {
				if err := telegramBot.PostDigest(cfg.Delivery.TelegramChatID, cfg.LookbackDays); err != nil {
					log.Printf("Telegram delivery failed: %v", err)
				}
			}
			return nil
		}); err != nil {
			log.Fatalf("Failed to schedule delivery: %v", err)
		}
	}

	scheduler.Start()
	defer scheduler.Stop()

	// Warm the cache before serving.
	if stored, err := svc.Refresh(context.Background()); err != nil {
		log.Printf("Initial refresh failed: %v", err)
	} else {
		log.Printf("Initial refresh stored %d weeks", stored)
	}

	log.Printf("Starting server on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
