package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gemcal/internal/bot"
	"gemcal/internal/config"
	"gemcal/internal/database"
	"gemcal/internal/gcal"
	"gemcal/internal/gemini"
	"gemcal/internal/notify"
	"gemcal/internal/processor"
	"gemcal/internal/resolve"
	"gemcal/internal/timeutil"
)

func main() {
	cfg := config.LoadFromEnv()

	if cfg.TelegramBotToken == "" {
		fatal("configuration", fmt.Errorf("TELEGRAM_BOT_TOKEN is required"))
	}
	if cfg.TelegramAppID == 0 || cfg.TelegramAppHash == "" {
		fatal("configuration", fmt.Errorf("TELEGRAM_APP_ID and TELEGRAM_APP_HASH are required"))
	}
	if cfg.GeminiAPIKey == "" {
		fatal("configuration", fmt.Errorf("GEMINI_API_KEY is required"))
	}

	loc, fallback := timeutil.ResolveLocation(cfg.Timezone)
	if fallback {
		fmt.Printf("Warning: unknown timezone %q, falling back to UTC\n", cfg.Timezone)
	}

	db := initDatabase(cfg)
	if db != nil {
		defer db.Close()
	}

	genCfg := gemini.DefaultGenerationConfig()
	genCfg.Temperature = cfg.Temperature
	genCfg.MaxOutputTokens = cfg.MaxOutputTokens
	llm := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Timezone, genCfg)

	proc := processor.New(processor.Config{
		LLM:       llm,
		Resolver:  resolve.New(resolve.NaturalParser{}, loc),
		ZoneLabel: timeutil.ZoneLabel(cfg.Timezone),
		DB:        db,
		Calendar:  initCalendar(cfg),
		Notifier:  initNotifier(cfg),
	})

	handler := bot.NewHandler(proc)
	tgClient, err := bot.NewClient(bot.ClientConfig{
		APIID:       cfg.TelegramAppID,
		APIHash:     cfg.TelegramAppHash,
		BotToken:    cfg.TelegramBotToken,
		SessionPath: cfg.SessionPath,
		Handler:     handler,
	})
	if err != nil {
		fatal("creating Telegram client", err)
	}

	if err := tgClient.Connect(); err != nil {
		fatal("connecting to Telegram", err)
	}
	tgClient.StartUpdateLoop()

	fmt.Printf("gemcal running (model %s, timezone %s)\n", cfg.GeminiModel, cfg.Timezone)
	waitForShutdown(tgClient)
}

func initDatabase(cfg *config.Config) *database.DB {
	db, err := database.New(cfg.DBPath)
	if err != nil {
		fmt.Printf("Warning: trace store unavailable: %v\n", err)
		return nil
	}
	return db
}

func initCalendar(cfg *config.Config) processor.Calendar {
	client, err := gcal.NewClient(cfg.GoogleCredentialsFile, cfg.GoogleTokenFile)
	if err != nil {
		fmt.Printf("Calendar: direct insert disabled: %v\n", err)
		return nil
	}
	return client
}

func initNotifier(cfg *config.Config) notify.Notifier {
	n := notify.NewResendNotifier(cfg.ResendAPIKey, cfg.EmailFrom, cfg.NotifyEmail)
	if !n.IsConfigured() {
		return nil
	}
	fmt.Printf("Email notifications enabled for %s\n", cfg.NotifyEmail)
	return n
}

func waitForShutdown(tgClient *bot.Client) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
	tgClient.Disconnect()
}

func fatal(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	os.Exit(1)
}
