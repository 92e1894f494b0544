package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"momenta/internal/config"
	"momenta/internal/engine"
	"momenta/internal/guard"
	"momenta/internal/ingest"
	"momenta/internal/llm"
	"momenta/internal/scheduler"
	"momenta/internal/session"
	"momenta/internal/store"
	"momenta/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	st, err := store.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	bot, err := telegram.New(cfg.TelegramBotToken, cfg.PollTimeoutSeconds)
	if err != nil {
		log.Fatalf("failed to create telegram bot: %v", err)
	}

	opts := []engine.Option{}
	if client, err := llm.NewFromConfig(cfg); err != nil {
		log.Printf("llm client unavailable, free dialog disabled: %v", err)
	} else {
		opts = append(opts, engine.WithDialogClient(client))
		if em, ok := client.(llm.Embedder); ok {
			opts = append(opts, engine.WithEmbedder(em))
		}
		if tr, ok := client.(llm.Transcriber); ok {
			opts = append(opts, engine.WithTranscriber(tr))
		}
	}

	eng := engine.New(
		session.NewStore(),
		guard.New(cfg.GuardTTL),
		st,
		st,
		bot,
		cfg.DefaultLanguage,
		opts...,
	)

	sched := scheduler.New(cfg.SchedulerPeriod, st, bot)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop := ingest.New(bot, eng, cfg.RetryBackoff, cfg.PollBatchLimit)
	log.Println("🤖 momenta started")
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("ingestion loop stopped: %v", err)
	}
}
