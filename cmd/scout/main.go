package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TableScout/internal/booking"
	"TableScout/internal/checker"
	"TableScout/internal/config"
	"TableScout/internal/dates"
	"TableScout/internal/filter"
	"TableScout/internal/notifier"
	"TableScout/internal/recorder"
	"TableScout/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TableScout starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Resolve candidate dates up front; a bad selection aborts before any query.
	candidates, err := dates.Resolve(dates.Selection{
		Dates:     cfg.DateSelection.Dates,
		Year:      cfg.DateSelection.Year,
		Month:     cfg.DateSelection.Month,
		DayOfWeek: cfg.DateSelection.DayOfWeek,
	})
	if err != nil {
		log.Fatalf("[FATAL] resolve dates: %v", err)
	}
	log.Printf("[INFO] checking %d dates: %v", len(candidates), candidates)

	// Init booking client
	client := booking.NewClient(cfg.EndpointURL, cfg.MealID, cfg.PartySize,
		time.Duration(cfg.Request.TimeoutSeconds*float64(time.Second)))
	client.Template = cfg.PayloadTemplate
	client.UserAgent = cfg.Request.UserAgent
	client.Origin = cfg.Request.Origin
	client.Referer = cfg.Request.Referer
	client.Retries = cfg.Request.Retries

	// Init ntfy notifier
	nn := notifier.NewNtfyNotifier(cfg.Ntfy.Server, cfg.Ntfy.Topic, cfg.Ntfy.Priority)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	chk := &checker.Checker{
		Client: client,
		Filter: filter.TimeFilter{
			Allowlist: cfg.TimeFilters.Allowlist,
			Earliest:  cfg.TimeFilters.Earliest,
			Latest:    cfg.TimeFilters.Latest,
		},
		Notifier: nn,
		Recorder: rec,
		Title:    cfg.Ntfy.Title,
		Pace:     time.Duration(cfg.Request.PaceMillis) * time.Millisecond,
		DryRun:   cfg.DryRun,
		Debug:    cfg.Debug,
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One-shot mode: no cron spec configured.
	if cfg.Schedule.Cron == "" {
		matches := chk.Run(ctx, candidates)
		log.Printf("[INFO] check complete: %d/%d dates matched", len(matches), len(candidates))
		return
	}

	// Watch mode: repeat the check on the configured cron spec.
	sched := scheduler.NewScheduler(ctx, chk, candidates)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing check now")
		go sched.RunNow()
	}

	log.Println("[INFO] TableScout is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] TableScout stopped")
}
