package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/feral-file/ff-event-scanner/internal/store"
)

const defaultPollInterval = 5 * time.Second

type Config struct {
	DSN           string
	HistorySyncID string
	PollInterval  time.Duration
	Duration      time.Duration // how long to watch a perpetual sync (0 = until interrupted)
	OutputFile    string        // Output markdown file path (optional)
	Debug         bool
}

func main() {
	cfg := parseFlags()

	if cfg.HistorySyncID == "" || cfg.DSN == "" {
		fmt.Println("Error: history-sync and dsn are required")
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	db, err := store.Open(cfg.DSN, "", cfg.Debug)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	st := store.NewPGStore(db)

	fmt.Printf("Monitoring history sync: %s\n", cfg.HistorySyncID)
	if cfg.Duration > 0 {
		fmt.Printf("Watching for at most %s\n", formatDuration(cfg.Duration))
	}
	fmt.Printf("\nCollecting sync statistics...\n")

	stats := &SyncStats{HistorySyncID: cfg.HistorySyncID}
	var deadline <-chan time.Time
	if cfg.Duration > 0 {
		timer := time.NewTimer(cfg.Duration)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		if err := collect(ctx, st, stats, time.Now()); err != nil {
			if ctx.Err() != nil {
				break
			}
			fmt.Printf("\nError collecting stats: %v\n", err)
			os.Exit(1)
		}

		if !cfg.Debug {
			fmt.Printf("\r⏳ Polling... (samples: %d, height: %d, scanned: %d, rate: %s)    ",
				len(stats.Samples), stats.Current(), stats.Scanned(), stats.Rate())
		}

		if stats.Complete() {
			report("BENCHMARK RESULTS", stats, cfg.OutputFile)
			return
		}

		select {
		case <-ctx.Done():
			report("INTERRUPTED - PARTIAL RESULTS", stats, cfg.OutputFile)
			return
		case <-deadline:
			report("TIME LIMIT REACHED", stats, cfg.OutputFile)
			return
		case <-time.After(cfg.PollInterval):
		}
	}

	report("INTERRUPTED - PARTIAL RESULTS", stats, cfg.OutputFile)
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.DSN, "dsn", os.Getenv("FF_SCANNER_BENCHMARK_DSN"), "Postgres connection string (required)")
	flag.StringVar(&cfg.HistorySyncID, "history-sync", "", "History sync ID to monitor (required)")
	flag.DurationVar(&cfg.PollInterval, "poll-interval", defaultPollInterval, "How often the sync row is sampled")
	flag.DurationVar(&cfg.Duration, "duration", 0, "Stop after this long (0 = until the sync finishes)")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output markdown file path (optional)")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")

	flag.Parse()

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	return cfg
}

func report(title string, stats *SyncStats, outputFile string) {
	fmt.Println("\n\n" + strings.Repeat("=", 80))
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", 80))
	printSyncStats(os.Stdout, stats)

	if outputFile == "" || len(stats.Samples) == 0 {
		return
	}
	if err := writeMarkdownReport(outputFile, stats, time.Now()); err != nil {
		fmt.Printf("\n⚠️  Warning: Failed to write markdown file: %v\n", err)
	} else {
		fmt.Printf("\n✓ Report written to: %s\n", outputFile)
	}
}
