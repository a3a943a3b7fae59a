package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/claude/nightring/internal/analysis"
	"github.com/claude/nightring/internal/config"
	"github.com/claude/nightring/internal/report"
	"github.com/claude/nightring/internal/ultrahuman"
)

// nightring-report fetches one night of ring data and prints the nocturnal
// report (or the structured result with -json). One shot, no server.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	email := flag.String("email", "", "account email (defaults to the configured default)")
	date := flag.String("date", "", "night to analyze, YYYY-MM-DD (defaults to yesterday)")
	asJSON := flag.Bool("json", false, "print the structured analysis result as JSON")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *email == "" {
		*email = cfg.Ultrahuman.DefaultEmail
	}
	if *email == "" {
		log.Error("no email given and no default configured")
		os.Exit(1)
	}
	if *date == "" {
		*date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	}

	client := ultrahuman.NewClient(cfg.Ultrahuman.BaseURL, cfg.Ultrahuman.Token)

	ctx := context.Background()
	doc, err := client.FetchMetrics(ctx, *email, *date)
	if err != nil {
		log.Error("fetch failed", "date", *date, "error", err)
		os.Exit(1)
	}

	res, err := analysis.Run(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "no analysis for %s: %v\n", *date, err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			log.Error("encoding result", "error", err)
			os.Exit(1)
		}
		return
	}

	fmt.Print(report.Render(*email, *date, res))
}
