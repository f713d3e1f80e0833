package main

import (
	"context"
	"events2/internal/config"
	"events2/internal/lib/logger/sl"
	"events2/internal/models"
	"events2/internal/storage/postgres"
	"events2/internal/update"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
)

func main() {
	checkOnly := flag.Bool("check", false, "only report whether an update is needed")
	flag.Parse()

	cfg := config.MustLoad()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	storage, err := postgres.InitDB(&cfg.Database, cfg.Location())
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}
	defer storage.Close()

	ctx := context.Background()
	updater := update.New(log, storage)

	access, err := updater.Access(ctx)
	if err != nil {
		log.Error("failed to check update", sl.Err(err))
		os.Exit(1)
	}

	if *checkOnly {
		if access {
			fmt.Println("update needed")
			return
		}
		fmt.Println("nothing to update")
		return
	}

	messages, err := updater.Main(ctx)
	printMessages(os.Stdout, messages)
	if err != nil {
		log.Error("update failed", sl.Err(err))
		os.Exit(1)
	}
}

func printMessages(w io.Writer, messages []models.FlashMessage) {
	for _, m := range messages {
		c := severityColor(m.Severity)
		fmt.Fprintf(w, "%s %s\n", c.Sprintf("[%s]", m.Severity), color.New(color.Bold).Sprint(m.Title))
		fmt.Fprintf(w, "    %s\n", m.Message)
	}
}

func severityColor(s models.Severity) *color.Color {
	switch s {
	case models.SeverityOK:
		return color.New(color.FgGreen)
	case models.SeverityWarning:
		return color.New(color.FgYellow)
	case models.SeverityError:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgCyan)
	}
}
