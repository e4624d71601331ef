package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/Ashutosh3021/PrepIQ-sub001/internal/app"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/auth"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/client"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/config"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/exam"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/lib/slogcustom"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/notify"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/services"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/storage"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/storage/postgres"
)

func main() {
	log := setupLogger()
	slog.SetDefault(log)
	slog.Info("starting prepiq...")

	flagAPIURL := pflag.String("api-url", "", "base URL of the PrepIQ backend")
	flagToken := pflag.String("token", "", "bearer token to store before running")
	pflag.Parse()

	cfg := config.Load()
	if *flagAPIURL != "" {
		cfg.APIBaseURL = *flagAPIURL
	}

	tokens := auth.NewFileTokenStore(cfg.TokenFile)
	if *flagToken != "" {
		if err := tokens.SetToken(*flagToken); err != nil {
			slog.Error("failed to store token", "err", err)
			os.Exit(1)
		}
	}

	notifier := notify.NewConsoleNotifier(os.Stderr)

	api, err := client.NewHTTPClient(client.Options{
		BaseURL:  cfg.APIBaseURL,
		Tokens:   tokens,
		Notifier: notifier,
	})
	if err != nil {
		slog.Error("failed to create api client", "err", err)
		os.Exit(1)
	}

	svc := services.New(api)
	session := exam.NewSession(svc, exam.SessionOptions{})

	ctx := context.Background()

	archive := newArchive(ctx, cfg)

	a := app.New(svc, session, archive, notifier, os.Stdin, os.Stdout)
	if err := a.Run(ctx); err != nil {
		slog.Error("app finished with error", "err", err)
		os.Exit(1)
	}
}

// newArchive подключает postgres-архив, если задан DSN,
// иначе работает в памяти.
func newArchive(ctx context.Context, cfg *config.Config) storage.Storage {
	if cfg.DatabaseDSN == "" {
		return storage.NewMemoryStorage()
	}

	archive, err := postgres.NewStorage(ctx, cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("failed to connect to archive database, falling back to memory", "err", err)
		return storage.NewMemoryStorage()
	}

	return archive
}

func setupLogger() *slog.Logger {
	log := slog.New(slogcustom.NewCustomHandler(os.Stdout, slog.LevelDebug))
	return log
}
