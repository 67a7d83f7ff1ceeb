package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/auth"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/cli"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/config"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/feed"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/repository"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/service"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/storage"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/toast"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	database, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening database: %v\n", err)
		return err
	}
	defer database.Close()

	repos := repository.NewSet(db.Bind(db.NormalizeDriver(cfg.DBDriver), database))
	uow := db.NewUnitOfWork(database, db.NormalizeDriver(cfg.DBDriver))

	authSvc, err := auth.New(repos.Identities, auth.Options{
		Secret:     []byte(cfg.AuthSecret),
		SessionTTL: cfg.SessionTTL,
		Store:      auth.FileTokenStore{Path: cfg.SessionPath()},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	// Service errors reach the user as error toasts; the rest are printed
	// once the command returns.
	toasts := toast.New(os.Stderr)
	reported := false
	toasts.Subscribe(func(t toast.Toast) {
		if t.Kind == toast.KindError {
			reported = true
		}
	})

	registry := prometheus.NewRegistry()
	observers := []service.UseCaseObserver{service.NewMetricsObserver(registry)}
	if cfg.LogCalls {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	hub := feed.NewHub()
	svc := service.New(service.Deps{
		Repos:     repos,
		UoW:       uow,
		Mode:      cfg.WriteMode,
		Store:     storage.NewLocalStore(cfg.StorageDir(), cfg.StorageBaseURL),
		Hub:       hub,
		Toasts:    toasts,
		Auth:      authSvc,
		Observers: observers,
		InviteTTL: cfg.InviteTTL,
		AppURL:    cfg.AppURL,
	})

	source := feed.NewSource(repos.Notifications, hub, cfg.FeedPoll, time.Now().UTC())
	if err := source.Register(registry); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	app := &cli.App{
		Services:    svc,
		Auth:        authSvc,
		Toasts:      toasts,
		Metrics:     registry,
		MetricsFile: cfg.MetricsFile,
		MetricsAddr: cfg.MetricsAddr,
		Feed:        source,
		Prompter:    cli.HuhPrompter{},
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	err = cli.NewRootCmd(app).ExecuteContext(context.Background())
	if err != nil && !reported {
		fmt.Fprintf(os.Stderr, "Error: %s\n", toast.FriendlyMessage(err))
	}
	if ferr := app.FlushMetrics(); ferr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", ferr)
	}
	return err
}
