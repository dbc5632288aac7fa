package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	adapthttp "github.com/TKJapan/diet-mvp/internal/adapter/http"
	"github.com/TKJapan/diet-mvp/internal/adapter/memory"
	"github.com/TKJapan/diet-mvp/internal/adapter/postgres"
	"github.com/TKJapan/diet-mvp/internal/adapter/sqlite"
	"github.com/TKJapan/diet-mvp/internal/app"
	"github.com/TKJapan/diet-mvp/internal/config"
	"github.com/TKJapan/diet-mvp/internal/domain"
	"github.com/TKJapan/diet-mvp/internal/repo"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

type backend struct {
	store    domain.Store
	users    domain.UserRepository
	sessions domain.SessionRepository
}

func openBackend(cfg *config.Config) (*backend, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		db, err := sqlite.Open(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite open: %w", err)
		}
		return &backend{store: db, users: db, sessions: sqlite.NewSessionRepo(db)}, nil
	case "postgres":
		db, err := postgres.Open(cfg.Store.URL)
		if err != nil {
			return nil, fmt.Errorf("postgres open: %w", err)
		}
		return &backend{store: db, users: db, sessions: postgres.NewSessionRepo(db)}, nil
	case "memory":
		db := memory.New()
		return &backend{store: db, users: db, sessions: db.NewSessionRepo()}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	be, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = be.store.Close() }()

	diary, err := repo.Open(ctx, be.store)
	if err != nil {
		return fmt.Errorf("open diary: %w", err)
	}

	authSvc := app.NewAuthService(be.users, be.sessions, time.Duration(cfg.Auth.SessionTTL))

	var oidcCfg *adapthttp.OIDCConfig
	if cfg.OIDC.Enabled {
		oidcCfg, err = adapthttp.NewOIDCConfig(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret, cfg.OIDC.RedirectURL)
		if err != nil {
			return err
		}
	}

	srv := adapthttp.New(
		app.NewWeightService(diary),
		app.NewMealService(diary),
		app.NewSummaryService(diary),
		app.NewReminderService(diary),
		authSvc,
		oidcCfg,
		cfg.WebDir,
		cfg.Auth.Disabled,
	)

	log.Printf("listening on %s (store=%s)", cfg.Addr, cfg.Store.Driver)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
