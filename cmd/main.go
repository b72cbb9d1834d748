package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/connectbase/cbx/internal/repositories"
	"github.com/connectbase/cbx/internal/services"
	"github.com/connectbase/cbx/internal/session"
	"github.com/connectbase/cbx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	// Local state is optional: without it the client still works, it just
	// forgets the session between runs. `cbx setup database` creates it.
	var stores *repositories.Stores
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		stores = repositories.NewStores(db)
	} else {
		logger.Debug("local database unavailable", "error", err)
	}

	var sessionStore session.Store
	var cookieStore services.CookieStore
	if stores != nil {
		sessionStore = stores.Session
		cookieStore = stores.Cookies
	}

	sess := session.New(sessionStore, logger)

	gateway, err := services.NewGateway(services.GatewayOpts{
		BaseURL:           config.Server.BaseURL,
		Client:            &http.Client{Timeout: time.Duration(config.Server.TimeoutSeconds) * time.Second},
		RequestsPerSecond: config.Server.RequestsPerSecond,
		Logger:            logger,
		Cookies:           cookieStore,
	})
	if err != nil {
		logger.Fatalf("failed to configure client: %v", err)
	}
	gateway.OnAuthFailure(sess.AuthRejected)

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Gateway:  gateway,
		Auth:     services.NewAuthService(gateway, logger),
		Contacts: services.NewContactService(gateway, logger),
		Session:  sess,
		Stores:   stores,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "cbx",
		Usage:    "Manage ConnectBase contacts from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
