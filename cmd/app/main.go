// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/V7-Lippyy/nutripal/internal/auth"
	"github.com/V7-Lippyy/nutripal/internal/config"
	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/internal/nutrition"
	"github.com/V7-Lippyy/nutripal/internal/remote"
	"github.com/V7-Lippyy/nutripal/internal/service"
	"github.com/V7-Lippyy/nutripal/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewAppLogger("nutripal")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	provider, err := auth.NewRESTProvider(cfg.Auth, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create identity provider client")
	}

	// the cloud database is optional: without it the app runs fully local
	var (
		cloud    *remote.Database
		profiles remote.ProfileStore
	)
	if cfg.Remote.URI != "" {
		cloud, err = remote.Connect(ctx, cfg.Remote, log)
		if err != nil {
			log.Fatal().Err(err).Msg("connect remote database")
		}
		defer func() {
			if err := cloud.Close(context.Background()); err != nil {
				log.Err(err).Msg("disconnect remote database")
			}
		}()
		profiles = remote.NewProfileStore(cloud, log)
	}

	gateway := auth.NewGateway(provider, profiles, storages.Sessions, cfg.Auth.ConnectDelay, log)
	defer gateway.Close()

	// entries live in the cloud store when it is available; the gateway
	// scopes every remote call to the signed-in user
	entries := storages.Entries
	prefs := storages.Preferences
	if cloud != nil {
		entries = remote.NewEntryRepository(cloud, gateway, log)
		prefs = remote.NewPreferenceRepository(cloud, gateway, log)
	}

	var lookup nutrition.Client
	if cfg.Nutrition.BaseURL != "" {
		lookup, err = nutrition.NewClient(cfg.Nutrition, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create nutrition client")
		}
	}

	services := service.NewServices(entries, prefs, lookup, gateway, log)

	if _, err := gateway.RestoreSession(ctx); err != nil && !errors.Is(err, auth.ErrNoSession) {
		log.Err(err).Msg("restore cached session")
	}

	services.FoodLog.Start(ctx)
	defer services.FoodLog.Stop()

	services.RefreshJob.Start(ctx, cfg.Workers.RefreshInterval)
	defer services.RefreshJob.Stop()

	log.Info().Str("version", buildVersion).Msg("nutripal running")
	<-ctx.Done()
	log.Info().Msg("shutting down")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Fprintf(os.Stdout, "Build version: %s\n", buildVersion)
	fmt.Fprintf(os.Stdout, "Build date: %s\n", buildDate)
	fmt.Fprintf(os.Stdout, "Build commit: %s\n", buildCommit)
}
