package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/server"
	"github.com/MKhiriev/go-vault-keeper/internal/service"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/internal/workers"
	"github.com/MKhiriev/go-vault-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
	printBuildInfo(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("vaultd", "").Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log := logger.NewLogger("vaultd", cfg.Log.Level)
	ctx := log.ToContext(context.Background())

	appInfo, err := service.NewAppInfoService(cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error reading app info")
	}
	log.Info().Str("version", appInfo.GetAppVersion(ctx)).Str("driver", cfg.Storage.DB.Driver).Msg("starting vault daemon")

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	services := service.NewServices(storages, *cfg, log)

	srv, err := server.NewServer(workers.NewWorkers(
		workers.NewShareSweeper(services.ShareSweepJob, cfg.Workers, log),
	), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating vault daemon")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
