// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/tradeflix-auth/internal/adapter"
	"github.com/MKhiriev/tradeflix-auth/internal/config"
	handlerHTTP "github.com/MKhiriev/tradeflix-auth/internal/handler/http"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/internal/server"
	"github.com/MKhiriev/tradeflix-auth/internal/service"
	"github.com/MKhiriev/tradeflix-auth/internal/store"
	"github.com/MKhiriev/tradeflix-auth/internal/workers"
	"github.com/MKhiriev/tradeflix-auth/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("tradeflix-auth")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	mailer := adapter.NewSMTPMailer(cfg.Mail, log)
	mailCheck := adapter.NewMailCheckClient(cfg.MailCheck, log)
	google := adapter.NewGoogleProvider(cfg.OAuth, log)

	services := service.NewServices(*storages, mailer, mailCheck, cfg, log)

	handler := handlerHTTP.NewHandler(services, google, cfg, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workersCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	sweeper := workers.NewSessionSweeper(
		storages.SessionRepository,
		store.NewPostgresErrorClassifier(),
		cfg.Workers,
		log,
	)
	workers.NewWorkers(sweeper).Run(workersCtx)

	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
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

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
