package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/vigiliot/vigil-server/internal/config"
	"github.com/vigiliot/vigil-server/internal/discovery"
	"github.com/vigiliot/vigil-server/internal/logging"
	"github.com/vigiliot/vigil-server/internal/repository/memory"
	"github.com/vigiliot/vigil-server/internal/repository/ports"
	"github.com/vigiliot/vigil-server/internal/repository/postgres"
	"github.com/vigiliot/vigil-server/internal/service"
	httptransport "github.com/vigiliot/vigil-server/internal/transport/http"
	"github.com/vigiliot/vigil-server/internal/transport/mail"
)

func main() {
	cfg := config.Load()

	if cfg.LogCollectorAddr != "" {
		collector, err := logging.NewCollectorWriter(cfg.LogCollectorAddr)
		if err != nil {
			log.Fatalf("log collector: %v", err)
		}
		defer collector.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, collector))
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("ensure schema: %v", err)
	}
	cancel()

	var sessions ports.SessionRepository
	switch cfg.SessionStore {
	case "memory":
		sessions = memory.NewSessionRepo()
	default:
		sessions = postgres.NewSessionRepo(db)
	}

	mailer := mail.NewResetMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	auth := service.NewAuthService(
		postgres.NewUserRepo(db),
		sessions,
		mailer,
		cfg.SessionTTL, cfg.SessionMaxLifetime, cfg.ResetTokenTTL,
		cfg.ResetBaseURL,
	)
	scans := service.NewScanService(postgres.NewScanReportRepo(db))

	runner, err := discovery.NewRunner(cfg.DiscoveryCommand, cfg.DiscoveryDir, cfg.DiscoveryFile, cfg.DiscoveryTimeout)
	if err != nil {
		log.Fatalf("discovery runner: %v", err)
	}

	e := httptransport.NewRouter(cfg.AllowOrigins)
	httptransport.RegisterAuth(e, auth, cfg.SessionTTL)
	httptransport.RegisterScans(e, scans, auth)
	httptransport.RegisterReset(e, auth)
	httptransport.RegisterDiscovery(e, runner)
	httptransport.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
