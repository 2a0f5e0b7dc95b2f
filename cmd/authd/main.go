package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authcleanup "github.com/epakhin/teamdeck/authd/internal/auth/cleanup"
	authhttp "github.com/epakhin/teamdeck/authd/internal/auth/http"
	authrepo "github.com/epakhin/teamdeck/authd/internal/auth/repository"
	"github.com/epakhin/teamdeck/authd/internal/auth/service"
	"github.com/epakhin/teamdeck/authd/internal/common/clock"
	"github.com/epakhin/teamdeck/authd/internal/common/config"
	commoncrypto "github.com/epakhin/teamdeck/authd/internal/common/crypto"
	"github.com/epakhin/teamdeck/authd/internal/common/db"
	commonhttp "github.com/epakhin/teamdeck/authd/internal/common/http"
	"github.com/epakhin/teamdeck/authd/internal/common/logger"
	srv "github.com/epakhin/teamdeck/authd/internal/common/server"
	userrepo "github.com/epakhin/teamdeck/authd/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to load config: %v\n", err))
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogDir, "authd", cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	clk := clock.NewRealClock()
	idGenerator := commoncrypto.NewUUIDGenerator()

	credentialStore := authrepo.NewPgCredentialStore(pool)
	userDirectory := userrepo.NewPgDirectory(pool)

	codec := service.NewTokenCodec(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.TokenIssuer,
		cfg.TokenAudience,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
		idGenerator,
		clk,
	)
	bearer := service.NewBearerAuthenticator(codec)
	sessions := service.NewSessionRotationService(codec, credentialStore, userDirectory, clk, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go authcleanup.StartCredentialSweep(ctx, credentialStore, cfg.SweepInterval, log)

	handler := authhttp.NewHandler(sessions, bearer, cfg.RequestTimeout, log)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())

	finalHandler := commonhttp.BuildBaseHandler(log, mux)

	server := srv.New(srv.DefaultConfig(cfg.HTTPPort), finalHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("authd: stopping credential sweeper")
			cancel()
			return nil
		},
	}

	srv.StartWithGracefulShutdown(server, log, "authd", shutdownHooks)
}
