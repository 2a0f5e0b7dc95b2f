package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/epakhin/teamdeck/authd/internal/common/constants"
	"github.com/epakhin/teamdeck/authd/internal/common/logger"
)

func NewPool(log *logger.Logger, databaseURL string) *pgxpool.Pool {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		log.Fatalf("failed to parse database url: %v", err)
	}

	cfg.MaxConns = constants.DBPoolMaxOpenConns
	cfg.MinConns = constants.DBPoolMinOpenConns
	cfg.MaxConnLifetime = constants.DBPoolConnMaxLifetime
	cfg.MaxConnIdleTime = constants.DBPoolConnMaxIdleTime
	cfg.HealthCheckPeriod = constants.DBPoolHealthCheck
	cfg.ConnConfig.ConnectTimeout = constants.DBPoolConnectTimeout
	cfg.ConnConfig.RuntimeParams = map[string]string{
		"application_name": "teamdeck-authd",
	}

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= constants.DBPoolMaxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), constants.DBPoolConnectTimeout)
		pool, err = pgxpool.ConnectConfig(ctx, cfg)
		cancel()
		if err == nil {
			return pool
		}
		log.Warnf("database connect attempt %d/%d failed: %v", attempt, constants.DBPoolMaxAttempts, err)
		time.Sleep(constants.DBPoolRetryDelay)
	}

	log.Fatalf("failed to connect to database after %d attempts: %v", constants.DBPoolMaxAttempts, err)
	return nil
}
