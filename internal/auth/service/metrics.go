package service

import (
	"github.com/epakhin/teamdeck/authd/internal/observability/metrics"
)

func incrementAccessTokensIssued() {
	metrics.AccessTokensIssued.Inc()
}

func incrementRefreshCredentialsIssued() {
	metrics.RefreshCredentialsIssued.Inc()
}

func incrementSessionsRotated() {
	metrics.SessionsRotated.Inc()
}

func incrementRotationsRejected(reason string) {
	metrics.RotationsRejected.WithLabelValues(reason).Inc()
}

func incrementSessionsRevoked() {
	metrics.SessionsRevoked.Inc()
}

func incrementBearerValidationsFailed() {
	metrics.BearerValidationsFailed.Inc()
}
