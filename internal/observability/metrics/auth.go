package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AccessTokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "access_tokens_issued_total",
			Help: "Total number of access tokens issued",
		},
	)

	RefreshCredentialsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "refresh_credentials_issued_total",
			Help: "Total number of refresh credentials issued",
		},
	)

	SessionsRotated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_rotated_total",
			Help: "Total number of successful refresh rotations",
		},
	)

	RotationsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rotations_rejected_total",
			Help: "Total number of rejected refresh rotations by internal reason",
		},
		[]string{"reason"},
	)

	SessionsRevoked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_revoked_total",
			Help: "Total number of explicitly revoked refresh credentials",
		},
	)

	CredentialsSweptDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credentials_sweep_deleted_total",
			Help: "Total number of expired refresh credentials deleted by the sweeper",
		},
	)

	BearerValidationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bearer_validations_failed_total",
			Help: "Total number of failed bearer token validations",
		},
	)
)
