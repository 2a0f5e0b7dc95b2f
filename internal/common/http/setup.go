package http

import (
	"net/http"

	"github.com/epakhin/teamdeck/authd/internal/common/constants"
	"github.com/epakhin/teamdeck/authd/internal/common/logger"
)

func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(recovery(TraceIDMiddleware(maxRequestSize(MetricsMiddleware(handler)))))
}
