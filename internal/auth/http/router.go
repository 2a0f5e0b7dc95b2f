package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/epakhin/teamdeck/authd/internal/auth/service"
	commonhttp "github.com/epakhin/teamdeck/authd/internal/common/http"
	"github.com/epakhin/teamdeck/authd/internal/common/logger"
)

// SessionService is the slice of SessionRotationService the transport
// layer consumes.
type SessionService interface {
	Rotate(ctx context.Context, presented string) (service.TokenPair, error)
	RevokeSession(ctx context.Context, presented string) error
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type sessionResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type Handler struct {
	sessions SessionService
	bearer   *service.BearerAuthenticator
	validate *validator.Validate
	timeout  time.Duration
	log      *logger.Logger
}

func NewHandler(
	sessions SessionService,
	bearer *service.BearerAuthenticator,
	timeout time.Duration,
	log *logger.Logger,
) http.Handler {
	h := &Handler{
		sessions: sessions,
		bearer:   bearer,
		validate: validator.New(),
		timeout:  timeout,
		log:      log,
	}

	requireAuth := RequireAuth(bearer, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler())
	mux.HandleFunc("/api/auth/refresh", h.refresh)
	mux.HandleFunc("/api/auth/logout", h.logout)
	mux.Handle("/api/auth/session", requireAuth(http.HandlerFunc(h.session)))
	return mux
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", "")
		return
	}

	var req refreshRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("refresh failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", "")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeMissingRefreshToken, "refresh_token is required", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	pair, err := h.sessions.Rotate(ctx, req.RefreshToken)
	if err != nil {
		commonhttp.WriteDomainError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", "")
		return
	}

	var req refreshRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.sessions.RevokeSession(ctx, req.RefreshToken); err != nil {
		h.log.Errorf("logout revoke failed: %v", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", "")
		return
	}

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing authentication", "")
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, sessionResponse{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	})
}
