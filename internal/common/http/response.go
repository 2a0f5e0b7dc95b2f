package http

import (
	"encoding/json"
	"net/http"

	commonerrors "github.com/epakhin/teamdeck/authd/internal/common/errors"
)

type ErrorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteErrorEnvelope(w, status, CodeUnknown, message, "")
}

func WriteErrorEnvelope(w http.ResponseWriter, status int, code, message, traceID string) {
	WriteJSON(w, status, ErrorEnvelope{Code: code, Message: message, TraceID: traceID})
}

// WriteDomainError maps the typed failure kinds to status codes. Unknown
// errors never leak internals to the client.
func WriteDomainError(w http.ResponseWriter, err error) {
	if de, ok := commonerrors.AsDomainError(err); ok {
		WriteErrorEnvelope(w, de.HTTPStatus(), de.Code(), de.Message(), "")
		return
	}
	WriteError(w, http.StatusInternalServerError, "internal error")
}

func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
