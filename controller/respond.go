package controller

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"mckart-backend/apperr"
)

// ErrorResponse is the error body shape for every endpoint: a short
// safe message plus a stable machine-readable kind.
type ErrorResponse struct {
	Error string      `json:"error"`
	Kind  apperr.Kind `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps err through the taxonomy. Full detail is logged
// server-side; the client only sees the safe message.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	switch kind {
	case apperr.KindValidation, apperr.KindNotFound:
		log.Debug("request rejected", zap.Error(err))
	default:
		log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, apperr.HTTPStatus(err), ErrorResponse{
		Error: apperr.UserMessage(err),
		Kind:  kind,
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Error: "method not allowed",
		Kind:  apperr.KindValidation,
	})
}

// WithCORS applies the permissive CORS policy the frontend dev server
// needs and short-circuits preflight requests.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-Id, X-User-Name")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestIdentity resolves the calling user from the identity headers
// the session layer injects. Stand-in for a real session service.
func requestIdentity(r *http.Request) (id, name string) {
	return r.Header.Get("X-User-Id"), r.Header.Get("X-User-Name")
}
