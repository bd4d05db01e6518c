package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	api "valuator/internal/api"
	"valuator/internal/domain"
)

func inputError(msg string) error { return eris.Wrap(domain.ErrInput, msg) }

// statusFor maps domain sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConcurrency), errors.Is(err, domain.ErrMissingDependency):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPassExecution):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err with the status its domain sentinel maps to.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.logFailure(r.Context(), r.URL.Path, err)
	writeJSON(w, statusFor(err), api.ErrorResponse{Success: false, Error: err.Error()})
}

// requestError handles parameters and bodies the generated layer could not
// bind; they are always the caller's fault.
func (s *Server) requestError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeError(w, r, inputError(err.Error()))
}

func (s *Server) logFailure(ctx context.Context, where string, err error) {
	status := statusFor(err)
	fields := []zap.Field{
		zap.String("where", where),
		zap.Int("status", status),
		zap.String("request_id", middleware.GetReqID(ctx)),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("http: request failed", fields...)
		return
	}
	s.logger.Warn("http: request rejected", fields...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
