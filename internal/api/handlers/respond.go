package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	apiContext "linkhub/internal/api/context"
	"linkhub/internal/pkg/errors"
	"linkhub/internal/platform/auth"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		errors.BadRequest(w, errors.MsgInvalidBody)
		return false
	}
	return true
}

func claimsFrom(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(apiContext.Claims).(*auth.Claims)
	return claims
}

func param(r *http.Request, name string) string {
	params, _ := r.Context().Value(apiContext.Params).(httprouter.Params)
	return params.ByName(name)
}

// writeServiceError maps domain errors onto status codes. notFound is the
// message used for ErrNotFound.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	if v, ok := errors.AsValidation(err); ok {
		errors.BadRequest(w, v.Message)
		return
	}

	switch {
	case stderrors.Is(err, errors.ErrNotFound):
		errors.NotFound(w, notFound)
	case stderrors.Is(err, errors.ErrForbidden):
		errors.WriteError(w, http.StatusForbidden, errors.MsgUnauthorized)
	case stderrors.Is(err, errors.ErrDuplicate):
		errors.BadRequest(w, "Resource already exists")
	default:
		rid, _ := r.Context().Value(apiContext.RequestID).(string)
		log.Error().Err(err).Str("request_id", rid).Str("path", r.URL.Path).Msg("request failed")
		errors.Internal(w)
	}
}

// profileInvalidator drops the cached public profile after an owner mutation.
type profileInvalidator interface {
	Invalidate(ctx context.Context, username string)
}
