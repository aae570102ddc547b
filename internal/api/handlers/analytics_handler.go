package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"linkhub/internal/engine/analytics"
	"linkhub/internal/pkg/errors"
)

type AnalyticsHandler struct {
	service *analytics.Service
	now     func() time.Time
}

func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, now: time.Now}
}

func (h *AnalyticsHandler) rangeOf(r *http.Request) analytics.Range {
	return analytics.ParseRange(r.URL.Query().Get("range"), h.now())
}

func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	overview, err := h.service.Overview(r.Context(), claims.UserID, h.rangeOf(r))
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

func (h *AnalyticsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	metric, ok := analytics.ParseMetric(r.URL.Query().Get("metric"))
	if !ok {
		errors.BadRequest(w, "Invalid metric parameter")
		return
	}

	report, err := h.service.Trends(r.Context(), claims.UserID, h.rangeOf(r), metric)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *AnalyticsHandler) Export(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	rng := h.rangeOf(r)

	rows, err := h.service.Export(r.Context(), claims.UserID, rng)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+analytics.ExportFilename(rng.Token)+`"`)
	w.WriteHeader(http.StatusOK)
	if err := analytics.WriteCSV(w, rows); err != nil {
		// Headers are already sent; the client sees a truncated file.
		log.Error().Err(err).Str("user_id", claims.UserID).Int("rows", len(rows)).Msg("csv export failed")
	}
}
