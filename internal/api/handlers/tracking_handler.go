package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"linkhub/internal/engine/tracking"
	"linkhub/internal/pkg/errors"
	"linkhub/internal/pkg/geoip"
)

type TrackingHandler struct {
	service *tracking.Service
	geo     geoip.Resolver
}

func NewTrackingHandler(service *tracking.Service, geo geoip.Resolver) *TrackingHandler {
	return &TrackingHandler{service: service, geo: geo}
}

type trackClickRequest struct {
	LinkID string `json:"linkId"`
}

type trackViewRequest struct {
	Username string `json:"username"`
}

func (h *TrackingHandler) TrackClick(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		errors.BadRequest(w, "Content-Type must be application/json")
		return
	}

	var req trackClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.BadRequest(w, "Invalid JSON format")
		return
	}

	err := h.service.TrackClick(r.Context(), req.LinkID, tracking.VisitorFromRequest(r, h.geo))
	if err != nil {
		writeServiceError(w, r, err, "Link not found")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Click tracked successfully"})
}

func (h *TrackingHandler) TrackView(w http.ResponseWriter, r *http.Request) {
	var req trackViewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.service.TrackView(r.Context(), strings.TrimSpace(req.Username), tracking.VisitorFromRequest(r, h.geo))
	if err != nil {
		writeServiceError(w, r, err, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "View tracked successfully"})
}
