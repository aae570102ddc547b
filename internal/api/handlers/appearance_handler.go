package handlers

import (
	"net/http"

	"linkhub/internal/engine/appearance"
)

type AppearanceHandler struct {
	service  *appearance.Service
	profiles profileInvalidator
}

func NewAppearanceHandler(service *appearance.Service, profiles profileInvalidator) *AppearanceHandler {
	return &AppearanceHandler{service: service, profiles: profiles}
}

func (h *AppearanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"appearance": a})
}

func (h *AppearanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var in appearance.UpdateInput
	if !decodeJSON(w, r, &in) {
		return
	}

	a, err := h.service.Update(r.Context(), claims.UserID, &in)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	h.profiles.Invalidate(r.Context(), claims.Username)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Appearance updated successfully",
		"appearance": a,
	})
}
