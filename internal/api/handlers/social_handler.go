package handlers

import (
	stderrors "errors"
	"net/http"

	"linkhub/internal/engine/social"
	"linkhub/internal/pkg/errors"
)

type SocialHandler struct {
	service  *social.Service
	profiles profileInvalidator
}

func NewSocialHandler(service *social.Service, profiles profileInvalidator) *SocialHandler {
	return &SocialHandler{service: service, profiles: profiles}
}

func (h *SocialHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if list == nil {
		list = []social.Link{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"social_links": list})
}

func (h *SocialHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var in social.Input
	if !decodeJSON(w, r, &in) {
		return
	}

	if err := h.service.Add(r.Context(), claims.UserID, &in); err != nil {
		if stderrors.Is(err, errors.ErrDuplicate) {
			errors.BadRequest(w, "Social link for this platform already exists")
			return
		}
		writeServiceError(w, r, err, "")
		return
	}
	h.profiles.Invalidate(r.Context(), claims.Username)

	writeJSON(w, http.StatusCreated, messageResponse{Message: "Social link added successfully"})
}

// Replace takes the complete list as a bare JSON array.
func (h *SocialHandler) Replace(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var inputs []social.Input
	if !decodeJSON(w, r, &inputs) {
		return
	}

	if err := h.service.Replace(r.Context(), claims.UserID, inputs); err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	h.profiles.Invalidate(r.Context(), claims.Username)

	writeJSON(w, http.StatusOK, messageResponse{Message: "Social links updated successfully"})
}

func (h *SocialHandler) Remove(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	if err := h.service.Remove(r.Context(), claims.UserID, r.URL.Query().Get("platform")); err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	h.profiles.Invalidate(r.Context(), claims.Username)

	writeJSON(w, http.StatusOK, messageResponse{Message: "Social link removed successfully"})
}
