package handlers

import (
	"net/http"

	"linkhub/internal/engine/links"
)

const reorderPath = "reorder"

type LinkHandler struct {
	service  *links.Service
	profiles profileInvalidator
}

func NewLinkHandler(service *links.Service, profiles profileInvalidator) *LinkHandler {
	return &LinkHandler{service: service, profiles: profiles}
}

func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	list, err := h.service.ListLinks(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if list == nil {
		list = []*links.Link{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"links": list})
}

func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var in links.CreateInput
	if !decodeJSON(w, r, &in) {
		return
	}

	link, err := h.service.CreateLink(r.Context(), claims.UserID, &in)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	h.profiles.Invalidate(r.Context(), claims.Username)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Link created successfully",
		"id":      link.ID,
	})
}

// Update serves PUT and PATCH on /api/links/:id. PUT /api/links/reorder
// shares the route and is dispatched to Reorder.
func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := param(r, "id")
	if id == reorderPath && r.Method == http.MethodPut {
		h.Reorder(w, r)
		return
	}

	claims := claimsFrom(r)

	var in links.UpdateInput
	if !decodeJSON(w, r, &in) {
		return
	}

	if _, err := h.service.UpdateLink(r.Context(), claims.UserID, id, &in); err != nil {
		writeServiceError(w, r, err, "Link not found")
		return
	}
	h.profiles.Invalidate(r.Context(), claims.Username)

	writeJSON(w, http.StatusOK, messageResponse{Message: "Link updated successfully"})
}

func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	if err := h.service.DeleteLink(r.Context(), claims.UserID, param(r, "id")); err != nil {
		writeServiceError(w, r, err, "Link not found")
		return
	}
	h.profiles.Invalidate(r.Context(), claims.Username)

	writeJSON(w, http.StatusOK, messageResponse{Message: "Link deleted successfully"})
}

func (h *LinkHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var in links.ReorderInput
	if !decodeJSON(w, r, &in) {
		return
	}

	if err := h.service.Reorder(r.Context(), claims.UserID, in.LinkIDs); err != nil {
		writeServiceError(w, r, err, "Link not found")
		return
	}
	h.profiles.Invalidate(r.Context(), claims.Username)

	writeJSON(w, http.StatusOK, messageResponse{Message: "Links reordered successfully"})
}
