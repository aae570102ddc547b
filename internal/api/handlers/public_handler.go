package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"linkhub/internal/engine/profile"
	"linkhub/internal/pkg/errors"
)

type PublicHandler struct {
	profiles  *profile.Service
	publicURL string
}

func NewPublicHandler(profiles *profile.Service, publicURL string) *PublicHandler {
	return &PublicHandler{profiles: profiles, publicURL: strings.TrimRight(publicURL, "/")}
}

func (h *PublicHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Public(r.Context(), param(r, "username"))
	if err != nil {
		writeServiceError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// QRCode encodes the public page URL of username as a PNG.
func (h *PublicHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	username := param(r, "username")

	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errors.BadRequest(w, "Invalid size: must be between 128 and 2048")
			return
		}
		size = n
	}

	// 404 for unknown users rather than a code pointing nowhere
	if _, err := h.profiles.Public(r.Context(), username); err != nil {
		writeServiceError(w, r, err, "User not found")
		return
	}

	png, err := profile.QRCode(h.publicURL+"/"+username, size)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
