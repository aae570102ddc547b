package handlers

import (
	"io"
	"net/http"

	"linkhub/internal/engine/profile"
	"linkhub/internal/pkg/errors"
)

const avatarField = "avatar"

type ProfileHandler struct {
	service *profile.Service
	avatars *profile.AvatarStore
}

func NewProfileHandler(service *profile.Service, avatars *profile.AvatarStore) *ProfileHandler {
	return &ProfileHandler{service: service, avatars: avatars}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		writeServiceError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var in profile.UpdateInput
	if !decodeJSON(w, r, &in) {
		return
	}

	if err := h.service.Update(r.Context(), claims.UserID, claims.Username, &in); err != nil {
		writeServiceError(w, r, err, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Profile updated successfully"})
}

func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	// leave room for the multipart envelope around the file
	r.Body = http.MaxBytesReader(w, r.Body, h.avatars.MaxBytes+1<<20)
	if err := r.ParseMultipartForm(h.avatars.MaxBytes); err != nil {
		errors.BadRequest(w, "No file provided")
		return
	}

	file, header, err := r.FormFile(avatarField)
	if err != nil {
		errors.BadRequest(w, "No file provided")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := h.avatars.Check(contentType, header.Size); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	url, err := h.avatars.Save(data, contentType)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	if err := h.service.SetAvatar(r.Context(), claims.UserID, claims.Username, &url); err != nil {
		writeServiceError(w, r, err, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Avatar uploaded successfully",
		"avatar_url": url,
	})
}

func (h *ProfileHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	if err := h.service.SetAvatar(r.Context(), claims.UserID, claims.Username, nil); err != nil {
		writeServiceError(w, r, err, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Avatar removed successfully"})
}
