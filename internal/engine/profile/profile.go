package profile

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"linkhub/internal/platform/models"
	apperrors "linkhub/internal/pkg/errors"
)

type UpdateInput struct {
	Name           string `json:"name"`
	Bio            string `json:"bio"`
	AvatarURL      string `json:"avatar_url"`
	AboutMe        string `json:"about_me"`
	Hobby          string `json:"hobby"`
	TechStack      string `json:"tech_stack"`
	FooterMessage  string `json:"footer_message"`
	WelcomeMessage string `json:"welcome_message"`
}

var fieldLimits = []struct {
	value   func(*UpdateInput) string
	max     int
	message string
}{
	{func(in *UpdateInput) string { return in.Bio }, 160, "Bio must be less than 160 characters"},
	{func(in *UpdateInput) string { return in.AboutMe }, 1000, "About me must be less than 1000 characters"},
	{func(in *UpdateInput) string { return in.Hobby }, 500, "Hobby must be less than 500 characters"},
	{func(in *UpdateInput) string { return in.TechStack }, 500, "Tech stack must be less than 500 characters"},
	{func(in *UpdateInput) string { return in.FooterMessage }, 200, "Footer message must be less than 200 characters"},
	{func(in *UpdateInput) string { return in.WelcomeMessage }, 150, "Welcome message must be less than 150 characters"},
}

func (in *UpdateInput) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) < 2 {
		return apperrors.Validation("Name must be at least 2 characters")
	}
	for _, f := range fieldLimits {
		if utf8.RuneCountInString(f.value(in)) > f.max {
			return apperrors.Validation(f.message)
		}
	}
	if in.AvatarURL != "" && !validAvatarURL(in.AvatarURL) {
		return apperrors.Validation("Avatar URL must be a valid URL")
	}
	return nil
}

// Uploaded avatars are stored as site-relative paths, so those are accepted
// alongside absolute http(s) URLs.
func validAvatarURL(raw string) bool {
	if strings.HasPrefix(raw, "/uploads/") {
		return true
	}
	u, err := url.Parse(raw)
	return err == nil && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https")
}

// Profile converts the input to the stored form; empty strings become NULL.
func (in *UpdateInput) Profile() *models.Profile {
	return &models.Profile{
		Name:           strings.TrimSpace(in.Name),
		Bio:            optional(in.Bio),
		AvatarURL:      optional(in.AvatarURL),
		AboutMe:        optional(in.AboutMe),
		Hobby:          optional(in.Hobby),
		TechStack:      optional(in.TechStack),
		FooterMessage:  optional(in.FooterMessage),
		WelcomeMessage: optional(in.WelcomeMessage),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
