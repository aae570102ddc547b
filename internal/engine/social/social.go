package social

import (
	"net/url"

	apperrors "linkhub/internal/pkg/errors"
)

var Platforms = []string{
	"instagram", "facebook", "twitter", "linkedin", "github",
	"youtube", "tiktok", "discord", "twitch", "website",
}

type Link struct {
	Platform     string `json:"platform"`
	URL          string `json:"url"`
	IsActive     bool   `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
}

type Input struct {
	Platform     string `json:"platform"`
	URL          string `json:"url"`
	IsActive     *bool  `json:"is_active"`
	DisplayOrder *int   `json:"display_order"`
}

func knownPlatform(p string) bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

func (in *Input) Validate() error {
	if !knownPlatform(in.Platform) {
		return apperrors.Validation("Invalid platform")
	}
	u, err := url.Parse(in.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return apperrors.Validation("Please enter a valid URL")
	}
	if in.DisplayOrder != nil && *in.DisplayOrder < 0 {
		return apperrors.Validation("Display order must be a non-negative integer")
	}
	return nil
}

func (in *Input) active() bool {
	return in.IsActive == nil || *in.IsActive
}
