package links

import (
	"net/url"
	"unicode/utf8"

	apperrors "linkhub/internal/pkg/errors"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
)

func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n == 0 {
		return apperrors.Validation("Title is required")
	}
	if n > maxTitleLen {
		return apperrors.Validation("Title must be less than 100 characters")
	}
	return nil
}

// ValidateURL accepts absolute http and https URLs only.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return apperrors.Validation("Please enter a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperrors.Validation("URL must start with http:// or https://")
	}
	return nil
}

func validateDescription(desc *string) error {
	if desc != nil && utf8.RuneCountInString(*desc) > maxDescriptionLen {
		return apperrors.Validation("Description must be less than 500 characters")
	}
	return nil
}

func ValidateCreate(in *CreateInput) error {
	if err := validateTitle(in.Title); err != nil {
		return err
	}
	if err := ValidateURL(in.URL); err != nil {
		return err
	}
	return validateDescription(in.Description)
}

func ValidateUpdate(in *UpdateInput) error {
	if in.Empty() {
		return apperrors.Validation("No fields to update")
	}
	if in.Title != nil {
		if err := validateTitle(*in.Title); err != nil {
			return err
		}
	}
	if in.URL != nil {
		if err := ValidateURL(*in.URL); err != nil {
			return err
		}
	}
	if in.Position != nil && *in.Position < 1 {
		return apperrors.Validation("Position must be a positive integer")
	}
	return validateDescription(in.Description)
}

// ValidateReorder rejects empty lists and repeated ids.
func ValidateReorder(ids []string) error {
	if len(ids) == 0 {
		return apperrors.Validation("linkIds must be a non-empty array")
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return apperrors.Validation("linkIds must not contain empty values")
		}
		if _, ok := seen[id]; ok {
			return apperrors.Validation("linkIds must not contain duplicates")
		}
		seen[id] = struct{}{}
	}
	return nil
}
