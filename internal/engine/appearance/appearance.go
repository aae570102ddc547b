package appearance

import (
	"regexp"
	"strings"

	apperrors "linkhub/internal/pkg/errors"
)

const DefaultTheme = "light"

var themes = map[string]bool{
	"light":  true,
	"dark":   true,
	"forest": true,
	"ocean":  true,
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Values that carry no styling information and are stored as NULL.
var meaninglessColors = map[string]bool{
	"":        true,
	"#000":    true,
	"#000000": true,
	"#fff":    true,
	"#ffffff": true,
	"black":   true,
	"white":   true,
}

type Appearance struct {
	ProfileTheme          string  `json:"profile_theme"`
	CustomBackgroundColor *string `json:"custom_background_color"`
	CustomButtonColor     *string `json:"custom_button_color"`
	CustomTextColor       *string `json:"custom_text_color"`
}

func Default() *Appearance {
	return &Appearance{ProfileTheme: DefaultTheme}
}

type UpdateInput struct {
	ProfileTheme          string  `json:"profile_theme"`
	CustomBackgroundColor *string `json:"custom_background_color"`
	CustomButtonColor     *string `json:"custom_button_color"`
	CustomTextColor       *string `json:"custom_text_color"`
}

// NormalizeColor trims c and maps black, white and empty to nil.
func NormalizeColor(c *string) *string {
	if c == nil {
		return nil
	}
	v := strings.TrimSpace(*c)
	if meaninglessColors[strings.ToLower(v)] {
		return nil
	}
	return &v
}

// Normalize validates the input and returns the appearance to store.
func (in *UpdateInput) Normalize() (*Appearance, error) {
	if !themes[in.ProfileTheme] {
		return nil, apperrors.Validation("Invalid theme. Must be one of: light, dark, forest, ocean")
	}

	a := &Appearance{
		ProfileTheme:          in.ProfileTheme,
		CustomBackgroundColor: NormalizeColor(in.CustomBackgroundColor),
		CustomButtonColor:     NormalizeColor(in.CustomButtonColor),
		CustomTextColor:       NormalizeColor(in.CustomTextColor),
	}

	for _, c := range []*string{a.CustomBackgroundColor, a.CustomButtonColor, a.CustomTextColor} {
		if c != nil && !hexColor.MatchString(*c) {
			return nil, apperrors.Validation("Colors must be hex values like #1a2b3c")
		}
	}

	return a, nil
}
