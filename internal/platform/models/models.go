package models

type User struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	PasswordHash   string  `json:"-"`
	AvatarURL      *string `json:"avatar_url"`
	Bio            *string `json:"bio"`
	AboutMe        *string `json:"about_me"`
	Hobby          *string `json:"hobby"`
	TechStack      *string `json:"tech_stack"`
	FooterMessage  *string `json:"footer_message"`
	WelcomeMessage *string `json:"welcome_message"`
	CreatedAt      int64   `json:"created_at"`
	UpdatedAt      int64   `json:"updated_at"`
}

// Profile is the owner-editable part of a User. Nil fields are stored as NULL.
type Profile struct {
	Name           string
	Bio            *string
	AvatarURL      *string
	AboutMe        *string
	Hobby          *string
	TechStack      *string
	FooterMessage  *string
	WelcomeMessage *string
}
