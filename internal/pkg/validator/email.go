package validator

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Email accepts a bare address; display names like "Bob <bob@x.io>" are rejected.
func Email(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("Please enter a valid email address")
	}
	domain := email[strings.LastIndex(email, "@")+1:]
	if !strings.Contains(domain, ".") {
		return errors.New("Please enter a valid email address")
	}
	return nil
}

func Username(username string) error {
	if len(username) < 3 {
		return errors.New("Username must be at least 3 characters")
	}
	if len(username) > 30 {
		return errors.New("Username must be less than 30 characters")
	}
	if !usernamePattern.MatchString(username) {
		return errors.New("Username can only contain letters, numbers, and underscores")
	}
	return nil
}
