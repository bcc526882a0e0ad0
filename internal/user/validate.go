package user

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ratepoint/service-core/internal/apperr"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func validateName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < 20 || n > 60 {
		return apperr.Validation("name must be 20-60 characters")
	}
	return nil
}

func validateAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return apperr.Validation("address is required")
	}
	if utf8.RuneCountInString(address) > 400 {
		return apperr.Validation("address must be at most 400 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return apperr.Validation("invalid email address")
	}
	return nil
}
