package valueobject

import (
	"regexp"
	"strings"
)

// emailRE rejects whitespace and extra @s; the domain must have at least one
// dot-separated label after the first. Consecutive dots are checked separately
// because the pattern admits them in the final label.
var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s.]+(\.[^@\s.]+)+$`)

// Email is an immutable, lowercase-normalized email address.
type Email struct {
	value string
}

// NewEmail validates and normalizes raw input. Construction fails instead of
// coercing: empty-after-trim and pattern mismatches are both rejected.
func NewEmail(raw string) (Email, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Email{}, newValidationError("email", "Email não pode ser vazio.")
	}
	if !emailRE.MatchString(v) || strings.Contains(v, "..") {
		return Email{}, newValidationError("email", "Email inválido.")
	}
	return Email{value: strings.ToLower(v)}, nil
}

func (e Email) String() string { return e.value }

func (e Email) IsZero() bool { return e.value == "" }

func (e Email) Equals(other Email) bool { return e.value == other.value }
