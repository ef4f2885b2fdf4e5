package valueobject

import (
	"strings"
	"unicode/utf8"
)

// punctuation is the ASCII special-character set accepted by the complexity
// policy.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Hasher is the credential-hashing collaborator the domain verifies against.
// Implemented by pkg/hasher.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) (bool, error)
}

// Password wraps a secret string. It is constructed either from raw user
// input, which is validated against the complexity policy, or from an
// already-hashed value rehydrated from storage, which is not. Complexity
// rules apply to human-entered passwords only.
type Password struct {
	secret string
	hashed bool
}

// NewPassword validates raw user input. Rules are checked in order and the
// first violation wins.
func NewPassword(raw string) (Password, error) {
	if n := utf8.RuneCountInString(raw); n < 8 || n > 16 {
		return Password{}, newValidationError("password", "A senha deve ter entre 8 e 16 caracteres.")
	}
	var hasLetter, hasDigit, hasPunct bool
	for _, r := range raw {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(punctuation, r):
			hasPunct = true
		}
	}
	if !hasLetter || !hasDigit {
		return Password{}, newValidationError("password", "A senha deve conter letras e números.")
	}
	if !hasPunct {
		return Password{}, newValidationError("password", "A senha deve conter pelo menos um caractere especial.")
	}
	return Password{secret: raw}, nil
}

// PasswordFromHash rehydrates a Password from a stored digest. Validation is
// skipped: this path exists only for values round-tripped through storage.
func PasswordFromHash(digest string) Password {
	return Password{secret: digest, hashed: true}
}

// Secret exposes the wrapped value for hashing or persistence.
func (p Password) Secret() string { return p.secret }

// Hashed reports whether the wrapped value is a digest rather than raw input.
func (p Password) Hashed() bool { return p.hashed }

// Verify checks plaintext against the stored digest through the hasher.
// A Password still holding raw input never matches.
func (p Password) Verify(h Hasher, plain string) bool {
	if !p.hashed {
		return false
	}
	ok, err := h.Verify(plain, p.secret)
	return err == nil && ok
}
