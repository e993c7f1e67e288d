package password

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/tutorpocket/backend/internal/apperrors"
)

const (
	// Bcrypt work factor used when nothing else is configured
	DefaultCost = 12

	MinLength = 8
	MaxLength = 128

	// Punctuation that counts as the symbol class
	Symbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

// Result of the password policy check
// Message is empty when the password is valid
type Validation struct {
	IsValid bool
	Message string
}

// Bcrypt based credential manager
type Manager struct {
	cost int
}

// Cost must be within bcrypt limits, zero means DefaultCost
func New(cost int) (*Manager, error) {
	if cost == 0 {
		cost = DefaultCost
	}

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be in [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}

	return &Manager{cost: cost}, nil
}

// Hash password with random salt
// Password is pre-hashed with sha256 so bcrypt never truncates long passwords (it reads 72 bytes at most)
func (m *Manager) Hash(plaintext string) (string, error) {
	if strings.TrimSpace(plaintext) == "" {
		return "", fmt.Errorf("%w: password is empty", apperrors.ErrHashingFailed)
	}

	sum := sha256.Sum256([]byte(plaintext))
	hash, err := bcrypt.GenerateFromPassword(sum[:], m.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrHashingFailed, err)
	}

	return string(hash), nil
}

// Compare plaintext with known hash
// Malformed hash is reported as a plain mismatch
func (m *Manager) Compare(plaintext string, hash string) bool {
	sum := sha256.Sum256([]byte(plaintext))
	return bcrypt.CompareHashAndPassword([]byte(hash), sum[:]) == nil
}

// Validate password against the policy
// Checks are made in order: too short, too long, not enough character classes
func Validate(password string) Validation {
	length := utf8.RuneCountInString(password)

	switch {
	case length < MinLength:
		return Validation{Message: fmt.Sprintf("password must be at least %d characters long", MinLength)}
	case length > MaxLength:
		return Validation{Message: fmt.Sprintf("password must be at most %d characters long", MaxLength)}
	case countClasses(password) < 2:
		return Validation{Message: "password must contain at least 2 of letter/digit/symbol"}
	default:
		return Validation{IsValid: true}
	}
}

// Validate password against the policy
// Same as package level Validate, allows to pass Manager as a single dependency
func (m *Manager) Validate(password string) Validation {
	return Validate(password)
}

// Only ASCII letters and digits are counted
func countClasses(password string) int {
	var letter, digit, symbol bool

	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(Symbols, r):
			symbol = true
		}
	}

	count := 0
	for _, has := range []bool{letter, digit, symbol} {
		if has {
			count++
		}
	}

	return count
}
