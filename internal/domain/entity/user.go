package entity

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/identity-service/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is the privileged view of an identity record. It carries the password
// hash and must never leave the identity core; everything outside works with
// PublicUser.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the view returned to callers. It deliberately has no
// password hash field.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser validates and normalizes the inputs and allocates a fresh id.
// Email is stored lower-cased, name trimmed.
func NewUser(email, name, passwordHash string) (*User, error) {
	normalizedEmail, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	normalizedName, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:           uuid.NewString(),
		Email:        normalizedEmail,
		Name:         normalizedName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// NormalizeEmail lower-cases the address after checking its shape.
func NormalizeEmail(email string) (string, error) {
	if !emailPattern.MatchString(email) {
		return "", domain.ErrInvalidEmail
	}
	return strings.ToLower(email), nil
}

// NormalizeName trims the name and requires at least 2 significant characters.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if utf8.RuneCountInString(trimmed) < 2 {
		return "", domain.ErrNameTooShort
	}
	return trimmed, nil
}
