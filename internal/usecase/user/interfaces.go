package user

import (
	"github.com/marcos-nsantos/identity-service/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/auth_mocks.go -package=mocks

// PasswordHasher is the one-way credential hashing capability.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenService signs and verifies compact bearer tokens carrying an identity
// claim.
type TokenService interface {
	Issue(claim entity.TokenClaim) (string, error)
	Verify(token string) (*entity.TokenClaim, error)
}
