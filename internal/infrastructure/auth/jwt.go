package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/marcos-nsantos/identity-service/internal/domain"
	"github.com/marcos-nsantos/identity-service/internal/domain/entity"
)

const (
	Issuer       = "identity-service"
	BearerPrefix = "Bearer "
)

type TokenService struct {
	secretKey []byte
	tokenTTL  time.Duration
}

type claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func NewTokenService(secretKey string, tokenTTL time.Duration) *TokenService {
	return &TokenService{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

func (s *TokenService) Issue(claim entity.TokenClaim) (string, error) {
	if claim.UserID == "" && claim.Email == "" {
		return "", domain.ErrEmptyClaim
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: claim.UserID,
		Email:  claim.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	})

	tokenStr, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return tokenStr, nil
}

// Verify decodes and validates a token. Malformed tokens, bad signatures,
// expiry and a wrong issuer all collapse into domain.ErrTokenInvalid.
func (s *TokenService) Verify(tokenStr string) (*entity.TokenClaim, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(Issuer))
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	return &entity.TokenClaim{UserID: c.UserID, Email: c.Email}, nil
}

// ExtractFromHeader pulls the bearer token out of an Authorization header.
// The scheme prefix is matched case-sensitively with exactly one space.
func (s *TokenService) ExtractFromHeader(header string) (string, bool) {
	token, found := strings.CutPrefix(header, BearerPrefix)
	if !found {
		return "", false
	}
	return token, true
}
