package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcos-nsantos/identity-service/internal/adapter/repository"
	"github.com/marcos-nsantos/identity-service/internal/domain"
	"github.com/marcos-nsantos/identity-service/internal/domain/entity"
)

const minPasswordLength = 6

// Service orchestrates the repository, hasher and token service to implement
// registration, authentication and profile management. Each call is
// independent and stateless; the service keeps nothing between calls.
type Service struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenService
}

func NewService(users repository.UserRepository, hasher PasswordHasher, tokens TokenService) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type Credentials struct {
	Email    string
	Password string
}

type UpdateInput struct {
	Email string
	Name  string
}

// AuthResult pairs the public view of a user with a freshly issued token.
type AuthResult struct {
	User  *entity.PublicUser
	Token string
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, repository.CreateUserInput{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(entity.TokenClaim{UserID: created.ID, Email: created.Email})
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &AuthResult{User: created, Token: token}, nil
}

// Authenticate verifies credentials against freshly read state. An unknown
// email and a wrong password produce the same error so callers cannot probe
// for account existence.
func (s *Service) Authenticate(ctx context.Context, credentials Credentials) (*AuthResult, error) {
	if credentials.Email == "" || credentials.Password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.users.FindByEmailWithSecret(ctx, credentials.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, credentials.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(entity.TokenClaim{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}

func (s *Service) GetUserByID(ctx context.Context, id string) (*entity.PublicUser, error) {
	if id == "" {
		return nil, domain.ErrMissingUserID
	}
	return s.users.FindByID(ctx, id)
}

func (s *Service) GetAllUsers(ctx context.Context) ([]entity.PublicUser, error) {
	return s.users.FindAll(ctx)
}

func (s *Service) UpdateUser(ctx context.Context, id string, input UpdateInput) (*entity.PublicUser, error) {
	if id == "" {
		return nil, domain.ErrMissingUserID
	}
	if input.Email != "" {
		if _, err := entity.NormalizeEmail(input.Email); err != nil {
			return nil, err
		}
	}
	if input.Name != "" {
		if _, err := entity.NormalizeName(input.Name); err != nil {
			return nil, err
		}
	}
	return s.users.Update(ctx, id, repository.UpdateUserInput{
		Email: input.Email,
		Name:  input.Name,
	})
}

func (s *Service) DeleteUser(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, domain.ErrMissingUserID
	}
	return s.users.Delete(ctx, id)
}

// ChangePassword re-fetches the privileged record rather than trusting any
// caller-supplied hash, so the compare always runs against current state.
// An unknown id is reported as not-found while a wrong current password is an
// auth failure; the caller already proved the id through a valid token.
func (s *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	public, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	user, err := s.users.FindByEmailWithSecret(ctx, public.Email)
	if err != nil {
		return err
	}

	if !s.hasher.Compare(user.PasswordHash, currentPassword) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	updated, err := s.users.UpdatePasswordHash(ctx, userID, hash)
	if err != nil {
		return fmt.Errorf("updating password hash: %w", err)
	}
	if !updated {
		return domain.ErrUserNotFound
	}
	return nil
}

// VerifyToken type-narrows the decoded claim. It returns nil for any
// malformed, expired or incomplete token; verification sits on the hot
// authentication path where absent and invalid mean the same thing.
func (s *Service) VerifyToken(token string) *entity.TokenClaim {
	claim, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}
	if claim.UserID == "" || claim.Email == "" {
		return nil
	}
	return claim
}

func (s *Service) Stats(ctx context.Context) (*repository.Stats, error) {
	return s.users.Stats(ctx)
}

func validateRegisterInput(input RegisterInput) error {
	if _, err := entity.NormalizeEmail(input.Email); err != nil {
		return err
	}
	if _, err := entity.NormalizeName(input.Name); err != nil {
		return err
	}
	if len(input.Password) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}
	return nil
}
