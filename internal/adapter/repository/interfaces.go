package repository

import (
	"context"

	"github.com/marcos-nsantos/identity-service/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

// UserRepository owns the authoritative set of user records. All read
// operations return the public view; FindByEmailWithSecret is the one
// privileged lookup and exists only for authentication and password-change
// flows.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.PublicUser, error)
	FindAll(ctx context.Context) ([]entity.PublicUser, error)
	FindByEmail(ctx context.Context, email string) (*entity.PublicUser, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, input CreateUserInput) (*entity.PublicUser, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*entity.PublicUser, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindByEmailWithSecret(ctx context.Context, email string) (*entity.User, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) (bool, error)
	Stats(ctx context.Context) (*Stats, error)
}

type CreateUserInput struct {
	Email        string
	Name         string
	PasswordHash string
}

// UpdateUserInput carries a partial update; empty fields are left untouched.
type UpdateUserInput struct {
	Email string
	Name  string
}

type Stats struct {
	TotalUsers   int `json:"totalUsers"`
	CreatedToday int `json:"createdToday"`
}
