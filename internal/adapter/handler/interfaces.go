package handler

import (
	"context"

	"github.com/marcos-nsantos/identity-service/internal/adapter/repository"
	"github.com/marcos-nsantos/identity-service/internal/domain/entity"
	"github.com/marcos-nsantos/identity-service/internal/usecase/user"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type UserService interface {
	Register(ctx context.Context, input user.RegisterInput) (*user.AuthResult, error)
	Authenticate(ctx context.Context, credentials user.Credentials) (*user.AuthResult, error)
	GetUserByID(ctx context.Context, id string) (*entity.PublicUser, error)
	GetAllUsers(ctx context.Context) ([]entity.PublicUser, error)
	UpdateUser(ctx context.Context, id string, input user.UpdateInput) (*entity.PublicUser, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	Stats(ctx context.Context) (*repository.Stats, error)
}
