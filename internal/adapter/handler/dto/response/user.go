package response

import (
	"time"

	"github.com/marcos-nsantos/identity-service/internal/domain/entity"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

type StatsResponse struct {
	TotalUsers   int `json:"total_users"`
	CreatedToday int `json:"created_today"`
}

func UserFromEntity(u *entity.PublicUser) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

func UsersFromEntities(users []entity.PublicUser) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, UserFromEntity(&users[i]))
	}
	return out
}
