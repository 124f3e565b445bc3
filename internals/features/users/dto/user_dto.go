// file: internals/features/users/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/users/model"
)

/* =============== REQUESTS =============== */

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	Role     string `json:"role"      validate:"omitempty,oneof=admin staff"`
}

func (r CreateUserRequest) ToModel() *m.UserModel {
	return &m.UserModel{
		UserName: r.UserName,
		Email:    r.Email,
		Password: r.Password, // se hashea en el controller
		Role:     r.Role,
	}
}

type UpdateUserRequest struct {
	UserName *string `json:"user_name" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	IsActive *bool   `json:"is_active"`
}

/* =============== RESPONSES =============== */

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModel(x m.UserModel) UserResponse {
	return UserResponse{
		ID:        x.ID,
		UserName:  x.UserName,
		Email:     x.Email,
		Role:      x.Role,
		IsActive:  x.IsActive,
		CreatedAt: x.CreatedAt,
	}
}

func FromModels(list []m.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
