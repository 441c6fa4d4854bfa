package dto

import (
	"time"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// CreateUserRequest defines data for registering a new user.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest defines mutable user fields.
type UpdateUserRequest struct {
	Name *string `json:"name,omitempty"`
}

// UserResponse defines data returned for a user.
type UserResponse struct {
	UserID     string            `json:"userID"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	GlobalRole domain.GlobalRole `json:"globalRole"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		Name:       u.Name,
		Email:      u.Email,
		GlobalRole: u.GlobalRole,
		CreatedAt:  u.CreatedAt,
	}
}

// ListUsersResponse wraps a list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to DTO.
func ToListUsersResponse(us []domain.User) ListUsersResponse {
	list := make([]UserResponse, len(us))
	for i, u := range us {
		list[i] = ToUserResponse(&u)
	}
	return ListUsersResponse{Users: list}
}

// LoginRequest defines credentials for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
