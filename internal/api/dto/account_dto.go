package dto

import (
	"time"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// SignupRequest payload for registration.
type SignupRequest struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	Email           string `json:"email" form:"email"`
	FirstName       string `json:"first_name" form:"first_name"`
	LastName        string `json:"last_name" form:"last_name"`
	Location        string `json:"location" form:"location"`
}

// ProfileUpdateRequest payload for profile edits. Password fields are
// optional; RemoveProfileImage requests deletion of the stored image.
type ProfileUpdateRequest struct {
	FirstName          string `json:"first_name" form:"first_name"`
	LastName           string `json:"last_name" form:"last_name"`
	Email              string `json:"email" form:"email"`
	Location           string `json:"location" form:"location"`
	CurrentPassword    string `json:"current_password" form:"current_password"`
	NewPassword        string `json:"new_password" form:"new_password"`
	ConfirmPassword    string `json:"confirm_password" form:"confirm_password"`
	RemoveProfileImage string `json:"remove_profile_image" form:"remove_profile_image"`
}

// ChangePasswordRequest payload for the JSON password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserResponse is the public account representation.
type UserResponse struct {
	ID           int64             `json:"id"`
	Username     string            `json:"username"`
	Email        string            `json:"email"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	Location     string            `json:"location"`
	ProfileImage *string           `json:"profile_image"`
	Role         domain.Role       `json:"role"`
	Status       domain.UserStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Location:     user.Location,
		ProfileImage: user.ProfileImage,
		Role:         user.Role,
		Status:       user.Status,
		CreatedAt:    user.CreatedAt,
	}
}
