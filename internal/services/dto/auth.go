package dto

import (
	"marketplace_backend/internal/models"
)

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,is-signup-role"`
	Name     string `json:"name" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UpdateProfileRequest is a partial update; nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name        *string             `json:"name" validate:"omitempty,min=1,max=100"`
	Avatar      *string             `json:"avatar" validate:"omitempty,max=500"`
	Bio         *string             `json:"bio" validate:"omitempty,max=1000"`
	Website     *string             `json:"website" validate:"omitempty,url"`
	Location    *string             `json:"location" validate:"omitempty,max=200"`
	Phone       *string             `json:"phone" validate:"omitempty,max=50"`
	SocialMedia *models.SocialMedia `json:"socialMedia"`
}

// AuthUser is the user summary returned with a token.
type AuthUser struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	Role             models.UserRole `json:"role"`
	Name             string          `json:"name"`
	ProfileCompleted bool            `json:"profileCompleted"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

func NewAuthUser(u *models.User) AuthUser {
	return AuthUser{
		ID:               u.ID,
		Email:            u.Email,
		Role:             u.Role,
		Name:             u.Name,
		ProfileCompleted: u.ProfileCompleted,
	}
}
