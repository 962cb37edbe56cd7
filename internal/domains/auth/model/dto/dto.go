package dto

import (
	userModel "rental/internal/domains/user/model"
	"rental/shared/constant"
	"rental/shared/record"
	"rental/shared/timezone"
)

type RegisterRequest struct {
	Username string `json:"username"  validate:"required,min=3"`
	Password string `json:"password"  validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	Phone    string `json:"phone"     validate:"omitempty"`
	Address  string `json:"address"   validate:"omitempty"`
}

func (r *RegisterRequest) ToModel(hashedPassword string) userModel.User {
	return userModel.User{
		ID:               record.NewID(),
		Username:         r.Username,
		Password:         hashedPassword,
		FullName:         r.FullName,
		Email:            r.Email,
		Phone:            r.Phone,
		Address:          r.Address,
		Role:             constant.RoleUser,
		RegistrationDate: timezone.Now(),
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
