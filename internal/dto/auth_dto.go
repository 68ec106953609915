package dto

import (
	"agency-hub/internal/model"
	"agency-hub/pkg/utils"
)

// LoginRequest login with email and password
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	AuthType string `json:"authType" validate:"omitempty,oneof=ldap local"` // default local
}

func (r *LoginRequest) Validate() []utils.FieldError {
	return utils.ValidateStruct(r)
}

// RegisterRequest self sign-up; always creates a member
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

func (r *RegisterRequest) Validate() []utils.FieldError {
	return utils.ValidateStruct(r)
}

// RefreshTokenRequest token rotation
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (r *RefreshTokenRequest) Validate() []utils.FieldError {
	return utils.ValidateStruct(r)
}

// LoginResponse returned by login, register and refresh
type LoginResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresIn    int64     `json:"expiresIn"`
	User         *UserInfo `json:"user"`
}

// UserInfo public view of a user
type UserInfo struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	ClientID *string `json:"clientId"`
	Avatar   *string `json:"avatar"`
}

// NewUserInfo strips everything but the public fields
func NewUserInfo(u *model.User) *UserInfo {
	if u == nil {
		return nil
	}
	return &UserInfo{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		ClientID: u.ClientID,
		Avatar:   u.Avatar,
	}
}
