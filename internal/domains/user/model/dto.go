package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// AUTH DTOs
// =====================================================

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
	)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 128)),
	)
}

// TokenPair is the login / refresh response payload
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user,omitempty"`
}

// =====================================================
// ACCOUNT DTOs
// =====================================================

type UpdatePreferencesRequest struct {
	NotificationsEnabled *bool `json:"notifications_enabled"`
}

func (r UpdatePreferencesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NotificationsEnabled, validation.NotNil),
	)
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 128)),
	)
}

type SetFlagRequest struct {
	Value *bool `json:"value"`
}

func (r SetFlagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Value, validation.NotNil),
	)
}

// =====================================================
// ARTIST PROFILE DTOs
// =====================================================

type UpdateArtistProfileRequest struct {
	AvatarURL            *string `json:"avatar_url"`
	Bio                  *string `json:"bio"`
	Specialties          *string `json:"specialties"`
	SocialLinks          *string `json:"social_links"`
	PortfolioDescription *string `json:"portfolio_description"`
	IsPublicArtist       *bool   `json:"is_public_artist"`
}

func (r UpdateArtistProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AvatarURL, validation.Length(0, 500)),
		validation.Field(&r.Bio, validation.Length(0, 2000)),
		validation.Field(&r.Specialties, validation.Length(0, 500)),
		validation.Field(&r.SocialLinks, validation.Length(0, 2000)),
		validation.Field(&r.PortfolioDescription, validation.Length(0, 5000)),
	)
}
