package model

import (
	"time"

	"github.com/google/uuid"
)

// User covers both clients and administrators. Administrators double
// as artists; the artist profile fields are only published when
// IsPublicArtist is set.
type User struct {
	ID                   uuid.UUID `json:"id"`
	Username             string    `json:"username"`
	PasswordHash         string    `json:"-"`
	IsAdmin              bool      `json:"is_admin"`
	IsBlocked            bool      `json:"is_blocked"`
	IsBanned             bool      `json:"is_banned"`
	NotificationsEnabled bool      `json:"notifications_enabled"`

	// Artist profile (admins only)
	AvatarURL            string `json:"avatar_url,omitempty"`
	Bio                  string `json:"bio,omitempty"`
	Specialties          string `json:"specialties,omitempty"`
	SocialLinks          string `json:"social_links,omitempty"`
	PortfolioDescription string `json:"portfolio_description,omitempty"`
	IsPublicArtist       bool   `json:"is_public_artist"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicArtist is the outward-facing projection of a visible artist
type PublicArtist struct {
	ID                   uuid.UUID `json:"id"`
	Username             string    `json:"username"`
	AvatarURL            string    `json:"avatar_url,omitempty"`
	Bio                  string    `json:"bio,omitempty"`
	Specialties          string    `json:"specialties,omitempty"`
	SocialLinks          string    `json:"social_links,omitempty"`
	PortfolioDescription string    `json:"portfolio_description,omitempty"`
}

// PublicProfile strips credentials and flags for API responses
func (u *User) PublicArtistProfile() PublicArtist {
	return PublicArtist{
		ID:                   u.ID,
		Username:             u.Username,
		AvatarURL:            u.AvatarURL,
		Bio:                  u.Bio,
		Specialties:          u.Specialties,
		SocialLinks:          u.SocialLinks,
		PortfolioDescription: u.PortfolioDescription,
	}
}

// CanLogin reports whether the account is allowed to authenticate
func (u *User) CanLogin() bool {
	return !u.IsBlocked && !u.IsBanned
}
