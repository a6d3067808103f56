package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"commission-backend/internal/domains/user/model"
	"commission-backend/internal/domains/user/repository"
	"commission-backend/internal/shared"
	"commission-backend/internal/shared/utils"
	"commission-backend/pkg/jwt"
)

const bcryptCost = 12

// =====================================================
// USER SERVICE INTERFACE
// =====================================================
type UserService interface {
	// Auth
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*model.TokenPair, error)

	// Own account
	GetProfile(ctx context.Context, actor shared.Actor) (*model.User, error)
	ChangePassword(ctx context.Context, actor shared.Actor, req *model.ChangePasswordRequest) error
	UpdatePreferences(ctx context.Context, actor shared.Actor, req *model.UpdatePreferencesRequest) (*model.User, error)
	DeleteAccount(ctx context.Context, actor shared.Actor) error

	// Admin client management
	ListClients(ctx context.Context, page, limit int) ([]model.User, int, error)
	SetAdmin(ctx context.Context, userID uuid.UUID, value bool) (*model.User, error)
	SetBlocked(ctx context.Context, userID uuid.UUID, value bool) (*model.User, error)
	SetBanned(ctx context.Context, userID uuid.UUID, value bool) (*model.User, error)
	ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error

	// Artist profiles
	UpdateArtistProfile(ctx context.Context, actor shared.Actor, req *model.UpdateArtistProfileRequest) (*model.User, error)
	ListPublicArtists(ctx context.Context) ([]model.PublicArtist, error)
}

// =====================================================
// IMPLEMENTATION
// =====================================================
type userService struct {
	repo       repository.UserRepository
	jwtManager *jwt.Manager
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepository, jwtManager *jwt.Manager) UserService {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// =====================================================
// AUTH
// =====================================================

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	// 1. Enforce the password policy before touching the database
	if !utils.IsStrongPassword(req.Password) {
		return nil, model.ErrWeakPassword
	}

	// 2. Usernames are unique case-insensitively
	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrUsernameTaken
	}

	// 3. Hash and persist
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, model.NewUserError(model.ErrCodeInvalidRequest, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:                   uuid.New(),
		Username:             req.Username,
		PasswordHash:         string(hash),
		NotificationsEnabled: true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", user.ID.String()).
		Str("username", user.Username).
		Msg("[UserService] User registered")

	return user, nil
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if !user.CanLogin() {
		return nil, model.ErrAccountBlocked
	}

	return s.issueTokens(user)
}

func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	userID := utils.ParseStringToUUID(claims.UserID)
	if userID == uuid.Nil {
		return nil, model.ErrInvalidCredentials
	}

	// Re-read the account so revoked flags take effect on refresh
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, model.ErrAccountBlocked
	}

	return s.issueTokens(user)
}

func (s *userService) issueTokens(user *model.User) (*model.TokenPair, error) {
	access, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}
	return &model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}

// =====================================================
// OWN ACCOUNT
// =====================================================

func (s *userService) GetProfile(ctx context.Context, actor shared.Actor) (*model.User, error) {
	return s.repo.GetByID(ctx, actor.UserID)
}

func (s *userService) ChangePassword(ctx context.Context, actor shared.Actor, req *model.ChangePasswordRequest) error {
	user, err := s.repo.GetByID(ctx, actor.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return model.ErrWrongPassword
	}

	if !utils.IsStrongPassword(req.NewPassword) {
		return model.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return model.NewUserError(model.ErrCodeInvalidRequest, "failed to hash password", err)
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	log.Info().
		Str("user_id", user.ID.String()).
		Msg("[UserService] Password changed")

	return nil
}

func (s *userService) UpdatePreferences(ctx context.Context, actor shared.Actor, req *model.UpdatePreferencesRequest) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if req.NotificationsEnabled != nil {
		user.NotificationsEnabled = *req.NotificationsEnabled
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) DeleteAccount(ctx context.Context, actor shared.Actor) error {
	if err := s.repo.Delete(ctx, actor.UserID); err != nil {
		return err
	}

	log.Info().
		Str("user_id", actor.UserID.String()).
		Msg("[UserService] Account deleted")

	return nil
}

// =====================================================
// ADMIN CLIENT MANAGEMENT
// =====================================================

func (s *userService) ListClients(ctx context.Context, page, limit int) ([]model.User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.ListClients(ctx, page, limit)
}

func (s *userService) SetAdmin(ctx context.Context, userID uuid.UUID, value bool) (*model.User, error) {
	return s.setFlag(ctx, userID, func(u *model.User) { u.IsAdmin = value })
}

func (s *userService) SetBlocked(ctx context.Context, userID uuid.UUID, value bool) (*model.User, error) {
	return s.setFlag(ctx, userID, func(u *model.User) { u.IsBlocked = value })
}

func (s *userService) SetBanned(ctx context.Context, userID uuid.UUID, value bool) (*model.User, error) {
	return s.setFlag(ctx, userID, func(u *model.User) { u.IsBanned = value })
}

func (s *userService) setFlag(ctx context.Context, userID uuid.UUID, apply func(*model.User)) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	apply(user)
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	if !utils.IsStrongPassword(newPassword) {
		return model.ErrWeakPassword
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return model.NewUserError(model.ErrCodeInvalidRequest, "failed to hash password", err)
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	log.Info().
		Str("user_id", userID.String()).
		Msg("[UserService] Password reset by admin")

	return nil
}

// =====================================================
// ARTIST PROFILES
// =====================================================

func (s *userService) UpdateArtistProfile(ctx context.Context, actor shared.Actor, req *model.UpdateArtistProfileRequest) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Specialties != nil {
		user.Specialties = *req.Specialties
	}
	if req.SocialLinks != nil {
		user.SocialLinks = *req.SocialLinks
	}
	if req.PortfolioDescription != nil {
		user.PortfolioDescription = *req.PortfolioDescription
	}
	if req.IsPublicArtist != nil {
		user.IsPublicArtist = *req.IsPublicArtist
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) ListPublicArtists(ctx context.Context) ([]model.PublicArtist, error) {
	users, err := s.repo.ListPublicArtists(ctx)
	if err != nil {
		return nil, err
	}

	artists := make([]model.PublicArtist, 0, len(users))
	for i := range users {
		artists = append(artists, users[i].PublicArtistProfile())
	}
	return artists, nil
}
