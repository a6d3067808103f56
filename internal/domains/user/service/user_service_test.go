package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"commission-backend/internal/domains/user/model"
	"commission-backend/internal/shared"
	"commission-backend/pkg/jwt"
)

// =====================================================
// MOCK REPOSITORY
// =====================================================

type mockUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newMockUserRepo(seed ...*model.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range seed {
		copied := *u
		m.users[u.ID] = &copied
	}
	return m
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.GetByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return model.ErrUserNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) ListClients(ctx context.Context, page, limit int) ([]model.User, int, error) {
	var out []model.User
	for _, u := range m.users {
		if !u.IsAdmin {
			out = append(out, *u)
		}
	}
	return out, len(out), nil
}

func (m *mockUserRepo) ListPublicArtists(ctx context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		if u.IsAdmin && u.IsPublicArtist {
			out = append(out, *u)
		}
	}
	return out, nil
}

// =====================================================
// HELPERS
// =====================================================

func testJWTManager() *jwt.Manager {
	return jwt.NewManager("test-secret", 15, 24)
}

// seedUser builds a stored account; the hash uses MinCost to keep tests fast
func seedUser(t *testing.T, username, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:                   uuid.New(),
		Username:             username,
		PasswordHash:         string(hash),
		NotificationsEnabled: true,
	}
}

// =====================================================
// REGISTER
// =====================================================

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), testJWTManager())

	for _, password := range []string{"curta1A", "semdigitos", "SEMMINUSCULA1", "semmaiuscula1"} {
		_, err := svc.Register(context.Background(), &model.RegisterRequest{
			Username: "maria",
			Password: password,
		})
		assert.ErrorIs(t, err, model.ErrWeakPassword, "password %q", password)
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	existing := seedUser(t, "Maria", "SenhaForte1")
	svc := NewUserService(newMockUserRepo(existing), testJWTManager())

	// Uniqueness is case-insensitive
	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "maria",
		Password: "SenhaForte1",
	})
	assert.ErrorIs(t, err, model.ErrUsernameTaken)
}

func TestRegisterDefaults(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, testJWTManager())

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "joao",
		Password: "SenhaForte1",
	})
	require.NoError(t, err)

	assert.False(t, user.IsAdmin)
	assert.True(t, user.NotificationsEnabled)
	assert.NotEqual(t, "SenhaForte1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("SenhaForte1")))
	assert.Len(t, repo.users, 1)
}

// =====================================================
// LOGIN
// =====================================================

func TestLoginIssuesTokenPair(t *testing.T) {
	user := seedUser(t, "maria", "SenhaForte1")
	svc := NewUserService(newMockUserRepo(user), testJWTManager())

	pair, err := svc.Login(context.Background(), &model.LoginRequest{
		Username: "maria",
		Password: "SenhaForte1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	require.NotNil(t, pair.User)
	assert.Equal(t, user.ID, pair.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	user := seedUser(t, "maria", "SenhaForte1")
	svc := NewUserService(newMockUserRepo(user), testJWTManager())

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Username: "maria",
		Password: "SenhaErrada1",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginUnknownUserLooksLikeBadCredentials(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), testJWTManager())

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Username: "fantasma",
		Password: "SenhaForte1",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginBlockedAccount(t *testing.T) {
	blocked := seedUser(t, "maria", "SenhaForte1")
	blocked.IsBlocked = true
	banned := seedUser(t, "jose", "SenhaForte1")
	banned.IsBanned = true
	svc := NewUserService(newMockUserRepo(blocked, banned), testJWTManager())

	_, err := svc.Login(context.Background(), &model.LoginRequest{Username: "maria", Password: "SenhaForte1"})
	assert.ErrorIs(t, err, model.ErrAccountBlocked)

	_, err = svc.Login(context.Background(), &model.LoginRequest{Username: "jose", Password: "SenhaForte1"})
	assert.ErrorIs(t, err, model.ErrAccountBlocked)
}

// =====================================================
// REFRESH
// =====================================================

func TestRefreshTokenAppliesRevokedFlags(t *testing.T) {
	user := seedUser(t, "maria", "SenhaForte1")
	repo := newMockUserRepo(user)
	svc := NewUserService(repo, testJWTManager())

	pair, err := svc.Login(context.Background(), &model.LoginRequest{
		Username: "maria",
		Password: "SenhaForte1",
	})
	require.NoError(t, err)

	// Refresh works while the account is in good standing
	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Blocking the account invalidates refresh even with a valid token
	repo.users[user.ID].IsBlocked = true
	_, err = svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, model.ErrAccountBlocked)
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), testJWTManager())

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	user := seedUser(t, "maria", "SenhaForte1")
	svc := NewUserService(newMockUserRepo(user), testJWTManager())

	pair, err := svc.Login(context.Background(), &model.LoginRequest{
		Username: "maria",
		Password: "SenhaForte1",
	})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

// =====================================================
// ACCOUNT
// =====================================================

func TestChangePasswordChecksCurrent(t *testing.T) {
	user := seedUser(t, "maria", "SenhaForte1")
	repo := newMockUserRepo(user)
	svc := NewUserService(repo, testJWTManager())
	actor := shared.Actor{UserID: user.ID, Username: user.Username}

	err := svc.ChangePassword(context.Background(), actor, &model.ChangePasswordRequest{
		CurrentPassword: "SenhaErrada1",
		NewPassword:     "NovaSenha99",
	})
	assert.ErrorIs(t, err, model.ErrWrongPassword)

	err = svc.ChangePassword(context.Background(), actor, &model.ChangePasswordRequest{
		CurrentPassword: "SenhaForte1",
		NewPassword:     "fraca",
	})
	assert.ErrorIs(t, err, model.ErrWeakPassword)

	err = svc.ChangePassword(context.Background(), actor, &model.ChangePasswordRequest{
		CurrentPassword: "SenhaForte1",
		NewPassword:     "NovaSenha99",
	})
	require.NoError(t, err)

	stored := repo.users[user.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("NovaSenha99")))
}

func TestUpdatePreferences(t *testing.T) {
	user := seedUser(t, "maria", "SenhaForte1")
	repo := newMockUserRepo(user)
	svc := NewUserService(repo, testJWTManager())
	disabled := false

	updated, err := svc.UpdatePreferences(context.Background(),
		shared.Actor{UserID: user.ID},
		&model.UpdatePreferencesRequest{NotificationsEnabled: &disabled},
	)
	require.NoError(t, err)
	assert.False(t, updated.NotificationsEnabled)
	assert.False(t, repo.users[user.ID].NotificationsEnabled)
}

// =====================================================
// ADMIN FLAGS
// =====================================================

func TestSetFlags(t *testing.T) {
	user := seedUser(t, "maria", "SenhaForte1")
	repo := newMockUserRepo(user)
	svc := NewUserService(repo, testJWTManager())

	updated, err := svc.SetBlocked(context.Background(), user.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsBlocked)

	updated, err = svc.SetAdmin(context.Background(), user.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)

	updated, err = svc.SetBanned(context.Background(), user.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsBanned)

	stored := repo.users[user.ID]
	assert.True(t, stored.IsBlocked)
	assert.True(t, stored.IsAdmin)
	assert.True(t, stored.IsBanned)
}

func TestSetFlagUnknownUser(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), testJWTManager())

	_, err := svc.SetBlocked(context.Background(), uuid.New(), true)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

// =====================================================
// ARTIST PROFILES
// =====================================================

func TestListPublicArtistsProjectsSafeFields(t *testing.T) {
	artist := seedUser(t, "artista", "SenhaForte1")
	artist.IsAdmin = true
	artist.IsPublicArtist = true
	artist.Bio = "Ilustradora freelancer"
	hidden := seedUser(t, "recluso", "SenhaForte1")
	hidden.IsAdmin = true
	client := seedUser(t, "cliente", "SenhaForte1")

	svc := NewUserService(newMockUserRepo(artist, hidden, client), testJWTManager())

	artists, err := svc.ListPublicArtists(context.Background())
	require.NoError(t, err)

	require.Len(t, artists, 1)
	assert.Equal(t, "artista", artists[0].Username)
	assert.Equal(t, "Ilustradora freelancer", artists[0].Bio)
}
