package services

import (
	"context"
	"testing"
	"time"

	"loopfreight/internal/adapters/persistence/models"
	"loopfreight/internal/config"
	"loopfreight/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memRefreshTokenRepo is an in-memory refresh token repository
type memRefreshTokenRepo struct {
	tokens map[string]*models.RefreshToken
	nextID uint
}

func newMemRefreshTokenRepo() *memRefreshTokenRepo {
	return &memRefreshTokenRepo{tokens: make(map[string]*models.RefreshToken), nextID: 1}
}

func (m *memRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = m.nextID
	m.nextID++
	cp := *token
	m.tokens[token.TokenHash] = &cp
	return nil
}

func (m *memRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	t, ok := m.tokens[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	now := time.Now()
	for _, t := range m.tokens {
		if t.ID == id {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (m *memRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	if t, ok := m.tokens[tokenHash]; ok {
		now := time.Now()
		t.RevokedAt = &now
	}
	return nil
}

func (m *memRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID string) error {
	now := time.Now()
	for _, t := range m.tokens {
		if t.UserID == userID {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (m *memRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	for h, t := range m.tokens {
		if t.IsExpired() {
			delete(m.tokens, h)
		}
	}
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:           "test-access-secret",
		RefreshSecret:    "test-refresh-secret",
		AccessTokenMins:  15,
		RefreshTokenDays: 7,
	}
}

func seedLoginUser(t *testing.T, users *memUserRepo) *models.User {
	t.Helper()

	hashed, err := password.Hash("officer-pass")
	require.NoError(t, err)

	city := "Dhaka"
	user := &models.User{
		Name:          "Login Officer",
		Email:         "login@loopfreight.io",
		Password:      hashed,
		Role:          models.RoleTerritoryOfficer,
		TerritoryCity: &city,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestLogin(t *testing.T) {
	t.Parallel()

	users := newMemUserRepo()
	seedLoginUser(t, users)
	svc := NewAuthService(users, newMemRefreshTokenRepo(), testJWTConfig())
	ctx := context.Background()

	user, tokens, err := svc.Login(ctx, "login@loopfreight.io", "officer-pass")
	require.NoError(t, err)
	assert.Equal(t, "login@loopfreight.io", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, _, err = svc.Login(ctx, "login@loopfreight.io", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@loopfreight.io", "officer-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	t.Parallel()

	users := newMemUserRepo()
	seedLoginUser(t, users)
	svc := NewAuthService(users, newMemRefreshTokenRepo(), testJWTConfig())
	ctx := context.Background()

	_, tokens, err := svc.Login(ctx, "login@loopfreight.io", "officer-pass")
	require.NoError(t, err)

	_, rotated, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// The old token was revoked by the rotation
	_, _, err = svc.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// The new one still works
	_, _, err = svc.Refresh(ctx, rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_RejectsGarbageToken(t *testing.T) {
	t.Parallel()

	users := newMemUserRepo()
	seedLoginUser(t, users)
	svc := NewAuthService(users, newMemRefreshTokenRepo(), testJWTConfig())

	_, _, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutAll_RevokesEverySession(t *testing.T) {
	t.Parallel()

	users := newMemUserRepo()
	user := seedLoginUser(t, users)
	svc := NewAuthService(users, newMemRefreshTokenRepo(), testJWTConfig())
	ctx := context.Background()

	_, first, err := svc.Login(ctx, "login@loopfreight.io", "officer-pass")
	require.NoError(t, err)
	_, second, err := svc.Login(ctx, "login@loopfreight.io", "officer-pass")
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, user.ID))

	_, _, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	_, _, err = svc.Refresh(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}
