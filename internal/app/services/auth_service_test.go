package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eren/coursemap/internal/app/models"
	"github.com/eren/coursemap/internal/app/models/dto"
	"github.com/eren/coursemap/internal/app/repositories"
	"github.com/eren/coursemap/internal/pkg/apperrors"
	"github.com/eren/coursemap/internal/pkg/auth"
)

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repositories.ErrEmailAlreadyExists
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserStore) GetByGoogleSub(_ context.Context, sub string) (*models.User, error) {
	for _, user := range f.users {
		if user.GoogleSub != nil && *user.GoogleSub == sub {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserStore) LinkGoogleSub(_ context.Context, id uuid.UUID, sub string) error {
	user, ok := f.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.GoogleSub = &sub
	return nil
}

type fakeTokenStore struct {
	tokens map[string]*models.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*models.RefreshToken)}
}

func (f *fakeTokenStore) Store(_ context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	f.tokens[token] = &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (f *fakeTokenStore) GetByToken(_ context.Context, token string) (*models.RefreshToken, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return nil, repositories.ErrTokenNotFound
	}
	return stored, nil
}

func (f *fakeTokenStore) Revoke(_ context.Context, id uuid.UUID) error {
	for _, stored := range f.tokens {
		if stored.ID == id {
			stored.Revoked = true
			return nil
		}
	}
	return repositories.ErrTokenNotFound
}

type fakeGoogleVerifier struct {
	identities map[string]*auth.GoogleIdentity
}

func (f *fakeGoogleVerifier) Verify(idToken string) (*auth.GoogleIdentity, error) {
	identity, ok := f.identities[idToken]
	if !ok {
		return nil, errors.New("token signature mismatch")
	}
	return identity, nil
}

func newAuthServiceForTest(verifier auth.GoogleVerifier) (*AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "coursemap.test",
	})
	svc := NewAuthService(users, tokens, jwtService, verifier, zerolog.Nop())
	return svc, users, tokens
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(&fakeGoogleVerifier{})
	ctx := context.Background()

	user, tokens, err := svc.Register(ctx, dto.RegisterRequest{
		Email:    "Alice@Example.com",
		Password: "hunter22",
		Name:     "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, _, err = svc.Register(ctx, dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "other",
		Name:     "Alice",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	loggedIn, _, err := svc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, _, err = svc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_GoogleLoginCreatesAccount(t *testing.T) {
	verifier := &fakeGoogleVerifier{identities: map[string]*auth.GoogleIdentity{
		"good-token": {Sub: "google-sub-1", Email: "Bob@Example.com", Name: "Bob"},
	}}
	svc, users, _ := newAuthServiceForTest(verifier)
	ctx := context.Background()

	user, tokens, err := svc.GoogleLogin(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	require.NotNil(t, user.GoogleSub)
	assert.Equal(t, "google-sub-1", *user.GoogleSub)
	assert.Nil(t, user.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)

	// Second sign-in resolves to the same account.
	again, _, err := svc.GoogleLogin(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Len(t, users.users, 1)

	_, _, err = svc.GoogleLogin(ctx, "forged-token")
	assert.ErrorIs(t, err, apperrors.ErrGoogleTokenInvalid)
}

func TestAuthService_GoogleLoginLinksExistingEmail(t *testing.T) {
	verifier := &fakeGoogleVerifier{identities: map[string]*auth.GoogleIdentity{
		"good-token": {Sub: "google-sub-2", Email: "carol@example.com", Name: "Carol"},
	}}
	svc, users, _ := newAuthServiceForTest(verifier)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, dto.RegisterRequest{
		Email:    "carol@example.com",
		Password: "secretpw",
		Name:     "Carol",
	})
	require.NoError(t, err)

	linked, _, err := svc.GoogleLogin(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, linked.ID)
	require.NotNil(t, linked.GoogleSub)
	assert.Equal(t, "google-sub-2", *linked.GoogleSub)
	assert.Len(t, users.users, 1)

	// Password login still works after linking.
	_, _, err = svc.Login(ctx, dto.LoginRequest{Email: "carol@example.com", Password: "secretpw"})
	assert.NoError(t, err)
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _, tokens := newAuthServiceForTest(&fakeGoogleVerifier{})
	ctx := context.Background()

	_, pair, err := svc.Register(ctx, dto.RegisterRequest{
		Email:    "dave@example.com",
		Password: "secretpw",
		Name:     "Dave",
	})
	require.NoError(t, err)

	renewed, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, renewed.RefreshToken)

	// The exchanged token is revoked and cannot be replayed.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, err = svc.Refresh(ctx, "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	// An expired token is rejected even when unrevoked.
	tokens.tokens[renewed.RefreshToken].ExpiresAt = time.Now().Add(-time.Minute)
	_, err = svc.Refresh(ctx, renewed.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}
