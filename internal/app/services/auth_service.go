package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eren/coursemap/internal/app/models"
	"github.com/eren/coursemap/internal/app/models/dto"
	"github.com/eren/coursemap/internal/app/repositories"
	"github.com/eren/coursemap/internal/pkg/apperrors"
	"github.com/eren/coursemap/internal/pkg/auth"
)

// userStore is the slice of the user repository the auth flow needs.
type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleSub(ctx context.Context, sub string) (*models.User, error)
	LinkGoogleSub(ctx context.Context, id uuid.UUID, sub string) error
}

// tokenStore persists refresh tokens.
type tokenStore interface {
	Store(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uuid.UUID) error
}

// AuthService handles registration, login, Google sign-in and token refresh.
// Downstream code only ever sees the authenticated user id from the JWT; the
// OAuth mechanics stay contained here.
type AuthService struct {
	userRepo       userStore
	tokenRepo      tokenStore
	jwtService     *auth.JWTService
	googleVerifier auth.GoogleVerifier
	logger         zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo userStore, tokenRepo tokenStore, jwtService *auth.JWTService, googleVerifier auth.GoogleVerifier, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		tokenRepo:      tokenRepo,
		jwtService:     jwtService,
		googleVerifier: googleVerifier,
		logger:         logger,
	}
}

// Register creates an email/password account and issues a token pair.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, *dto.TokenResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: &hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailAlreadyExists) {
			return nil, nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Login authenticates an email/password account.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, *dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.PasswordHash == nil || !auth.CheckPassword(*user.PasswordHash, req.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// GoogleLogin verifies a Google ID token and signs the holder in, creating an
// account on first sight or linking the Google subject to an existing account
// with the same email.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*models.User, *dto.TokenResponse, error) {
	identity, err := s.googleVerifier.Verify(idToken)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Google ID token verification failed")
		return nil, nil, apperrors.ErrGoogleTokenInvalid
	}

	user, err := s.userRepo.GetByGoogleSub(ctx, identity.Sub)
	switch {
	case err == nil:
		// Known Google account.
	case errors.Is(err, repositories.ErrUserNotFound):
		user, err = s.findOrCreateGoogleUser(ctx, identity)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

func (s *AuthService) findOrCreateGoogleUser(ctx context.Context, identity *auth.GoogleIdentity) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if err := s.userRepo.LinkGoogleSub(ctx, existing.ID, identity.Sub); err != nil {
			return nil, fmt.Errorf("failed to link google account: %w", err)
		}
		existing.GoogleSub = &identity.Sub
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	sub := identity.Sub
	user := &models.User{
		Email:     email,
		Name:      identity.Name,
		GoogleSub: &sub,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("userId", user.ID.String()).Msg("Created account from Google sign-in")
	return user, nil
}

// Refresh exchanges a valid refresh token for a new token pair, revoking the
// old one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.tokenRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenRepo.Store(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}
