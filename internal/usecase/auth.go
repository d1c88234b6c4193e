package usecase

import (
	"context"
	"errors"
	"time"

	"rentalhub/internal/domain/user"
	"rentalhub/internal/pkg/jwt"
	"rentalhub/internal/pkg/password"
	"rentalhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrTokenGeneration    = errors.New("token generation failed")
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email user.Email) (*readmodel.AuthorizedUserRM, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.AuthorizedUserRM, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

// SessionStore keeps opaque refresh tokens with a TTL. Backed by redis; the
// lifecycle is init on login, rotate on refresh, clear on logout.
type SessionStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthUseCase interface {
	Login(ctx context.Context, credentials user.Credentials) (*TokenPair, *readmodel.AuthorizedUserRM, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, *readmodel.AuthorizedUserRM, error)
	Logout(ctx context.Context, refreshToken string) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*readmodel.AuthorizedUserRM, error)
}

type authUseCaseImpl struct {
	userRepo   UserRepository
	sessions   SessionStore
	jwtService *jwt.Service
	refreshTTL time.Duration
}

func NewAuthUseCase(userRepo UserRepository, sessions SessionStore, jwtService *jwt.Service, refreshTTL time.Duration) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:   userRepo,
		sessions:   sessions,
		jwtService: jwtService,
		refreshTTL: refreshTTL,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, credentials user.Credentials) (*TokenPair, *readmodel.AuthorizedUserRM, error) {
	userRM, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, nil, err
	}

	pair, err := a.issueTokens(ctx, userRM)
	if err != nil {
		return nil, nil, err
	}

	if err := a.userRepo.UpdateLastLogin(ctx, userRM.ID); err != nil {
		return nil, nil, err
	}

	return pair, userRM, nil
}

func (a *authUseCaseImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, *readmodel.AuthorizedUserRM, error) {
	userID, err := a.sessions.Resolve(ctx, refreshToken)
	if err != nil {
		return nil, nil, ErrSessionNotFound
	}

	userRM, err := a.userRepo.FindByID(ctx, userID)
	if err != nil || userRM == nil {
		return nil, nil, ErrUserNotFound
	}
	if !userRM.IsActive {
		return nil, nil, ErrUserInactive
	}

	// Rotate: the presented token is single-use.
	if err := a.sessions.Delete(ctx, refreshToken); err != nil {
		return nil, nil, ErrSessionNotFound
	}

	pair, err := a.issueTokens(ctx, userRM)
	if err != nil {
		return nil, nil, err
	}

	return pair, userRM, nil
}

func (a *authUseCaseImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return a.sessions.Delete(ctx, refreshToken)
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*readmodel.AuthorizedUserRM, error) {
	userRM, err := a.userRepo.FindByID(ctx, userID)
	if err != nil || userRM == nil {
		return nil, ErrUserNotFound
	}

	if !userRM.IsActive {
		return nil, ErrUserInactive
	}

	return userRM, nil
}

func (a *authUseCaseImpl) validateUser(ctx context.Context, credentials user.Credentials) (*readmodel.AuthorizedUserRM, error) {
	userRM, hashedPassword, err := a.userRepo.FindByEmail(ctx, credentials.Email())
	if err != nil || userRM == nil {
		return nil, ErrUserNotFound
	}

	if !userRM.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return userRM, nil
}

func (a *authUseCaseImpl) issueTokens(ctx context.Context, userRM *readmodel.AuthorizedUserRM) (*TokenPair, error) {
	role, err := user.NewRole(userRM.Role)
	if err != nil {
		return nil, ErrTokenGeneration
	}

	accessToken, err := a.jwtService.GenerateToken(userRM.ID, role)
	if err != nil {
		return nil, ErrTokenGeneration
	}

	refreshToken := uuid.New().String()
	if err := a.sessions.Save(ctx, refreshToken, userRM.ID, a.refreshTTL); err != nil {
		return nil, ErrTokenGeneration
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
