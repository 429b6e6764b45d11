package auth

import (
	"context"
	"time"

	"github.com/medvoice/medvoice-api/internal/model"
	"github.com/medvoice/medvoice-api/internal/repository"
	"github.com/medvoice/medvoice-api/pkg/auth"
	apperrors "github.com/medvoice/medvoice-api/pkg/errors"
	"github.com/medvoice/medvoice-api/pkg/security"
)

type Service struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	jwtSvc    auth.JWTService
	hasher    security.PasswordHasher
}

func NewService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository,
	jwtSvc auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtSvc:    jwtSvc,
		hasher:    hasher,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Unauthenticated("incorrect email or password", nil)
	}
	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return nil, apperrors.Unauthenticated("incorrect email or password", nil)
	}
	if !user.IsActive {
		return nil, apperrors.Unauthenticated("inactive user", nil)
	}

	token, expiresAt, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// Authenticate resolves a bearer token to its active user, rejecting
// revoked tokens.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthenticated("could not validate credentials", err)
	}

	revoked, err := s.tokenRepo.IsRevoked(ctx, token)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if revoked {
		return nil, apperrors.Unauthenticated("token has been revoked", nil)
	}

	user, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthenticated("user not found", err)
	}
	if !user.IsActive {
		return nil, apperrors.Unauthenticated("inactive user", nil)
	}
	return user, nil
}

// Logout revokes the token for the remainder of its lifetime.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return apperrors.Unauthenticated("could not validate credentials", err)
	}
	return s.tokenRepo.Revoke(ctx, token, time.Until(claims.ExpiresAt))
}
