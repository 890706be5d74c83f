package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/pkg/jwthelper"
	"github.com/snapdraw/raffle-api/internal/repository"
	"github.com/snapdraw/raffle-api/internal/revocation"
)

var (
	// ErrWrongCredentials covers both unknown username and wrong
	// password so the response does not leak which one failed.
	ErrWrongCredentials = errors.New("invalid credentials")
	ErrInvalidToken     = jwthelper.ErrInvalidToken
	ErrTokenRevoked     = errors.New("token has been revoked")
)

type AuthAdminRepository interface {
	FindActiveByUsername(ctx context.Context, username string) (domain.Admin, error)
}

type AuthService struct {
	repo       AuthAdminRepository
	revoker    revocation.Revoker
	signingKey []byte
}

func NewAuthService(repo AuthAdminRepository, revoker revocation.Revoker, signingKey []byte) *AuthService {
	return &AuthService{
		repo:       repo,
		revoker:    revoker,
		signingKey: signingKey,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.Admin, error) {
	admin, err := s.repo.FindActiveByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return "", domain.Admin{}, ErrWrongCredentials
		}

		return "", domain.Admin{}, fmt.Errorf("s.repo.FindActiveByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", domain.Admin{}, ErrWrongCredentials
	}

	token, err := jwthelper.GenerateToken(s.signingKey, admin.ID, admin.Username)
	if err != nil {
		return "", domain.Admin{}, fmt.Errorf("jwthelper.GenerateToken -> %w", err)
	}

	return token, admin, nil
}

// Logout revokes the presented token for its remaining lifetime. The
// token must still be valid; revoking garbage is refused.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.Validate(ctx, token)
	if err != nil {
		return err
	}

	if err = s.revoker.Revoke(ctx, token, claims.RemainingLifetime(time.Now())); err != nil {
		return fmt.Errorf("s.revoker.Revoke -> %w", err)
	}

	return nil
}

// Validate checks the revocation set first and fails closed, then the
// signature and expiry.
func (s *AuthService) Validate(ctx context.Context, token string) (*jwthelper.Claims, error) {
	revoked, err := s.revoker.IsRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("s.revoker.IsRevoked -> %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	claims, err := jwthelper.ParseToken(s.signingKey, token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
