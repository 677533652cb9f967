package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tasktrack/tasktrack/internal/domain"
	"github.com/tasktrack/tasktrack/internal/store"
	"github.com/tasktrack/tasktrack/pkg/cryptox"
	"github.com/tasktrack/tasktrack/pkg/jwtx"
	"github.com/tasktrack/tasktrack/pkg/slogx"
)

// AuthService implements account registration and the password grant.
type AuthService struct {
	Store     store.Store
	Passwords *cryptox.Context
	Signer    jwtx.Signer
	TokenTTL  time.Duration
	Issuer    string
}

// RegisterParams is the payload accepted by Register. Role defaults to
// "user" when empty.
type RegisterParams struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	Role        string
	PhoneNumber string
}

func (p RegisterParams) validate() error {
	switch {
	case strings.TrimSpace(p.Username) == "":
		return fmt.Errorf("%w: username is required", ErrValidation)
	case strings.TrimSpace(p.Email) == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case len(p.Password) < 6:
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	return nil
}

// Register creates a new active account with a freshly hashed password.
// Username and email collisions surface as validation errors.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	if err := p.validate(); err != nil {
		return domain.User{}, err
	}

	hash, err := s.Passwords.Hash(p.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	role := p.Role
	if role == "" {
		role = "user"
	}

	user, err := s.Store.Users().CreateUser(ctx, domain.User{
		Username:     p.Username,
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		PhoneNumber:  p.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, fmt.Errorf("%w: username or email already taken", ErrValidation)
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and returns a signed access token.
// Unknown usernames and wrong passwords produce the same error so the
// response never reveals which half was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Token, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Token{}, ErrInvalidCredentials
		}
		return domain.Token{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.Passwords.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) || errors.Is(err, cryptox.ErrUnknownScheme) {
			return domain.Token{}, ErrInvalidCredentials
		}
		return domain.Token{}, fmt.Errorf("verify password: %w", err)
	}

	// Transparently upgrade hashes stored under a legacy scheme. A
	// failure here must not block the login.
	if s.Passwords.NeedsRehash(user.PasswordHash) {
		if hash, err := s.Passwords.Hash(password); err == nil {
			if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
				slogx.FromContext(ctx).Warn("failed to upgrade password hash",
					slog.Int64("user_id", user.ID),
					slog.Any("error", err))
			}
		}
	}

	claims := jwtx.NewAccessClaims(user.Username, user.ID, user.Role, s.TokenTTL, s.Issuer, time.Now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.Token{}, fmt.Errorf("sign token: %w", err)
	}

	return domain.Token{AccessToken: token, TokenType: "bearer"}, nil
}
