// Package identity provides user registration, authentication, and
// token issuing.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/dadlab/jokeboard/internal/domain"
	"github.com/dadlab/jokeboard/internal/identity/jwt"
	"github.com/dadlab/jokeboard/internal/identity/password"
)

// TokenIssuer encodes and decodes signed tokens.
type TokenIssuer interface {
	IssueAccessToken(user *domain.User) (string, error)
	IssueRefreshedToken(subject string) (*jwt.RefreshedToken, error)
	Decode(token string) (*jwt.Claims, error)
}

// Service implements identity business logic.
type Service struct {
	repo   Repository
	issuer TokenIssuer
}

// NewService creates a new identity service.
func NewService(repo Repository, issuer TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		issuer: issuer,
	}
}

// RegisterInput contains registration parameters.
type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

// Register creates a new user account. Duplicate emails fail with
// ErrEmailExists.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	role := domain.Role(input.Role)
	if role == "" {
		role = domain.RoleUser
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	// Courtesy lookup so the common duplicate case returns the typed
	// error without tripping the unique index. The index still guards
	// the race; CreateUser maps the violation to the same error.
	if _, err := s.repo.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies credentials and returns the matching identity.
// Unknown email and wrong password both yield ErrInvalidCredentials;
// there is no lockout or attempt counting.
func (s *Service) Authenticate(ctx context.Context, email, pass string) (*domain.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if !password.Verify(pass, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and issues an access token with the user's
// email as subject.
func (s *Service) Login(ctx context.Context, email, pass string) (string, error) {
	user, err := s.Authenticate(ctx, email, pass)
	if err != nil {
		return "", err
	}

	token, err := s.issuer.IssueAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}

	return token, nil
}

// Refresh re-validates a presented token and mints a new one for its
// subject. The user store is never consulted here: a deleted or stale
// subject can still refresh. Known gap, preserved deliberately.
func (s *Service) Refresh(ctx context.Context, presented string) (*jwt.RefreshedToken, error) {
	claims, err := s.issuer.Decode(presented)
	if err != nil {
		// Expired, bad signature, and malformed all collapse to one
		// generic failure at this boundary.
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrMalformedToken
	}

	refreshed, err := s.issuer.IssueRefreshedToken(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("issue refreshed token: %w", err)
	}

	return refreshed, nil
}

// ValidateToken decodes a bearer token and resolves its subject to a
// stored user. Used by the auth middleware on protected routes.
func (s *Service) ValidateToken(ctx context.Context, token string) (string, domain.Role, error) {
	claims, err := s.issuer.Decode(token)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", "", ErrMalformedToken
	}

	user, err := s.repo.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", "", ErrInvalidToken
		}
		return "", "", fmt.Errorf("resolve token subject: %w", err)
	}

	return user.ID, user.Role, nil
}

// GetUserByID returns a user by ID.
func (s *Service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// UpdateProfileInput contains optional profile fields. Nil means keep
// the current value.
type UpdateProfileInput struct {
	Email    *string
	Password *string
	Role     *string
}

// UpdateProfile applies a partial update to the user's profile.
func (s *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := password.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if input.Role != nil {
		role := domain.Role(*input.Role)
		if !role.IsValid() {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}
