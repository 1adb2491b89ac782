// Package jwt implements the signed-token codec and session issuing
// for the identity module.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/dadlab/jokeboard/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Token decode failures. All three unwrap to ErrInvalidToken so callers
// that do not care about the cause can branch on a single sentinel.
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = fmt.Errorf("token expired: %w", ErrInvalidToken)
	ErrBadSignature   = fmt.Errorf("bad token signature: %w", ErrInvalidToken)
	ErrTokenMalformed = fmt.Errorf("malformed token: %w", ErrInvalidToken)
)

// signingMethod is fixed per process. Decode rejects any other alg.
var signingMethod = jwt.SigningMethodHS256

// Claims is the closed claims record embedded in issued tokens.
// Subject carries the user's email; ExpiresAt is present only on
// refresh-issued tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// Config contains signing configuration, injected at startup.
type Config struct {
	SecretKey              string
	RefreshedTokenDuration time.Duration
}

// RefreshedToken is the result of reissuing a token on the refresh path.
type RefreshedToken struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}

// Authenticator encodes and decodes signed tokens with a symmetric
// process-wide secret.
type Authenticator struct {
	secret []byte
	window time.Duration
	now    func() time.Time
}

// NewAuthenticator creates a token authenticator.
func NewAuthenticator(cfg Config) *Authenticator {
	window := cfg.RefreshedTokenDuration
	if window <= 0 {
		window = 30 * time.Minute
	}
	return &Authenticator{
		secret: []byte(cfg.SecretKey),
		window: window,
		now:    time.Now,
	}
}

// IssueAccessToken issues a login token with the user's email as
// subject. Login-issued tokens carry no expiry, matching the behavior
// this service replaces; they stay valid until the secret rotates.
func (a *Authenticator) IssueAccessToken(user *domain.User) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.Email,
		},
	}

	token, err := jwt.NewWithClaims(signingMethod, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

// IssueRefreshedToken issues a token for the given subject with an
// expiry one refresh window from now.
func (a *Authenticator) IssueRefreshedToken(subject string) (*RefreshedToken, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(a.now().Add(a.window)),
		},
	}

	token, err := jwt.NewWithClaims(signingMethod, claims).SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("sign refreshed token: %w", err)
	}

	return &RefreshedToken{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(a.window.Seconds()),
	}, nil
}

// Decode verifies a token's signature and expiry and returns its
// claims. It fails closed: a token signed under a different secret,
// past its expiry, or structurally broken never yields claims.
func (a *Authenticator) Decode(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(_ *jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// Window returns the configured refresh window.
func (a *Authenticator) Window() time.Duration {
	return a.window
}
