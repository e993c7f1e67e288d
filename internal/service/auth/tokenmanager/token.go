package tokenmanager

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tutorpocket/backend/internal/apperrors"
	"github.com/tutorpocket/backend/internal/models"
)

const (
	defaultTokenTTL      = 7 * 24 * time.Hour
	defaultSigningMethod = "HS256"
)

// Only 'iat' and 'exp' registered claims are issued, others stay empty and omitted
type AccessTokenClaims struct {
	jwt.RegisteredClaims
	models.TokenPayload
}

// Token manager with sensible default
type Config struct {
	// Secret key to sign access token
	// Required to be set
	SecretKey string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set than default is used
	Alg string

	// Access token lifetime
	// If not set than default is used
	TTL time.Duration
}

type TokenManager struct {
	// Secret key to sign access token
	key string

	// JWT MAC (Message Authentication Code) algorithm
	alg jwt.SigningMethod

	// Access token lifetime
	ttl time.Duration

	// Clock, replaced in tests only
	now func() time.Time
}

func New(cfg Config) (*TokenManager, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	alg, ok := jwt.GetSigningMethod(cfg.Alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("signing method %q is not supported, use one of HS256, HS384, HS512", cfg.Alg)
	}

	if cfg.TTL < 0 {
		return nil, errors.New("token ttl must not be negative")
	}
	if cfg.TTL == 0 {
		cfg.TTL = defaultTokenTTL
	}

	return &TokenManager{
		key: cfg.SecretKey,
		alg: alg,
		ttl: cfg.TTL,
		now: time.Now,
	}, nil
}

// Issue signed access token with the payload
func (m *TokenManager) Issue(payload models.TokenPayload) (models.IssuedToken, error) {
	now := m.now().Truncate(time.Second)
	expiresAt := now.Add(m.ttl)

	token := jwt.NewWithClaims(m.alg, AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TokenPayload: payload,
	})

	signed, err := token.SignedString([]byte(m.key))
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("error while signing access token. Err: %w", err)
	}

	return models.IssuedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Verify token signature, structure and expiration
// Any failure is reported as apperrors.ErrInvalidToken
func (m *TokenManager) Verify(token string) (models.TokenPayload, error) {
	claims := &AccessTokenClaims{}

	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) {
			return []byte(m.key), nil
		},
		jwt.WithValidMethods([]string{m.alg.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return models.TokenPayload{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}

	return claims.TokenPayload, nil
}

// Decode token payload without checking signature or expiration
// Never use the result to make access decisions
func (m *TokenManager) Decode(token string) (models.TokenPayload, bool) {
	claims := &AccessTokenClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return models.TokenPayload{}, false
	}

	return claims.TokenPayload, true
}
