package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/infrastructure/config"
	"github.com/reactiverse/core/internal/ports"
)

// sessionClaims represents the JWT claims
type sessionClaims struct {
	Role entities.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates session tokens
type TokenService struct {
	jwtConfig config.JWTConfig
	now       func() time.Time
}

// NewTokenService creates a new token service
func NewTokenService(jwtConfig config.JWTConfig) *TokenService {
	return &TokenService{
		jwtConfig: jwtConfig,
		now:       time.Now,
	}
}

// Issue signs a token for subject and returns it with its lifetime in seconds.
func (s *TokenService) Issue(subject string, role entities.Role) (string, int64, error) {
	now := s.now()
	claims := &sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, int64(s.jwtConfig.ExpiresIn.Seconds()), nil
}

// Validate validates a JWT token and returns claims
func (s *TokenService) Validate(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	}, jwt.WithIssuer(s.jwtConfig.Issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token claims", entities.ErrUnauthorized)
	}

	switch claims.Role {
	case entities.RoleUser, entities.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", entities.ErrUnauthorized, claims.Role)
	}

	return &ports.Claims{
		Subject: claims.Subject,
		Role:    claims.Role,
	}, nil
}
