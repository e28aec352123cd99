package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies tokens issued by the external auth system. This service
// never issues sessions itself; it only checks the bearer token and exposes
// the claims the engine needs.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	UserIDFromContext(ctx context.Context) (string, error)
	RoleFromContext(ctx context.Context) (string, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// UserIDFromContext extracts the user_id claim from a verified token.
func (j *JWTService) UserIDFromContext(ctx context.Context) (string, error) {
	return claimFromContext(ctx, "user_id")
}

// RoleFromContext extracts the role claim from a verified token.
func (j *JWTService) RoleFromContext(ctx context.Context) (string, error) {
	return claimFromContext(ctx, "role")
}

func claimFromContext(ctx context.Context, name string) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	value, ok := claims[name].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s claim is missing or invalid", name)
	}

	return value, nil
}
