package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/twohearts/couplegames-backend/internal/entity"
)

const tokenLifetime = 24 * time.Hour

// AuthService issues and verifies the bearer credential the admin site
// carries. The game layer only ever asks one question of it: which role is
// this caller. A missing, invalid or non-admin token always resolves to the
// lover role, never to an error.
type AuthService interface {
	GenerateToken(role string) (string, error)
	ResolveRole(rawToken string) string
}

type authService struct {
	secretKey string
}

func NewAuthService(secretKey string) AuthService {
	return &authService{
		secretKey: secretKey,
	}
}

func (that *authService) GenerateToken(role string) (string, error) {
	claims := jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(that.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ResolveRole maps a raw bearer token to a role. The role comes from the
// verified claim, not from the mere presence of a header.
func (that *authService) ResolveRole(rawToken string) string {
	if rawToken == "" {
		return entity.RoleLover
	}

	token, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(that.secretKey), nil
	})
	if err != nil || !token.Valid {
		return entity.RoleLover
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entity.RoleLover
	}

	if role, _ := claims["role"].(string); role == entity.RoleAdmin {
		return entity.RoleAdmin
	}

	return entity.RoleLover
}
