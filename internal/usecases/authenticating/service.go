// Package authenticating valida e emite os tokens JWT que protegem os
// endpoints de disparo da auditoria. Não há cadastro de usuários: os
// tokens são emitidos fora da API com o mesmo segredo compartilhado.
package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/addocu/stack-audit-api/internal/config"
	"github.com/addocu/stack-audit-api/internal/domain"
)

const tokenTTL = 24 * time.Hour

type Authenticator interface {
	GenerateToken(userID, name string, roleID int) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{cfg: cfg}
}

// GenerateToken emite um token HS256 com validade de 24 horas.
func (s *Service) GenerateToken(userID, name string, roleID int) (string, error) {
	if s.cfg.Auth.Secret == "" {
		return "", ErrMissingSecret
	}

	claims := domain.Claims{
		UserID:     userID,
		UserName:   name,
		UserRoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, NewAuthError(ErrInvalidToken, "AUTH_001", err.Error())
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
