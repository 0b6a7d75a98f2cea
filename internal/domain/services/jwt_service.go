package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
)

const tokenIssuer = "encomendas-desktop"

// InterfaceJWTService defines admin token handling
type InterfaceJWTService interface {
	GenerateToken(user *models.User) (string, time.Time, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims are the claims carried by an admin surface token
type JWTClaims struct {
	UserID uint               `json:"user_id"`
	Login  string             `json:"login"`
	Role   models.AccessLevel `json:"role"`
	jwt.RegisteredClaims
}

// LoginResult is returned by a successful login
type LoginResult struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expira_em"`
	UserID    uint                `json:"usuario_id"`
	Login     string              `json:"login"`
	Name      string              `json:"nome"`
	Role      models.ExternalRole `json:"nivel"`
}

// JWTService signs and validates HS256 tokens
type JWTService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &JWTService{
		secretKey: []byte(secret),
		ttl:       ttl,
		now:       time.Now,
	}
}

// GenerateToken issues a token for user
func (s *JWTService) GenerateToken(user *models.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := &JWTClaims{
		UserID: user.ID,
		Login:  user.Login,
		Role:   user.AccessLevel,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   fmt.Sprint(user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken parses tokenString and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Issuer != tokenIssuer {
		return nil, errors.New("unexpected token issuer")
	}
	return claims, nil
}

// Login authenticates through users and issues a token
func Login(ctx context.Context, users InterfaceUserService, tokens InterfaceJWTService, login, password string) (*LoginResult, error) {
	user, err := users.Authenticate(ctx, login, password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Login:     user.Login,
		Name:      user.FullName,
		Role:      user.AccessLevel.ToExternal(),
	}, nil
}
