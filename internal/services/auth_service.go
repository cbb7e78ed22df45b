package services

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/projectdesk/projectdesk-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues tokens for the demo login. There is a single demo
// account configured through the environment and no per-route enforcement;
// the token only identifies the session to the frontend.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// LoginResult carries the issued token and its expiry
type LoginResult struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login checks the demo credentials and issues a signed JWT. When
// DEMO_PASSWORD_HASH is set it is compared with bcrypt; otherwise the
// development fallback password "demo123" applies.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	if !strings.EqualFold(email, s.cfg.DemoEmail) {
		return nil, ErrUnauthorized
	}

	if s.cfg.DemoPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.DemoPasswordHash), []byte(password)); err != nil {
			return nil, ErrUnauthorized
		}
	} else if subtle.ConstantTimeCompare([]byte(password), []byte("demo123")) != 1 {
		return nil, ErrUnauthorized
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":  s.cfg.DemoEmail,
		"role": "Admin",
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		Email:     s.cfg.DemoEmail,
		Role:      "Admin",
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken parses and verifies a token issued by Login
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
