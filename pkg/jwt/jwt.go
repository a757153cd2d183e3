package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the JWT payload carried by access and refresh tokens
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

// Manager issues and verifies JWT tokens
type Manager struct {
	secretKey        []byte
	expiresInMinutes int
	refreshInMinutes int
}

// NewManager creates a new JWT manager.
// expiresIn and refreshIn are in minutes.
func NewManager(secret string, expiresIn, refreshIn int) *Manager {
	return &Manager{
		secretKey:        []byte(secret),
		expiresInMinutes: expiresIn,
		refreshInMinutes: refreshIn,
	}
}

// GenerateToken creates a signed access token for a user
func (m *Manager) GenerateToken(userID, email, displayName string) (string, error) {
	return m.generate(userID, email, displayName, m.expiresInMinutes)
}

// GenerateRefreshToken creates a signed refresh token for a user
func (m *Manager) GenerateRefreshToken(userID, email string) (string, error) {
	return m.generate(userID, email, "", m.refreshInMinutes)
}

func (m *Manager) generate(userID, email, displayName string, minutes int) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(minutes) * time.Minute)),
		},
		UserID:      userID,
		Email:       email,
		DisplayName: displayName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyToken parses and validates a token string
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
