// Package auth issues and verifies the platform's access tokens and
// holds the authorization predicates used by the service layer.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduvia/elearning-service/internal/models"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, wrong signing method, unparseable claims.
var ErrInvalidToken = errors.New("invalid access token")

// Claims is the payload carried by every access token. Tokens do not
// expire; clients discard them on logout.
type Claims struct {
	UserID  string          `json:"id"`
	Role    models.UserRole `json:"role"`
	IsAdmin bool            `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Subject returns the claims' user id as an ObjectID.
func (c *Claims) Subject() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.UserID)
}

// TokenManager signs and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue signs an access token for the given account.
func (m *TokenManager) Issue(user *models.User) (string, error) {
	claims := &Claims{
		UserID:  user.ID.Hex(),
		Role:    user.Role,
		IsAdmin: user.IsAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a signed token, returning its claims.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := claims.Subject(); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
