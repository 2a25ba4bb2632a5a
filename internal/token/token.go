package token

import (
	"errors"
	"time"

	"taskboard/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired means the signature checked out but the token is past its expiry.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers every other verification failure: bad signature,
	// malformed token, unexpected signing method, missing claims.
	ErrInvalid = errors.New("token invalid")
)

// Manager issues and verifies signed bearer tokens. The signing secret is
// injected once at construction and never rotated during the process lifetime.
type Manager struct {
	secret []byte
}

func NewManager(secret []byte) *Manager {
	return &Manager{secret: secret}
}

// Issue produces an HS256-signed token carrying the user identity, valid for ttl.
func (m *Manager) Issue(userID int64, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token string and returns its claims.
// The returned error is ErrExpired or ErrInvalid, nothing else.
func (m *Manager) Verify(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalid
	}
	return claims, nil
}
