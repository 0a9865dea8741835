package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sauravsingh6568/paonflowers-sub000/internal/identity"
)

// Claims carries the verified assertions of a session token.
type Claims struct {
	UserID string
	Phone  string
	Role   identity.Role
}

// TokenManager issues and verifies HS256-signed session tokens. Validity is
// proven purely by signature and expiry; nothing is stored server-side.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret and lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token binding the user's id, phone and role.
func (t *TokenManager) Issue(user identity.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"phone": user.Phone,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   now.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies signature and expiry and returns the embedded claims.
func (t *TokenManager) Parse(tokenStr string) (Claims, error) {
	token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, errors.New("invalid token")
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return Claims{}, errors.New("missing subject")
	}
	phone, _ := mc["phone"].(string)
	role, _ := mc["role"].(string)
	return Claims{UserID: sub, Phone: phone, Role: identity.Role(role)}, nil
}
