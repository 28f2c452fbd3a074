package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// HostTokenManager signs and verifies host tokens. A host token is issued
// once, at room creation, and is the only proof that a session is the room's
// host; status transitions and reveals require it. It is not user
// authentication (there are no users).
type HostTokenManager struct {
	secretKey     string
	tokenDuration time.Duration
}

func NewHostTokenManager(secret string, duration time.Duration) *HostTokenManager {
	return &HostTokenManager{secretKey: secret, tokenDuration: duration}
}

// Generate creates a host token for the given room id.
func (m *HostTokenManager) Generate(roomID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   roomID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenDuration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// Verify parses the token and returns the room id it was issued for.
func (m *HostTokenManager) Verify(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// ExtractTokenFromHeader pulls the bearer token out of the Authorization header.
func ExtractTokenFromHeader(r *http.Request) (string, error) {
	hdr := r.Header.Get("Authorization")
	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid Authorization header")
	}
	return parts[1], nil
}
