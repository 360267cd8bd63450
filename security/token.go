package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoSigningKey means the server has no jwt.secret configured.
	// Handlers map this to a 500, not a 401, so operators notice
	ErrNoSigningKey = errors.New("no JWT signing key configured")
	ErrTokenInvalid = errors.New("token is malformed or has a bad signature")
	ErrTokenExpired = errors.New("token has expired")
)

// TokenService issues and verifies the signed identity tokens handed
// out at login
type TokenService struct {
	secret []byte
	expiry time.Duration
}

func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Issue returns a signed token embedding the user ID, valid for the
// configured expiry window
func (t *TokenService) Issue(userID string) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrNoSigningKey
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(t.expiry).Unix(),
	})

	return token.SignedString(t.secret)
}

// Verify returns the user ID embedded in the token. Expired tokens and
// malformed or badly signed ones fail with distinct errors so callers
// can message them differently
func (t *TokenService) Verify(tokenStr string) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrNoSigningKey
	}

	token, err := jwt.Parse(tokenStr, func(tk *jwt.Token) (any, error) {
		if tk.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", tk.Method.Alg())
		}

		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}

		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrTokenInvalid
	}

	return userID, nil
}
