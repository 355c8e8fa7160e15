// Package token issues and verifies the session credentials used by the
// event app. A session token never carries the user's identity, only a
// random secret; the live secret stored on the user row is what binds the
// token to a person, so rotating the stored secret invalidates every
// previously issued token.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL matches the event lifetime with plenty of slack.
const TTL = 90 * 24 * time.Hour

const adminRole = "admin"

var ErrInvalidToken = errors.New("invalid token")

type sessionClaims struct {
	Secret string `json:"secret"`
	jwt.RegisteredClaims
}

type adminClaims struct {
	Secret  string `json:"secret"`
	Role    string `json:"role"`
	AdminID uint   `json:"adminId"`
	jwt.RegisteredClaims
}

type Issuer struct {
	signingKey []byte
}

func NewIssuer(signingKey string) *Issuer {
	return &Issuer{
		signingKey: []byte(signingKey),
	}
}

// Issue generates a fresh token secret and a signed token embedding it.
// The caller is responsible for persisting the secret against the user
// record, replacing any prior value.
func (i *Issuer) Issue() (token, secret string, err error) {
	secret, err = newSecret()
	if err != nil {
		return "", "", err
	}

	claims := sessionClaims{
		Secret: secret,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.signingKey)
	if err != nil {
		return "", "", fmt.Errorf("jwt.SignedString -> %w", err)
	}

	return token, secret, nil
}

// Verify checks signature and expiry only and returns the embedded
// secret. Expired, tampered and malformed tokens are indistinguishable
// to the caller.
func (i *Issuer) Verify(tokenStr string) (string, error) {
	claims := &sessionClaims{}
	if err := i.parse(tokenStr, claims); err != nil {
		return "", err
	}
	if claims.Secret == "" {
		return "", ErrInvalidToken
	}

	return claims.Secret, nil
}

// IssueAdmin signs an admin console token carrying the admin's ID.
func (i *Issuer) IssueAdmin(adminID uint) (string, error) {
	secret, err := newSecret()
	if err != nil {
		return "", err
	}

	claims := adminClaims{
		Secret:  secret,
		Role:    adminRole,
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.signingKey)
	if err != nil {
		return "", fmt.Errorf("jwt.SignedString -> %w", err)
	}

	return token, nil
}

// VerifyAdmin returns the admin ID from a valid admin token, or
// ErrInvalidToken for anything else, including a valid user token.
func (i *Issuer) VerifyAdmin(tokenStr string) (uint, error) {
	claims := &adminClaims{}
	if err := i.parse(tokenStr, claims); err != nil {
		return 0, err
	}
	if claims.Role != adminRole || claims.AdminID == 0 {
		return 0, ErrInvalidToken
	}

	return claims.AdminID, nil
}

func (i *Issuer) parse(tokenStr string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return i.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}

	return nil
}

func newSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("rand.Read -> %w", err)
	}

	return hex.EncodeToString(buf), nil
}
