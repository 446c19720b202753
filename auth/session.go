package auth

import (
	"errors"
	"fmt"
	"time"

	"task-server/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose selects the expiry policy of a session token.
type Purpose string

const (
	PurposeRegistration Purpose = "registration"
	PurposeLogin        Purpose = "login"
)

// Claims is the payload of a session token.
type Claims struct {
	UserID  string  `json:"id"`
	Purpose Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

// Issuer mints and parses HS256 session tokens with a process-wide key.
type Issuer struct {
	secret []byte
	ttls   map[Purpose]time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, registrationTTL, loginTTL time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttls: map[Purpose]time.Duration{
			PurposeRegistration: registrationTTL,
			PurposeLogin:        loginTTL,
		},
		now: time.Now,
	}
}

// WithClock replaces the issuer's time source; used by tests.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// TTL returns the lifetime of tokens issued for purpose.
func (i *Issuer) TTL(purpose Purpose) time.Duration {
	return i.ttls[purpose]
}

// Issue signs a token for userID that expires after the purpose's TTL.
func (i *Issuer) Issue(userID string, purpose Purpose) (string, error) {
	ttl, ok := i.ttls[purpose]
	if !ok {
		return "", apperrors.Internal("issue token", fmt.Errorf("unknown token purpose %q", purpose))
	}
	now := i.now()
	claims := Claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", apperrors.Internal("sign token", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of token and returns its claims.
// Any failure is reported as Unauthorized.
func (i *Issuer) Parse(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Unauthorized("Token expired")
		}
		return nil, apperrors.Unauthorized("Not authorized")
	}
	if claims.UserID == "" {
		return nil, apperrors.Unauthorized("Not authorized")
	}
	return &claims, nil
}
