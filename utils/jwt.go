package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/UmangSachdeva/StaffPortal/apperror"
	"github.com/UmangSachdeva/StaffPortal/models"
)

const Issuer = "staff-portal"

type Claims struct {
	Role     models.Role `json:"role"`
	Username string      `json:"username"`
	jwt.StandardClaims
}

// TokenManager issues and verifies HS256 bearer credentials.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the time source, used by tests to issue already-expired tokens.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

func (m *TokenManager) GenerateToken(identity models.Identity) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	claims := Claims{
		Role:     identity.Role,
		Username: identity.Username,
		StandardClaims: jwt.StandardClaims{
			Subject:   identity.ID,
			Id:        uuid.NewString(),
			Issuer:    Issuer,
			IssuedAt:  issuedAt.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return signed, expiresAt, nil
}

// VerifyToken checks signature, algorithm and expiry and decodes the caller.
// Every failure is reported as InvalidCredential.
func (m *TokenManager) VerifyToken(tokenString string) (models.Identity, error) {
	claims := &Claims{}

	parser := &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}, SkipClaimsValidation: true}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return models.Identity{}, apperror.Wrap(apperror.KindInvalidCredential, "Invalid token", err)
	}

	if err := m.validate(claims); err != nil {
		return models.Identity{}, err
	}

	return models.Identity{
		ID:        claims.Subject,
		Role:      claims.Role,
		Username:  claims.Username,
		TokenID:   claims.Id,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
	}, nil
}

func (m *TokenManager) validate(claims *Claims) error {
	now := m.now().Unix()

	switch {
	case claims.ExpiresAt == 0:
		return apperror.InvalidCredential("Token has no expiry")
	case !claims.VerifyExpiresAt(now, true):
		return apperror.InvalidCredential("Token expired")
	case !claims.VerifyIssuedAt(now, true):
		return apperror.InvalidCredential("Token used before issued")
	case !claims.VerifyIssuer(Issuer, true):
		return apperror.InvalidCredential("Invalid token issuer")
	case claims.Subject == "" || claims.Id == "":
		return apperror.InvalidCredential("Invalid token subject")
	case !claims.Role.Valid():
		return apperror.InvalidCredential("Invalid token role")
	}

	return nil
}

var errMissingBearer = errors.New("missing bearer token")

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", apperror.Wrap(apperror.KindInvalidCredential, "Missing Authorization header", errMissingBearer)
	}

	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return "", apperror.InvalidCredential("Invalid Authorization header")
	}

	return header[len(prefix):], nil
}
