package utils

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/require"

	"github.com/UmangSachdeva/StaffPortal/apperror"
	"github.com/UmangSachdeva/StaffPortal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndVerify(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	token, exp, err := m.GenerateToken(models.Identity{ID: "E1", Role: models.RoleEmployee, Username: "thabo"})
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	identity, err := m.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, "E1", identity.ID)
	require.Equal(t, models.RoleEmployee, identity.Role)
	require.Equal(t, "thabo", identity.Username)
	require.NotEmpty(t, identity.TokenID)
	require.True(t, identity.IsStaff())
}

func TestVerifyRejects(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	identity := models.Identity{ID: "C1", Role: models.RoleCustomer, Username: "sipho"}

	expired := NewTokenManager(testSecret, time.Minute).
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	expiredToken, _, err := expired.GenerateToken(identity)
	require.NoError(t, err)

	other := NewTokenManager("a-completely-different-secret!!", time.Hour)
	foreignToken, _, err := other.GenerateToken(identity)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role: models.RoleAdmin,
		StandardClaims: jwt.StandardClaims{
			Subject:   "X",
			Id:        "j",
			Issuer:    Issuer,
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "root",
		StandardClaims: jwt.StandardClaims{
			Subject:   "X",
			Id:        "j",
			Issuer:    Issuer,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	cases := map[string]string{
		"expired":   expiredToken,
		"signature": foreignToken,
		"alg none":  noneToken,
		"role":      badRole,
		"malformed": "not.a.jwt",
		"empty":     "",
	}
	for name, token := range cases {
		_, err := m.VerifyToken(token)
		require.True(t, apperror.Is(err, apperror.KindInvalidCredential), name)
	}
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "Bearer ", "Basic abc", "bearer abc"} {
		_, err := BearerToken(header)
		require.True(t, apperror.Is(err, apperror.KindInvalidCredential), header)
	}
}
