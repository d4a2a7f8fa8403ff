package jwtverifier

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, c tokenClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, c).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() tokenClaims {
	return tokenClaims{
		Email:     "ana@example.com",
		Household: "home-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "owner-ana",
			Issuer:    "petcare-idp",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestVerify_OK(t *testing.T) {
	v, err := New(Config{Secret: secret, Issuer: "petcare-idp"})
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims()))
	require.NoError(t, err)

	assert.Equal(t, "owner-ana", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "home-1", claims.HouseholdID)
}

func TestVerify_Rejects(t *testing.T) {
	v, err := New(Config{Secret: secret, Issuer: "petcare-idp"})
	require.NoError(t, err)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	otherIssuer := validClaims()
	otherIssuer.Issuer = "someone-else"

	noSubject := validClaims()
	noSubject.Subject = ""

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	cases := map[string]string{
		"expired":      sign(t, jwt.SigningMethodHS256, []byte(secret), expired),
		"wrong secret": sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims()),
		"wrong alg":    sign(t, jwt.SigningMethodHS512, []byte(secret), validClaims()),
		"wrong issuer": sign(t, jwt.SigningMethodHS256, []byte(secret), otherIssuer),
		"no subject":   sign(t, jwt.SigningMethodHS256, []byte(secret), noSubject),
		"no expiry":    sign(t, jwt.SigningMethodHS256, []byte(secret), noExpiry),
		"garbage":      "not-a-jwt",
		"empty":        "  ",
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token)
			assert.Error(t, err)
		})
	}
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
