package utils

import (
	"testing"
	"time"

	"orders-api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(now time.Time) *TokenManager {
	m := NewTokenManager(testSecret, 30*time.Minute, "orders-api")
	m.SetClock(func() time.Time { return now })
	return m
}

func TestGenerateAndValidate(t *testing.T) {
	issued := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	m := newTestManager(issued)

	token, err := m.Generate(&models.User{ID: "u-1", Email: "ana@example.com", Password: "hash"})
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID())
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.True(t, issued.Equal(claims.IssuedAt.Time))
	assert.Equal(t, 30*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	assert.NotEmpty(t, claims.ID)
}

func TestTokenDoesNotCarryPasswordHash(t *testing.T) {
	m := newTestManager(time.Now())
	token, err := m.Generate(&models.User{ID: "u-1", Email: "ana@example.com", Password: "$argon2id$secret"})
	require.NoError(t, err)

	parsed := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, parsed)
	require.NoError(t, err)
	assert.NotContains(t, parsed, "password")
	assert.ElementsMatch(t, []string{"email", "jti", "iss", "sub", "iat", "exp"}, keys(parsed))
}

func TestValidateExpired(t *testing.T) {
	issued := time.Now()
	m := newTestManager(issued)
	token, err := m.Generate(&models.User{ID: "u-1", Email: "ana@example.com"})
	require.NoError(t, err)

	m.SetClock(func() time.Time { return issued.Add(30*time.Minute + time.Second) })
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateWrongSecret(t *testing.T) {
	now := time.Now()
	token, err := newTestManager(now).Generate(&models.User{ID: "u-1"})
	require.NoError(t, err)

	other := NewTokenManager("ffffffffffffffffffffffffffffffff", 30*time.Minute, "orders-api")
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsOtherAlgorithms(t *testing.T) {
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			Issuer:    "orders-api",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Minute, "orders-api").Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateMalformed(t *testing.T) {
	m := newTestManager(time.Now())

	_, err := m.Validate("")
	assert.ErrorIs(t, err, ErrTokenMissing)

	_, err = m.Validate("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		err    error
	}{
		{"Bearer abc", "abc", nil},
		{"bearer abc", "abc", nil},
		{"  Bearer   abc  ", "abc", nil},
		{"", "", ErrTokenMissing},
		{"Basic abc", "", ErrTokenMalformed},
		{"Bearer", "", ErrTokenMalformed},
		{"Bearer a b", "", ErrTokenMalformed},
	}

	for _, tc := range cases {
		token, err := ExtractBearerToken(tc.header)
		if tc.err != nil {
			assert.ErrorIs(t, err, tc.err, tc.header)
			continue
		}
		require.NoError(t, err, tc.header)
		assert.Equal(t, tc.token, token)
	}
}

func keys(m jwt.MapClaims) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
