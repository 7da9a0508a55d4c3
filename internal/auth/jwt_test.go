package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	require.Error(t, err)

	m, err := NewTokenManager("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, m.TTL(), "zero ttl falls back to one hour")
}

func TestGenerateAndParse(t *testing.T) {
	m, err := NewTokenManager("secret", 30*time.Minute)
	require.NoError(t, err)

	signed, claims, err := m.Generate("user-1", "user@test.com", "employee")
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.NotEmpty(t, claims.ID)

	parsed, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.Subject)
	assert.Equal(t, "user@test.com", parsed.Email)
	assert.Equal(t, "employee", parsed.Role)
	assert.Equal(t, claims.ID, parsed.ID)
	require.NotNil(t, parsed.IssuedAt)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), parsed.ExpiresAt.Time, time.Minute)
}

func TestGenerate_UniqueJTI(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	_, a, err := m.Generate("user-1", "user@test.com", "employee")
	require.NoError(t, err)
	_, b, err := m.Generate("user-1", "user@test.com", "employee")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	m1, _ := NewTokenManager("secret-one", time.Hour)
	m2, _ := NewTokenManager("secret-two", time.Hour)

	signed, _, err := m1.Generate("user-1", "user@test.com", "employee")
	require.NoError(t, err)

	_, err = m2.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsGarbage(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)

	_, err := m.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsExpired(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)

	claims := &Claims{
		Email: "user@test.com",
		Role:  "employee",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ID:        "jti-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParse_RejectsIncompleteClaims(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)

	// Подпись валидна, но нет subject/jti/iat
	cases := []jwt.RegisteredClaims{
		{ID: "jti", IssuedAt: jwt.NewNumericDate(time.Now()), ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		{Subject: "user-1", IssuedAt: jwt.NewNumericDate(time.Now()), ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		{Subject: "user-1", ID: "jti", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}

	for i, rc := range cases {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: rc}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = m.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken, "case %d", i)
	}
}

func TestParse_RejectsUnsignedToken(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ID:        "jti",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
