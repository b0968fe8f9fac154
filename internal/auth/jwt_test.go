package auth_test

import (
	"testing"
	"time"

	"werkshift/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func sign(t *testing.T, claims jwt.MapClaims, method jwt.SigningMethod, key any) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestGenerateAndParseToken(t *testing.T) {
	// Arrange
	issuer := auth.NewTokenIssuer(testSecret, 24*time.Hour)
	actorID := uuid.New()

	// Act
	token, err := issuer.Generate(actorID, auth.RoleWerker)
	require.NoError(t, err)
	actor, err := issuer.Parse(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, actorID, actor.ID)
	assert.Equal(t, auth.RoleWerker, actor.Role)
}

func TestGenerate_UnknownRole(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)

	_, err := issuer.Generate(uuid.New(), "admin")

	assert.ErrorIs(t, err, auth.ErrInvalidClaims)
}

func TestParseToken_InvalidToken(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)

	_, err := issuer.Parse("invalid-token")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_ExpiredToken(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	expired := sign(t, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"role":    "maker",
		"exp":     time.Now().Add(-1 * time.Hour).Unix(),
	}, jwt.SigningMethodHS256, []byte(testSecret))

	_, err := issuer.Parse(expired)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_MissingExpiry(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	forever := sign(t, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"role":    "maker",
	}, jwt.SigningMethodHS256, []byte(testSecret))

	_, err := issuer.Parse(forever)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	other := auth.NewTokenIssuer("another-secret", time.Hour)
	token, err := other.Generate(uuid.New(), auth.RoleMaker)
	require.NoError(t, err)

	_, err = issuer.Parse(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_BadClaims(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing user id", jwt.MapClaims{"role": "maker", "exp": exp}},
		{"user id not a uuid", jwt.MapClaims{"user_id": "not-a-valid-uuid", "role": "maker", "exp": exp}},
		{"unknown role", jwt.MapClaims{"user_id": uuid.NewString(), "role": "admin", "exp": exp}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := sign(t, tt.claims, jwt.SigningMethodHS256, []byte(testSecret))

			_, err := issuer.Parse(token)

			assert.ErrorIs(t, err, auth.ErrInvalidClaims)
		})
	}
}
