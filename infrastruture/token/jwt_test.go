package token

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSecret(t *testing.T) string {
	t.Helper()
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	require.NoError(t, err)
	return base64.URLEncoding.EncodeToString(bytes)
}

func TestJwtService(t *testing.T) {
	secretKey := randomSecret(t)
	svc := NewJwtService(secretKey, "vinom-maze")

	t.Run("Generate and Decode valid token", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"sub": "cli"}, 5*time.Minute)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "cli", claims["sub"])
		assert.Equal(t, "vinom-maze", claims["iss"])
	})

	t.Run("Reserved claims cannot be overridden", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"iss": "someone-else"}, 5*time.Minute)
		require.NoError(t, err)

		claims, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "vinom-maze", claims["iss"])
	})

	t.Run("Decode invalid token", func(t *testing.T) {
		_, err := svc.Decode("invalidTokenString")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Decode expired token", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"sub": "cli"}, -time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Decode token of another issuer", func(t *testing.T) {
		other := NewJwtService(secretKey, "someone-else")
		token, err := other.Generate(nil, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrWrongIssuer)
	})

	t.Run("Decode token signed with another secret", func(t *testing.T) {
		other := NewJwtService(randomSecret(t), "vinom-maze")
		token, err := other.Generate(nil, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Unsigned tokens are rejected", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"iss": "vinom-maze",
			"exp": time.Now().Add(time.Minute).Unix(),
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
