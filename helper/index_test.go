package helper

import (
	"biryani_club/constants"
	"biryani_club/model"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	t.Run("accepts its own access tokens", func(t *testing.T) {
		signed, err := GenerateAccessToken(model.TokenClaim{
			Username:   "asha",
			CustomerId: 7,
			Role:       constants.ROLE_CUSTOMER,
		})
		require.NoError(t, err)

		token, err := ParseToken(signed)
		require.NoError(t, err)
		require.True(t, token.Valid)

		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "asha", claims["username"])
		assert.Equal(t, float64(7), claims["customerId"])
	})

	t.Run("rejects unsigned tokens", func(t *testing.T) {
		none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"username":   "asha",
			"customerId": 7,
			"exp":        time.Now().Add(time.Hour).Unix(),
		})
		signed, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ParseToken(signed)
		assert.Error(t, err)
	})

	t.Run("rejects tokens signed with another key", func(t *testing.T) {
		other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"username": "asha",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})
		signed, err := other.SignedString([]byte("some-other-secret"))
		require.NoError(t, err)

		_, err = ParseToken(signed)
		assert.Error(t, err)
	})
}
