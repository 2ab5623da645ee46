package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	Init("test-secret")

	token, err := GenerateJWT("u1", "guard@example.com", "Aminata", "Diallo", []string{"guard"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "guard@example.com", claims.Email)
	assert.Equal(t, []string{"guard"}, claims.Roles)
	assert.Equal(t, "scolapay", claims.Issuer)
}

func TestJWTWrongSecret(t *testing.T) {
	Init("secret-a")
	token, err := GenerateJWT("u1", "a@b.c", "A", "B", nil)
	require.NoError(t, err)

	Init("secret-b")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTGarbage(t *testing.T) {
	Init("test-secret")
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
