package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, CheckPasswordHash("correct horse battery", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("longenough"))
}

func TestGenerateRandomPassword(t *testing.T) {
	first, err := GenerateRandomPassword(16)
	require.NoError(t, err)
	assert.Len(t, first, 16)

	second, err := GenerateRandomPassword(16)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// Short requests are raised to the floor length.
	padded, err := GenerateRandomPassword(4)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(padded), 12)
}
