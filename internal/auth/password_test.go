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

	assert.True(t, CheckPassword("correct horse battery", hash))
	assert.False(t, CheckPassword("wrong password", hash))
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	second, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
