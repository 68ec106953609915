package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CheckPassword("s3cret!", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("s3cret!", "not-a-hash"))
}

func TestHashPassword_TooLong(t *testing.T) {
	long := strings.Repeat("a", 73)

	_, err := HashPassword(long)
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	hash, err := HashPassword(long[:72])
	require.NoError(t, err)
	assert.True(t, CheckPassword(long[:72], hash))
	assert.False(t, CheckPassword(long, hash))
	assert.False(t, CheckPassword("", ""))
}
