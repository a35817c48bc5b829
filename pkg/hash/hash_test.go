package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_SaltedAndVerifiable(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("p1")
	require.NoError(t, err)
	second, err := HashPassword("p1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, "p1", first)
	assert.True(t, CheckPassword(first, "p1"))
	assert.True(t, CheckPassword(second, "p1"))
	assert.False(t, CheckPassword(first, "p2"))
}

func TestHashPassword_Empty(t *testing.T) {
	t.Parallel()

	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
	assert.False(t, CheckPassword("", "p1"))
}

func TestHashPassword_Length(t *testing.T) {
	t.Parallel()

	h, err := HashPassword(strings.Repeat("a", MaxPasswordBytes))
	require.NoError(t, err)
	assert.True(t, CheckPassword(h, strings.Repeat("a", MaxPasswordBytes)))

	_, err = HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
