package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("admin123456")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "admin123456", hash)

	assert.True(t, Verify("admin123456", hash))
	assert.False(t, Verify("wrong-password", hash))
}

func TestHashToken(t *testing.T) {
	a := HashToken("some-refresh-token")
	b := HashToken("some-refresh-token")
	c := HashToken("other-refresh-token")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64) // hex-encoded SHA-256
}
