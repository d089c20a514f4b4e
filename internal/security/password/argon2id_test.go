package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Parámetros chicos para que los tests no quemen CPU.
var testParams = Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

func TestHashAndVerify(t *testing.T) {
	phc, err := Hash(testParams, "s3creto")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(phc, "$argon2id$v=19$"))
	assert.NotContains(t, phc, "s3creto")

	assert.True(t, Verify("s3creto", phc))
	assert.False(t, Verify("otro", phc))
}

func TestHash_SaltedPerCall(t *testing.T) {
	a, err := Hash(testParams, "misma")
	require.NoError(t, err)
	b, err := Hash(testParams, "misma")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHash_EmptyPassword(t *testing.T) {
	_, err := Hash(testParams, "")
	assert.Error(t, err)
}

func TestVerify_Malformed(t *testing.T) {
	assert.False(t, Verify("x", ""))
	assert.False(t, Verify("x", "not-a-phc"))
	assert.False(t, Verify("x", "$argon2i$v=19$m=8,t=1,p=1$c2FsdA$ZGs"))
	assert.False(t, Verify("", "$argon2id$v=19$m=8,t=1,p=1$c2FsdA$ZGs"))
}
