package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeySet_Verify(t *testing.T) {
	pepper := []byte("pepper")
	ks, err := NewKeySet(pepper, []string{HashKey(pepper, "admin-key"), ""})
	require.NoError(t, err)
	require.True(t, ks.Enabled())

	assert.NoError(t, ks.Verify("admin-key"))
	assert.ErrorIs(t, ks.Verify("other-key"), ErrUnauthorized)
	assert.ErrorIs(t, ks.Verify(""), ErrUnauthorized)
}

func TestKeySet_WrongPepper(t *testing.T) {
	ks, err := NewKeySet([]byte("server"), []string{HashKey([]byte("client"), "admin-key")})
	require.NoError(t, err)

	assert.ErrorIs(t, ks.Verify("admin-key"), ErrUnauthorized)
}

func TestKeySet_Disabled(t *testing.T) {
	ks, err := NewKeySet(nil, nil)
	require.NoError(t, err)

	assert.False(t, ks.Enabled())
	assert.NoError(t, ks.Verify(""))

	var nilSet *KeySet
	assert.NoError(t, nilSet.Verify("anything"))
}

func TestNewKeySet_InvalidHash(t *testing.T) {
	_, err := NewKeySet(nil, []string{"zz"})
	require.Error(t, err)

	_, err = NewKeySet(nil, []string{"abcd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 32 bytes")
}
