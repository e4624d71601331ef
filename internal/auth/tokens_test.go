package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prepiq", "token")
	store := NewFileTokenStore(path)

	// токена ещё нет
	_, err := store.Token()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.SetToken("secret-token"))

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "secret-token", token)

	require.NoError(t, store.Clear())

	_, err = store.Token()
	assert.ErrorIs(t, err, ErrNoToken)

	// повторная очистка не ошибка
	require.NoError(t, store.Clear())
}

func TestFileTokenStore_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileTokenStore(path)

	require.NoError(t, store.SetToken("secret\n"))

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "secret", token)
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore("")

	_, err := store.Token()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.SetToken("abc"))

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, store.Clear())

	_, err = store.Token()
	assert.ErrorIs(t, err, ErrNoToken)
}
