package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

func TestSecretStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSecretStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set(driven.SecretKeyOpenAI, "sk-abc"))

	got, err := store.Get(driven.SecretKeyOpenAI)
	require.NoError(t, err)
	assert.Equal(t, "sk-abc", got)

	// A fresh store reads the persisted value.
	reopened, err := NewSecretStore(dir)
	require.NoError(t, err)
	got, err = reopened.Get(driven.SecretKeyOpenAI)
	require.NoError(t, err)
	assert.Equal(t, "sk-abc", got)
}

func TestSecretStoreFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSecretStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(driven.SecretKeyOpenAI, "sk-abc"))

	info, err := os.Stat(filepath.Join(dir, "secrets.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSecretStoreEnvFallback(t *testing.T) {
	t.Setenv("DOCCHAT_OPENAI_API_KEY", "sk-from-env")

	store, err := NewSecretStore(t.TempDir())
	require.NoError(t, err)

	got, err := store.Get(driven.SecretKeyOpenAI)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", got)

	// A stored value wins over the environment.
	require.NoError(t, store.Set(driven.SecretKeyOpenAI, "sk-stored"))
	got, err = store.Get(driven.SecretKeyOpenAI)
	require.NoError(t, err)
	assert.Equal(t, "sk-stored", got)
}

func TestSecretStoreDelete(t *testing.T) {
	store, err := NewSecretStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(driven.SecretKeyOpenAI, "sk-abc"))
	require.NoError(t, store.Delete(driven.SecretKeyOpenAI))

	got, err := store.Get(driven.SecretKeyOpenAI)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Unknown key is fine.
	assert.NoError(t, store.Delete("never-set"))
}

func TestSecretStoreUnknownKeyEmpty(t *testing.T) {
	store, err := NewSecretStore(t.TempDir())
	require.NoError(t, err)

	got, err := store.Get("unknown")
	require.NoError(t, err)
	assert.Empty(t, got)
}
