// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contact-email"), []byte("who@example.org\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other-key"), []byte("  value  "), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), []byte("   \n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("nope"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	secrets, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"contact-email": "who@example.org",
		"other-key":     "value",
	}, secrets)
}

func TestLoadMissingDirectory(t *testing.T) {
	secrets, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, secrets)
}

func TestContactEmail(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ContactEmailKey), []byte("who@example.org"), 0o600))

	assert.Equal(t, "who@example.org", ContactEmail(dir))
	assert.Equal(t, "", ContactEmail(t.TempDir()))
}
