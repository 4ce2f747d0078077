// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Store
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, TencentSecretID, "  AKIDexample  \n")
				writeFile(t, dir, TencentSecretKey, "key123")
				return dir
			},
			want: Store{
				TencentSecretID:  "AKIDexample",
				TencentSecretKey: "key123",
			},
		},
		{
			name: "returns empty store for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Store{},
		},
		{
			name: "skips empty files, dotfiles, and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, TencentSecretID, "AKIDexample")
				writeFile(t, dir, "empty", "")
				writeFile(t, dir, "blank", " \n\t ")
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden", "secret")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: Store{TencentSecretID: "AKIDexample"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files without permission bits")
	}
	dir := t.TempDir()
	writeFile(t, dir, TencentSecretID, "AKIDexample")

	badPath := filepath.Join(dir, TencentSecretKey)
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	got, err := Load(dir, log)
	require.NoError(t, err)
	assert.Equal(t, "AKIDexample", got[TencentSecretID])
	_, hasBad := got[TencentSecretKey]
	assert.False(t, hasBad, "unreadable file should not appear in result")
	assert.Contains(t, buf.String(), "could not read secret")
}

func TestResolve(t *testing.T) {
	store := Store{TencentSecretID: "from-file"}

	t.Setenv(EnvTencentSecretID, "")
	assert.Equal(t, "from-file", store.Resolve(TencentSecretID, EnvTencentSecretID))

	t.Setenv(EnvTencentSecretID, "from-env")
	assert.Equal(t, "from-env", store.Resolve(TencentSecretID, EnvTencentSecretID))

	t.Setenv(EnvTencentSecretKey, "")
	assert.Empty(t, store.Resolve(TencentSecretKey, EnvTencentSecretKey))
}

func TestKeys(t *testing.T) {
	store := Store{"b": "2", "a": "1"}
	assert.Equal(t, []string{"a", "b"}, store.Keys())
	assert.Empty(t, Store{}.Keys())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
