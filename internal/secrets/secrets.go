// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads service credentials from a directory of plain-text
// files. The filename is the key and the trimmed contents are the value.
//
// Recognized keys: tencent-secret-id, tencent-secret-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Keys for the translation service credentials, with the environment
// variables that override them.
const (
	TencentSecretID  = "tencent-secret-id"
	TencentSecretKey = "tencent-secret-key"

	EnvTencentSecretID  = "TENCENT_SECRET_ID"
	EnvTencentSecretKey = "TENCENT_SECRET_KEY"
)

// Store maps secret names to values.
type Store map[string]string

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty Store. Unreadable files are logged and skipped.
func Load(dir string, log logrus.FieldLogger) (Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	store := make(Store)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if log != nil {
				log.WithField("secret", name).WithError(err).Warn("could not read secret")
			}
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			store[name] = value
		}
	}
	return store, nil
}

// Resolve returns the value of envVar if set, otherwise the stored value for key.
func (s Store) Resolve(key, envVar string) string {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v
	}
	return s[key]
}

// Keys returns the stored secret names in sorted order.
func (s Store) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
