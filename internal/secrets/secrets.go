// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text
// files: the filename is the key, the trimmed contents are the value.
//
// The only key publist currently uses is contact-email, fed to the
// CrossRef polite pool and the User-Agent header, but unknown keys are
// loaded and exposed so callers can pick up new ones without changes
// here.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ContactEmailKey is the file name holding the API contact email.
const ContactEmailKey = "contact-email"

// Load reads every regular, non-hidden file in dir into a key/value
// map. A missing directory yields an empty map; an unreadable file
// produces a stderr warning and is skipped. Empty values are dropped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[entry.Name()] = value
		}
	}
	return secrets, nil
}

// ContactEmail loads dir and returns the contact email, or "" when none
// is configured.
func ContactEmail(dir string) string {
	s, err := Load(dir)
	if err != nil {
		return ""
	}
	return s[ContactEmailKey]
}
