// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"fmt"
	"os"
	"strings"
)

// ReadIdentifierList reads a plain-text identifier list: one token per
// entry, separated by any whitespace. Order is preserved; the lists are
// user-owned input and are never rewritten by the tool.
func ReadIdentifierList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading identifier list: %w", err)
	}
	return strings.Fields(string(data)), nil
}
