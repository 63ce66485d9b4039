// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/publist/pkg/types"
)

// Slug returns the override filename stem for an identifier: '/' and
// ':' become '-'. Lookup is exact and case-sensitive, so
// "10.1/x" maps to "10.1-x.json" and nothing else.
func Slug(identifier string) string {
	return strings.NewReplacer("/", "-", ":", "-").Replace(strings.TrimSpace(identifier))
}

// overrideSource reads records from a directory of hand-written JSON
// files. It sits first in every chain so a malformed upstream record
// can always be corrected locally without the chain having to fail.
type overrideSource struct {
	dir string
}

func (s *overrideSource) Name() string { return "override" }

// Lookup reads <dir>/<slug>.json. A missing, unreadable, or unparsable
// file is the not-found signal — a local syntax error must never mask
// a working upstream source.
func (s *overrideSource) Lookup(_ context.Context, identifier string) (*types.Record, bool, error) {
	if s.dir == "" {
		return nil, false, nil
	}
	data, err := os.ReadFile(filepath.Join(s.dir, Slug(identifier)+".json"))
	if err != nil {
		return nil, false, nil
	}
	rec, err := decodeOverride(data)
	if err != nil {
		return nil, false, nil
	}
	return rec, true, nil
}

// overrideFile accepts both the canonical CSL "author" convention and
// the older "authors" firstName/lastName convention still present in
// hand-written files. Everything folds to the canonical Record here;
// downstream stages never see the legacy field names.
type overrideFile struct {
	types.Record
	LegacyAuthors []legacyName `json:"authors"`
}

type legacyName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func decodeOverride(data []byte) (*types.Record, error) {
	var f overrideFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	rec := f.Record
	if len(rec.Authors) == 0 {
		for _, a := range f.LegacyAuthors {
			rec.Authors = append(rec.Authors, types.Name{Given: a.FirstName, Family: a.LastName})
		}
	}
	return &rec, nil
}
