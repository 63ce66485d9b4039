// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/publist/pkg/types"
)

const sampleChemrxivItem = `{
	"doi": "10.26434/chemrxiv-2021-abc12",
	"title": "Solvent Effects on Catalysis",
	"publishedDate": "2021-05-10T12:30:00.000Z",
	"authors": [
		{"firstName": "Ravi", "lastName": "Iyer"},
		{"firstName": "Li", "lastName": "Wen"}
	]
}`

func TestChemrxivLookup(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, sampleChemrxivItem)
	}))
	defer ts.Close()

	src := &chemrxivSource{
		client: ts.Client(),
		cfg:    types.ResolverConfig{ChemrxivAPIBase: ts.URL + "/items/doi/"},
	}
	rec, found, err := src.Lookup(context.Background(), "10.26434/chemrxiv-2021-abc12")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !found {
		t.Fatal("Lookup found = false, want true")
	}
	if gotPath != "/items/doi/10.26434/chemrxiv-2021-abc12" {
		t.Errorf("request path = %q", gotPath)
	}

	if rec.Title != "Solvent Effects on Catalysis" {
		t.Errorf("title = %q", rec.Title)
	}
	if rec.ContainerTitle != "ChemRxiv" {
		t.Errorf("container title = %q, want ChemRxiv", rec.ContainerTitle)
	}
	if rec.URL != "https://doi.org/10.26434/chemrxiv-2021-abc12" {
		t.Errorf("URL = %q", rec.URL)
	}
	if p := rec.Published.Parts(); len(p) != 3 || p[0] != 2021 || p[1] != 5 || p[2] != 10 {
		t.Errorf("published parts = %v, want [2021 5 10]", p)
	}
	if len(rec.Authors) != 2 || rec.Authors[0] != (types.Name{Given: "Ravi", Family: "Iyer"}) {
		t.Errorf("authors = %+v", rec.Authors)
	}
}

func TestChemrxivURLFallsBackToIdentifier(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"title": "No DOI Field", "authors": []}`)
	}))
	defer ts.Close()

	src := &chemrxivSource{
		client: ts.Client(),
		cfg:    types.ResolverConfig{ChemrxivAPIBase: ts.URL + "/items/doi/"},
	}
	rec, found, err := src.Lookup(context.Background(), "10.26434/chemrxiv-x")
	if err != nil || !found {
		t.Fatalf("Lookup = found %v, err %v", found, err)
	}
	if rec.URL != "https://doi.org/10.26434/chemrxiv-x" {
		t.Errorf("URL = %q, want identifier-derived fallback", rec.URL)
	}
	if rec.Published != nil {
		t.Errorf("published = %+v, want nil when the item has no date", rec.Published)
	}
}

func TestChemrxivStatuses(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantFound bool
		wantErr   bool
	}{
		{"unknown DOI", http.StatusNotFound, false, false},
		{"server error", http.StatusBadGateway, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer ts.Close()

			src := &chemrxivSource{
				client: ts.Client(),
				cfg:    types.ResolverConfig{ChemrxivAPIBase: ts.URL + "/items/doi/"},
			}
			_, found, err := src.Lookup(context.Background(), "10.26434/chemrxiv-x")
			if found != tt.wantFound {
				t.Errorf("found = %v, want %v", found, tt.wantFound)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseISODate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"full timestamp", "2021-05-10T12:30:00.000Z", []int{2021, 5, 10}},
		{"date only", "2019-12-01", []int{2019, 12, 1}},
		{"year-month only", "2021-05", nil},
		{"garbage", "last tuesday", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseISODate(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Errorf("parseISODate(%q) = %v, want nil", tt.input, got)
				}
				return
			}
			p := got.Parts()
			if len(p) != len(tt.want) {
				t.Fatalf("parseISODate(%q) = %v, want %v", tt.input, p, tt.want)
			}
			for i := range tt.want {
				if p[i] != tt.want[i] {
					t.Errorf("parseISODate(%q)[%d] = %d, want %d", tt.input, i, p[i], tt.want[i])
				}
			}
		})
	}
}
