// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestAbbreviatedGiven(t *testing.T) {
	tests := []struct {
		name  string
		given string
		want  string
	}{
		{"single name", "Paul", "P."},
		{"name and initial", "Paul J", "P. J."},
		{"hyphenated", "Jean-Paul", "J.-P."},
		{"hyphenated plus initial", "Jean-Paul A", "J.-P. A."},
		{"already abbreviated", "J.-P. A.", "J.-P. A."},
		{"dotted initial", "A.", "A."},
		{"bare initial", "A", "A."},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Name{Given: tt.given, Family: "X"}.AbbreviatedGiven()
			if got != tt.want {
				t.Errorf("AbbreviatedGiven(%q) = %q, want %q", tt.given, got, tt.want)
			}
		})
	}
}

func TestDateHelpers(t *testing.T) {
	var nilDate *Date
	if p := nilDate.Parts(); p != nil {
		t.Errorf("nil date Parts() = %v, want nil", p)
	}
	if _, ok := nilDate.Year(); ok {
		t.Error("nil date Year() ok = true, want false")
	}

	empty := &Date{}
	if _, ok := empty.Year(); ok {
		t.Error("empty date Year() ok = true, want false")
	}

	full := &Date{DateParts: [][]int{{2021, 5, 10}}}
	if p := full.Parts(); len(p) != 3 || p[0] != 2021 || p[1] != 5 || p[2] != 10 {
		t.Errorf("Parts() = %v, want [2021 5 10]", p)
	}
	if y, ok := full.Year(); !ok || y != 2021 {
		t.Errorf("Year() = %d, %v, want 2021, true", y, ok)
	}

	yearOnly := &Date{DateParts: [][]int{{2019}}}
	if y, ok := yearOnly.Year(); !ok || y != 2019 {
		t.Errorf("Year() = %d, %v, want 2019, true", y, ok)
	}
}

func TestReportHasFailures(t *testing.T) {
	if (Report{}).HasFailures() {
		t.Error("empty report should have no failures")
	}
	r := Report{UnresolvedPreprints: []Failure{{Identifier: "arXiv:9999.00001"}}}
	if !r.HasFailures() {
		t.Error("report with unresolved preprint should have failures")
	}
	r = Report{PublishedPreprints: []string{"arXiv:2301.07041"}}
	if r.HasFailures() {
		t.Error("published-preprint notices are not failures")
	}
}
