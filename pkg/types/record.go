// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Name holds one author name in CSL form.
type Name struct {
	Given  string `json:"given,omitempty" yaml:"given,omitempty"`
	Family string `json:"family,omitempty" yaml:"family,omitempty"`
}

// AbbreviatedGiven reduces the given-name portion to initials in the
// APA style: "Jean-Paul A" becomes "J.-P. A.". Space-separated tokens
// are initialed independently; hyphenated tokens keep their hyphens.
// Trailing periods are stripped first, so an already-abbreviated name
// passes through unchanged.
func (n Name) AbbreviatedGiven() string {
	given := strings.TrimRight(n.Given, ".")
	if given == "" {
		return ""
	}
	words := strings.Split(given, " ")
	for i, word := range words {
		parts := strings.Split(word, "-")
		for j, part := range parts {
			r := []rune(part)
			if len(r) == 0 {
				continue
			}
			parts[j] = string(r[0]) + "."
		}
		words[i] = strings.Join(parts, "-")
	}
	return strings.Join(words, " ")
}

// Date is a CSL date: rows of date-parts holding year, optional month,
// optional day. Only the first row is meaningful for our sources.
type Date struct {
	DateParts [][]int `json:"date-parts" yaml:"date-parts"`
}

// Parts returns the first date-parts row, or nil when the date is absent
// or empty. Safe to call on a nil Date.
func (d *Date) Parts() []int {
	if d == nil || len(d.DateParts) == 0 {
		return nil
	}
	return d.DateParts[0]
}

// Year returns the year component and whether one exists.
func (d *Date) Year() (int, bool) {
	p := d.Parts()
	if len(p) == 0 {
		return 0, false
	}
	return p[0], true
}

// Record is the canonical bibliographic record every source normalizes
// into. JSON tags follow the CSL-JSON schema, so a CrossRef
// citationstyles transform response decodes directly into it and manual
// override files can be written in the same shape.
//
// Title, Authors, and URL are always present once a record exists; the
// remaining fields are optional and render as empty segments when absent.
// Records are created once by the winning source and never mutated.
type Record struct {
	Title               string `json:"title" yaml:"title"`
	Authors             []Name `json:"author" yaml:"author"`
	ContainerTitle      string `json:"container-title,omitempty" yaml:"container-title,omitempty"`
	ContainerTitleShort string `json:"container-title-short,omitempty" yaml:"container-title-short,omitempty"`
	Volume              string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Page                string `json:"page,omitempty" yaml:"page,omitempty"`
	ArticleNumber       string `json:"article-number,omitempty" yaml:"article-number,omitempty"`
	URL                 string `json:"URL" yaml:"URL"`
	Published           *Date  `json:"published,omitempty" yaml:"published,omitempty"`
	Created             *Date  `json:"created,omitempty" yaml:"created,omitempty"`

	// StatusPublished marks a preprint whose source reported a journal
	// reference, i.e. the work now has a permanent publication. Not a
	// CSL field.
	StatusPublished bool `json:"status_published,omitempty" yaml:"status_published,omitempty"`
}

// Failure records an identifier that no source in its chain could
// resolve, along with the sources that were attempted.
type Failure struct {
	Identifier string   `json:"identifier" yaml:"identifier"`
	Attempted  []string `json:"attempted" yaml:"attempted"`
}

// Report collects resolution outcomes for display. How these lists are
// shown (or whether they are shown at all) is the caller's decision.
type Report struct {
	UnresolvedPublished []Failure `json:"unresolved_published,omitempty" yaml:"unresolved_published,omitempty"`
	UnresolvedPreprints []Failure `json:"unresolved_preprints,omitempty" yaml:"unresolved_preprints,omitempty"`

	// PublishedPreprints lists preprint identifiers whose record carries
	// StatusPublished. Updating the published list remains a human edit.
	PublishedPreprints []string `json:"published_preprints,omitempty" yaml:"published_preprints,omitempty"`
}

// HasFailures reports whether any identifier was left unresolved.
func (r Report) HasFailures() bool {
	return len(r.UnresolvedPublished) > 0 || len(r.UnresolvedPreprints) > 0
}
