// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns canonical records into the citation markup of
// the publications page. It consumes only the canonical schema; any
// source-specific field handling happens at the resolve boundary.
package render

import (
	"fmt"
	"strings"

	"github.com/pdiddy/publist/pkg/types"
)

// Record renders one record as citation markup: authors, linked title,
// journal, volume, pages, and year, concatenated in fixed order with a
// trailing period. Absent optional fields contribute empty strings,
// never placeholders.
func Record(rec *types.Record) string {
	var b strings.Builder
	b.WriteString(authorSegment(rec.Authors))
	b.WriteString(titleSegment(rec))
	b.WriteString(journalSegment(rec))
	b.WriteString(volumeSegment(rec))
	b.WriteString(pageSegment(rec))
	b.WriteString(yearSegment(rec))
	b.WriteString(".")
	return b.String()
}

// authorSegment joins names with ", ", switching to " and " before the
// final author when there are two or more. Given names render as
// initials.
func authorSegment(authors []types.Name) string {
	var b strings.Builder
	for i, a := range authors {
		if i == len(authors)-1 && len(authors) > 1 {
			b.WriteString(" and ")
		} else if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(displayName(a))
	}
	b.WriteString(",")
	return b.String()
}

// displayName is "J.-P. Sartre" style: abbreviated given name, then
// family name.
func displayName(n types.Name) string {
	given := n.AbbreviatedGiven()
	if given == "" {
		return n.Family
	}
	return given + " " + n.Family
}

func titleSegment(rec *types.Record) string {
	return fmt.Sprintf(`<span class="title"><a href="%s"> %s</a>. </span>`, rec.URL, rec.Title)
}

// journalSegment prefers the full container title, falling back to the
// short form.
func journalSegment(rec *types.Record) string {
	title := strings.TrimSpace(rec.ContainerTitle)
	if title == "" {
		title = strings.TrimSpace(rec.ContainerTitleShort)
	}
	if title == "" {
		return ""
	}
	return `<span class="journal">` + title + ` </span>`
}

func volumeSegment(rec *types.Record) string {
	if rec.Volume == "" {
		return ""
	}
	return `<span class="vol">` + rec.Volume + `, </span>`
}

// pageSegment prefers the page range, falling back to the article
// number.
func pageSegment(rec *types.Record) string {
	page := rec.Page
	if page == "" {
		page = rec.ArticleNumber
	}
	if page == "" {
		return ""
	}
	return `<span class="pages">` + page + ` </span>`
}

func yearSegment(rec *types.Record) string {
	y, ok := rec.Published.Year()
	if !ok {
		return ""
	}
	return fmt.Sprintf(`<span class="year">(%d)</span>`, y)
}
