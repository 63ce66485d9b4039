// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package order derives chronological sort keys for records and groups
// a sorted list into year sections.
package order

import (
	"sort"
	"time"

	"github.com/pdiddy/publist/pkg/types"
)

// Group is one year section of the published list, internally ordered
// most recent first.
type Group struct {
	Year    int
	Records []*types.Record
}

// sortTime derives the sort key: the published date when it carries at
// least year and month (a missing day defaults to the 1st), otherwise
// the created date under the same rule. ok is false when neither date
// qualifies; such records sort after every dated one.
func sortTime(rec *types.Record) (time.Time, bool) {
	for _, d := range []*types.Date{rec.Published, rec.Created} {
		p := d.Parts()
		if len(p) < 2 {
			continue
		}
		day := 1
		if len(p) >= 3 {
			day = p[2]
		}
		return time.Date(p[0], time.Month(p[1]), day, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// groupYear is the grouping key: the published year when present (even
// when the sort key fell back to the created date), else the created
// year, else zero.
func groupYear(rec *types.Record) int {
	for _, d := range []*types.Date{rec.Published, rec.Created} {
		if y, ok := d.Year(); ok {
			return y
		}
	}
	return 0
}

// Sort orders records most recent first. The sort is stable: records
// with equal keys keep their input order, and undated records trail the
// list in input order.
func Sort(records []*types.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, iok := sortTime(records[i])
		tj, jok := sortTime(records[j])
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return ti.After(tj)
	})
}

// GroupByYear walks an already-sorted list and starts a new group each
// time the year changes. Groups inherit the list's ordering; nothing is
// re-sorted across group boundaries.
func GroupByYear(records []*types.Record) []Group {
	var groups []Group
	for _, rec := range records {
		y := groupYear(rec)
		if len(groups) == 0 || groups[len(groups)-1].Year != y {
			groups = append(groups, Group{Year: y})
		}
		last := len(groups) - 1
		groups[last].Records = append(groups[last].Records, rec)
	}
	return groups
}
