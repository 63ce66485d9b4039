// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"github.com/pdiddy/publist/internal/order"
	"github.com/pdiddy/publist/pkg/types"
)

// Document assembles the full publications page: the preprint block in
// input order, then one block per year group, most recent year first.
// Item numbers start at the total item count and count down across the
// whole page, so preprints take the highest numbers. Every item carries
// an anchor unique within the document ("preprint_N" or "article_N")
// for deep links.
func Document(preprints []*types.Record, groups []order.Group) string {
	num := len(preprints)
	for _, g := range groups {
		num += len(g.Records)
	}

	var b strings.Builder
	b.WriteString("<div id=\"main\"> \n")
	b.WriteString("<h2>Publications</h2> \n")
	b.WriteString("<h3>Preprints</h3> \n")
	b.WriteString("<ol class=\"pubs\"> \n")
	for _, rec := range preprints {
		writeItem(&b, rec, num, "preprint")
		num--
	}
	b.WriteString("</ol>\n")

	for _, g := range groups {
		fmt.Fprintf(&b, "<h3>%d</h3>\n", g.Year)
		b.WriteString("<ol class=\"pubs\">\n")
		for _, rec := range g.Records {
			writeItem(&b, rec, num, "article")
			num--
		}
		b.WriteString("</ol>\n")
	}

	b.WriteString("</div> <!-- End main -->")
	return b.String()
}

// writeItem emits one numbered, anchored list item.
func writeItem(b *strings.Builder, rec *types.Record, num int, anchor string) {
	fmt.Fprintf(b, "<li value=\"%d\">\n", num)
	fmt.Fprintf(b, "<a class=\"anchor\" name=\"%s_%d\"></a>\n", anchor, num)
	b.WriteString(Record(rec))
	b.WriteString("\n</li>\n")
}
