// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/publist/internal/httputil"
	"github.com/pdiddy/publist/pkg/types"
)

// arxivAbsBase is the abstract-page prefix for synthesized record URLs.
const arxivAbsBase = "http://arxiv.org/abs/"

// arxivSource looks up preprints on the arXiv query API. The Atom feed
// entry is mapped to the canonical Record: author display names are
// split into given/family with the given portion reduced to initials,
// a journal-reference element marks the preprint as published, and the
// URL points at the abstract page.
type arxivSource struct {
	client  *http.Client
	cfg     types.ResolverConfig
	limiter *rate.Limiter
}

func (s *arxivSource) Name() string { return "arxiv" }

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	Title      string        `xml:"title"`
	Published  string        `xml:"published"`
	JournalRef string        `xml:"journal_ref"`
	Authors    []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// Lookup queries the arXiv API for a single identifier. An optional
// scheme prefix ("arXiv:2301.07041") is stripped before the query; the
// full identifier is kept as the record's container title.
func (s *arxivSource) Lookup(ctx context.Context, identifier string) (*types.Record, bool, error) {
	id := identifier
	if _, rest, ok := strings.Cut(id, ":"); ok {
		id = rest
	}

	apiURL := fmt.Sprintf("%s?id_list=%s", s.cfg.ArxivAPIBase, id)

	resp, err := httputil.PacedGet(ctx, s.client, s.limiter, apiURL, s.cfg.UserAgent)
	if err != nil {
		return nil, false, fmt.Errorf("arXiv request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("arXiv returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("reading arXiv response: %w", err)
	}

	// The API answers malformed identifiers with HTTP 200 and an error
	// entry naming the bad id.
	if strings.Contains(string(body), "incorrect_id_format_for_"+id) {
		return nil, false, nil
	}

	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, false, fmt.Errorf("parsing arXiv response: %w", err)
	}
	if len(feed.Entries) == 0 {
		return nil, false, nil
	}

	entry := feed.Entries[0]
	rec := &types.Record{
		Title:           strings.TrimSpace(entry.Title),
		URL:             arxivAbsBase + id,
		ContainerTitle:  identifier,
		StatusPublished: strings.TrimSpace(entry.JournalRef) != "",
	}

	if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
		rec.Published = &types.Date{DateParts: [][]int{{t.Year(), int(t.Month()), t.Day()}}}
	}

	for _, a := range entry.Authors {
		rec.Authors = append(rec.Authors, splitDisplayName(strings.TrimSpace(a.Name)))
	}
	return rec, true, nil
}

// splitDisplayName divides a feed display name on its last space: the
// final token is the family name, everything before it is the given
// portion, stored abbreviated.
func splitDisplayName(full string) types.Name {
	idx := strings.LastIndex(full, " ")
	if idx < 0 {
		return types.Name{Family: full}
	}
	n := types.Name{Given: full[:idx], Family: full[idx+1:]}
	n.Given = n.AbbreviatedGiven()
	return n
}
