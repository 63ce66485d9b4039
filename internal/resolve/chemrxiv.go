// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/publist/internal/httputil"
	"github.com/pdiddy/publist/pkg/types"
)

// doiResolverBase is the canonical DOI resolver used for synthesized
// record URLs.
const doiResolverBase = "https://doi.org/"

// chemrxivSource looks up preprints by DOI on the ChemRxiv public API.
// The item response is not CSL-shaped, so the source maps it to the
// canonical Record: container title injected, ISO timestamp parsed into
// date-parts, URL synthesized from the DOI resolver.
type chemrxivSource struct {
	client  *http.Client
	cfg     types.ResolverConfig
	limiter *rate.Limiter
}

func (s *chemrxivSource) Name() string { return "chemrxiv" }

// chemrxivItem captures the fields we need from a ChemRxiv item record.
type chemrxivItem struct {
	DOI           string           `json:"doi"`
	Title         string           `json:"title"`
	PublishedDate string           `json:"publishedDate"`
	Authors       []chemrxivAuthor `json:"authors"`
}

type chemrxivAuthor struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *chemrxivSource) Lookup(ctx context.Context, identifier string) (*types.Record, bool, error) {
	apiURL := s.cfg.ChemrxivAPIBase + identifier

	resp, err := httputil.PacedGet(ctx, s.client, s.limiter, apiURL, s.cfg.UserAgent)
	if err != nil {
		return nil, false, fmt.Errorf("ChemRxiv request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("ChemRxiv returned HTTP %d", resp.StatusCode)
	}

	var item chemrxivItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, false, fmt.Errorf("parsing ChemRxiv response: %w", err)
	}

	doi := item.DOI
	if doi == "" {
		doi = identifier
	}

	rec := &types.Record{
		Title:          item.Title,
		ContainerTitle: "ChemRxiv",
		URL:            doiResolverBase + doi,
		Published:      parseISODate(item.PublishedDate),
	}
	for _, a := range item.Authors {
		rec.Authors = append(rec.Authors, types.Name{Given: a.FirstName, Family: a.LastName})
	}
	return rec, true, nil
}

// parseISODate converts an ISO timestamp ("2021-05-10T12:30:00Z") into
// CSL date-parts, dropping the time of day. Returns nil when the string
// does not carry a full year-month-day date.
func parseISODate(s string) *types.Date {
	datePart, _, _ := strings.Cut(s, "T")
	fields := strings.Split(datePart, "-")
	if len(fields) != 3 {
		return nil
	}
	parts := make([]int, 0, 3)
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil
		}
		parts = append(parts, n)
	}
	return &types.Date{DateParts: [][]int{parts}}
}
