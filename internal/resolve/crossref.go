// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/pdiddy/publist/internal/httputil"
	"github.com/pdiddy/publist/pkg/types"
)

// cslTransform is the CrossRef content-negotiation suffix that returns
// the work as CSL-JSON.
const cslTransform = "/transform/application/vnd.citationstyles.csl+json"

// crossrefSource looks up DOIs in the CrossRef registry. The CSL-JSON
// transform response is already in the canonical schema and decodes
// straight into a Record.
type crossrefSource struct {
	client  *http.Client
	cfg     types.ResolverConfig
	limiter *rate.Limiter
}

func (s *crossrefSource) Name() string { return "crossref" }

func (s *crossrefSource) Lookup(ctx context.Context, doi string) (*types.Record, bool, error) {
	apiURL := s.cfg.CrossrefAPIBase + doi + cslTransform
	if s.cfg.Mailto != "" {
		apiURL += "?mailto=" + url.QueryEscape(s.cfg.Mailto)
	}

	resp, err := httputil.PacedGet(ctx, s.client, s.limiter, apiURL, s.cfg.UserAgent)
	if err != nil {
		return nil, false, fmt.Errorf("CrossRef request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("CrossRef returned HTTP %d", resp.StatusCode)
	}

	var rec types.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, false, fmt.Errorf("parsing CrossRef response: %w", err)
	}
	return &rec, true, nil
}
