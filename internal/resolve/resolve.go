// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns publication identifiers into canonical
// bibliographic records by trying an ordered chain of sources per
// identifier: the local manual override first, then the identifier's
// network sources. A not-found from one source only advances the chain;
// exhausting the chain produces a report entry, never an abort.
package resolve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/pdiddy/publist/pkg/types"
)

// Default public API endpoints, used when the config leaves them empty.
const (
	DefaultCrossrefAPIBase = "https://api.crossref.org/works/"
	DefaultChemrxivAPIBase = "https://chemrxiv.org/engage/chemrxiv/public-api/v1/items/doi/"
	DefaultArxivAPIBase    = "https://export.arxiv.org/api/query"
)

// Kind classifies an identifier by coarse domain sniffing.
type Kind int

const (
	KindDOI Kind = iota
	KindChemrxiv
	KindArxiv
)

func (k Kind) String() string {
	switch k {
	case KindChemrxiv:
		return "chemrxiv"
	case KindArxiv:
		return "arxiv"
	default:
		return "doi"
	}
}

// Classify determines which preprint domain, if any, an identifier
// belongs to. Matching is substring-based and case-insensitive; no
// further syntax validation is performed.
func Classify(identifier string) Kind {
	lower := strings.ToLower(identifier)
	switch {
	case strings.Contains(lower, "chemrxiv"):
		return KindChemrxiv
	case strings.Contains(lower, "arxiv"):
		return KindArxiv
	default:
		return KindDOI
	}
}

// Source resolves one identifier against a single upstream. found is
// false when the source's not-found signal fired; err is reserved for
// failures the chain does not recover from (unexpected HTTP statuses,
// transport errors, unparsable upstream payloads).
type Source interface {
	Name() string
	Lookup(ctx context.Context, identifier string) (rec *types.Record, found bool, err error)
}

// Resolver runs identifiers through per-identifier source fallback
// chains. Resolution of one identifier is a pure function of the
// identifier and the source responses, so distinct identifiers may be
// resolved concurrently.
type Resolver struct {
	cfg      types.ResolverConfig
	override Source
	crossref Source
	chemrxiv Source
	arxiv    Source
}

// New builds a Resolver. Empty endpoint bases fall back to the public
// API defaults; a shared rate limiter paces requests across all
// network sources.
func New(client *http.Client, cfg types.ResolverConfig) *Resolver {
	if cfg.CrossrefAPIBase == "" {
		cfg.CrossrefAPIBase = DefaultCrossrefAPIBase
	}
	if cfg.ChemrxivAPIBase == "" {
		cfg.ChemrxivAPIBase = DefaultChemrxivAPIBase
	}
	if cfg.ArxivAPIBase == "" {
		cfg.ArxivAPIBase = DefaultArxivAPIBase
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Resolver{
		cfg:      cfg,
		override: &overrideSource{dir: cfg.OverridesDir},
		crossref: &crossrefSource{client: client, cfg: cfg, limiter: limiter},
		chemrxiv: &chemrxivSource{client: client, cfg: cfg, limiter: limiter},
		arxiv:    &arxivSource{client: client, cfg: cfg, limiter: limiter},
	}
}

// domainSource returns the preprint server for the identifier's sniffed
// domain, or nil when neither domain marker is present.
func (r *Resolver) domainSource(identifier string) Source {
	switch Classify(identifier) {
	case KindChemrxiv:
		return r.chemrxiv
	case KindArxiv:
		return r.arxiv
	}
	return nil
}

// publishedChain is the fallback order for entries of the published
// list: local override, CrossRef, then the preprint server for the
// identifier's domain (a published entry may itself carry a
// preprint-style identifier).
func (r *Resolver) publishedChain(identifier string) []Source {
	chain := []Source{r.override, r.crossref}
	if s := r.domainSource(identifier); s != nil {
		chain = append(chain, s)
	}
	return chain
}

// preprintChain is the fallback order for entries of the preprint list.
// Identifiers without a recognized domain marker get the override only;
// there is no network fallback for them.
func (r *Resolver) preprintChain(identifier string) []Source {
	chain := []Source{r.override}
	if s := r.domainSource(identifier); s != nil {
		chain = append(chain, s)
	}
	return chain
}

// resolveChain walks the chain, short-circuiting on the first source
// that finds a record. A nil record with nil error means every source
// reported not-found; attempted lists the source names tried, for the
// failure report.
func (r *Resolver) resolveChain(ctx context.Context, identifier string, chain []Source) (*types.Record, []string, error) {
	var attempted []string
	for _, src := range chain {
		attempted = append(attempted, src.Name())
		rec, found, err := src.Lookup(ctx, identifier)
		if err != nil {
			return nil, attempted, fmt.Errorf("%s: %w", src.Name(), err)
		}
		if found {
			return rec, attempted, nil
		}
	}
	return nil, attempted, nil
}

// ResolvePublished resolves one entry of the published list.
func (r *Resolver) ResolvePublished(ctx context.Context, identifier string) (*types.Record, []string, error) {
	return r.resolveChain(ctx, identifier, r.publishedChain(identifier))
}

// ResolvePreprint resolves one entry of the preprint list.
func (r *Resolver) ResolvePreprint(ctx context.Context, identifier string) (*types.Record, []string, error) {
	return r.resolveChain(ctx, identifier, r.preprintChain(identifier))
}

// PublishedStatus reports whether a resolved preprint record carries
// evidence of a permanent publication. The flag only feeds the report;
// moving the identifier to the published list stays a human edit.
func PublishedStatus(rec *types.Record) bool {
	return rec != nil && rec.StatusPublished
}

// Output holds resolved records in input order plus the report.
type Output struct {
	Preprints []*types.Record
	Published []*types.Record
	Report    types.Report
}

// result is one identifier's resolution outcome, filling one slot of
// the per-list results slice.
type result struct {
	record    *types.Record
	attempted []string
	err       error
}

// resolveList resolves ids through chains built by chainFor. Each
// identifier owns one slot of the returned slice, so output order
// matches input order regardless of completion order when resolving
// in parallel.
func (r *Resolver) resolveList(ctx context.Context, ids []string, chainFor func(string) []Source) []result {
	results := make([]result, len(ids))

	workers := r.cfg.Workers
	if workers < 2 || len(ids) < 2 {
		for i, id := range ids {
			rec, attempted, err := r.resolveChain(ctx, id, chainFor(id))
			results[i] = result{record: rec, attempted: attempted, err: err}
		}
		return results
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			rec, attempted, err := r.resolveChain(ctx, id, chainFor(id))
			results[i] = result{record: rec, attempted: attempted, err: err}
		}(i, id)
	}
	wg.Wait()
	return results
}

// ResolveAll resolves the preprint list, then the published list,
// preserving input order in the returned record slices. No failure
// stops the batch: an unresolved identifier produces exactly one report
// entry and the remaining identifiers proceed. Warnings go to w.
func (r *Resolver) ResolveAll(ctx context.Context, published, preprints []string, w io.Writer) Output {
	var out Output

	for i, res := range r.resolveList(ctx, preprints, r.preprintChain) {
		id := preprints[i]
		if res.err != nil {
			fmt.Fprintf(w, "warning: %s: %v\n", id, res.err)
		}
		if res.record == nil {
			out.Report.UnresolvedPreprints = append(out.Report.UnresolvedPreprints,
				types.Failure{Identifier: id, Attempted: res.attempted})
			continue
		}
		out.Preprints = append(out.Preprints, res.record)
		if PublishedStatus(res.record) {
			out.Report.PublishedPreprints = append(out.Report.PublishedPreprints, id)
		}
	}

	for i, res := range r.resolveList(ctx, published, r.publishedChain) {
		id := published[i]
		if res.err != nil {
			fmt.Fprintf(w, "warning: %s: %v\n", id, res.err)
		}
		if res.record == nil {
			out.Report.UnresolvedPublished = append(out.Report.UnresolvedPublished,
				types.Failure{Identifier: id, Attempted: res.attempted})
			continue
		}
		out.Published = append(out.Published, res.record)
	}

	return out
}
