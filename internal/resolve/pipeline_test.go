// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/publist/internal/order"
	"github.com/pdiddy/publist/internal/render"
	"github.com/pdiddy/publist/internal/resolve"
	"github.com/pdiddy/publist/pkg/types"
)

// TestBuildFromOverrideOnly walks the whole pipeline for a single
// published identifier backed by a manual metadata file: resolve, sort,
// group, render. No network request may be made.
func TestBuildFromOverrideOnly(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer ts.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "10.1-x.json")
	body := `{
		"title": "Spin Dynamics",
		"authors": [{"firstName": "A", "lastName": "B"}],
		"URL": "u",
		"published": {"date-parts": [[2021, 5]]}
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	r := resolve.New(ts.Client(), types.ResolverConfig{
		HTTPConfig:      types.HTTPConfig{Timeout: 5 * time.Second},
		OverridesDir:    dir,
		CrossrefAPIBase: ts.URL + "/works/",
		ChemrxivAPIBase: ts.URL + "/items/doi/",
		ArxivAPIBase:    ts.URL + "/api/query",
	})
	out := r.ResolveAll(context.Background(), []string{"10.1/x"}, nil, io.Discard)

	if out.Report.HasFailures() {
		t.Fatalf("report = %+v, want no failures", out.Report)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("network calls = %d, want 0 when the override resolves", n)
	}
	if len(out.Published) != 1 {
		t.Fatalf("published = %d, want 1", len(out.Published))
	}

	order.Sort(out.Published)
	groups := order.GroupByYear(out.Published)
	if len(groups) != 1 || groups[0].Year != 2021 {
		t.Fatalf("groups = %+v, want one 2021 section", groups)
	}

	doc := render.Document(out.Preprints, groups)

	if !strings.Contains(doc, "<h3>2021</h3>") {
		t.Error("document missing the 2021 section heading")
	}
	if !strings.Contains(doc, `<a class="anchor" name="article_1"></a>`) {
		t.Error("document missing the article_1 anchor")
	}
	wantItem := `A. B.,<span class="title"><a href="u"> Spin Dynamics</a>. </span><span class="year">(2021)</span>.`
	if !strings.Contains(doc, wantItem) {
		t.Errorf("document missing rendered record %q in:\n%s", wantItem, doc)
	}
}
