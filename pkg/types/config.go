package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "publist/0.1 (mailto:someone@example.edu)").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ResolverConfig holds settings for the resolution stage. Endpoint base
// URLs are configuration rather than package constants so tests can
// point the adapters at local servers.
type ResolverConfig struct {
	HTTPConfig `yaml:",inline"`

	// OverridesDir is the directory of manual override JSON files.
	OverridesDir string `json:"overrides_dir" yaml:"overrides_dir"`

	// CrossrefAPIBase is the CrossRef works endpoint (default
	// "https://api.crossref.org/works/").
	CrossrefAPIBase string `json:"crossref_api_base" yaml:"crossref_api_base"`

	// ChemrxivAPIBase is the ChemRxiv items-by-DOI endpoint (default
	// "https://chemrxiv.org/engage/chemrxiv/public-api/v1/items/doi/").
	ChemrxivAPIBase string `json:"chemrxiv_api_base" yaml:"chemrxiv_api_base"`

	// ArxivAPIBase is the arXiv query endpoint (default
	// "https://export.arxiv.org/api/query").
	ArxivAPIBase string `json:"arxiv_api_base" yaml:"arxiv_api_base"`

	// Mailto is a contact email appended to CrossRef requests for the
	// polite pool. Optional.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// Workers is the number of identifiers resolved concurrently.
	// Values below 2 mean sequential resolution.
	Workers int `json:"workers" yaml:"workers"`

	// RequestsPerSecond paces API requests across all sources
	// (default 2). Zero or negative disables pacing.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// BuildConfig holds settings for the build command: where the
// identifier lists live and where the rendered document goes.
type BuildConfig struct {
	// PublishedList is the path to the published-DOI list file.
	PublishedList string `json:"published_list" yaml:"published_list"`

	// PreprintList is the path to the preprint-identifier list file.
	PreprintList string `json:"preprint_list" yaml:"preprint_list"`

	// OutputFile is the path the rendered HTML document is written to.
	OutputFile string `json:"output_file" yaml:"output_file"`

	// ReportFile, when set, receives the resolution report as YAML.
	ReportFile string `json:"report_file,omitempty" yaml:"report_file,omitempty"`
}
