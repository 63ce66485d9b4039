// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/publist/pkg/types"
)

// ReportFile is the on-disk representation of a resolution report, so
// unresolved identifiers and published-preprint notices from a build
// can be consumed by other tooling.
type ReportFile struct {
	Report  types.Report  `yaml:"report"`
	Summary ReportSummary `yaml:"summary"`
}

// ReportSummary stores run statistics and a timestamp.
type ReportSummary struct {
	Preprints  int       `yaml:"preprints"`
	Published  int       `yaml:"published"`
	Unresolved int       `yaml:"unresolved"`
	Timestamp  time.Time `yaml:"timestamp"`
}

// WriteReportFile saves a build's report and summary to a YAML file.
func WriteReportFile(path string, out Output) error {
	rf := ReportFile{
		Report: out.Report,
		Summary: ReportSummary{
			Preprints:  len(out.Preprints),
			Published:  len(out.Published),
			Unresolved: len(out.Report.UnresolvedPreprints) + len(out.Report.UnresolvedPublished),
			Timestamp:  time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling report file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReportFile loads a previously written report file from disk.
func ReadReportFile(path string) (*ReportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report file: %w", err)
	}
	var rf ReportFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing report file: %w", err)
	}
	return &rf, nil
}
