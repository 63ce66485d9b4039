package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/publist/internal/order"
	"github.com/pdiddy/publist/internal/render"
	"github.com/pdiddy/publist/internal/resolve"
	"github.com/pdiddy/publist/internal/secrets"
	"github.com/pdiddy/publist/pkg/types"
)

const (
	defaultTimeout = 60 * time.Second
	defaultRate    = 2.0
	userAgentBase  = "publist/0.1"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Resolve the identifier lists and write the publications page",
	Long: `Build reads the published-DOI and preprint-identifier list files, resolves
each identifier through its source chain (manual override, CrossRef, preprint
servers), and writes the rendered publications page. Unresolved identifiers
and preprints detected as published are reported on stdout; fixing the list
files is left to you.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("published-list", "content/doi_published.txt", "published DOI list file")
	buildCmd.Flags().String("preprint-list", "content/preprint_ids.txt", "preprint identifier list file")
	buildCmd.Flags().String("overrides-dir", "content/manual_metadata", "directory of manual override JSON files")
	buildCmd.Flags().String("output", "source/publications", "output file for the rendered page")
	buildCmd.Flags().String("report-file", "", "optional YAML file for the resolution report")
	buildCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	buildCmd.Flags().Int("workers", 1, "identifiers resolved concurrently")
	buildCmd.Flags().Float64("rate", defaultRate, "API requests per second")
	buildCmd.Flags().String("mailto", "", "contact email for polite API pools (default: secret contact-email)")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	bcfg := types.BuildConfig{
		PublishedList: stringSetting(cmd, "published-list", "published_list"),
		PreprintList:  stringSetting(cmd, "preprint-list", "preprint_list"),
		OutputFile:    stringSetting(cmd, "output", "output_file"),
	}
	bcfg.ReportFile, _ = cmd.Flags().GetString("report-file")
	rcfg := resolverConfig(cmd)

	published, err := resolve.ReadIdentifierList(bcfg.PublishedList)
	if err != nil {
		return err
	}
	preprints, err := resolve.ReadIdentifierList(bcfg.PreprintList)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: rcfg.Timeout}
	r := resolve.New(client, rcfg)

	fmt.Printf("Resolving %d preprint and %d published identifier(s)\n", len(preprints), len(published))
	out := r.ResolveAll(cmd.Context(), published, preprints, os.Stdout)

	printReport(os.Stdout, bcfg, rcfg, out.Report)

	order.Sort(out.Published)
	doc := render.Document(out.Preprints, order.GroupByYear(out.Published))
	if err := writeFileAtomic(bcfg.OutputFile, []byte(doc)); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d items)\n", bcfg.OutputFile, len(out.Preprints)+len(out.Published))

	if bcfg.ReportFile != "" {
		if err := resolve.WriteReportFile(bcfg.ReportFile, out); err != nil {
			return err
		}
	}

	if out.Report.HasFailures() {
		n := len(out.Report.UnresolvedPreprints) + len(out.Report.UnresolvedPublished)
		return fmt.Errorf("%d identifier(s) could not be resolved", n)
	}
	return nil
}

// resolverConfig assembles the resolution settings shared by the build
// and resolve commands from their flags, the config file, and the
// loaded secrets.
func resolverConfig(cmd *cobra.Command) types.ResolverConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	workers, _ := cmd.Flags().GetInt("workers")
	rps, _ := cmd.Flags().GetFloat64("rate")

	mailto, _ := cmd.Flags().GetString("mailto")
	mailto = secretDefault(secrets.ContactEmailKey, mailto)

	userAgent := userAgentBase
	if mailto != "" {
		userAgent = fmt.Sprintf("%s (mailto:%s)", userAgentBase, mailto)
	}

	return types.ResolverConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		OverridesDir:      stringSetting(cmd, "overrides-dir", "overrides_dir"),
		Mailto:            mailto,
		Workers:           workers,
		RequestsPerSecond: rps,
	}
}

// stringSetting returns the flag value, letting a config-file key
// override the default when the flag was not set on the command line.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// printReport shows the outcomes that need a human: preprints with a
// permanent DOI, and identifiers no source could resolve.
func printReport(w io.Writer, bcfg types.BuildConfig, rcfg types.ResolverConfig, rep types.Report) {
	if len(rep.PublishedPreprints) > 0 {
		fmt.Fprintln(w, "The following preprints were detected as having been published:")
		for _, id := range rep.PublishedPreprints {
			fmt.Fprintln(w, "----", id)
		}
		fmt.Fprintf(w, "Please update entries in %s with the permanent DOI\n", bcfg.PublishedList)
	}

	if len(rep.UnresolvedPreprints) > 0 {
		fmt.Fprintln(w, "The following preprints were not found:")
		for _, f := range rep.UnresolvedPreprints {
			fmt.Fprintf(w, "---- %s (tried: %s)\n", f.Identifier, strings.Join(f.Attempted, ", "))
		}
		fmt.Fprintf(w, "Please either correct the entry or add a manual metadata file in %s\n", rcfg.OverridesDir)
	}

	if len(rep.UnresolvedPublished) > 0 {
		fmt.Fprintln(w, "The following papers were not found:")
		for _, f := range rep.UnresolvedPublished {
			fmt.Fprintf(w, "---- %s (tried: %s)\n", f.Identifier, strings.Join(f.Attempted, ", "))
		}
		fmt.Fprintf(w, "Please either correct the entry or add a manual metadata file in %s\n", rcfg.OverridesDir)
	}
}

// writeFileAtomic writes data via a temp file in the destination
// directory, renaming on success, so a failed build never truncates an
// existing page.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".publist-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing output: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
