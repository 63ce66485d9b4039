package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/publist/internal/resolve"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [identifiers...]",
	Short: "Resolve identifiers and print their canonical records",
	Long: `Resolve runs each identifier through the same source chain the build uses
(manual override first, then the identifier's network sources) and prints the
canonical record as YAML, or JSON with --json. With --preprint the identifiers
are treated as preprint-list entries, whose chain has no CrossRef step.`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().Bool("preprint", false, "treat identifiers as preprint-list entries")
	resolveCmd.Flags().Bool("json", false, "print records as JSON instead of YAML")
	resolveCmd.Flags().String("overrides-dir", "content/manual_metadata", "directory of manual override JSON files")
	resolveCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	resolveCmd.Flags().Float64("rate", defaultRate, "API requests per second")
	resolveCmd.Flags().String("mailto", "", "contact email for polite API pools (default: secret contact-email)")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more identifiers (DOIs, arXiv or ChemRxiv ids)")
	}

	asPreprint, _ := cmd.Flags().GetBool("preprint")
	asJSON, _ := cmd.Flags().GetBool("json")

	rcfg := resolverConfig(cmd)
	client := &http.Client{Timeout: rcfg.Timeout}
	r := resolve.New(client, rcfg)

	failed := 0
	for _, id := range args {
		resolveOne := r.ResolvePublished
		if asPreprint {
			resolveOne = r.ResolvePreprint
		}
		rec, attempted, err := resolveOne(cmd.Context(), id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", id, err)
			failed++
			continue
		}
		if rec == nil {
			fmt.Fprintf(os.Stderr, "not found: %s (tried: %s)\n", id, strings.Join(attempted, ", "))
			failed++
			continue
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("encoding record: %w", err)
			}
			continue
		}
		data, err := yaml.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling record: %w", err)
		}
		fmt.Printf("---\n%s", data)
	}

	if failed > 0 {
		return fmt.Errorf("%d identifier(s) could not be resolved", failed)
	}
	return nil
}
