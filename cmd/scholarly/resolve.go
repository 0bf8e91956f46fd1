package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarly/internal/identifier"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [text...]",
	Short: "Recognize paper identifiers in free-form text",
	Long: `Resolve recognizes each argument as a paper identifier — bare, prefixed,
or URL form — and prints the scheme, normalized value, and canonical URL.
Unrecognized arguments are reported but are not an error.`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more identifiers to resolve")
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	type resolution struct {
		Input      string `json:"input"`
		Recognized bool   `json:"recognized"`
		Scheme     string `json:"scheme,omitempty"`
		Value      string `json:"value,omitempty"`
		URL        string `json:"url,omitempty"`
		Display    string `json:"display,omitempty"`
	}

	results := make([]resolution, 0, len(args))
	for _, text := range args {
		r := resolution{Input: text}
		if n, ok := identifier.Recognize(text); ok {
			r.Recognized = true
			r.Scheme = n.Scheme.String()
			r.Value = n.Value
			r.URL = n.URL
			r.Display = identifier.Format(n.Scheme, n.Value)
		}
		results = append(results, r)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, r := range results {
		if !r.Recognized {
			fmt.Printf("%s: not recognized\n", r.Input)
			continue
		}
		fmt.Printf("%s: %s (scheme %s, value %s)\n  %s\n", r.Input, r.Display, r.Scheme, r.Value, r.URL)
	}
	return nil
}
