package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarly/internal/provider"
	"github.com/pdiddy/scholarly/pkg/types"
)

var getCmd = &cobra.Command{
	Use:   "get [identifiers...]",
	Short: "Fetch paper records by identifier",
	Long: `Get fetches the canonical record for each identifier, in any supported
representation. Records are served from the local cache when fresh; a miss
triggers one provider fetch and populates the cache.`,
	RunE: runGet,
}

func init() {
	getCmd.Flags().Bool("json", false, "output records as JSON")
	getCmd.Flags().Bool("no-cache", false, "bypass the cache entirely")

	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more paper identifiers")
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	cfg := loadConfig()
	if noCache {
		cfg.Cache.Backend = "memory"
	}
	svc, c, err := newService(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	var fetched []types.Paper
	failures := 0
	for _, id := range args {
		paper, err := svc.GetPaper(cmd.Context(), id)
		if err != nil {
			failures++
			if errors.Is(err, provider.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "%s: not found\n", id)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %v\n", id, err)
			}
			continue
		}
		fetched = append(fetched, *paper)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fetched); err != nil {
			return err
		}
	} else {
		for i := range fetched {
			printPaper(&fetched[i])
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d identifier(s) failed", failures)
	}
	return nil
}

func printPaper(p *types.Paper) {
	fmt.Printf("%s\n", p.Title)
	fmt.Printf("  id: %s (provider %s)\n", p.ID, p.ProviderID)
	for _, au := range p.Authors {
		fmt.Printf("  author: %s\n", au.Name)
	}
	if p.PublishedDate != "" {
		fmt.Printf("  published: %s\n", p.PublishedDate)
	}
	if p.DOI != "" {
		fmt.Printf("  doi: %s\n", p.DOI)
	}
	if p.PDFURL != "" {
		fmt.Printf("  pdf: %s\n", p.PDFURL)
	}
	if p.HTMLURL != "" {
		fmt.Printf("  html: %s\n", p.HTMLURL)
	}
	for _, id := range p.Metadata.Identifiers {
		fmt.Printf("  identifier: %s:%s\n", id.Scheme, id.Value)
	}
	fmt.Println()
}
