package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarly/internal/identifier"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List providers and recognized identifier schemes",
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	reg := newRegistry(loadConfig())

	fmt.Println("Providers:")
	for _, p := range reg.Providers() {
		marker := ""
		if p.ID() == reg.Default().ID() {
			marker = " (default)"
		}
		fmt.Printf("  %s%s\n", p.ID(), marker)
	}

	fmt.Println("\nRecognized schemes:")
	names := make([]string, 0)
	for _, s := range identifier.Schemes() {
		names = append(names, s.String())
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
