package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholarly/internal/cache"
	"github.com/pdiddy/scholarly/pkg/types"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the local paper cache",
}

var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all cached paper records to stdout as YAML",
	RunE:  runCacheExport,
}

var cacheSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove expired cache entries",
	RunE:  runCacheSweep,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cache entry",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheExportCmd)
	cacheCmd.AddCommand(cacheSweepCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	rootCmd.AddCommand(cacheCmd)
}

func runCacheExport(cmd *cobra.Command, args []string) error {
	store, err := openStorage(loadConfig().Cache)
	if err != nil {
		return err
	}
	defer store.Close()

	lister, ok := store.(cache.Lister)
	if !ok {
		return fmt.Errorf("cache backend does not support export")
	}
	entries, err := lister.List()
	if err != nil {
		return err
	}

	// One record per canonical id: aliases all point at the same payload.
	byID := make(map[string]types.Paper)
	for _, entry := range entries {
		byID[entry.Paper.ID] = entry.Paper
	}
	papers := make([]types.Paper, 0, len(byID))
	for _, p := range byID {
		papers = append(papers, p)
	}

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(papers)
}

func runCacheSweep(cmd *cobra.Command, args []string) error {
	store, err := openStorage(loadConfig().Cache)
	if err != nil {
		return err
	}
	defer store.Close()

	sqlite, ok := store.(*cache.SQLiteStore)
	if !ok {
		return fmt.Errorf("sweep is only supported on the sqlite backend")
	}
	pruned, err := sqlite.Sweep(time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("pruned %d expired entry(s)\n", pruned)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, err := openStorage(loadConfig().Cache)
	if err != nil {
		return err
	}
	defer store.Close()

	clearer, ok := store.(cache.Clearer)
	if !ok {
		return fmt.Errorf("cache backend does not support clear")
	}
	if err := clearer.Clear(); err != nil {
		return err
	}
	fmt.Println("cache cleared")
	return nil
}
