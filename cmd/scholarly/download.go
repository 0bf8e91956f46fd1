package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarly/internal/download"
	"github.com/pdiddy/scholarly/internal/httputil"
)

const defaultDownloadDelay = 1 * time.Second

var downloadCmd = &cobra.Command{
	Use:   "download [identifiers...]",
	Short: "Download paper PDFs to disk",
	Long: `Download resolves each identifier to its canonical record, saves the PDF
under the papers directory, and writes a YAML metadata sidecar. Papers whose
PDF already exists on disk are skipped.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("dir", "papers", "base directory for downloaded papers")
	downloadCmd.Flags().Duration("delay", 0, "delay between consecutive downloads (default 1s)")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more paper identifiers")
	}

	dir, _ := cmd.Flags().GetString("dir")
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = defaultDownloadDelay
	}

	cfg := loadConfig()
	cfg.Download.HTTPConfig = cfg.Provider.HTTPConfig
	cfg.Download.Dir = dir
	cfg.Download.Delay = delay

	svc, c, err := newService(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	client := httputil.NewRetryClient(
		&http.Client{Timeout: cfg.Provider.Timeout},
		cfg.Provider.MaxRetries,
	)

	result := download.Batch(cmd.Context(), svc, client, args, cfg.Download, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d paper(s) failed to download", result.Failed)
	}
	return nil
}
