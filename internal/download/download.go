// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download saves paper PDFs and YAML metadata sidecars to disk.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholarly/internal/papers"
	"github.com/pdiddy/scholarly/internal/provider"
	"github.com/pdiddy/scholarly/pkg/types"
)

const (
	rawDir      = "raw"
	metadataDir = "metadata"
)

// BatchResult holds the outcome of a batch download run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Papers     []*types.Paper
}

// Total returns the total number of identifiers processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any downloads failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// One resolves a single identifier through the paper service, downloads
// its PDF, and writes a YAML metadata sidecar. If the PDF already exists
// on disk the download is skipped; the skipped return value says so.
func One(ctx context.Context, svc *papers.Service, client provider.Doer, id string, cfg types.DownloadConfig, w io.Writer) (paper *types.Paper, skipped bool, err error) {
	paper, err = svc.GetPaper(ctx, id)
	if err != nil {
		return nil, false, err
	}

	slug := Slug(paper.ID)
	pdfPath := filepath.Join(cfg.Dir, rawDir, slug+".pdf")
	metaPath := filepath.Join(cfg.Dir, metadataDir, slug+".yaml")

	// Skip if the PDF already exists.
	if _, statErr := os.Stat(pdfPath); statErr == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", slug)
		return paper, true, nil
	}

	if paper.PDFURL == "" {
		return nil, false, fmt.Errorf("no PDF URL for %q", id)
	}

	for _, dir := range []string{
		filepath.Join(cfg.Dir, rawDir),
		filepath.Join(cfg.Dir, metadataDir),
	} {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return nil, false, fmt.Errorf("creating directory %s: %w", dir, mkErr)
		}
	}

	fmt.Fprintf(w, "downloading: %s (%s)\n", slug, paper.ProviderID)

	if err := downloadFile(ctx, client, paper.PDFURL, pdfPath, cfg); err != nil {
		return nil, false, fmt.Errorf("downloading %s: %w", slug, err)
	}

	if err := writeMetadata(paper, metaPath); err != nil {
		return nil, false, fmt.Errorf("writing metadata for %s: %w", slug, err)
	}

	return paper, false, nil
}

// Batch processes multiple identifiers, printing per-item status and
// returning a summary. It continues after individual failures and applies
// a delay between consecutive downloads.
func Batch(ctx context.Context, svc *papers.Service, client provider.Doer, ids []string, cfg types.DownloadConfig, w io.Writer) BatchResult {
	var result BatchResult
	for i, id := range ids {
		if i > 0 && cfg.Delay > 0 {
			time.Sleep(cfg.Delay)
		}
		paper, wasSkipped, err := One(ctx, svc, client, id, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
			result.Failed++
			continue
		}
		if wasSkipped {
			result.Skipped++
		} else {
			result.Downloaded++
		}
		result.Papers = append(result.Papers, paper)
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}

// Slug converts a canonical paper id into a filesystem-safe name
// ("arxiv:2101.12345" -> "arxiv-2101.12345").
func Slug(id string) string {
	replacer := strings.NewReplacer(":", "-", "/", "-", "\\", "-")
	return replacer.Replace(id)
}

// downloadFile fetches url to destPath using a temporary file so a
// partial download never lands at the final path. Sets User-Agent and
// requests PDF via the Accept header; redirects are the client's job.
func downloadFile(ctx context.Context, client provider.Doer, url, destPath string, cfg types.DownloadConfig) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func writeMetadata(paper *types.Paper, path string) error {
	data, err := yaml.Marshal(paper)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata file: %w", err)
	}
	return nil
}
