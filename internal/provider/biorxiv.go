// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/scholarly/internal/identifier"
	"github.com/pdiddy/scholarly/pkg/types"
)

// biorxivAPIBase is the bioRxiv/medRxiv API host. Declared as a var so
// tests can substitute an httptest server.
var biorxivAPIBase = "https://api.biorxiv.org"

// biorxivDOIPrefix is the Cold Spring Harbor DOI prefix shared by bioRxiv
// and medRxiv preprints.
const biorxivDOIPrefix = "10.1101/"

// searchInterval is the recent-papers window scanned for searches. The
// upstream exposes no search endpoint, so search fetches a window of
// recent papers and filters client-side.
const searchInterval = "365d"

// Biorxiv serves both the bioRxiv and medRxiv preprint servers, which
// share one API host distinguished by a path segment.
type Biorxiv struct {
	client  Doer
	base    string
	server  string
	cfg     types.ProviderConfig
	limiter *rate.Limiter
}

// NewBiorxiv creates a provider for server "biorxiv" or "medrxiv".
func NewBiorxiv(client Doer, server string, cfg types.ProviderConfig) *Biorxiv {
	return NewBiorxivAt(biorxivAPIBase, client, server, cfg)
}

// NewBiorxivAt creates the provider against an explicit endpoint, used by
// tests in other packages to point at an httptest server.
func NewBiorxivAt(base string, client Doer, server string, cfg types.ProviderConfig) *Biorxiv {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Biorxiv{
		client:  client,
		base:    base,
		server:  server,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// ID returns the provider identifier ("biorxiv" or "medrxiv").
func (b *Biorxiv) ID() string { return b.server }

// Fetch retrieves one preprint by its date-form id ("2020.03.24.005306")
// or full DOI ("10.1101/2020.03.24.005306").
func (b *Biorxiv) Fetch(ctx context.Context, rawID string) (*types.Paper, error) {
	doi := rawID
	if !strings.HasPrefix(doi, biorxivDOIPrefix) {
		doi = biorxivDOIPrefix + doi
	}

	reqURL := fmt.Sprintf("%s/details/%s/%s/na/json", b.base, b.server, doi)
	var out biorxivResponse
	if err := b.getJSON(ctx, reqURL, &out); err != nil {
		return nil, err
	}
	if len(out.Collection) == 0 {
		return nil, ErrNotFound
	}

	// The collection lists one row per version; the last row is newest.
	return b.convert(&out.Collection[len(out.Collection)-1]), nil
}

// Search fetches the recent-papers window and filters it client-side on
// the free-text query against title, authors, abstract, and category,
// then applies query pagination to the filtered set.
func (b *Biorxiv) Search(ctx context.Context, q types.SearchQuery) (types.SearchResult, error) {
	maxResults := q.MaxResults
	if maxResults <= 0 {
		maxResults = b.cfg.MaxResults
	}
	if maxResults <= 0 {
		maxResults = types.DefaultMaxResults
	}

	reqURL := fmt.Sprintf("%s/details/%s/%s/%d/json", b.base, b.server, searchInterval, 0)
	var out biorxivResponse
	if err := b.getJSON(ctx, reqURL, &out); err != nil {
		return types.SearchResult{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(q.Query))
	var matched []biorxivPaper
	for _, p := range out.Collection {
		if needle == "" || b.matches(&p, needle) {
			matched = append(matched, p)
		}
	}

	start := q.Offset()
	papers := make([]types.Paper, 0, maxResults)
	for i := start; i < len(matched) && len(papers) < maxResults; i++ {
		papers = append(papers, *b.convert(&matched[i]))
	}

	return types.SearchResult{
		Papers:       papers,
		TotalResults: len(matched),
		StartIndex:   start,
		ItemsPerPage: maxResults,
		ProviderID:   b.ID(),
	}, nil
}

func (b *Biorxiv) matches(p *biorxivPaper, needle string) bool {
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Authors), needle) ||
		strings.Contains(strings.ToLower(p.Abstract), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle)
}

func (b *Biorxiv) getJSON(ctx context.Context, reqURL string, out any) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.cfg.UserAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return &RequestError{Provider: b.ID(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &RequestError{Provider: b.ID(), StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ParseError{Provider: b.ID(), Err: err}
	}
	return nil
}

// bioRxiv API wire structures.
type biorxivResponse struct {
	Collection []biorxivPaper   `json:"collection"`
	Messages   []biorxivMessage `json:"messages"`
}

type biorxivPaper struct {
	DOI       string `json:"doi"`
	Title     string `json:"title"`
	Authors   string `json:"authors"` // semicolon-separated
	Date      string `json:"date"`
	Version   string `json:"version"`
	Category  string `json:"category"`
	Abstract  string `json:"abstract"`
	Published string `json:"published,omitempty"`
	Server    string `json:"server"`
}

type biorxivMessage struct {
	Status string `json:"status"`
	Total  int    `json:"total"`
	Cursor any    `json:"cursor"`
	Count  int    `json:"count"`
}

// convert builds the canonical record from one API row. The raw id is the
// DOI suffix (the date-form id); the full-text links follow the content
// URL convention with the version suffix.
func (b *Biorxiv) convert(p *biorxivPaper) *types.Paper {
	rawID := strings.TrimPrefix(p.DOI, biorxivDOIPrefix)

	var authors []types.Author
	for _, name := range strings.Split(p.Authors, ";") {
		name = strings.TrimSpace(name)
		if name != "" {
			authors = append(authors, types.Author{Name: name})
		}
	}

	scheme := identifier.SchemeBioRxiv
	host := "https://www.biorxiv.org"
	if b.server == "medrxiv" {
		scheme = identifier.SchemeMedRxiv
		host = "https://www.medrxiv.org"
	}

	version := p.Version
	if version == "" {
		version = "1"
	}
	htmlURL := fmt.Sprintf("%s/content/%sv%s", host, p.DOI, version)
	pdfURL := htmlURL + ".full.pdf"

	// Harvest secondary identifiers: the preprint DOI itself, the journal
	// DOI when published, and the free-text fields.
	fields := []string{p.DOI, p.Published, p.Title, p.Abstract}
	var ids []types.Identifier
	for _, n := range identifier.Collect(fields...) {
		ids = append(ids, types.Identifier{
			Scheme: n.Scheme.String(),
			Value:  n.Value,
			URL:    n.URL,
		})
	}

	var categories []string
	if p.Category != "" {
		categories = []string{p.Category}
	}

	return &types.Paper{
		ID:              scheme.String() + ":" + rawID,
		RawID:           rawID,
		ProviderID:      b.server,
		Title:           strings.TrimSpace(p.Title),
		Authors:         authors,
		Abstract:        strings.TrimSpace(p.Abstract),
		PublishedDate:   p.Date,
		PDFURL:          pdfURL,
		HTMLURL:         htmlURL,
		Categories:      categories,
		PrimaryCategory: p.Category,
		DOI:             p.DOI,
		Links: map[string]string{
			"pdf":  pdfURL,
			"html": htmlURL,
		},
		Metadata: types.Metadata{
			Identifiers: ids,
			Version:     version,
		},
	}
}
