// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/scholarly/internal/identifier"
	"github.com/pdiddy/scholarly/pkg/types"
)

// arxivAPIBase is the arXiv query endpoint. Declared as a var so tests can
// substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// Open-ended sentinels for the submittedDate range filter.
const (
	dateOpenFrom = "0000-00-00"
	dateOpenTo   = "9999-99-99"
)

// latestWindow is the submission window used when a search request carries
// no filter at all: the most recent week, newest first.
const latestWindow = 7 * 24 * time.Hour

// Arxiv queries the arXiv Atom API.
type Arxiv struct {
	client  Doer
	base    string
	cfg     types.ProviderConfig
	limiter *rate.Limiter

	// now is the clock for the default latest-papers window.
	now func() time.Time
}

// NewArxiv creates the arXiv provider. The Doer owns retry policy; the
// provider itself issues one request per call, paced by the configured
// rate limit (arXiv's terms allow one request every three seconds).
func NewArxiv(client Doer, cfg types.ProviderConfig) *Arxiv {
	return NewArxivAt(arxivAPIBase, client, cfg)
}

// NewArxivAt creates the provider against an explicit endpoint, used by
// tests in other packages to point at an httptest server.
func NewArxivAt(base string, client Doer, cfg types.ProviderConfig) *Arxiv {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1.0 / 3.0
	}
	return &Arxiv{
		client:  client,
		base:    base,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		now:     time.Now,
	}
}

// ID returns the provider identifier.
func (a *Arxiv) ID() string { return "arxiv" }

// buildArxivQuery translates the abstract query into arXiv's search_query
// syntax: field filters joined with +AND+, a multi-valued category filter
// OR-combined and parenthesized only when combined with other filters, and
// an inclusive bracketed submittedDate range with open-ended sentinels.
// Returns "" when no filter field is populated.
func buildArxivQuery(q types.SearchQuery) string {
	var parts []string

	if q.Query != "" {
		parts = append(parts, "all:"+url.QueryEscape(q.Query))
	}
	if q.Title != "" {
		parts = append(parts, "ti:"+url.QueryEscape(q.Title))
	}
	if q.Author != "" {
		parts = append(parts, "au:"+url.QueryEscape(q.Author))
	}
	if q.Abstract != "" {
		parts = append(parts, "abs:"+url.QueryEscape(q.Abstract))
	}

	if len(q.Categories) > 0 {
		cats := make([]string, len(q.Categories))
		for i, c := range q.Categories {
			cats[i] = "cat:" + url.QueryEscape(c)
		}
		catQuery := strings.Join(cats, "+OR+")
		// Parenthesized only when combined with other filters.
		if len(parts) > 0 {
			catQuery = "(" + catQuery + ")"
		}
		parts = append(parts, catQuery)
	}

	if q.DateFrom != "" || q.DateTo != "" {
		from, to := q.DateFrom, q.DateTo
		if from == "" {
			from = dateOpenFrom
		}
		if to == "" {
			to = dateOpenTo
		}
		parts = append(parts, fmt.Sprintf("submittedDate:[%s TO %s]", from, to))
	}

	return strings.Join(parts, "+AND+")
}

// latestQuery returns the default query used when no filter is populated:
// everything submitted in the last week. An empty search_query upstream is
// a configuration error, not a fetch-everything request, so the provider
// always sends a non-empty query.
func latestQuery(now time.Time) string {
	to := now.UTC().Format("2006-01-02")
	from := now.UTC().Add(-latestWindow).Format("2006-01-02")
	return fmt.Sprintf("submittedDate:[%s TO %s]", from, to)
}

// Search executes one search round trip against the arXiv API.
func (a *Arxiv) Search(ctx context.Context, q types.SearchQuery) (types.SearchResult, error) {
	maxResults := q.MaxResults
	if maxResults <= 0 {
		maxResults = a.cfg.MaxResults
	}
	if maxResults <= 0 {
		maxResults = types.DefaultMaxResults
	}

	sortBy := q.SortBy
	sortOrder := q.SortOrder

	searchQuery := buildArxivQuery(q)
	if searchQuery == "" {
		searchQuery = latestQuery(a.now())
		sortBy = types.SortSubmitted
		sortOrder = types.OrderDescending
	}
	if sortBy == "" {
		sortBy = types.SortRelevance
	}
	if sortOrder == "" {
		sortOrder = types.OrderDescending
	}

	// The date-range filter contains a literal space ("[from TO to]");
	// encode it as "+" for the wire.
	reqURL := fmt.Sprintf("%s?search_query=%s&start=%d&max_results=%d&sortBy=%s&sortOrder=%s",
		a.base, strings.ReplaceAll(searchQuery, " ", "+"), q.Offset(), maxResults, sortBy, sortOrder)

	feed, err := a.fetchFeed(ctx, reqURL)
	if err != nil {
		return types.SearchResult{}, err
	}

	papers := make([]types.Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		papers = append(papers, *convertArxivEntry(&entry))
	}

	itemsPerPage := feed.ItemsPerPage
	if itemsPerPage == 0 {
		itemsPerPage = maxResults
	}

	return types.SearchResult{
		Papers:       papers,
		TotalResults: feed.TotalResults,
		StartIndex:   feed.StartIndex,
		ItemsPerPage: itemsPerPage,
		ProviderID:   a.ID(),
	}, nil
}

// Fetch retrieves a single paper via the id_list parameter. A well-formed
// zero-entry feed means the id does not exist and yields ErrNotFound.
func (a *Arxiv) Fetch(ctx context.Context, rawID string) (*types.Paper, error) {
	reqURL := fmt.Sprintf("%s?id_list=%s&max_results=1", a.base, url.QueryEscape(rawID))

	feed, err := a.fetchFeed(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	if len(feed.Entries) == 0 {
		return nil, ErrNotFound
	}
	return convertArxivEntry(&feed.Entries[0]), nil
}

// fetchFeed performs the HTTP round trip and decodes the Atom feed.
func (a *Arxiv) fetchFeed(ctx context.Context, reqURL string) (*arxivFeed, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &RequestError{Provider: a.ID(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{Provider: a.ID(), StatusCode: resp.StatusCode}
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, &ParseError{Provider: a.ID(), Err: err}
	}
	return &feed, nil
}

// arXiv Atom feed structures. Tags use local names only, so namespaced
// elements (arxiv:comment, opensearch:totalResults) bind without listing
// their namespace URIs.
type arxivFeed struct {
	TotalResults int          `xml:"totalResults"`
	StartIndex   int          `xml:"startIndex"`
	ItemsPerPage int          `xml:"itemsPerPage"`
	Entries      []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID              string          `xml:"id"`
	Title           string          `xml:"title"`
	Summary         string          `xml:"summary"`
	Published       string          `xml:"published"`
	Updated         string          `xml:"updated"`
	Authors         []arxivAuthor   `xml:"author"`
	Categories      []arxivCategory `xml:"category"`
	PrimaryCategory *arxivCategory  `xml:"primary_category"`
	Comment         string          `xml:"comment"`
	JournalRef      string          `xml:"journal_ref"`
	DOI             string          `xml:"doi"`
	Links           []arxivLink     `xml:"link"`
}

type arxivAuthor struct {
	Name        string `xml:"name"`
	Affiliation string `xml:"affiliation"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

// arxivEntryVersion pulls a trailing version number from the entry id URL.
var arxivEntryVersion = regexp.MustCompile(`v(\d+)$`)

// convertArxivEntry builds the canonical paper record from one Atom entry,
// then re-runs identifier recognition over the entry's link hrefs and
// free-text fields to harvest secondary identifiers. Pure: the same entry
// always yields the same record.
func convertArxivEntry(entry *arxivEntry) *types.Paper {
	rawID := extractArxivRawID(entry.ID)

	authors := make([]types.Author, 0, len(entry.Authors))
	for _, au := range entry.Authors {
		authors = append(authors, types.Author{
			Name:        strings.TrimSpace(au.Name),
			Affiliation: strings.TrimSpace(au.Affiliation),
		})
	}

	links := make(map[string]string)
	var pdfURL, htmlURL string
	for _, l := range entry.Links {
		switch {
		case l.Title == "pdf":
			pdfURL = l.Href
			links["pdf"] = l.Href
		case l.Rel == "alternate":
			htmlURL = l.Href
			links["html"] = l.Href
		}
	}
	if pdfURL == "" {
		pdfURL = identifier.ArxivPDFURL(rawID)
	}
	if htmlURL == "" {
		htmlURL = identifier.URLFor(identifier.SchemeArxiv, rawID)
	}

	categories := make([]string, 0, len(entry.Categories))
	for _, c := range entry.Categories {
		categories = append(categories, c.Term)
	}

	var primaryCategory string
	if entry.PrimaryCategory != nil {
		primaryCategory = entry.PrimaryCategory.Term
	} else if len(categories) > 0 {
		primaryCategory = categories[0]
	}

	var version string
	if m := arxivEntryVersion.FindStringSubmatch(entry.ID); m != nil {
		version = m[1]
	}

	// Harvest secondary identifiers: link hrefs first, then the DOI and
	// free-text fields.
	fields := []string{entry.ID}
	for _, l := range entry.Links {
		fields = append(fields, l.Href)
	}
	fields = append(fields, entry.DOI, entry.JournalRef, entry.Comment,
		entry.Title, entry.Summary)

	var ids []types.Identifier
	for _, n := range identifier.Collect(fields...) {
		ids = append(ids, types.Identifier{
			Scheme: n.Scheme.String(),
			Value:  n.Value,
			URL:    n.URL,
		})
	}

	return &types.Paper{
		ID:              "arxiv:" + rawID,
		RawID:           rawID,
		ProviderID:      "arxiv",
		Title:           strings.TrimSpace(entry.Title),
		Authors:         authors,
		Abstract:        strings.TrimSpace(entry.Summary),
		PublishedDate:   entry.Published,
		LastUpdatedDate: entry.Updated,
		PDFURL:          pdfURL,
		HTMLURL:         htmlURL,
		Categories:      categories,
		PrimaryCategory: primaryCategory,
		DOI:             entry.DOI,
		Comments:        entry.Comment,
		JournalRef:      entry.JournalRef,
		Links:           links,
		Metadata: types.Metadata{
			Identifiers: ids,
			Version:     version,
		},
	}
}

// extractArxivRawID pulls the normalized arXiv ID from the entry's <id>
// URL (e.g. "http://arxiv.org/abs/2301.07041v1" -> "2301.07041").
func extractArxivRawID(idURL string) string {
	if n, ok := identifier.Recognize(idURL); ok && n.Scheme == identifier.SchemeArxiv {
		return n.Value
	}
	// Fallback: last path segment, version stripped.
	raw := idURL
	if idx := strings.LastIndex(raw, "/"); idx >= 0 {
		raw = raw[idx+1:]
	}
	return arxivEntryVersion.ReplaceAllString(raw, "")
}
