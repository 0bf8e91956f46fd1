// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/scholarly/pkg/types"
)

func testBiorxiv(t *testing.T, server string, handler http.HandlerFunc) (*Biorxiv, *[]string) {
	t.Helper()
	var requests []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path)
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	oldBase := biorxivAPIBase
	biorxivAPIBase = ts.URL
	t.Cleanup(func() { biorxivAPIBase = oldBase })

	cfg := types.ProviderConfig{RequestsPerSecond: 100}
	return NewBiorxiv(ts.Client(), server, cfg), &requests
}

func biorxivFixture(papers ...biorxivPaper) []byte {
	out, _ := json.Marshal(biorxivResponse{Collection: papers})
	return out
}

func TestBiorxivFetch(t *testing.T) {
	fixture := biorxivFixture(
		biorxivPaper{
			DOI:      "10.1101/2020.03.24.005306",
			Title:    "A Viral Genome Study",
			Authors:  "Curie, M.; Franklin, R.",
			Date:     "2020-03-24",
			Version:  "1",
			Category: "genomics",
			Abstract: "Sequencing results.",
			Server:   "biorxiv",
		},
		biorxivPaper{
			DOI:       "10.1101/2020.03.24.005306",
			Title:     "A Viral Genome Study",
			Authors:   "Curie, M.; Franklin, R.",
			Date:      "2020-03-26",
			Version:   "2",
			Category:  "genomics",
			Abstract:  "Sequencing results, revised.",
			Published: "10.1038/s41586-020-2012-7",
			Server:    "biorxiv",
		},
	)
	bio, requests := testBiorxiv(t, "biorxiv", func(w http.ResponseWriter, r *http.Request) {
		w.Write(fixture)
	})

	paper, err := bio.Fetch(context.Background(), "2020.03.24.005306")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	// Bare date-form ids gain the shared DOI prefix on the wire.
	if want := "/details/biorxiv/10.1101/2020.03.24.005306/na/json"; (*requests)[0] != want {
		t.Errorf("request path = %q, want %q", (*requests)[0], want)
	}

	// The last collection row is the newest version.
	if paper.Metadata.Version != "2" {
		t.Errorf("Version = %q, want 2", paper.Metadata.Version)
	}
	if paper.ID != "biorxiv:2020.03.24.005306" {
		t.Errorf("ID = %q", paper.ID)
	}
	if paper.RawID != "2020.03.24.005306" {
		t.Errorf("RawID = %q", paper.RawID)
	}
	if paper.DOI != "10.1101/2020.03.24.005306" {
		t.Errorf("DOI = %q", paper.DOI)
	}
	if len(paper.Authors) != 2 || paper.Authors[1].Name != "Franklin, R." {
		t.Errorf("Authors = %v", paper.Authors)
	}
	if paper.HTMLURL != "https://www.biorxiv.org/content/10.1101/2020.03.24.005306v2" {
		t.Errorf("HTMLURL = %q", paper.HTMLURL)
	}
	if paper.PDFURL != paper.HTMLURL+".full.pdf" {
		t.Errorf("PDFURL = %q", paper.PDFURL)
	}
	if paper.PrimaryCategory != "genomics" {
		t.Errorf("PrimaryCategory = %q", paper.PrimaryCategory)
	}

	// The published journal DOI is harvested as a secondary identifier.
	var foundJournalDOI bool
	for _, id := range paper.Metadata.Identifiers {
		if id.Scheme == "doi" && id.Value == "10.1038/s41586-020-2012-7" {
			foundJournalDOI = true
		}
	}
	if !foundJournalDOI {
		t.Errorf("journal DOI not harvested: %v", paper.Metadata.Identifiers)
	}
}

func TestBiorxivFetchFullDOI(t *testing.T) {
	bio, requests := testBiorxiv(t, "biorxiv", func(w http.ResponseWriter, r *http.Request) {
		w.Write(biorxivFixture(biorxivPaper{DOI: "10.1101/2021.01.01.425001", Version: "1"}))
	})

	if _, err := bio.Fetch(context.Background(), "10.1101/2021.01.01.425001"); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if !strings.Contains((*requests)[0], "/details/biorxiv/10.1101/2021.01.01.425001/na/json") {
		t.Errorf("full DOIs must not gain a second prefix: %s", (*requests)[0])
	}
}

func TestBiorxivFetchNotFound(t *testing.T) {
	bio, _ := testBiorxiv(t, "biorxiv", func(w http.ResponseWriter, r *http.Request) {
		w.Write(biorxivFixture())
	})

	_, err := bio.Fetch(context.Background(), "2020.01.01.000001")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBiorxivSearchFiltersClientSide(t *testing.T) {
	fixture := biorxivFixture(
		biorxivPaper{DOI: "10.1101/2024.01.01.000001", Title: "CRISPR screens in yeast", Version: "1"},
		biorxivPaper{DOI: "10.1101/2024.01.02.000002", Title: "Protein folding dynamics", Abstract: "We apply crispr-adjacent methods.", Version: "1"},
		biorxivPaper{DOI: "10.1101/2024.01.03.000003", Title: "Unrelated neuroscience work", Version: "1"},
	)
	bio, requests := testBiorxiv(t, "biorxiv", func(w http.ResponseWriter, r *http.Request) {
		w.Write(fixture)
	})

	result, err := bio.Search(context.Background(), types.SearchQuery{Query: "CRISPR"})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if want := "/details/biorxiv/365d/0/json"; (*requests)[0] != want {
		t.Errorf("request path = %q, want %q", (*requests)[0], want)
	}
	// Case-insensitive match over title and abstract.
	if result.TotalResults != 2 {
		t.Errorf("TotalResults = %d, want 2", result.TotalResults)
	}
	if len(result.Papers) != 2 {
		t.Fatalf("got %d papers, want 2", len(result.Papers))
	}
	if result.Papers[0].RawID != "2024.01.01.000001" {
		t.Errorf("first match = %q", result.Papers[0].RawID)
	}
}

func TestBiorxivSearchPagination(t *testing.T) {
	var papers []biorxivPaper
	for i := 0; i < 5; i++ {
		papers = append(papers, biorxivPaper{
			DOI:     "10.1101/2024.01.01.00000" + string(rune('1'+i)),
			Title:   "Paper",
			Version: "1",
		})
	}
	bio, _ := testBiorxiv(t, "biorxiv", func(w http.ResponseWriter, r *http.Request) {
		w.Write(biorxivFixture(papers...))
	})

	result, err := bio.Search(context.Background(), types.SearchQuery{Query: "paper", Page: 2, MaxResults: 2})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if result.TotalResults != 5 {
		t.Errorf("TotalResults = %d, want 5", result.TotalResults)
	}
	if result.StartIndex != 2 {
		t.Errorf("StartIndex = %d, want 2", result.StartIndex)
	}
	if len(result.Papers) != 2 {
		t.Fatalf("got %d papers, want 2", len(result.Papers))
	}
	if result.Papers[0].RawID != "2024.01.01.000003" {
		t.Errorf("page 2 should start at the third match, got %q", result.Papers[0].RawID)
	}
}

func TestMedrxivServer(t *testing.T) {
	bio, requests := testBiorxiv(t, "medrxiv", func(w http.ResponseWriter, r *http.Request) {
		w.Write(biorxivFixture(biorxivPaper{DOI: "10.1101/2020.05.01.123456", Version: "3", Server: "medrxiv"}))
	})

	paper, err := bio.Fetch(context.Background(), "2020.05.01.123456")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if !strings.HasPrefix((*requests)[0], "/details/medrxiv/") {
		t.Errorf("request path = %q", (*requests)[0])
	}
	if paper.ID != "medrxiv:2020.05.01.123456" {
		t.Errorf("ID = %q", paper.ID)
	}
	if paper.HTMLURL != "https://www.medrxiv.org/content/10.1101/2020.05.01.123456v3" {
		t.Errorf("HTMLURL = %q", paper.HTMLURL)
	}
	if bio.ID() != "medrxiv" {
		t.Errorf("ID() = %q", bio.ID())
	}
}

func TestBiorxivRequestError(t *testing.T) {
	bio, _ := testBiorxiv(t, "biorxiv", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := bio.Fetch(context.Background(), "2020.03.24.005306")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T: %v", err, err)
	}
	if reqErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", reqErr.StatusCode)
	}
}

func TestBiorxivParseError(t *testing.T) {
	bio, _ := testBiorxiv(t, "biorxiv", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := bio.Fetch(context.Background(), "2020.03.24.005306")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}
