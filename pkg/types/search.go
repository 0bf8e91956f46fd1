// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SortField selects the provider-side result ordering.
type SortField string

const (
	SortRelevance   SortField = "relevance"
	SortLastUpdated SortField = "lastUpdatedDate"
	SortSubmitted   SortField = "submittedDate"
)

// SortOrder selects ascending or descending ordering.
type SortOrder string

const (
	OrderAscending  SortOrder = "ascending"
	OrderDescending SortOrder = "descending"
)

// SearchQuery holds the abstract search parameters that each provider
// translates into its native query syntax.
type SearchQuery struct {
	// Query is a free-text search across all fields.
	Query string `json:"query,omitempty" yaml:"query,omitempty"`

	// Title restricts matches to the title field.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Author restricts matches to the author field.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Abstract restricts matches to the abstract field.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Categories filters by subject classification. Multiple values are
	// OR-combined by the provider's query builder.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// DateFrom and DateTo bound the submission date range, as YYYY-MM-DD.
	// A missing bound is open-ended.
	DateFrom string `json:"date_from,omitempty" yaml:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty" yaml:"date_to,omitempty"`

	// SortBy and SortOrder select the result ordering.
	SortBy    SortField `json:"sort_by,omitempty" yaml:"sort_by,omitempty"`
	SortOrder SortOrder `json:"sort_order,omitempty" yaml:"sort_order,omitempty"`

	// Page is the 1-based result page. The provider offset is
	// (Page-1)*MaxResults.
	Page int `json:"page,omitempty" yaml:"page,omitempty"`

	// Start, when non-negative, overrides the page-derived offset.
	// A negative Start means "derive from Page".
	Start int `json:"start,omitempty" yaml:"start,omitempty"`

	// MaxResults caps the number of results per page (default 20).
	MaxResults int `json:"max_results,omitempty" yaml:"max_results,omitempty"`
}

// Offset returns the provider-side start offset: Start when explicitly set,
// otherwise (Page-1)*MaxResults with Page clamped to 1.
func (q SearchQuery) Offset() int {
	if q.Start > 0 {
		return q.Start
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.MaxResults
	if size <= 0 {
		size = DefaultMaxResults
	}
	return (page - 1) * size
}

// DefaultMaxResults is the page size used when a query does not set one.
const DefaultMaxResults = 20

// SearchResult is one page of canonical papers from a single provider.
// len(Papers) never exceeds ItemsPerPage.
type SearchResult struct {
	// Papers holds the canonical records for this page.
	Papers []Paper `json:"papers" yaml:"papers"`

	// TotalResults is the provider-reported total match count.
	TotalResults int `json:"total_results" yaml:"total_results"`

	// StartIndex is the 0-based offset of the first result in Papers.
	StartIndex int `json:"start_index" yaml:"start_index"`

	// ItemsPerPage is the provider-reported page size.
	ItemsPerPage int `json:"items_per_page" yaml:"items_per_page"`

	// ProviderID names the provider that produced this page.
	ProviderID string `json:"provider_id" yaml:"provider_id"`
}
