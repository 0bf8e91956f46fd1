// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the value types shared across scholarly packages:
// the canonical paper record, search queries and results, and configuration.
package types

// Author is a single paper author.
type Author struct {
	// Name is the author's full name in source order.
	Name string `json:"name" yaml:"name"`

	// Affiliation is the institutional affiliation, when the provider reports one.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// Email is the contact address, when the provider reports one.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// ORCID is the author's ORCID identifier, when known.
	ORCID string `json:"orcid,omitempty" yaml:"orcid,omitempty"`
}

// Identifier is a scheme-qualified identifier discovered in a paper record
// (e.g. a DOI mentioned inside the journal reference).
type Identifier struct {
	// Scheme is the identifier scheme name (e.g. "arxiv", "doi", "pmid").
	Scheme string `json:"scheme" yaml:"scheme"`

	// Value is the normalized identifier value.
	Value string `json:"value" yaml:"value"`

	// URL is the canonical link constructed from the scheme's URL template.
	URL string `json:"url" yaml:"url"`
}

// Metadata is the canonical record's extensible metadata bag.
type Metadata struct {
	// Identifiers lists every secondary identifier harvested from the
	// record's free-text fields, deduplicated by (scheme, value).
	Identifiers []Identifier `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`

	// Version is the provider-reported revision (e.g. arXiv "2" for v2).
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Paper is the canonical paper record, independent of the originating
// provider. Converters produce a fresh value per upstream record; a Paper is
// never mutated after construction, re-fetching yields a new instance.
type Paper struct {
	// ID is the scheme-qualified primary identifier (e.g. "arxiv:2301.07041").
	ID string `json:"id" yaml:"id"`

	// RawID is the bare identifier without any scheme prefix.
	RawID string `json:"raw_id" yaml:"raw_id"`

	// ProviderID names the provider that supplied this record (e.g. "arxiv").
	ProviderID string `json:"provider_id" yaml:"provider_id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// PublishedDate is the original submission or publication timestamp,
	// as reported by the provider (RFC 3339 for arXiv).
	PublishedDate string `json:"published_date" yaml:"published_date"`

	// LastUpdatedDate is the most recent revision timestamp, if any.
	LastUpdatedDate string `json:"last_updated_date,omitempty" yaml:"last_updated_date,omitempty"`

	// PDFURL links to the full-text PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// HTMLURL links to the provider's abstract page.
	HTMLURL string `json:"html_url,omitempty" yaml:"html_url,omitempty"`

	// Categories lists every subject classification on the record.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// PrimaryCategory is the provider's primary classification, falling
	// back to the first category when the provider marks none.
	PrimaryCategory string `json:"primary_category,omitempty" yaml:"primary_category,omitempty"`

	// DOI is the paper's DOI when the provider reports one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Comments is the author-supplied comment field (page counts, venue notes).
	Comments string `json:"comments,omitempty" yaml:"comments,omitempty"`

	// JournalRef is the journal reference for published versions.
	JournalRef string `json:"journal_ref,omitempty" yaml:"journal_ref,omitempty"`

	// Links maps link roles ("pdf", "html") to provider URLs.
	Links map[string]string `json:"links,omitempty" yaml:"links,omitempty"`

	// Metadata carries secondary identifiers and other provider extras.
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}
