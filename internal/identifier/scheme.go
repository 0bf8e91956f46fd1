// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identifier recognizes and normalizes academic paper identifiers:
// DOIs, arXiv IDs, PubMed IDs, and two dozen repository and preprint-server
// schemes, each with bare, prefixed, and URL representations.
package identifier

import (
	"regexp"
	"strings"
)

// Scheme is a closed enumeration of supported identifier schemes.
//
// The declaration order is load-bearing: several schemes accept bare
// all-digit values (PMID, MAG, SSRN, WOS at different lengths), and
// recognition resolves such collisions by trying schemes in enumeration
// order, first match wins. Reordering the constants changes which scheme
// claims an ambiguous bare number.
type Scheme int

const (
	SchemeUnknown Scheme = iota

	// Core academic identifiers.
	SchemeArxiv
	SchemeDOI
	SchemePMID
	SchemePMCID
	SchemeISBN
	SchemeISSN
	SchemeORCID

	// Repository and index identifiers.
	SchemeSemanticScholar
	SchemeDBLP
	SchemeWOS
	SchemeScopus
	SchemeACL
	SchemeMAG

	// Preprint servers.
	SchemeBioRxiv
	SchemeMedRxiv
	SchemeChemRxiv
	SchemeEarthArXiv
	SchemeSocArXiv
	SchemePsyArXiv
	SchemeLawArXiv
	SchemePreprints

	// Other academic repositories.
	SchemeRePEc
	SchemeSSRN
	SchemePhilPapers
	SchemeHAL
	SchemeOpenAIRE
	SchemeZenodo
	SchemeFigshare
	SchemeEThOS
	SchemeCORE
)

// normRule identifies the scheme-specific value normalization applied
// after pattern extraction.
type normRule int

const (
	normNone        normRule = iota
	normStripArxivV          // drop a trailing version suffix ("v3")
	normStripDashes          // drop hyphens (ISBN)
)

// schemeInfo is one row of the static recognition catalog: the display
// prefix, the canonical URL template base, the ordered pattern list
// (most specific and URL-qualified first, bare formats last), and the
// normalization rule.
type schemeInfo struct {
	scheme   Scheme
	name     string
	prefix   string
	baseURL  string
	norm     normRule
	patterns []*regexp.Regexp
}

// catalog holds the recognition rules for every scheme, in enumeration
// order. Both the URL templates and the display prefixes are stable
// output contracts: external links are built from them.
var catalog = []schemeInfo{
	{
		scheme:  SchemeArxiv,
		name:    "arxiv",
		prefix:  "arXiv:",
		baseURL: "https://arxiv.org/abs/",
		norm:    normStripArxivV,
		patterns: []*regexp.Regexp{
			// Abstract or PDF URL, new or legacy ID form.
			regexp.MustCompile(`(?i)arxiv\.org/(?:abs|pdf)/((?:\d{4}\.\d{4,5}(?:v\d+)?)|(?:[a-zA-Z-]+(?:/|\.)\d{7}(?:v\d+)?))`),
			// Prefixed form.
			regexp.MustCompile(`(?i)arxiv:([^/\s]+)`),
			// Bare new form: YYMM.NNNNN with optional version.
			regexp.MustCompile(`^(\d{4}\.\d{4,5}(?:v\d+)?)$`),
			// Bare legacy form: category/NNNNNNN with optional version.
			regexp.MustCompile(`(?i)^([a-zA-Z-]+(?:/|\.)\d{7}(?:v\d+)?)$`),
		},
	},
	{
		scheme:  SchemeDOI,
		name:    "doi",
		prefix:  "doi:",
		baseURL: "https://doi.org/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:doi\.org/|dx\.doi\.org/)(10\.\d{4,}/[^/\s]+)`),
			regexp.MustCompile(`(?i)doi:(10\.\d{4,}/[^/\s]+)`),
			regexp.MustCompile(`^(10\.\d{4,}/[^/\s]+)$`),
		},
	},
	{
		scheme:  SchemePMID,
		name:    "pmid",
		prefix:  "PMID:",
		baseURL: "https://pubmed.ncbi.nlm.nih.gov/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:ncbi\.nlm\.nih\.gov/pubmed/|PMID:?\s*)(\d+)`),
			// Bare PMIDs are up to eight digits. Overlaps MAG, SSRN, and
			// WOS bare numbers; enumeration order breaks the tie.
			regexp.MustCompile(`^(\d{1,8})$`),
		},
	},
	{
		scheme:  SchemePMCID,
		name:    "pmcid",
		prefix:  "PMC",
		baseURL: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:ncbi\.nlm\.nih\.gov/pmc/articles/PMC|PMC:?\s*)(\d+)`),
			regexp.MustCompile(`(?i)^PMC(\d+)$`),
		},
	},
	{
		scheme:  SchemeISBN,
		name:    "isbn",
		prefix:  "ISBN:",
		baseURL: "https://isbnsearch.org/isbn/",
		norm:    normStripDashes,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)ISBN(?:-(?:10|13))?:?\s*((?:\d[\d-]*\d|\d)[xX]?)`),
			// Bare digits-and-hyphens. This claims any hyphenated numeric
			// string that earlier schemes passed on, including bare ISSNs
			// and ORCIDs; only their prefixed and URL forms reach those
			// schemes. Deliberate first-match-wins behavior.
			regexp.MustCompile(`^((?:\d[\d-]*\d|\d)[xX]?)$`),
		},
	},
	{
		scheme:  SchemeISSN,
		name:    "issn",
		prefix:  "ISSN:",
		baseURL: "https://portal.issn.org/resource/ISSN/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)ISSN:?\s*(\d{4}-\d{3}[\dxX])`),
			regexp.MustCompile(`^(\d{4}-\d{3}[\dxX])$`),
		},
	},
	{
		scheme:  SchemeORCID,
		name:    "orcid",
		prefix:  "ORCID:",
		baseURL: "https://orcid.org/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)orcid\.org/(\d{4}-\d{4}-\d{4}-\d{3}[\dX])`),
			regexp.MustCompile(`(?i)ORCID:(\d{4}-\d{4}-\d{4}-\d{3}[\dX])`),
			regexp.MustCompile(`^(\d{4}-\d{4}-\d{4}-\d{3}[\dX])$`),
		},
	},
	{
		scheme:  SchemeSemanticScholar,
		name:    "semanticscholar",
		prefix:  "S2:",
		baseURL: "https://www.semanticscholar.org/paper/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)semanticscholar\.org/paper/([a-f0-9]+)`),
			regexp.MustCompile(`(?i)(?:Semantic Scholar ID:|S2:)([a-f0-9]+)`),
			regexp.MustCompile(`^([a-f0-9]{8,})$`),
		},
	},
	{
		scheme:  SchemeDBLP,
		name:    "dblp",
		prefix:  "dblp:",
		baseURL: "https://dblp.org/rec/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)dblp\.org/(?:rec|pid)/([^/\s]+/[^/\s]+)`),
			regexp.MustCompile(`(?i)dblp:([^/\s]+/[^/\s]+)`),
		},
	},
	{
		scheme:  SchemeWOS,
		name:    "wos",
		prefix:  "WOS:",
		baseURL: "https://www.webofscience.com/wos/woscc/full-record/WOS:",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)WOS:(\d{15,})`),
			regexp.MustCompile(`^(\d{15,})$`),
		},
	},
	{
		scheme:  SchemeScopus,
		name:    "scopus",
		prefix:  "SCOPUS-ID:",
		baseURL: "https://www.scopus.com/record/display.uri?eid=2-s2.0-",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)SCOPUS-ID:(2-s2\.0-\d+)`),
			regexp.MustCompile(`(?i)SCOPUS-ID:([\d.-]+)`),
		},
	},
	{
		scheme:  SchemeACL,
		name:    "acl",
		prefix:  "ACL:",
		baseURL: "https://aclanthology.org/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)ACL:([A-Z]\d{2}-\d{4})`),
			regexp.MustCompile(`^([A-Z]\d{2}-\d{4})$`),
		},
	},
	{
		scheme:  SchemeMAG,
		name:    "mag",
		prefix:  "MAG:",
		baseURL: "https://academic.microsoft.com/paper/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)MAG:(\d{7,})`),
			regexp.MustCompile(`^(\d{7,})$`),
		},
	},
	{
		scheme:  SchemeBioRxiv,
		name:    "biorxiv",
		prefix:  "bioRxiv:",
		baseURL: "https://www.biorxiv.org/content/10.1101/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)biorxiv\.org/content/([^/\s]+)`),
			regexp.MustCompile(`(?i)bioRxiv:(\d{4}\.\d{2}\.\d{2}\.\d+)`),
			regexp.MustCompile(`^(\d{4}\.\d{2}\.\d{2}\.\d+)$`),
		},
	},
	{
		scheme:  SchemeMedRxiv,
		name:    "medrxiv",
		prefix:  "medRxiv:",
		baseURL: "https://www.medrxiv.org/content/10.1101/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)medrxiv\.org/content/([^/\s]+)`),
			regexp.MustCompile(`(?i)medRxiv:(\d{4}\.\d{2}\.\d{2}\.\d+)`),
			regexp.MustCompile(`^(\d{4}\.\d{2}\.\d{2}\.\d+)$`),
		},
	},
	{
		scheme:  SchemeChemRxiv,
		name:    "chemrxiv",
		prefix:  "ChemRxiv:",
		baseURL: "https://chemrxiv.org/engage/chemrxiv/article-details/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)ChemRxiv:(\d{4}\.\d{2}\.\d{2}\.\d+)`),
			regexp.MustCompile(`(?i)chemrxiv\.org/(?:engage/)?(?:chemrxiv|api-gateway)/(?:content|download)/([^/\s]+)`),
			regexp.MustCompile(`^(\d{4}\.\d{2}\.\d{2}\.\d+)$`),
		},
	},
	{
		scheme:  SchemeEarthArXiv,
		name:    "eartharxiv",
		prefix:  "EarthArXiv:",
		baseURL: "https://eartharxiv.org/repository/view/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)EarthArXiv:(\d{4}\.\d{2}\.\d{2}\.\d+)`),
			regexp.MustCompile(`(?i)eartharxiv\.org/(?:repository/view/|paper/)([^/\s]+)`),
		},
	},
	{
		scheme:  SchemeSocArXiv,
		name:    "socarxiv",
		prefix:  "SocArXiv:",
		baseURL: "https://osf.io/preprints/socarxiv/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)SocArXiv:(\d{4}\.\d{2}\.\d{2}\.\d+)`),
			regexp.MustCompile(`(?i)osf\.io/preprints/socarxiv/([^/\s]+)`),
		},
	},
	{
		scheme:  SchemePsyArXiv,
		name:    "psyarxiv",
		prefix:  "PsyArXiv:",
		baseURL: "https://psyarxiv.com/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)PsyArXiv:(\d{4}\.\d{2}\.\d{2}\.\d+)`),
			regexp.MustCompile(`(?i)psyarxiv\.com/([^/\s]+)`),
		},
	},
	{
		scheme:  SchemeLawArXiv,
		name:    "lawarxiv",
		prefix:  "LawArXiv:",
		baseURL: "https://osf.io/preprints/lawarxiv/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)LawArXiv:(\d{4}\.\d{2}\.\d{2}\.\d+)`),
			regexp.MustCompile(`(?i)osf\.io/preprints/lawarxiv/([^/\s]+)`),
		},
	},
	{
		scheme:  SchemePreprints,
		name:    "preprints",
		prefix:  "Preprints:",
		baseURL: "https://www.preprints.org/manuscript/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Preprints:(\d{4}-\d{5,})`),
			regexp.MustCompile(`(?i)preprints\.org/manuscript/(\d{4}\d{5,})`),
		},
	},
	{
		scheme:  SchemeRePEc,
		name:    "repec",
		prefix:  "RePEc:",
		baseURL: "https://ideas.repec.org/p/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)RePEc:([^:\s]+:[^:\s]+:\S+)`),
			regexp.MustCompile(`(?i)ideas\.repec\.org/[a-z]/([^/\s]+/[^.\s]+\.html)`),
		},
	},
	{
		scheme:  SchemeSSRN,
		name:    "ssrn",
		prefix:  "SSRN:",
		baseURL: "https://papers.ssrn.com/sol3/papers.cfm?abstract_id=",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)SSRN:(\d{5,})`),
			regexp.MustCompile(`(?i)papers\.ssrn\.com/sol3/papers\.cfm\?abstract_id=(\d+)`),
			regexp.MustCompile(`^(\d{7,})$`),
		},
	},
	{
		scheme:  SchemePhilPapers,
		name:    "philpapers",
		prefix:  "PhilPapers:",
		baseURL: "https://philpapers.org/rec/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)PhilPapers:([A-Z]+-\d{4}-\d{5})`),
			regexp.MustCompile(`(?i)philpapers\.org/rec/([^/\s]+)`),
		},
	},
	{
		scheme:  SchemeHAL,
		name:    "hal",
		prefix:  "HAL:hal-",
		baseURL: "https://hal.science/hal-",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)HAL:hal-(\d{7,})`),
			regexp.MustCompile(`(?i)hal\.(?:science|archives-ouvertes\.fr)/hal-(\d{7,})`),
		},
	},
	{
		scheme:  SchemeOpenAIRE,
		name:    "openaire",
		prefix:  "OpenAIRE:",
		baseURL: "https://explore.openaire.eu/search/publication?articleId=",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)OpenAIRE:(\d+/[a-zA-Z0-9]+)`),
			regexp.MustCompile(`(?i)explore\.openaire\.eu/search/publication\?articleId=([^&\s]+)`),
		},
	},
	{
		scheme:  SchemeZenodo,
		name:    "zenodo",
		prefix:  "Zenodo:",
		baseURL: "https://zenodo.org/record/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Zenodo:(\d+)`),
			regexp.MustCompile(`(?i)zenodo\.org/(?:record|badge/latestdoi|records)/(\d+)`),
			regexp.MustCompile(`(?i)10\.5281/zenodo\.(\d+)`),
		},
	},
	{
		scheme:  SchemeFigshare,
		name:    "figshare",
		prefix:  "Figshare:",
		baseURL: "https://doi.org/10.6084/m9.figshare.",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Figshare:(10\.6084/m9\.figshare\.[^/\s]+)`),
			regexp.MustCompile(`(?i)figshare\.com/articles/[^/\s]+/(\d+)`),
		},
	},
	{
		scheme:  SchemeEThOS,
		name:    "ethos",
		prefix:  "EThOS:uk.bl.ethos.",
		baseURL: "https://ethos.bl.uk/OrderDetails.do?uin=",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)EThOS:uk\.bl\.ethos\.(\d+)`),
			regexp.MustCompile(`(?i)ethos\.bl\.uk/OrderDetails\.do\?uin=(\d+)`),
		},
	},
	{
		scheme:  SchemeCORE,
		name:    "core",
		prefix:  "CORE:",
		baseURL: "https://core.ac.uk/display/",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)CORE:(\d+)`),
			regexp.MustCompile(`(?i)core\.ac\.uk/(?:display|download|reader)/(\d+)`),
		},
	},
}

// byScheme indexes the catalog for direct lookups.
var byScheme = func() map[Scheme]*schemeInfo {
	m := make(map[Scheme]*schemeInfo, len(catalog))
	for i := range catalog {
		m[catalog[i].scheme] = &catalog[i]
	}
	return m
}()

func (s Scheme) String() string {
	if info, ok := byScheme[s]; ok {
		return info.name
	}
	return "unknown"
}

// Prefix returns the scheme's canonical display prefix (e.g. "arXiv:").
func (s Scheme) Prefix() string {
	if info, ok := byScheme[s]; ok {
		return info.prefix
	}
	return ""
}

// BaseURL returns the scheme's canonical URL template base.
func (s Scheme) BaseURL() string {
	if info, ok := byScheme[s]; ok {
		return info.baseURL
	}
	return ""
}

// ParseScheme maps a scheme name (as produced by String) back to its
// Scheme. Unrecognized names map to SchemeUnknown.
func ParseScheme(name string) Scheme {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range catalog {
		if catalog[i].name == name {
			return catalog[i].scheme
		}
	}
	return SchemeUnknown
}

// Schemes returns every supported scheme in enumeration order.
func Schemes() []Scheme {
	out := make([]Scheme, len(catalog))
	for i := range catalog {
		out[i] = catalog[i].scheme
	}
	return out
}
