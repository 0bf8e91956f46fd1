// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package identifier

import (
	"regexp"
	"strings"
)

// Normalized is a recognized identifier with scheme-specific normalization
// applied. URL is always derivable from Scheme and Value alone.
type Normalized struct {
	// Scheme is the recognized identifier scheme.
	Scheme Scheme

	// Value is the normalized identifier value (arXiv: version stripped;
	// ISBN: hyphens stripped).
	Value string

	// URL is the canonical link for this identifier.
	URL string

	// Prefix is the scheme's display prefix (e.g. "arXiv:").
	Prefix string

	// Original is the matched substring before normalization.
	Original string
}

// Fast-path patterns for the most common inputs. These are unambiguous, so
// trying them before the catalog scan is safe, and they cover the bulk of
// real traffic (bare arXiv IDs and DOIs).
var (
	arxivNewBare    = regexp.MustCompile(`^(\d{4}\.\d{4,5})(v\d+)?$`)
	arxivLegacyBare = regexp.MustCompile(`(?i)^([a-zA-Z-]+(?:/|\.)\d{7})(v\d+)?$`)
	doiBare         = regexp.MustCompile(`(?i)^(?:doi:)?(10\.\d{4,}(?:\.\d+)*/\S+)$`)
	arxivVersion    = regexp.MustCompile(`v\d+$`)
)

// Recognize scans text (a bare identifier, a prefixed code, or a URL) and
// returns the first scheme whose pattern list matches. The boolean result is
// false when no scheme matches; unrecognized text is never an error.
//
// Precedence: arXiv and DOI fast paths first, then every scheme in
// enumeration order with its patterns in catalog order, first match wins.
func Recognize(text string) (Normalized, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Normalized{}, false
	}

	// arxiv:VALUE prefixed form.
	if len(text) > 6 && strings.EqualFold(text[:6], "arxiv:") {
		rest := text[6:]
		if arxivNewBare.MatchString(rest) || arxivLegacyBare.MatchString(rest) {
			return build(SchemeArxiv, rest), true
		}
	}

	// Bare arXiv IDs, new then legacy form.
	if arxivNewBare.MatchString(text) || arxivLegacyBare.MatchString(text) {
		return build(SchemeArxiv, text), true
	}

	// Bare or doi:-prefixed DOIs.
	if m := doiBare.FindStringSubmatch(text); m != nil {
		return build(SchemeDOI, m[1]), true
	}

	for i := range catalog {
		info := &catalog[i]
		for _, p := range info.patterns {
			if m := p.FindStringSubmatch(text); m != nil && m[1] != "" {
				return build(info.scheme, m[1]), true
			}
		}
	}

	return Normalized{}, false
}

// build assembles a Normalized from a scheme and the matched substring,
// applying the scheme's normalization rule.
func build(scheme Scheme, matched string) Normalized {
	value := normalize(scheme, matched)
	return Normalized{
		Scheme:   scheme,
		Value:    value,
		URL:      URLFor(scheme, value),
		Prefix:   scheme.Prefix(),
		Original: matched,
	}
}

func normalize(scheme Scheme, value string) string {
	info, ok := byScheme[scheme]
	if !ok {
		return value
	}
	switch info.norm {
	case normStripArxivV:
		return arxivVersion.ReplaceAllString(value, "")
	case normStripDashes:
		return strings.ReplaceAll(value, "-", "")
	default:
		return value
	}
}

// URLFor constructs the canonical URL for a normalized identifier value by
// substituting it into the scheme's URL template. Figshare values already in
// DOI form resolve through doi.org instead of the numeric article template.
func URLFor(scheme Scheme, value string) string {
	if value == "" {
		return ""
	}
	if scheme == SchemeFigshare && strings.HasPrefix(value, "10.6084/m9.figshare.") {
		return SchemeDOI.BaseURL() + value
	}
	base := scheme.BaseURL()
	if base == "" {
		return ""
	}
	return base + value
}

// Format returns the prefixed display form of an identifier
// (e.g. "arXiv:2301.07041", "PMID:12345678").
func Format(scheme Scheme, value string) string {
	if value == "" {
		return ""
	}
	return scheme.Prefix() + value
}

// ArxivPDFURL returns the arXiv PDF endpoint for a normalized arXiv ID.
func ArxivPDFURL(rawID string) string {
	return "https://arxiv.org/pdf/" + rawID
}

// Collect scans the given text fields in order and accumulates every
// distinct identifier found, deduplicating by (scheme, value). Field order
// matters only for the ordering of the result; duplicates keep the first
// occurrence. Converters use this to harvest secondary identifiers from
// link hrefs, journal references, comments, titles, and abstracts.
func Collect(fields ...string) []Normalized {
	type key struct {
		scheme Scheme
		value  string
	}
	seen := make(map[key]bool)
	var out []Normalized

	for _, field := range fields {
		if field == "" {
			continue
		}
		n, ok := Recognize(field)
		if !ok {
			continue
		}
		k := key{n.Scheme, n.Value}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, n)
	}
	return out
}
