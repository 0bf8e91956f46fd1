// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package identifier

import "testing"

func TestRecognizeArxiv(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // normalized value
	}{
		{"bare new format", "1707.08567", "1707.08567"},
		{"bare new format with version", "1707.08567v3", "1707.08567"},
		{"bare new format five digits", "2301.07041", "2301.07041"},
		{"prefixed", "arXiv:1707.08567", "1707.08567"},
		{"prefixed lowercase", "arxiv:1707.08567v1", "1707.08567"},
		{"legacy slash format", "math/0309136", "math/0309136"},
		{"legacy slash with version", "math/0309136v1", "math/0309136"},
		{"legacy dot format", "cond-mat.9901001", "cond-mat.9901001"},
		{"abs URL", "https://arxiv.org/abs/1707.08567", "1707.08567"},
		{"abs URL with version", "https://arxiv.org/abs/2101.12345v2", "2101.12345"},
		{"pdf URL", "https://arxiv.org/pdf/1707.08567v2", "1707.08567"},
		{"http URL", "http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"legacy URL", "https://arxiv.org/abs/math/0309136v1", "math/0309136"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := Recognize(tt.input)
			if !ok {
				t.Fatalf("Recognize(%q) = no match, want arxiv %q", tt.input, tt.want)
			}
			if n.Scheme != SchemeArxiv {
				t.Errorf("Recognize(%q) scheme = %v, want arxiv", tt.input, n.Scheme)
			}
			if n.Value != tt.want {
				t.Errorf("Recognize(%q) value = %q, want %q", tt.input, n.Value, tt.want)
			}
			if wantURL := "https://arxiv.org/abs/" + tt.want; n.URL != wantURL {
				t.Errorf("Recognize(%q) url = %q, want %q", tt.input, n.URL, wantURL)
			}
		})
	}
}

func TestRecognizeDOI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare", "10.1145/3292500.3330919", "10.1145/3292500.3330919"},
		{"prefixed", "doi:10.1038/nphys1170", "10.1038/nphys1170"},
		{"doi.org URL", "https://doi.org/10.1000/xyz123", "10.1000/xyz123"},
		{"dx.doi.org URL", "http://dx.doi.org/10.1000/xyz123", "10.1000/xyz123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := Recognize(tt.input)
			if !ok {
				t.Fatalf("Recognize(%q) = no match, want doi %q", tt.input, tt.want)
			}
			if n.Scheme != SchemeDOI {
				t.Errorf("Recognize(%q) scheme = %v, want doi", tt.input, n.Scheme)
			}
			if n.Value != tt.want {
				t.Errorf("Recognize(%q) value = %q, want %q", tt.input, n.Value, tt.want)
			}
		})
	}
}

func TestRecognizeSchemes(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantScheme Scheme
		wantValue  string
	}{
		{"pmid prefixed", "PMID:12345678", SchemePMID, "12345678"},
		{"pmid with space", "PMID 9876543", SchemePMID, "9876543"},
		{"pmid pubmed URL", "https://www.ncbi.nlm.nih.gov/pubmed/12345678", SchemePMID, "12345678"},
		{"pmid bare short number", "123456", SchemePMID, "123456"},
		{"pmcid bare", "PMC1234567", SchemePMCID, "1234567"},
		{"pmcid URL", "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC1234567", SchemePMCID, "1234567"},
		{"isbn 13 hyphenated", "ISBN:978-0-306-40615-7", SchemeISBN, "9780306406157"},
		{"isbn with space", "ISBN: 978-3-16-148410-0", SchemeISBN, "9783161484100"},
		{"issn prefixed", "ISSN:2049-3630", SchemeISSN, "2049-3630"},
		{"orcid URL", "https://orcid.org/0000-0002-1825-0097", SchemeORCID, "0000-0002-1825-0097"},
		{"orcid prefixed", "ORCID:0000-0002-1825-0097", SchemeORCID, "0000-0002-1825-0097"},
		{"semantic scholar URL", "https://www.semanticscholar.org/paper/649def34f8be52c8b66281af98ae884c09aef38b", SchemeSemanticScholar, "649def34f8be52c8b66281af98ae884c09aef38b"},
		{"semantic scholar bare hash", "649def34f8be52c8b66281af98ae884c09aef38b", SchemeSemanticScholar, "649def34f8be52c8b66281af98ae884c09aef38b"},
		{"dblp prefixed", "dblp:conf/nips/VaswaniSPUJGKP17", SchemeDBLP, "conf/nips"},
		{"dblp URL", "https://dblp.org/rec/conf/nips/VaswaniSPUJGKP17", SchemeDBLP, "conf/nips"},
		{"wos prefixed", "WOS:000452345600001", SchemeWOS, "000452345600001"},
		{"scopus eid", "SCOPUS-ID:2-s2.0-85055555555", SchemeScopus, "2-s2.0-85055555555"},
		{"acl prefixed", "ACL:P19-1012", SchemeACL, "P19-1012"},
		{"acl bare", "P19-1012", SchemeACL, "P19-1012"},
		{"mag prefixed", "MAG:2741809807", SchemeMAG, "2741809807"},
		{"biorxiv prefixed", "bioRxiv:2020.03.24.005306", SchemeBioRxiv, "2020.03.24.005306"},
		{"biorxiv bare date form", "2020.03.24.005306", SchemeBioRxiv, "2020.03.24.005306"},
		{"medrxiv prefixed", "medRxiv:2021.01.02.425079", SchemeMedRxiv, "2021.01.02.425079"},
		{"medrxiv URL", "https://www.medrxiv.org/content/2021.01.02.425079", SchemeMedRxiv, "2021.01.02.425079"},
		{"chemrxiv prefixed", "ChemRxiv:2022.05.11.491234", SchemeChemRxiv, "2022.05.11.491234"},
		{"eartharxiv URL", "https://eartharxiv.org/repository/view/1234", SchemeEarthArXiv, "1234"},
		{"socarxiv URL", "https://osf.io/preprints/socarxiv/ab12c", SchemeSocArXiv, "ab12c"},
		{"psyarxiv URL", "https://psyarxiv.com/xy98z", SchemePsyArXiv, "xy98z"},
		{"lawarxiv URL", "https://osf.io/preprints/lawarxiv/qr45s", SchemeLawArXiv, "qr45s"},
		{"preprints prefixed", "Preprints:2021-12345", SchemePreprints, "2021-12345"},
		{"repec prefixed", "RePEc:wpa:wuwpfi:0207011", SchemeRePEc, "wpa:wuwpfi:0207011"},
		{"ssrn prefixed", "SSRN:3456789", SchemeSSRN, "3456789"},
		{"ssrn URL", "https://papers.ssrn.com/sol3/papers.cfm?abstract_id=3456789", SchemeSSRN, "3456789"},
		{"philpapers prefixed", "PhilPapers:SMITH-2020-12345", SchemePhilPapers, "SMITH-2020-12345"},
		{"hal prefixed", "HAL:hal-03456789", SchemeHAL, "03456789"},
		{"hal URL", "https://hal.science/hal-03456789", SchemeHAL, "03456789"},
		{"openaire prefixed", "OpenAIRE:123/abc456", SchemeOpenAIRE, "123/abc456"},
		{"zenodo record URL", "https://zenodo.org/record/3242074", SchemeZenodo, "3242074"},
		{"zenodo records URL", "https://zenodo.org/records/3242074", SchemeZenodo, "3242074"},
		{"figshare DOI form", "Figshare:10.6084/m9.figshare.12345", SchemeFigshare, "10.6084/m9.figshare.12345"},
		{"figshare article URL", "https://figshare.com/articles/dataset/12345678", SchemeFigshare, "12345678"},
		{"ethos prefixed", "EThOS:uk.bl.ethos.123456", SchemeEThOS, "123456"},
		{"core prefixed", "CORE:12345678", SchemeCORE, "12345678"},
		{"core URL", "https://core.ac.uk/display/12345678", SchemeCORE, "12345678"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := Recognize(tt.input)
			if !ok {
				t.Fatalf("Recognize(%q) = no match, want %v", tt.input, tt.wantScheme)
			}
			if n.Scheme != tt.wantScheme {
				t.Errorf("Recognize(%q) scheme = %v, want %v", tt.input, n.Scheme, tt.wantScheme)
			}
			if n.Value != tt.wantValue {
				t.Errorf("Recognize(%q) value = %q, want %q", tt.input, n.Value, tt.wantValue)
			}
		})
	}
}

func TestRecognizeMiss(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not an identifier",
		"https://example.com/some/page",
		"hello world 42",
	}
	for _, input := range inputs {
		if n, ok := Recognize(input); ok {
			t.Errorf("Recognize(%q) = %+v, want no match", input, n)
		}
	}
}

// TestBareNumericPrecedence pins the first-match-wins resolution of bare
// numeric strings across the schemes whose patterns overlap. The resolved
// scheme is always the earliest in enumeration order whose pattern matches.
func TestBareNumericPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Scheme
	}{
		// Up to eight digits: PMID beats MAG, SSRN, and WOS.
		{"seven digits", "1234567", SchemePMID},
		{"eight digits", "12345678", SchemePMID},
		// Nine or more digits: PMID passes, ISBN's bare pattern claims it
		// ahead of MAG, SSRN, and WOS.
		{"nine digits", "123456789", SchemeISBN},
		{"fifteen digits", "123456789012345", SchemeISBN},
		// Hyphenated numerics fall to ISBN ahead of ISSN and ORCID.
		{"bare issn shape", "2049-3630", SchemeISBN},
		{"bare orcid shape", "0000-0002-1825-0097", SchemeISBN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := Recognize(tt.input)
			if !ok {
				t.Fatalf("Recognize(%q) = no match, want %v", tt.input, tt.want)
			}
			if n.Scheme != tt.want {
				t.Errorf("Recognize(%q) scheme = %v, want %v", tt.input, n.Scheme, tt.want)
			}
		})
	}
}

// TestRecognizeIdempotent feeds each scheme's canonical URL back through
// recognition and expects the same (scheme, value). Restricted to schemes
// whose URL template is itself a recognized representation.
func TestRecognizeIdempotent(t *testing.T) {
	tests := []struct {
		scheme Scheme
		value  string
	}{
		{SchemeArxiv, "1707.08567"},
		{SchemeDOI, "10.1038/nphys1170"},
		{SchemeORCID, "0000-0002-1825-0097"},
		{SchemeSSRN, "3456789"},
		{SchemeZenodo, "3242074"},
		{SchemeHAL, "03456789"},
		{SchemeEThOS, "123456"},
		{SchemeCORE, "12345678"},
		{SchemeWOS, "000452345600001"},
		{SchemePsyArXiv, "xy98z"},
	}
	for _, tt := range tests {
		t.Run(tt.scheme.String(), func(t *testing.T) {
			url := URLFor(tt.scheme, tt.value)
			n, ok := Recognize(url)
			if !ok {
				t.Fatalf("Recognize(%q) = no match", url)
			}
			if n.Scheme != tt.scheme || n.Value != tt.value {
				t.Errorf("Recognize(%q) = (%v, %q), want (%v, %q)",
					url, n.Scheme, n.Value, tt.scheme, tt.value)
			}
		})
	}
}

func TestURLFor(t *testing.T) {
	tests := []struct {
		name   string
		scheme Scheme
		value  string
		want   string
	}{
		{"arxiv", SchemeArxiv, "2101.12345", "https://arxiv.org/abs/2101.12345"},
		{"doi", SchemeDOI, "10.1000/xyz", "https://doi.org/10.1000/xyz"},
		{"pmid", SchemePMID, "12345678", "https://pubmed.ncbi.nlm.nih.gov/12345678"},
		{"figshare numeric", SchemeFigshare, "12345", "https://doi.org/10.6084/m9.figshare.12345"},
		{"figshare DOI form", SchemeFigshare, "10.6084/m9.figshare.12345", "https://doi.org/10.6084/m9.figshare.12345"},
		{"empty value", SchemeArxiv, "", ""},
		{"unknown scheme", SchemeUnknown, "123", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := URLFor(tt.scheme, tt.value); got != tt.want {
				t.Errorf("URLFor(%v, %q) = %q, want %q", tt.scheme, tt.value, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(SchemeArxiv, "2101.12345"); got != "arXiv:2101.12345" {
		t.Errorf("Format(arxiv) = %q", got)
	}
	if got := Format(SchemePMID, "12345678"); got != "PMID:12345678" {
		t.Errorf("Format(pmid) = %q", got)
	}
	if got := Format(SchemePMCID, "1234567"); got != "PMC1234567" {
		t.Errorf("Format(pmcid) = %q", got)
	}
	if got := Format(SchemeDOI, ""); got != "" {
		t.Errorf("Format(empty) = %q, want empty", got)
	}
}

func TestParseScheme(t *testing.T) {
	for _, s := range Schemes() {
		if got := ParseScheme(s.String()); got != s {
			t.Errorf("ParseScheme(%q) = %v, want %v", s.String(), got, s)
		}
	}
	if got := ParseScheme("bogus"); got != SchemeUnknown {
		t.Errorf("ParseScheme(bogus) = %v, want unknown", got)
	}
}

func TestCollect(t *testing.T) {
	fields := []string{
		"https://arxiv.org/abs/2101.12345v2", // link href
		"doi:10.1038/nphys1170",              // DOI field
		"Phys. Rev. Lett. 99, 100. doi:10.1038/nphys1170", // journal ref repeats the DOI
		"", // absent comment
		"Attention Is All You Need", // title without identifiers
	}

	ids := Collect(fields...)
	if len(ids) != 2 {
		t.Fatalf("Collect returned %d identifiers, want 2: %+v", len(ids), ids)
	}
	if ids[0].Scheme != SchemeArxiv || ids[0].Value != "2101.12345" {
		t.Errorf("ids[0] = (%v, %q), want (arxiv, 2101.12345)", ids[0].Scheme, ids[0].Value)
	}
	if ids[1].Scheme != SchemeDOI || ids[1].Value != "10.1038/nphys1170" {
		t.Errorf("ids[1] = (%v, %q), want (doi, 10.1038/nphys1170)", ids[1].Scheme, ids[1].Value)
	}
}

func TestCollectDeduplicatesAcrossRepresentations(t *testing.T) {
	// The same arXiv ID in URL, prefixed, and versioned form is one identifier.
	ids := Collect(
		"https://arxiv.org/abs/1707.08567",
		"arXiv:1707.08567v3",
		"1707.08567",
	)
	if len(ids) != 1 {
		t.Fatalf("Collect returned %d identifiers, want 1: %+v", len(ids), ids)
	}
	if ids[0].Value != "1707.08567" {
		t.Errorf("value = %q, want 1707.08567", ids[0].Value)
	}
}
