package dataprocessing

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeHeader canonicalizes a raw column header: trim, lowercase,
// internal spaces to underscores, diacritics stripped to their base
// Latin letter. Non-Latin runes pass through unchanged. The function is
// idempotent, so headers that were already normalized survive a second
// pass untouched.
func NormalizeHeader(header string) string {
	s := strings.TrimSpace(header)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	return stripDiacritics(s)
}

// NormalizeHeaders normalizes a header row in place order, one output
// per input.
func NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = NormalizeHeader(h)
	}
	return out
}

// normalizeSheetName canonicalizes a sheet name for lookup. Sheet names
// keep their spaces but are matched case- and accent-insensitively.
func normalizeSheetName(name string) string {
	return stripDiacritics(strings.ToLower(strings.TrimSpace(name)))
}

// stripDiacritics decomposes to NFD and drops combining marks, mapping
// accented characters to their base letter ("Férias" -> "Ferias").
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
