// Package segment breaks source text into extended grapheme clusters, the
// unit the lexer advances by (spec.md 4.1). No grapheme-cluster library
// (e.g. rivo/uniseg) appears anywhere in the example corpus this module was
// grounded on, so clustering is implemented directly on unicode/utf8 and
// unicode: decode one rune, then fold any following combining marks
// (categories Mn/Mc/Me) into the same cluster. This covers the common case
// (a base rune followed by accents) without attempting the full Unicode
// UAX #29 grapheme-boundary algorithm.
package segment

import (
	"unicode"
	"unicode/utf8"
)

// Clusters splits s into a sequence of grapheme clusters in source order.
func Clusters(s string) []string {
	var out []string
	for len(s) > 0 {
		_, size := utf8.DecodeRuneInString(s)
		cluster := s[:size]
		rest := s[size:]

		for len(rest) > 0 {
			next, nsize := utf8.DecodeRuneInString(rest)
			if !isCombiningMark(next) {
				break
			}
			cluster += rest[:nsize]
			rest = rest[nsize:]
		}

		out = append(out, cluster)
		s = rest
	}
	return out
}

func isCombiningMark(r rune) bool {
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me)
}
