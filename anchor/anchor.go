// Package anchor converts between dot-delimited property paths and the
// dash-delimited anchor form used for deep links, and extracts composition
// branch indexes from paths.
//
// The two codec functions are mutual inverses on well-formed input. The
// only subtlety is the synthetic pattern segment "(pattern-N)": its
// internal dash must survive both directions, so the scan tracks
// parenthesis depth and only rewrites delimiters that sit outside a
// parenthesized token.
package anchor

import (
	"strconv"
	"strings"
)

// PathToAnchor converts a dot-delimited path to its dash-delimited anchor.
// Dots inside parenthesized segments are left alone. The empty path maps
// to the empty anchor.
func PathToAnchor(path string) string {
	return rewriteDelimiters(path, '.', '-')
}

// AnchorToPath converts a dash-delimited anchor back to the dot-delimited
// path. Dashes inside parenthesized segments, such as the one in
// "(pattern-0)", are left alone, which makes this the inverse of
// [PathToAnchor] for every path without stray unbalanced parentheses.
func AnchorToPath(a string) string {
	return rewriteDelimiters(a, '-', '.')
}

// rewriteDelimiters replaces from with to everywhere outside parenthesized
// tokens. Depth goes up on '(' and down on ')', never below zero, so an
// unmatched ')' does not poison the rest of the string.
func rewriteDelimiters(s string, from, to byte) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == from && depth == 0:
			c = to
		}
		b.WriteByte(c)
	}
	return b.String()
}

// BranchIndex extracts a oneOf branch selection from a dot-delimited path:
// the first segment pair where the literal "oneOf" is immediately followed
// by a non-negative integer yields that integer. A "oneOf" whose follower
// does not parse is not a pair; the scan continues past it. Paths with no
// qualifying pair select the default branch 0.
func BranchIndex(path string) int {
	if path == "" {
		return 0
	}
	segments := strings.Split(path, ".")
	for i := 0; i+1 < len(segments); i++ {
		if segments[i] != "oneOf" {
			continue
		}
		n, err := strconv.Atoi(segments[i+1])
		if err != nil || n < 0 {
			continue
		}
		return n
	}
	return 0
}
