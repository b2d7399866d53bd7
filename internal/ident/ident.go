// Package ident normalizes shipping identifiers (bill-of-lading and container
// numbers) so that formatting noise never defeats a comparison.
package ident

import (
	"regexp"
	"strings"
)

// nonAlphanumeric matches every character that is not a letter or digit.
var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)

// splitSeparators matches token separators in raw multi-valued identifier
// strings: commas, semicolons, and whitespace.
var splitSeparators = regexp.MustCompile(`[,;\s]+`)

// groupSeparators matches only the hard separators between identifiers, so a
// single BL written with internal spaces stays one group.
var groupSeparators = regexp.MustCompile(`[,;]+`)

// minBLTokenLen filters out fragments (port codes, stray words) when splitting
// a raw string into BL tokens.
const minBLTokenLen = 5

// Normalize strips every non-alphanumeric character and upper-cases the rest.
// It is idempotent and is applied identically to BL and container numbers.
func Normalize(s string) string {
	return strings.ToUpper(nonAlphanumeric.ReplaceAllString(s, ""))
}

// SplitTokens splits a raw comma/whitespace-separated identifier string and
// normalizes each token. Empty tokens are dropped.
func SplitTokens(s string) []string {
	var out []string
	for _, tok := range splitSeparators.Split(s, -1) {
		n := Normalize(tok)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// SplitGroups splits a raw string on commas and semicolons only and
// normalizes each segment, so "HLCU BEN 123 4567" stays one identifier.
func SplitGroups(s string) []string {
	var out []string
	for _, seg := range groupSeparators.Split(s, -1) {
		n := Normalize(seg)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// SplitBLTokens splits a raw string into normalized BL tokens, keeping only
// tokens longer than minBLTokenLen.
func SplitBLTokens(s string) []string {
	var out []string
	for _, tok := range splitSeparators.Split(s, -1) {
		n := Normalize(tok)
		if len(n) > minBLTokenLen {
			out = append(out, n)
		}
	}
	return out
}
