// Package extract pulls BL and container references out of free text, the
// fallback path for documents the structured extractor cannot handle (OCR'd
// PDFs, pasted email bodies). It looks for labeled values first and falls
// back to a strict carrier-reference pattern.
package extract

import (
	"regexp"
	"strings"

	"porteo/internal/ident"
)

// Result carries the raw extracted identifier strings. Both values keep the
// source formatting; normalization happens at comparison time.
type Result struct {
	ExtractedBL        string `json:"extracted_bl"`
	ExtractedContainer string `json:"extracted_container"`
}

// blLabels matches a labeled BL/booking value, e.g. "B/L: HLCU BEN 123 4567"
// or "Booking No. 177ABC1234".
var blLabels = regexp.MustCompile(
	`(?i:B\s*/?\s*L|BL\s*No\.?|Bill\s+of\s+Lading|Booking(?:\s*No\.?)?|MBL|HBL)\s*[:#]?\s*([A-Z0-9][A-Z0-9 /-]{4,28}[A-Z0-9])`)

// containerLabels matches a labeled container value, possibly a list.
var containerLabels = regexp.MustCompile(
	`(?i:Containers?|Cntrs?|Contenedor(?:es)?|Equipo)\s*(?:No\.?)?\s*[:#]?\s*((?:[A-Z]{4}\s?-?\d{6,7})(?:\s*[,;/]\s*[A-Z]{4}\s?-?\d{6,7})*)`)

// strictRef is the fallback when no label is present: four letters followed
// by 7 to 12 digits, the shape of carrier BL and booking references.
var strictRef = regexp.MustCompile(`\b([A-Z]{4})\s?-?(\d{7,12})\b`)

// containerRef is the ISO 6346 owner-code shape: four letters then exactly
// seven digits.
var containerRef = regexp.MustCompile(`\b([A-Z]{4})\s?-?(\d{7})\b`)

// FromText extracts BL and container references from free text.
func FromText(text string) Result {
	var res Result
	res.ExtractedBL = joinMatches(extractLabeled(blLabels, text))
	res.ExtractedContainer = joinMatches(extractLabeled(containerLabels, text))

	if res.ExtractedBL == "" {
		res.ExtractedBL = joinMatches(extractStrict(strictRef, text))
	}
	if res.ExtractedContainer == "" {
		res.ExtractedContainer = joinMatches(extractStrict(containerRef, text))
	}
	return res
}

func extractLabeled(re *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		v := strings.TrimSpace(m[1])
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func extractStrict(re *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1]+m[2])
	}
	return out
}

// joinMatches deduplicates by normalized value and joins with ", ".
func joinMatches(values []string) string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		n := ident.Normalize(v)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, v)
	}
	return strings.Join(out, ", ")
}
