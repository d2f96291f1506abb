// Package extract implements the extraction front-end of the pipeline: raw
// cell parsing, row-label cleaning, row classification, period-column
// selection, and table acquisition from DART filing HTML and inline XBRL.
package extract

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// VALUE PARSING - Korean financial cell notation
// =============================================================================

var (
	numberPattern = regexp.MustCompile(`-?[\d.]+`)
	// Characters stripped before numeric parsing: separators, currency
	// symbols, embedded newlines from multi-line cells.
	valueStripper = strings.NewReplacer(
		",", "",
		"₩", "",
		"$", "",
		"\n", "",
		"\r", "",
		"\t", "",
		" ", "",
		"　", "",
	)
)

// ParseValue parses a raw table cell into a number. It never fails: dashes
// and empty cells mean zero, parentheses and the △/▲ markers mean negative,
// and anything unparseable degrades to the first numeric substring or zero.
//
//	"523,659,586" → 523659586
//	"(1,234)"     → -1234
//	"△1,234"      → -1234
//	"-" / "—"     → 0
func ParseValue(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" || s == "—" || s == "–" || s == "―" {
		return 0
	}

	negative := false

	// Parenthetical negative: (1,234)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}

	// Korean negative markers
	for _, marker := range []string{"△", "▲"} {
		if strings.HasPrefix(s, marker) {
			negative = true
			s = strings.TrimPrefix(s, marker)
		}
	}

	s = valueStripper.Replace(s)
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || s == "—" {
		return 0
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Best effort: pull the first numeric run out of the residue.
		match := numberPattern.FindString(s)
		if match == "" || match == "." || match == "-" {
			log.Printf("[ValueParser] unparseable cell %q, defaulting to 0", raw)
			return 0
		}
		value, err = strconv.ParseFloat(strings.TrimSuffix(match, "."), 64)
		if err != nil {
			log.Printf("[ValueParser] unparseable cell %q, defaulting to 0", raw)
			return 0
		}
	}

	if negative && value > 0 {
		value = -value
	}
	return value
}
