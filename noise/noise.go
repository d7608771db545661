// Package noise holds the word lists and run-scanning helpers the
// recovery and fallback-extraction paths use to pull salvageable text out
// of a ViewState buffer whose structure could not be parsed (spec.md
// §4.7, §4.8). It plays the role the teacher's dictionary subpackage
// plays for opendcm: a static lookup table consulted by the parser, kept
// apart from the parser's own control flow.
package noise

import (
	"regexp"
	"strings"
)

var (
	rePureDigits        = regexp.MustCompile(`^[0-9]+$`)
	rePureHex           = regexp.MustCompile(`^[0-9A-Fa-f]+$`)
	reAEquals           = regexp.MustCompile(`^[A=]+$`)
	rePlusSlashEquals   = regexp.MustCompile(`^[+/=]+$`)
	reCtlDigits         = regexp.MustCompile(`^ctl[0-9]+$`)
	reImageButtonDigits = regexp.MustCompile(`^ImageButton[0-9]+$`)
	reSystemType        = regexp.MustCompile(`System\.[A-Za-z.]+`)
)

// IsNoise reports whether s matches one of the fallback extractor's noise
// filters: pure digits, pure hex, runs of 'A'/'=', pure '+/=', "ctl<n>",
// or "ImageButton<n>" (spec.md §4.8).
func IsNoise(s string) bool {
	switch {
	case rePureDigits.MatchString(s):
		return true
	case rePureHex.MatchString(s):
		return true
	case reAEquals.MatchString(s):
		return true
	case rePlusSlashEquals.MatchString(s):
		return true
	case reCtlDigits.MatchString(s):
		return true
	case reImageButtonDigits.MatchString(s):
		return true
	default:
		return false
	}
}

// ExtractPrintableRuns scans data for printable-ASCII runs (octets in
// [0x20, 0x7E]) of at least minLen octets. Runs are deduplicated in
// first-seen order, noise-filtered, and capped at max entries
// (spec.md §4.7, §4.8).
func ExtractPrintableRuns(data []byte, minLen, max int) []string {
	var runs []string
	seen := make(map[string]bool)
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		if end-start >= minLen {
			s := string(data[start:end])
			if !seen[s] && !IsNoise(s) {
				seen[s] = true
				runs = append(runs, s)
			}
		}
		start = -1
	}

	for i := 0; i < len(data) && len(runs) < max; i++ {
		b := data[i]
		if b >= 0x20 && b <= 0x7E {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	if len(runs) < max {
		flush(len(data))
	}
	if len(runs) > max {
		runs = runs[:max]
	}
	return runs
}

// knownDotNetTypes are labeled explicitly before the generic System.* scan
// runs, so they surface even when the generic pattern would also match
// them (spec.md §4.8).
var knownDotNetTypes = []string{
	"System.Data.DataTable",
	"System.Data.DataSet",
	"System.Version",
}

// ExtractDotNetTypes scans data for the known DataTable/DataSet/Version
// markers and any generic "System.<name>" type name, deduplicated in
// first-seen order (spec.md §4.8).
func ExtractDotNetTypes(data []byte) []string {
	text := string(data)
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, known := range knownDotNetTypes {
		if strings.Contains(text, known) {
			add(known)
		}
	}
	for _, m := range reSystemType.FindAllString(text, -1) {
		add(m)
	}
	return out
}
