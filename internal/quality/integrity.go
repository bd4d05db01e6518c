package quality

import (
	"regexp"
	"sort"
	"strings"

	"valuator/internal/validation"
)

// corruptionMarkers are literal strings that only appear when a value was
// serialized or templated incorrectly.
var corruptionMarkers = []struct {
	marker string
	label  string
}{
	{"[object Object]", "object serialization artifact"},
	{"map[", "object serialization artifact"},
	{"<nil>", "nil value artifact"},
	{`{"`, "raw JSON fragment"},
	{"{{", "unrendered template placeholder"},
	{"\uFFFD", "character encoding corruption"},
}

var (
	undefinedRe = regexp.MustCompile(`\bundefined\b`)
	nanRe       = regexp.MustCompile(`\bNaN\b`)
	naRe        = regexp.MustCompile(`\bN/A\b`)
)

// checkIntegrity scans section text for corruption markers and placeholder
// values. Corruption is an error; "N/A" near a critical keyword is a warning.
func checkIntegrity(sections map[string]string, rules validation.GateRules) validation.Result {
	res := validation.Result{Validator: CategoryDataIntegrity, Passed: true, Errors: []string{}, Warnings: []string{}}
	titles := make([]string, 0, len(sections))
	for t := range sections {
		titles = append(titles, t)
	}
	sort.Strings(titles)

	lowered := make([]string, len(rules.CriticalKeywords))
	for i, k := range rules.CriticalKeywords {
		lowered[i] = strings.ToLower(k)
	}

	for _, title := range titles {
		text := sections[title]
		for _, m := range corruptionMarkers {
			if strings.Contains(text, m.marker) {
				res.Errors = append(res.Errors, title+": "+m.label+" "+quote(m.marker))
			}
		}
		if undefinedRe.MatchString(text) {
			res.Errors = append(res.Errors, title+`: literal "undefined" in text`)
		}
		if nanRe.MatchString(text) {
			res.Errors = append(res.Errors, title+`: literal "NaN" in text`)
		}
		for _, loc := range naRe.FindAllStringIndex(text, -1) {
			if kw := keywordNear(text, loc[0], loc[1], rules.NAWindow, lowered); kw != "" {
				res.Warnings = append(res.Warnings, title+`: "N/A" near "`+kw+`"`)
			}
		}
	}
	res.Passed = len(res.Errors) == 0
	return res
}

func keywordNear(text string, start, end, window int, keywords []string) string {
	lo := start - window
	if lo < 0 {
		lo = 0
	}
	hi := end + window
	if hi > len(text) {
		hi = len(text)
	}
	around := strings.ToLower(text[lo:hi])
	for _, k := range keywords {
		if strings.Contains(around, k) {
			return k
		}
	}
	return ""
}

func quote(s string) string {
	if s == "\uFFFD" {
		return "(U+FFFD)"
	}
	return `"` + s + `"`
}
