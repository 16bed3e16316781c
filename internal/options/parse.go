package options

import (
	"regexp"
	"strconv"
	"strings"
)

// _fragmentRe matches a single option fragment.
// Alternatives are tried in order, so quoted and bracketed values
// win over bare values, which win over flags.
var _fragmentRe = regexp.MustCompile(
	`([\w-]+)="([^"]*)"` + // key="quoted value"
		`|([\w-]+)=(\[[^\]]*\])` + // key=[list]
		`|([\w-]+)=(\S+)` + // key=value
		`|(\S+)`, // flag
)

// Parse parses an option string.
// It never fails: fragments it doesn't understand are skipped.
func Parse(input string) Options {
	opts := make(Options)

	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return opts
	}

	// The language is positional: only the very first fragment qualifies,
	// and only if it isn't a key=value pair.
	if first := strings.Fields(input)[0]; !strings.Contains(first, "=") {
		input = input[len(first):]
		if lang, ok := unquoteLang(first); ok {
			opts[KeyLang] = lang
		}
	}

	for _, m := range _fragmentRe.FindAllStringSubmatch(input, -1) {
		switch {
		case m[1] != "":
			opts[m[1]] = m[2]
		case m[3] != "":
			opts[m[3]] = parseList(m[4])
		case m[5] != "":
			opts[m[5]] = m[6]
		default:
			// A leftover fragment with '=' has an empty
			// or invalid key, e.g. "=foo".
			if flag := m[7]; !strings.Contains(flag, "=") {
				opts[flag] = true
			}
		}
	}

	return opts
}

// unquoteLang strips one pair of double quotes from a positional language.
// A lone or empty quote isn't a language.
func unquoteLang(s string) (string, bool) {
	if !strings.HasPrefix(s, `"`) && !strings.HasSuffix(s, `"`) {
		return s, true
	}
	if len(s) > 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		inner := s[1 : len(s)-1]
		return inner, !strings.Contains(inner, `"`)
	}
	return "", false
}

// _maxRange is the widest range a list element may span.
// Wider ranges are skipped like any other malformed element.
const _maxRange = 1 << 16

// parseList parses a bracketed list of line numbers and ranges.
//
//	[1,3,5-7] => [1 3 5 6 7]
//
// A range whose start is greater than its end contributes nothing,
// and so does a range spanning more than _maxRange numbers.
// Elements that aren't numbers or ranges are skipped.
func parseList(s string) []int {
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	nums := []int{}
	for _, elem := range strings.Split(s, ",") {
		elem = strings.TrimSpace(elem)
		if len(elem) == 0 {
			continue
		}

		lo, hi, isRange := strings.Cut(elem, "-")
		if !isRange {
			if n, err := strconv.Atoi(elem); err == nil {
				nums = append(nums, n)
			}
			continue
		}

		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			continue
		}
		end, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			continue
		}
		if start > end || end-start >= _maxRange {
			continue
		}
		// end may be math.MaxInt; n++ must not run past it.
		for n := start; ; n++ {
			nums = append(nums, n)
			if n == end {
				break
			}
		}
	}
	return nums
}
