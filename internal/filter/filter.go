// Package filter applies the +pattern/-pattern file include/exclude rules
// of the `-filter` flag.
package filter

import (
	"fmt"
	"regexp"
)

// Rule is one compiled +pattern/-pattern entry.
type Rule struct {
	Include bool
	Pattern *regexp.Regexp
	Raw     string
}

// Compile parses every rule string ("+pattern" or "-pattern") in order.
func Compile(rules []string) ([]Rule, error) {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if len(r) < 2 || (r[0] != '+' && r[0] != '-') {
			return nil, fmt.Errorf("filter rule %q must start with '+' or '-'", r)
		}
		pat, err := regexp.Compile(r[1:])
		if err != nil {
			return nil, fmt.Errorf("filter rule %q: %w", r, err)
		}
		out = append(out, Rule{Include: r[0] == '+', Pattern: pat, Raw: r})
	}
	return out, nil
}

// Apply runs files through rules in order: each matching rule overrides the
// previous verdict, so the last rule matching a given file decides its fate.
// A file matching no rule is kept only if no "+"-rule exists in the whole
// set (a bare exclude-only filter starts from "include everything");
// otherwise it is dropped (an include-only or mixed filter starts from
// "include nothing until a + rule says otherwise").
func Apply(files []string, rules []Rule) []string {
	if len(rules) == 0 {
		return files
	}
	hasInclude := false
	for _, r := range rules {
		if r.Include {
			hasInclude = true
			break
		}
	}

	out := make([]string, 0, len(files))
	for _, f := range files {
		keep := !hasInclude
		for _, r := range rules {
			if r.Pattern.MatchString(f) {
				keep = r.Include
			}
		}
		if keep {
			out = append(out, f)
		}
	}
	return out
}
