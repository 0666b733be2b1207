package dartdoc

import "strings"

// MatchConfig selects texts by keyword. A nil or empty keyword list means
// the list is not applied.
type MatchConfig struct {
	Include []string
	Exclude []string
	// Exact requires a text to equal a keyword instead of containing it.
	Exact bool
}

// Match reports whether text passes the include and exclude lists.
func (c MatchConfig) Match(text string) bool {
	if len(c.Include) > 0 && !matchAny(text, c.Include, c.Exact) {
		return false
	}
	if len(c.Exclude) > 0 && matchAny(text, c.Exclude, c.Exact) {
		return false
	}
	return true
}

// Keywords returns a config that includes any of keys.
func Keywords(exact bool, keys ...string) MatchConfig {
	return MatchConfig{Include: keys, Exact: exact}
}

func matchAny(text string, keywords []string, exact bool) bool {
	for _, k := range keywords {
		if exact && text == k {
			return true
		}
		if !exact && strings.Contains(text, k) {
			return true
		}
	}
	return false
}
