package log

import (
	"regexp"
	"strings"
)

// ReplaceFilter returns a filter replacing every occurrence of old with repl.
func ReplaceFilter(old, repl string) func(string) string {
	return func(text string) string {
		if old == "" {
			return text
		}
		return strings.ReplaceAll(text, old, repl)
	}
}

// RegexFilter returns a filter replacing every match of re with repl.
// repl may reference capture groups as in regexp.Regexp.ReplaceAllString.
func RegexFilter(re *regexp.Regexp, repl string) func(string) string {
	return func(text string) string {
		return re.ReplaceAllString(text, repl)
	}
}

// ChainFilters applies filters in order.
func ChainFilters(filters ...func(string) string) func(string) string {
	return func(text string) string {
		for _, f := range filters {
			text = f(text)
		}
		return text
	}
}
