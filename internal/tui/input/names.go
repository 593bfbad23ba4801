// Package input holds helpers for text entered in the TUI.
package input

import "strings"

// MatchingNames returns the names that start with input, ignoring case.
// Blank input matches nothing.
func MatchingNames(input string, names []string) []string {
	prefix := strings.ToLower(strings.TrimSpace(input))
	if prefix == "" {
		return nil
	}
	matches := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			matches = append(matches, name)
		}
	}
	return matches
}

// Autocomplete returns the first matching name and whether it exists.
func Autocomplete(input string, names []string) (string, bool) {
	matches := MatchingNames(input, names)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}
