package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lower applies language-neutral Unicode lower-casing. Keywords and page
// content go through the same function so that matching stays consistent.
// A Caser is stateful, so a fresh one is used per call.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// CollapseWhitespace replaces every run of Unicode whitespace with a single
// space and trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
