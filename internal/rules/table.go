package rules

import (
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Category is one destination folder and the suffixes that route files to it.
type Category struct {
	Name       string
	Extensions []string
}

// Table is the ordered category list.
type Table []Category

// Match is the outcome of classifying one filename.
type Match struct {
	Category  string
	Extension string
}

// Empty reports whether the table has no categories.
func (t Table) Empty() bool {
	return len(t) == 0
}

// Names returns category names in table order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for _, c := range t {
		names = append(names, c.Name)
	}
	return names
}

// Match classifies name against the table. The first category with any
// matching suffix wins; within it the longest suffix is reported.
func (t Table) Match(name string) (Match, bool) {
	lowered := Fold(name)
	for _, category := range t {
		for _, ext := range category.SortedExtensions() {
			if ext == "" {
				continue
			}
			if strings.HasSuffix(lowered, Fold(ext)) {
				return Match{Category: category.Name, Extension: ext}, true
			}
		}
	}
	return Match{}, false
}

// SortedExtensions returns a copy of the extensions ordered longest first.
// Length counts characters, not bytes; equal lengths keep file order.
func (c Category) SortedExtensions() []string {
	sorted := slices.Clone(c.Extensions)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
	})
	return sorted
}

// Fold lower-cases s for suffix comparison. Names are NFC-normalized first so
// decomposed and precomposed spellings compare equal.
func Fold(s string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}
