package acronyms

import (
	"regexp"
	"sort"
)

// shortFormPattern matches two or more capitalised blocks with no
// separating whitespace: SVM, DoE, GraphQL.
var shortFormPattern = regexp.MustCompile(`\b(?:[A-Z][a-z]*){2,}`)

// DetectShortForms returns the distinct acronym-shaped runs in raw text,
// sorted for deterministic processing.
func DetectShortForms(text string) []string {
	found := shortFormPattern.FindAllString(text, -1)
	if len(found) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(found))
	shortForms := make([]string, 0, len(found))
	for _, sf := range found {
		if _, ok := seen[sf]; ok {
			continue
		}
		seen[sf] = struct{}{}
		shortForms = append(shortForms, sf)
	}
	sort.Strings(shortForms)
	return shortForms
}
