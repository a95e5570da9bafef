package acronyms

import "strings"

// ContextWindow returns up to size tokens immediately preceding position pos,
// oldest first. If the short form itself appears in that span, the window
// starts right after its last appearance so a prior mention is never
// consumed as part of the long form.
func ContextWindow(tokens []string, pos int, shortForm string, size int) []string {
	if pos > len(tokens) {
		pos = len(tokens)
	}
	if pos <= 0 || size <= 0 {
		return []string{}
	}

	start := max(pos-size, 0)
	window := tokens[start:pos:pos]

	for i := len(window) - 1; i >= 0; i-- {
		if strings.EqualFold(window[i], shortForm) {
			return window[i+1:]
		}
	}
	return window
}
