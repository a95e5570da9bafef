package acronyms

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// possessive clitics split off a word so that "SVM's" yields the token "SVM".
var clitics = []string{"'s", "’s"}

// Tokenize splits raw text into word tokens in document order.
// Line breaks become spaces, the text is NFC normalised and segmented on
// Unicode word boundaries. Whitespace and punctuation-only segments are
// dropped.
func Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}

	text = norm.NFC.String(lineBreaks.Replace(text))
	tokens := make([]string, 0, len(text)/6+1)

	var segment string
	state := -1
	for len(text) > 0 {
		segment, text, state = uniseg.FirstWordInString(text, state)
		if !isWordSegment(segment) {
			continue
		}
		tokens = appendSegment(tokens, segment)
	}

	return tokens
}

// appendSegment appends a segment, splitting a trailing possessive clitic
// into its own token.
func appendSegment(tokens []string, segment string) []string {
	for _, clitic := range clitics {
		if len(segment) > len(clitic) && strings.HasSuffix(segment, clitic) {
			return append(tokens, segment[:len(segment)-len(clitic)], clitic)
		}
	}
	return append(tokens, segment)
}

// isWordSegment reports whether a segment holds at least one rune that is
// neither whitespace, punctuation nor a symbol.
func isWordSegment(segment string) bool {
	for _, r := range segment {
		if !unicode.IsSpace(r) && !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return true
		}
	}
	return false
}
