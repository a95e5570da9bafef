package acronyms

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// engulfSlack is how much longer than the remaining short form a word may be
// and still count as a spelled-out mention of it.
const engulfSlack = 4

// minRunWordLen is the shortest word (exclusive) that may open a long form word.
const minRunWordLen = 2

// matchState tracks where the search is relative to the long form.
type matchState int

const (
	// stateIdle: no letter consumed yet in the current span.
	stateIdle matchState = iota

	// stateInRun: letters consumed, positioned at a word boundary.
	stateInRun

	// stateInWord: letters consumed from the current word, which still
	// has unconsumed characters.
	stateInWord
)

func (s matchState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateInRun:
		return "in-run"
	case stateInWord:
		return "in-word"
	default:
		return "unknown"
	}
}

// Options configures a Matcher.
type Options struct {
	// RequireCapitalized only lets a long form word start on a capitalised
	// word longer than two characters. Letters continuing an already opened
	// word are exempt.
	RequireCapitalized bool
}

// DefaultOptions returns the options used for document extraction.
func DefaultOptions() Options {
	return Options{RequireCapitalized: true}
}

// Matcher finds the long form of a short form within a window of words.
type Matcher struct {
	opts Options
}

// NewMatcher creates a matcher.
func NewMatcher(opts Options) *Matcher {
	return &Matcher{opts: opts}
}

// Match searches words for a contiguous span whose words spell out
// shortForm, allowing several letters per word and stopwords between
// words. It returns the consumed words with their original casing.
// The boolean is false when no long form exists; a true result may
// still hold fewer than two words.
func (m *Matcher) Match(shortForm string, words []string) ([]string, bool) {
	short := make([]rune, 0, len(shortForm))
	for _, r := range shortForm {
		short = append(short, unicode.ToLower(r))
	}
	return m.match(short, words, []string{}, stateIdle)
}

func (m *Matcher) match(short []rune, words []string, acc []string, st matchState) ([]string, bool) {
	if len(short) == 0 {
		return acc, true
	}
	if len(words) == 0 {
		return nil, false
	}

	word := words[0]
	lower := strings.ToLower(word)

	switch st {
	case stateIdle:
		if engulfs(short, lower) {
			return m.match(short, words[1:], []string{}, stateIdle)
		}
	case stateInRun:
		// A stopword inside a run may be passed over without consuming a
		// letter. It stays in the long form, as in "Bag of Words".
		if IsStopword(lower) {
			if res, ok := m.match(short, words[1:], appendWord(acc, word), stateInRun); ok {
				return res, true
			}
		}
	case stateInWord:
		// Mid-word: neither stopwords nor restarts apply.
	default:
		return nil, false
	}

	first, size := utf8.DecodeRuneInString(word)
	if unicode.ToLower(first) == short[0] {
		if st != stateInWord && !m.opensWord(word, first) {
			if st == stateInRun {
				return nil, false
			}
			return m.match(short, words[1:], []string{}, stateIdle)
		}

		next := acc
		if st != stateInWord {
			next = appendWord(acc, word)
		}

		// Whole word consumed by this letter.
		if res, ok := m.match(short[1:], words[1:], next, stateInRun); ok {
			return res, true
		}

		// Further letters taken from the same word.
		if rest := word[size:]; rest != "" {
			remaining := make([]string, 0, len(words))
			remaining = append(remaining, rest)
			remaining = append(remaining, words[1:]...)
			if res, ok := m.match(short[1:], remaining, next, stateInWord); ok {
				return res, true
			}
		}
	}

	if st == stateIdle {
		return m.match(short, words[1:], []string{}, stateIdle)
	}
	return nil, false
}

// opensWord reports whether word may start a new long form word.
func (m *Matcher) opensWord(word string, first rune) bool {
	if !m.opts.RequireCapitalized {
		return true
	}
	return utf8.RuneCountInString(word) > minRunWordLen && unicode.IsUpper(first)
}

// engulfs reports whether a word contains the whole remaining short form
// and is not much longer than it, i.e. the word is the acronym itself
// or a variant such as a plural.
func engulfs(short []rune, lowerWord string) bool {
	s := string(short)
	return strings.Contains(lowerWord, s) &&
		utf8.RuneCountInString(lowerWord) <= len(short)+engulfSlack
}

// appendWord returns a new slice; acc is shared between sibling branches.
func appendWord(acc []string, word string) []string {
	out := make([]string, len(acc), len(acc)+1)
	copy(out, acc)
	return append(out, word)
}
