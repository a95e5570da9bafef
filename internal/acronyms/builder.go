package acronyms

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/logger"
)

// minLongFormWords is the fewest words a long form may have.
const minLongFormWords = 2

// Builder produces the acronym result for a whole document.
type Builder struct {
	match      func(shortForm string, words []string) ([]string, bool)
	windowSize int
	now        func() time.Time
}

// NewBuilder creates a builder from engine settings.
func NewBuilder(settings domain.EngineSettings) *Builder {
	size := settings.WindowSize
	if size <= 0 {
		size = domain.DefaultWindowSize
	}
	return &Builder{
		match:      NewMatcher(Options{RequireCapitalized: settings.RequireCapitalized}).Match,
		windowSize: size,
		now:        time.Now,
	}
}

// Build detects the short forms of text and resolves each against the
// tokens preceding its occurrences. The first occurrence yielding a long
// form of at least two words wins. Short forms without one are listed in
// ShortForms but absent from Matches.
func (b *Builder) Build(text string) *domain.AcronymResult {
	shortForms := DetectShortForms(text)
	tokens := Tokenize(text)

	wanted := make(map[string]struct{}, len(shortForms))
	for _, sf := range shortForms {
		wanted[sf] = struct{}{}
	}

	positions := make(map[string][]int, len(shortForms))
	for i, tok := range tokens {
		if _, ok := wanted[tok]; ok {
			positions[tok] = append(positions[tok], i)
		}
	}

	matches := make(map[string]string)
	for _, sf := range shortForms {
		occurrences, ok := positions[sf]
		if !ok {
			logger.Debug("short form %q not found among tokens", sf)
			continue
		}
		for _, pos := range occurrences {
			window := ContextWindow(tokens, pos, sf, b.windowSize)
			longForm, err := b.resolveOccurrence(sf, window)
			if err != nil {
				logger.Error("failed to find long form for %s at token %d: %v", sf, pos, err)
				continue
			}
			if longForm != "" {
				matches[sf] = longForm
				break
			}
		}
	}

	logger.Debug("resolved %d of %d short forms", len(matches), len(shortForms))

	return &domain.AcronymResult{
		Matches:    matches,
		ShortForms: shortForms,
		Version:    domain.EngineVersion,
		UpdatedAt:  b.now(),
	}
}

// resolveOccurrence matches one occurrence. A panic inside the matcher is
// reported as ErrMatcherFailure so one bad candidate cannot abort the document.
func (b *Builder) resolveOccurrence(shortForm string, window []string) (longForm string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrMatcherFailure, r)
		}
	}()

	words, ok := b.match(shortForm, window)
	if !ok || len(words) < minLongFormWords {
		return "", nil
	}
	return strings.Join(words, " "), nil
}
