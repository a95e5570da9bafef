package domain

import (
	"sort"
	"time"
)

// EngineVersion is the current extraction engine version. Stored results with
// a lower version are stale and are recomputed on the next read.
const EngineVersion = 1.2

// AcronymResult is the persisted extraction result for one document.
// It is replaced wholesale whenever it is recomputed, never merged.
type AcronymResult struct {
	// Matches maps each resolved short form to its long form.
	Matches map[string]string

	// ShortForms lists every detected short form, resolved or not.
	ShortForms []string

	// Version is the engine version that produced the result.
	Version float64

	// UpdatedAt is when the result was computed.
	UpdatedAt time.Time
}

// IsStale reports whether the result was produced by an older engine.
func (r *AcronymResult) IsStale() bool {
	return r.Version < EngineVersion
}

// Pairs returns the (short form, long form) vote pairs of the result,
// sorted by short form.
func (r *AcronymResult) Pairs() []VoteDelta {
	if r == nil || len(r.Matches) == 0 {
		return nil
	}
	pairs := make([]VoteDelta, 0, len(r.Matches))
	for short, long := range r.Matches {
		pairs = append(pairs, VoteDelta{ShortForm: short, LongForm: long})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].ShortForm < pairs[j].ShortForm
	})
	return pairs
}

// AggregateEntry is the cross-document vote tally for one short form.
type AggregateEntry struct {
	// ShortForm is the acronym the entry belongs to.
	ShortForm string

	// Verified is an administrator override. Empty means unset.
	Verified string

	// LongFormCounts maps each long form to the number of live documents
	// currently resolving the short form to it.
	LongFormCounts map[string]int
}

// Majority returns the long form with the highest positive vote count.
// Ties go to the lexicographically smallest long form.
func (e *AggregateEntry) Majority() (string, bool) {
	if e == nil {
		return "", false
	}
	best, bestCount := "", 0
	for long, count := range e.LongFormCounts {
		if count <= 0 {
			continue
		}
		if count > bestCount || (count == bestCount && long < best) {
			best, bestCount = long, count
		}
	}
	return best, bestCount > 0
}

// VoteDelta is one adjustment to the aggregate vote count of a pair.
type VoteDelta struct {
	ShortForm string
	LongForm  string
	Delta     int
}

// ResolveState classifies how a document's result was obtained.
type ResolveState string

// Resolve states.
const (
	// ResolveStateCached means the stored result was current and served as is.
	ResolveStateCached ResolveState = "cached"

	// ResolveStateNew means no result existed and one was computed.
	ResolveStateNew ResolveState = "new"

	// ResolveStateUpdated means a stale or forced result was recomputed.
	ResolveStateUpdated ResolveState = "updated"
)

// Enrich resolves every short form with strict precedence: verified
// override, then the document's own match, then the aggregate majority.
// Short forms with none of these are omitted.
func Enrich(matches map[string]string, shortForms []string, entries map[string]AggregateEntry) map[string]string {
	resolved := make(map[string]string, len(shortForms))
	for _, short := range shortForms {
		entry, hasEntry := entries[short]
		if hasEntry && entry.Verified != "" {
			resolved[short] = entry.Verified
			continue
		}
		if long, ok := matches[short]; ok && long != "" {
			resolved[short] = long
			continue
		}
		if hasEntry {
			if long, ok := entry.Majority(); ok {
				resolved[short] = long
			}
		}
	}
	return resolved
}
