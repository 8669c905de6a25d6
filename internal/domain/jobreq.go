package domain

import (
	"sort"
	"strings"
)

// JobRequirement is a job description reduced to matchable keywords.
// Immutable once built; shared read-only across all candidates in a run.
type JobRequirement struct {
	keywords []string
	set      map[string]struct{}
}

// NewJobRequirement builds a requirement from already-tokenized keywords.
// Tokens are lowercased and de-duplicated; the stored order is sorted so
// matching output is stable.
func NewJobRequirement(tokens []string) JobRequirement {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		set[t] = struct{}{}
	}
	keywords := make([]string, 0, len(set))
	for k := range set {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	return JobRequirement{keywords: keywords, set: set}
}

// Keywords returns the sorted keyword list.
func (j JobRequirement) Keywords() []string { return j.keywords }

// Empty reports whether parsing yielded no keywords. An empty set is a
// data condition: job-fit matching contributes zero, nothing fails.
func (j JobRequirement) Empty() bool { return len(j.keywords) == 0 }

// Contains does a case-insensitive exact match against the keyword set.
func (j JobRequirement) Contains(term string) bool {
	if len(j.set) == 0 {
		return false
	}
	_, ok := j.set[strings.ToLower(term)]
	return ok
}
