package feedback

import (
	"fmt"
	"sort"

	"github.com/valentinpelus/signal/pkg/analysis"
)

// Filter selects the working set from the master collection. Empty fields
// do not constrain.
type Filter struct {
	Source    string
	Sentiment analysis.Sentiment
	Theme     analysis.Theme
}

// Validate rejects sentiment and theme values that no record can carry
func (f Filter) Validate() error {
	if f.Sentiment != "" && !f.Sentiment.Valid() {
		return fmt.Errorf("unknown sentiment %q", f.Sentiment)
	}
	if f.Theme != "" && !f.Theme.Valid() {
		return fmt.Errorf("unknown theme %q", f.Theme)
	}
	return nil
}

// IsZero reports whether the filter matches everything
func (f Filter) IsZero() bool {
	return f.Source == "" && f.Sentiment == "" && f.Theme == ""
}

// Match reports whether r passes every set predicate
func (f Filter) Match(r Record) bool {
	if f.Source != "" && r.source != f.Source {
		return false
	}
	if f.Sentiment != "" && r.analysis.Sentiment != f.Sentiment {
		return false
	}
	if f.Theme != "" && r.analysis.Theme != f.Theme {
		return false
	}
	return true
}

// Apply returns the matching records in their original order
func (f Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Themes returns the distinct themes present in records, sorted by name
func Themes(records []Record) []analysis.Theme {
	seen := make(map[analysis.Theme]bool)
	var themes []analysis.Theme
	for _, r := range records {
		if !seen[r.analysis.Theme] {
			seen[r.analysis.Theme] = true
			themes = append(themes, r.analysis.Theme)
		}
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i] < themes[j] })
	return themes
}
