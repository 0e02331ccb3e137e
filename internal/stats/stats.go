// Package stats derives the descriptive statistics, rankings, and
// relationship traversals from the loaded tables. Every function here
// is a pure derivation; source tables are never modified.
package stats

import (
	"sort"
	"strings"

	"github.com/pitchlens/pitchlens/internal/dataset"
	"github.com/pitchlens/pitchlens/internal/model"
)

// Analyzer computes report sections from a loaded dataset
type Analyzer struct {
	cfg *model.Config
}

// NewAnalyzer creates an analyzer with the given configuration
func NewAnalyzer(cfg *model.Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

func (a *Analyzer) domestic() string {
	return a.cfg.Analysis.DomesticCountry
}

// intlType reports whether an entity type counts as international when
// no country field is available for the record
func (a *Analyzer) intlType(entityType string) bool {
	for _, t := range a.cfg.Analysis.InternationalEntityTypes {
		if entityType == t {
			return true
		}
	}
	return false
}

// counter accumulates counts in first-seen key order, so descending
// sorts are stable and ties keep insertion order. Ties are not
// semantically significant.
type counter struct {
	keys   []string
	counts map[string]int
	names  map[string]string
}

func newCounter() *counter {
	return &counter{
		counts: make(map[string]int),
		names:  make(map[string]string),
	}
}

// Add counts one occurrence of key; name labels the key on first sight
func (c *counter) Add(key, name string) {
	if key == "" {
		return
	}
	if _, seen := c.counts[key]; !seen {
		c.keys = append(c.keys, key)
		if name != "" {
			c.names[key] = name
		}
	}
	c.counts[key]++
}

// Set records an absolute count for key, replacing any prior value
func (c *counter) Set(key, name string, count int) {
	if key == "" {
		return
	}
	if _, seen := c.counts[key]; !seen {
		c.keys = append(c.keys, key)
		if name != "" {
			c.names[key] = name
		}
	}
	c.counts[key] = count
}

// Len returns the number of distinct keys
func (c *counter) Len() int {
	return len(c.keys)
}

// Total returns the sum of all counts
func (c *counter) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

func (c *counter) sortedKeys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	return keys
}

// Items returns the counts sorted descending
func (c *counter) Items(limit int) []model.CountItem {
	keys := c.sortedKeys()
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	out := make([]model.CountItem, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.CountItem{Key: k, Count: c.counts[k]})
	}
	return out
}

// Ranked returns the top-n entries with their labels. The first entry
// always carries the maximum count in the counter.
func (c *counter) Ranked(n int) []model.RankedEntity {
	keys := c.sortedKeys()
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}
	out := make([]model.RankedEntity, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.RankedEntity{ID: k, Name: c.names[k], Count: c.counts[k]})
	}
	return out
}

// Shares returns counts with their percentage of the counter total
func (c *counter) Shares() []model.Share {
	total := c.Total()
	if total == 0 {
		return nil
	}
	keys := c.sortedKeys()
	out := make([]model.Share, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.Share{
			Key:     k,
			Count:   c.counts[k],
			Percent: float64(c.counts[k]) / float64(total) * 100,
		})
	}
	return out
}

// indexByID maps a column's values to the first row carrying them
func indexByID(t *dataset.Table, idCol string) map[string]int {
	out := make(map[string]int)
	if t == nil {
		return out
	}
	col, ok := t.ColumnIndex(idCol)
	if !ok {
		return out
	}
	for r, row := range t.Rows {
		if col >= len(row) {
			continue
		}
		id := strings.TrimSpace(row[col])
		if id == "" {
			continue
		}
		if _, seen := out[id]; !seen {
			out[id] = r
		}
	}
	return out
}

// internationalIDs collects IDs whose country column differs from the
// domestic reference. Null-country rows are included; the original
// reports treat "not recorded as domestic" as international and track
// nulls as a separate metric.
func internationalIDs(t *dataset.Table, idCol, countryCol, domestic string) map[string]struct{} {
	out := make(map[string]struct{})
	if t == nil || !t.HasColumn(countryCol) {
		return out
	}
	for r := range t.Rows {
		if strings.TrimSpace(t.Value(r, countryCol)) == domestic {
			continue
		}
		id := strings.TrimSpace(t.Value(r, idCol))
		if id != "" {
			out[id] = struct{}{}
		}
	}
	return out
}

// nullCountryIDs collects IDs whose country column is blank
func nullCountryIDs(t *dataset.Table, idCol, countryCol string) map[string]struct{} {
	out := make(map[string]struct{})
	if t == nil || !t.HasColumn(countryCol) {
		return out
	}
	for r := range t.Rows {
		if !t.IsNull(r, countryCol) {
			continue
		}
		id := strings.TrimSpace(t.Value(r, idCol))
		if id != "" {
			out[id] = struct{}{}
		}
	}
	return out
}

func contains(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}
