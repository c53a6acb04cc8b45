// Package aggregate holds the group-by and ranking primitives shared by every
// dashboard view. Group keys keep the order in which they were first seen so
// that ties rank deterministically.
package aggregate

import (
	"math"
	"sort"

	"github.com/vishal-24-1/demodashboard/internal/sales"
)

// TopN is the default truncation applied to ranked views.
const TopN = 10

// KeyFunc extracts a grouping key from a record.
type KeyFunc func(sales.Record) string

// ValueFunc extracts the numeric contribution of a record.
type ValueFunc func(sales.Record) float64

// Count contributes 1 per record.
func Count(sales.Record) float64 { return 1 }

// Groups is an ordered key → sum mapping.
type Groups struct {
	keys   []string
	values map[string]float64
}

// NewGroups returns an empty ordered group set.
func NewGroups() *Groups {
	return &Groups{values: map[string]float64{}}
}

// Add accumulates v under key, registering the key on first use.
func (g *Groups) Add(key string, v float64) {
	if _, ok := g.values[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.values[key] += v
}

// Keys returns the keys in first-encounter order.
func (g *Groups) Keys() []string {
	if g == nil {
		return nil
	}
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Get returns the sum for key and whether the key exists.
func (g *Groups) Get(key string) (float64, bool) {
	if g == nil {
		return 0, false
	}
	v, ok := g.values[key]
	return v, ok
}

func (g *Groups) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// Group sums valueFn per keyFn. A nil valueFn counts records.
func Group(records []sales.Record, keyFn KeyFunc, valueFn ValueFunc) *Groups {
	if valueFn == nil {
		valueFn = Count
	}
	g := NewGroups()
	for _, rec := range records {
		g.Add(keyFn(rec), valueFn(rec))
	}
	return g
}

// Nested is an ordered outer key → inner Groups mapping.
type Nested struct {
	keys  []string
	inner map[string]*Groups
}

// Keys returns the outer keys in first-encounter order.
func (n *Nested) Keys() []string {
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Inner returns the inner groups of an outer key, or nil.
func (n *Nested) Inner(key string) *Groups {
	return n.inner[key]
}

// Totals collapses each outer key to the sum of its inner values.
func (n *Nested) Totals() *Groups {
	g := NewGroups()
	for _, k := range n.keys {
		inner := n.inner[k]
		total := 0.0
		for _, ik := range inner.keys {
			total += inner.values[ik]
		}
		g.Add(k, total)
	}
	return g
}

// GroupNested sums valueFn under outer then inner key. Both levels keep
// first-encounter order.
func GroupNested(records []sales.Record, outerKey, innerKey KeyFunc, valueFn ValueFunc) *Nested {
	if valueFn == nil {
		valueFn = Count
	}
	n := &Nested{inner: map[string]*Groups{}}
	for _, rec := range records {
		k := outerKey(rec)
		inner, ok := n.inner[k]
		if !ok {
			inner = NewGroups()
			n.inner[k] = inner
			n.keys = append(n.keys, k)
		}
		inner.Add(innerKey(rec), valueFn(rec))
	}
	return n
}

// Ranked is one entry of a ranking.
type Ranked struct {
	Key   string
	Value float64
}

// Rank orders groups by value descending and keeps the first n. Ties keep
// first-encounter order. +Inf ranks above every number, -Inf below, and NaN
// after everything else. n <= 0 means no truncation.
func Rank(g *Groups, n int) []Ranked {
	out := make([]Ranked, 0, g.Len())
	for _, k := range g.Keys() {
		out = append(out, Ranked{Key: k, Value: g.values[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return higher(out[i].Value, out[j].Value)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Top returns the n highest keys.
func Top(g *Groups, n int) []string {
	ranked := Rank(g, n)
	keys := make([]string, len(ranked))
	for i, r := range ranked {
		keys[i] = r.Key
	}
	return keys
}

func higher(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}
