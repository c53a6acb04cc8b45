package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishal-24-1/demodashboard/internal/sales"
)

func byProduct(r sales.Record) string { return r.ProductID }
func bySize(r sales.Record) string    { return r.Size }
func qty(r sales.Record) float64      { return float64(r.QuantitySold) }

func rec(product, size string, sold int) sales.Record {
	return sales.Record{ProductID: product, Size: size, QuantitySold: sold}
}

func TestGroupSumsInFirstEncounterOrder(t *testing.T) {
	records := []sales.Record{rec("B", "M", 2), rec("A", "S", 1), rec("B", "L", 3), rec("C", "M", 0)}

	g := Group(records, byProduct, qty)

	assert.Equal(t, []string{"B", "A", "C"}, g.Keys())
	v, ok := g.Get("B")
	require.True(t, ok)
	assert.Equal(t, 5.0, v)
	_, ok = g.Get("Z")
	assert.False(t, ok)
}

func TestGroupNilValueCounts(t *testing.T) {
	records := []sales.Record{rec("A", "M", 9), rec("A", "M", 9), rec("B", "M", 9)}

	g := Group(records, byProduct, nil)

	v, _ := g.Get("A")
	assert.Equal(t, 2.0, v)
	assert.Equal(t, 2, g.Len())
}

func TestGroupNested(t *testing.T) {
	records := []sales.Record{rec("A", "M", 2), rec("B", "S", 1), rec("A", "L", 5), rec("A", "M", 1)}

	n := GroupNested(records, byProduct, bySize, qty)

	assert.Equal(t, []string{"A", "B"}, n.Keys())
	assert.Equal(t, []string{"M", "L"}, n.Inner("A").Keys())
	m, _ := n.Inner("A").Get("M")
	assert.Equal(t, 3.0, m)
	assert.Nil(t, n.Inner("Z"))

	totals := n.Totals()
	a, _ := totals.Get("A")
	assert.Equal(t, 8.0, a)
}

func TestRankDescendingStableTruncated(t *testing.T) {
	records := []sales.Record{
		rec("A", "", 5), rec("B", "", 7), rec("C", "", 5), rec("D", "", 9), rec("E", "", 1),
	}

	ranked := Rank(Group(records, byProduct, qty), 3)

	require.Len(t, ranked, 3)
	assert.Equal(t, []Ranked{{"D", 9}, {"B", 7}, {"A", 5}}, ranked)
}

func TestRankTiesKeepFirstEncounter(t *testing.T) {
	records := []sales.Record{rec("X", "", 4), rec("Y", "", 4), rec("Z", "", 4)}

	assert.Equal(t, []string{"X", "Y", "Z"}, Top(Group(records, byProduct, qty), TopN))
}

func TestRankNonFiniteOrdering(t *testing.T) {
	g := NewGroups()
	g.Add("nan", math.NaN())
	g.Add("low", math.Inf(-1))
	g.Add("mid", 3)
	g.Add("high", math.Inf(1))
	g.Add("nan2", math.NaN())

	assert.Equal(t, []string{"high", "mid", "low", "nan", "nan2"}, Top(g, 0))
}

func TestRankIsSortedAndBounded(t *testing.T) {
	records := make([]sales.Record, 0, 30)
	for i := 0; i < 30; i++ {
		records = append(records, rec(string(rune('a'+i%15)), "", (i*7)%11))
	}
	g := Group(records, byProduct, qty)

	ranked := Rank(g, TopN)

	require.Len(t, ranked, TopN)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Value, ranked[i].Value)
	}
	lowest := ranked[len(ranked)-1].Value
	kept := map[string]bool{}
	for _, r := range ranked {
		kept[r.Key] = true
	}
	for _, k := range g.Keys() {
		if kept[k] {
			continue
		}
		v, _ := g.Get(k)
		assert.LessOrEqual(t, v, lowest, "excluded key %s outranks the tail", k)
	}
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(Group(nil, byProduct, qty), TopN))
}
