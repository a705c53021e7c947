package pipeline

import (
	"math/rand"
	"testing"

	"github.com/liznear/rangemap/model"
)

// sampleTables are the published example rule tables, in "dest source length" order.
var sampleTables = []struct {
	name  string
	rules [][3]uint64
}{
	{"seed-to-soil", [][3]uint64{{50, 98, 2}, {52, 50, 48}}},
	{"soil-to-fertilizer", [][3]uint64{{0, 15, 37}, {37, 52, 2}, {39, 0, 15}}},
	{"fertilizer-to-water", [][3]uint64{{49, 53, 8}, {0, 11, 42}, {42, 0, 7}, {57, 7, 4}}},
	{"water-to-light", [][3]uint64{{88, 18, 7}, {18, 25, 70}}},
	{"light-to-temperature", [][3]uint64{{45, 77, 23}, {81, 45, 19}, {68, 64, 13}}},
	{"temperature-to-humidity", [][3]uint64{{0, 69, 1}, {1, 0, 69}}},
	{"humidity-to-location", [][3]uint64{{60, 56, 37}, {56, 93, 4}}},
}

var sampleSeeds = []uint64{79, 14, 55, 13}

func mustStage(t testing.TB, name string, rules ...model.Rule) *Stage {
	t.Helper()
	s, err := NewStage(name, rules...)
	if err != nil {
		t.Fatalf("Fail to build stage %q: %v", name, err)
	}
	return s
}

func samplePipeline(t testing.TB) *Pipeline {
	t.Helper()
	var stages []*Stage
	for _, table := range sampleTables {
		var rules []model.Rule
		for _, r := range table.rules {
			rules = append(rules, model.NewRule(r[0], r[1], r[2]))
		}
		stages = append(stages, mustStage(t, table.name, rules...))
	}
	return New(stages...)
}

// randomStage builds a stage of non-overlapping rules with sources inside [0, limit).
// Some gaps are left between rules so identity segments are exercised too.
func randomStage(t testing.TB, rnd *rand.Rand, limit uint64) *Stage {
	t.Helper()
	var rules []model.Rule
	cursor := uint64(0)
	for cursor < limit {
		gap := uint64(rnd.Int63n(int64(limit/8) + 1))
		length := uint64(rnd.Int63n(int64(limit/4))) + 1
		start := cursor + gap
		if start >= limit {
			break
		}
		length = min(length, limit-start)
		dest := uint64(rnd.Int63n(int64(limit)))
		rules = append(rules, model.NewRule(dest, start, length))
		cursor = start + length
	}
	rnd.Shuffle(len(rules), func(i, j int) { rules[i], rules[j] = rules[j], rules[i] })
	return mustStage(t, "random", rules...)
}

func randomInterval(rnd *rand.Rand, limit uint64) model.Interval {
	a := uint64(rnd.Int63n(int64(limit)))
	b := uint64(rnd.Int63n(int64(limit)))
	if a > b {
		a, b = b, a
	}
	return model.NewInterval(a, b+1)
}
