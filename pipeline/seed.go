package pipeline

import (
	"fmt"

	"github.com/liznear/rangemap/model"
)

// SeedSpec is the input domain of a query: either discrete values or ranges.
type SeedSpec struct {
	values    []uint64
	intervals []model.Interval
	ranged    bool
}

// SeedsFromValues treats every value as its own seed.
func SeedsFromValues(values []uint64) SeedSpec {
	return SeedSpec{
		values: append([]uint64(nil), values...),
	}
}

// SeedsFromPairs reads values as consecutive (start, length) pairs.
func SeedsFromPairs(values []uint64) (SeedSpec, error) {
	if len(values)%2 != 0 {
		return SeedSpec{}, &ConfigError{
			Section: "seeds",
			Err:     fmt.Errorf("got %d values: %w", len(values), ErrOddSeedCount),
		}
	}
	spec := SeedSpec{ranged: true}
	for i := 0; i < len(values); i += 2 {
		spec.intervals = append(spec.intervals, model.WithLength(values[i], values[i+1]))
	}
	return spec, nil
}

func SeedsFromRanges(ranges ...model.Interval) SeedSpec {
	return SeedSpec{
		intervals: append([]model.Interval(nil), ranges...),
		ranged:    true,
	}
}

// Ranged reports whether the seeds were declared as ranges.
func (s SeedSpec) Ranged() bool {
	return s.ranged
}

// Values returns the discrete seeds, or nil for a ranged spec.
func (s SeedSpec) Values() []uint64 {
	if s.ranged {
		return nil
	}
	return append([]uint64(nil), s.values...)
}

// Intervals returns the non-empty seed intervals in declaration order, or nil for
// discrete seeds.
func (s SeedSpec) Intervals() []model.Interval {
	var ret []model.Interval
	for _, iv := range s.intervals {
		if !iv.Empty() {
			ret = append(ret, iv)
		}
	}
	return ret
}

// Len returns the number of queries the spec expands to.
func (s SeedSpec) Len() int {
	if s.ranged {
		return len(s.Intervals())
	}
	return len(s.values)
}

func (s SeedSpec) Empty() bool {
	return s.Len() == 0
}

// IntervalSet normalizes the seeds into a single set. A discrete seed is a length-1
// interval, so math.MaxUint64 itself can't be represented and is left out.
func (s SeedSpec) IntervalSet() *IntervalSet {
	ret := NewIntervalSet(s.intervals...)
	for _, v := range s.values {
		ret.Add(model.Single(v))
	}
	return ret
}
