package pipeline

import (
	"strings"

	"github.com/emirpasic/gods/v2/maps/treemap"

	"github.com/liznear/rangemap/model"
)

// IntervalSet is a set of pairwise-disjoint intervals, sorted by start.
//
// Overlapping and adjacent intervals are coalesced when added, so the number of stored
// intervals only grows with the number of distinct pieces, never with their size.
// An IntervalSet is not safe for concurrent modification.
type IntervalSet struct {
	// start -> end
	data *treemap.Map[uint64, uint64]
}

func NewIntervalSet(intervals ...model.Interval) *IntervalSet {
	s := &IntervalSet{
		data: treemap.New[uint64, uint64](),
	}
	for _, iv := range intervals {
		s.Add(iv)
	}
	return s
}

// Add inserts iv. Empty intervals are ignored.
func (s *IntervalSet) Add(iv model.Interval) {
	if iv.Empty() {
		return
	}
	start, end := iv.Start, iv.End

	// A predecessor reaching start is merged.
	if k, v, ok := s.data.Floor(start); ok && v >= start {
		start = k
		end = max(end, v)
		s.data.Remove(k)
	}
	// Successors starting inside [start, end] are merged.
	for {
		k, v, ok := s.data.Ceiling(start)
		if !ok || k > end {
			break
		}
		end = max(end, v)
		s.data.Remove(k)
	}
	s.data.Put(start, end)
}

// Len returns the number of disjoint intervals in the set.
func (s *IntervalSet) Len() int {
	return s.data.Size()
}

func (s *IntervalSet) Empty() bool {
	return s.data.Empty()
}

// Count returns the number of values in the set.
func (s *IntervalSet) Count() uint64 {
	var n uint64
	iter := s.data.Iterator()
	for iter.Next() {
		n += iter.Value() - iter.Key()
	}
	return n
}

// Min returns the smallest value in the set.
func (s *IntervalSet) Min() (uint64, bool) {
	k, _, ok := s.data.Min()
	return k, ok
}

func (s *IntervalSet) Contains(v uint64) bool {
	_, end, ok := s.data.Floor(v)
	return ok && v < end
}

// Intervals returns the intervals sorted by start.
func (s *IntervalSet) Intervals() []model.Interval {
	ret := make([]model.Interval, 0, s.data.Size())
	iter := s.data.Iterator()
	for iter.Next() {
		ret = append(ret, model.NewInterval(iter.Key(), iter.Value()))
	}
	return ret
}

// Span returns the smallest interval covering the whole set.
func (s *IntervalSet) Span() (model.Interval, bool) {
	lo, _, ok := s.data.Min()
	if !ok {
		return model.Interval{}, false
	}
	_, hi, _ := s.data.Max()
	return model.NewInterval(lo, hi), true
}

func (s *IntervalSet) Clone() *IntervalSet {
	ret := NewIntervalSet()
	iter := s.data.Iterator()
	for iter.Next() {
		ret.data.Put(iter.Key(), iter.Value())
	}
	return ret
}

func (s *IntervalSet) Equal(other *IntervalSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	a, b := s.data.Iterator(), other.data.Iterator()
	for a.Next() && b.Next() {
		if a.Key() != b.Key() || a.Value() != b.Value() {
			return false
		}
	}
	return true
}

func (s *IntervalSet) String() string {
	sb := strings.Builder{}
	sb.WriteByte('{')
	for i, iv := range s.Intervals() {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(iv.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// MinimumValue returns the smallest value in set. It returns false if set is empty.
func MinimumValue(set *IntervalSet) (uint64, bool) {
	return set.Min()
}
