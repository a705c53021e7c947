package model

import (
	"fmt"
	"math"
)

// Interval is a half-open range of values [Start, End).
//
// An Interval with End <= Start is empty. Empty intervals carry no values and may be
// dropped by any operation.
type Interval struct {
	Start uint64
	End   uint64
}

func NewInterval(start, end uint64) Interval {
	return Interval{start, end}
}

// Single returns the interval containing v only.
func Single(v uint64) Interval {
	return Interval{v, v + 1}
}

// WithLength returns [start, start+length). The end saturates at math.MaxUint64.
func WithLength(start, length uint64) Interval {
	end := start + length
	if end < start {
		end = math.MaxUint64
	}
	return Interval{start, end}
}

func (i Interval) Len() uint64 {
	if i.End <= i.Start {
		return 0
	}
	return i.End - i.Start
}

func (i Interval) Empty() bool {
	return i.End <= i.Start
}

func (i Interval) Contains(v uint64) bool {
	return i.Start <= v && v < i.End
}

// Intersect returns the overlap of i and other. If they don't overlap, the result is empty.
func (i Interval) Intersect(other Interval) Interval {
	ret := Interval{
		Start: max(i.Start, other.Start),
		End:   min(i.End, other.End),
	}
	if ret.End < ret.Start {
		ret.End = ret.Start
	}
	return ret
}

// HasOverlap reports whether the two intervals share at least one value.
func HasOverlap(i1, i2 Interval) bool {
	noOverlap := i1.End <= i2.Start || i1.Start >= i2.End
	return !noOverlap && !i1.Empty() && !i2.Empty()
}

func (i Interval) String() string {
	return fmt.Sprintf("[%d, %d)", i.Start, i.End)
}
