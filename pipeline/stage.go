package pipeline

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/v2/maps/treemap"
	"go.uber.org/multierr"

	"github.com/liznear/rangemap/model"
)

// Stage is one level of remapping. Values not covered by any rule map to themselves.
//
// Rules are indexed by their source start, so lookups and splits don't depend on the
// order the rules were given in. A Stage is immutable once built and can be shared by
// concurrent readers.
type Stage struct {
	name  string
	rules *treemap.Map[uint64, model.Rule]
}

// NewStage builds a stage from rules. Rules must be non-empty and must not overlap in the
// source domain. All violations are reported together in a single *ConfigError.
func NewStage(name string, rules ...model.Rule) (*Stage, error) {
	s := &Stage{
		name:  name,
		rules: treemap.New[uint64, model.Rule](),
	}

	var errs error
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if prev, ok := s.rules.Get(r.SourceStart); ok {
			errs = multierr.Append(errs, fmt.Errorf("stage: %s and %s: %w", prev, r, ErrOverlappingRules))
			continue
		}
		s.rules.Put(r.SourceStart, r)
	}

	// Rules are sorted by source start. Keep the rule reaching furthest so far; any rule
	// starting before its end overlaps it.
	var (
		reach model.Rule
		seen  bool
	)
	iter := s.rules.Iterator()
	for iter.Next() {
		r := iter.Value()
		if seen && model.HasOverlap(reach.Source(), r.Source()) {
			errs = multierr.Append(errs, fmt.Errorf("stage: %s and %s: %w", reach, r, ErrOverlappingRules))
		}
		if !seen || r.Source().End > reach.Source().End {
			reach, seen = r, true
		}
	}

	if errs != nil {
		return nil, &ConfigError{Section: name, Err: errs}
	}
	return s, nil
}

func (s *Stage) Name() string {
	return s.name
}

// Len returns the number of rules.
func (s *Stage) Len() int {
	return s.rules.Size()
}

// Rules returns the rules sorted by source start.
func (s *Stage) Rules() []model.Rule {
	return s.rules.Values()
}

// ruleAt returns the rule covering v.
func (s *Stage) ruleAt(v uint64) (model.Rule, bool) {
	_, r, ok := s.rules.Floor(v)
	if !ok || !r.Covers(v) {
		return model.Rule{}, false
	}
	return r, true
}

// Apply maps a single value through the stage.
func (s *Stage) Apply(v uint64) uint64 {
	if _, r, ok := s.rules.Floor(v); ok {
		if dest, ok := r.GetDestIndex(v); ok {
			return dest
		}
	}
	return v
}

// Segment is a piece of an interval that a single rule, or no rule, applies to.
type Segment struct {
	Source model.Interval

	// Rule is nil when the segment isn't covered by any rule and maps to itself.
	Rule *model.Rule
}

// Image returns where the segment lands after the stage.
func (seg Segment) Image() model.Interval {
	if seg.Rule == nil {
		return seg.Source
	}
	return seg.Rule.TranslateInterval(seg.Source)
}

func (seg Segment) Identity() bool {
	return seg.Rule == nil
}

func (seg Segment) String() string {
	return fmt.Sprintf("%s => %s", seg.Source, seg.Image())
}

// Split partitions iv along rule boundaries.
//
// The returned segments are sorted, don't overlap, and cover every value of iv exactly
// once. Covered pieces carry the rule applying to them; the gaps between rules are
// returned as identity segments. The number of segments is bounded by the number of
// rules intersecting iv, not by the size of iv.
func (s *Stage) Split(iv model.Interval) []Segment {
	if iv.Empty() {
		return nil
	}

	var ret []Segment
	cursor := iv.Start
	for cursor < iv.End {
		if r, ok := s.ruleAt(cursor); ok {
			covered := r.Source().Intersect(model.NewInterval(cursor, iv.End))
			ret = append(ret, Segment{Source: covered, Rule: &r})
			cursor = covered.End
			continue
		}

		// No rule covers cursor. The gap lasts until the next rule starts.
		end := iv.End
		if next, _, ok := s.rules.Ceiling(cursor); ok && next < iv.End {
			end = next
		}
		ret = append(ret, Segment{Source: model.NewInterval(cursor, end)})
		cursor = end
	}
	return ret
}

// TranslateInterval returns the images of iv's segments. They are not merged, so their
// lengths always add up to iv.Len().
func (s *Stage) TranslateInterval(iv model.Interval) []model.Interval {
	segs := s.Split(iv)
	ret := make([]model.Interval, 0, len(segs))
	for _, seg := range segs {
		ret = append(ret, seg.Image())
	}
	return ret
}

// TranslateSet maps every interval of set through the stage and returns the union of the
// images. set is not modified.
func (s *Stage) TranslateSet(set *IntervalSet) *IntervalSet {
	ret := NewIntervalSet()
	iter := set.data.Iterator()
	for iter.Next() {
		for _, seg := range s.Split(model.NewInterval(iter.Key(), iter.Value())) {
			ret.Add(seg.Image())
		}
	}
	return ret
}

func (s *Stage) String() string {
	sb := strings.Builder{}
	if s.name != "" {
		sb.WriteString(s.name)
		sb.WriteString(": ")
	}
	sb.WriteByte('{')
	for i, r := range s.Rules() {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(r.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
