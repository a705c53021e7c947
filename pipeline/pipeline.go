// Package pipeline maps ranges of values through an ordered chain of translation stages.
package pipeline

// Pipeline is an ordered sequence of stages. It is immutable once built and can be
// shared by any number of concurrent queries.
type Pipeline struct {
	stages []*Stage
}

func New(stages ...*Stage) *Pipeline {
	return &Pipeline{
		stages: append([]*Stage(nil), stages...),
	}
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Stage returns the i-th stage in evaluation order.
func (p *Pipeline) Stage(i int) *Stage {
	return p.stages[i]
}

func (p *Pipeline) Stages() []*Stage {
	return append([]*Stage(nil), p.stages...)
}

// Apply maps a single value through every stage.
func (p *Pipeline) Apply(v uint64) uint64 {
	for _, s := range p.stages {
		v = s.Apply(v)
	}
	return v
}

// Trace maps v through every stage and returns the value after each of them.
func (p *Pipeline) Trace(v uint64) []uint64 {
	ret := make([]uint64, 0, len(p.stages))
	for _, s := range p.stages {
		v = s.Apply(v)
		ret = append(ret, v)
	}
	return ret
}

// Run carries set through every stage and returns the final set. set is not modified.
func (p *Pipeline) Run(set *IntervalSet) *IntervalSet {
	return p.run(set, nil)
}

// run is Run with a hook called after each stage.
func (p *Pipeline) run(set *IntervalSet, afterStage func(i int, s *Stage, out *IntervalSet)) *IntervalSet {
	cur := set
	for i, s := range p.stages {
		cur = s.TranslateSet(cur)
		if afterStage != nil {
			afterStage(i, s, cur)
		}
	}
	if cur == set {
		return set.Clone()
	}
	return cur
}

// Lowest returns the minimum value reachable from set.
func (p *Pipeline) Lowest(set *IntervalSet) (uint64, bool) {
	return MinimumValue(p.Run(set))
}

// LowestScalar maps every value on its own and returns the minimum result.
func (p *Pipeline) LowestScalar(values []uint64) (uint64, bool) {
	var (
		lowest uint64
		found  bool
	)
	for _, v := range values {
		got := p.Apply(v)
		if !found || got < lowest {
			lowest, found = got, true
		}
	}
	return lowest, found
}
