package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/liznear/rangemap/model"
)

type Config struct {
	// Workers is the maximum number of seeds evaluated at the same time.
	Workers int
	// Debug logs the size of the working set after every stage.
	Debug  bool
	Logger *zap.Logger
}

type Option func(*Config)

func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

func WithDebug(debug bool) Option {
	return func(c *Config) {
		c.Debug = debug
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// Runner evaluates queries against a Pipeline.
//
// Every seed interval is an independent query. Queries run concurrently and share the
// pipeline read-only; their results are reduced by minimum.
type Runner struct {
	pipeline *Pipeline
	cfg      *Config

	// Sequence number of the last query, for log correlation.
	seq atomic.Int64
}

func NewRunner(p *Pipeline, opts ...Option) *Runner {
	cfg := &Config{
		Workers: runtime.GOMAXPROCS(0),
		Logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Runner{
		pipeline: p,
		cfg:      cfg,
	}
}

func (r *Runner) Pipeline() *Pipeline {
	return r.pipeline
}

// Lowest returns the minimum value reachable from seeds.
//
// Discrete seeds are mapped one value at a time; ranged seeds are split and remapped as
// whole intervals. The computation itself never fails: the only errors are ErrNoSeeds and
// the context being done before every query finished.
func (r *Runner) Lowest(ctx context.Context, seeds SeedSpec) (uint64, error) {
	if seeds.Empty() {
		return 0, ErrNoSeeds
	}

	var queries []func() (uint64, bool)
	if seeds.Ranged() {
		for _, iv := range seeds.Intervals() {
			queries = append(queries, func() (uint64, bool) { return r.queryRange(iv) })
		}
	} else {
		for _, v := range seeds.Values() {
			queries = append(queries, func() (uint64, bool) { return r.queryValue(v), true })
		}
	}

	var (
		mu     sync.Mutex
		lowest uint64
		found  bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, query := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			got, ok := query()
			if !ok {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			if !found || got < lowest {
				lowest, found = got, true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("runner: fail to evaluate seeds: %w", err)
	}
	if !found {
		return 0, ErrNoSeeds
	}
	return lowest, nil
}

// queryValue maps a discrete seed on the scalar path.
func (r *Runner) queryValue(v uint64) uint64 {
	id := r.seq.Add(1)
	got := r.pipeline.Apply(v)
	if r.cfg.Debug {
		r.cfg.Logger.Debug("Mapped seed",
			zap.Int64("query", id),
			zap.Uint64("seed", v),
			zap.Uint64s("trace", r.pipeline.Trace(v)))
	}
	return got
}

// queryRange splits and remaps a seed interval through every stage.
func (r *Runner) queryRange(iv model.Interval) (uint64, bool) {
	id := r.seq.Add(1)
	log := r.cfg.Logger.With(zap.Int64("query", id), zap.Stringer("seed", iv))

	var hook func(int, *Stage, *IntervalSet)
	if r.cfg.Debug {
		hook = func(i int, s *Stage, out *IntervalSet) {
			log.Debug("Stage applied",
				zap.Int("stage", i),
				zap.String("name", s.Name()),
				zap.Int("intervals", out.Len()))
		}
	}
	out := r.pipeline.run(NewIntervalSet(iv), hook)
	got, ok := MinimumValue(out)
	if r.cfg.Debug {
		span, _ := out.Span()
		log.Debug("Seed range done",
			zap.Uint64("lowest", got),
			zap.Int("intervals", out.Len()),
			zap.Stringer("span", span))
	}
	return got, ok
}

// Solution holds both answers for a seeds declaration.
type Solution struct {
	// Discrete is the lowest result when every declared value is a seed.
	Discrete uint64
	// Ranged is the lowest result when the values are (start, length) pairs.
	Ranged uint64
}

// Solve evaluates values both as discrete seeds and as seed ranges.
func (r *Runner) Solve(ctx context.Context, values []uint64) (Solution, error) {
	discrete, err := r.Lowest(ctx, SeedsFromValues(values))
	if err != nil {
		return Solution{}, err
	}
	pairs, err := SeedsFromPairs(values)
	if err != nil {
		return Solution{}, err
	}
	ranged, err := r.Lowest(ctx, pairs)
	if err != nil {
		return Solution{}, err
	}
	r.cfg.Logger.Info("Solved",
		zap.Int("seeds", len(values)),
		zap.Int("stages", r.pipeline.Len()),
		zap.Uint64("discrete", discrete),
		zap.Uint64("ranged", ranged))
	return Solution{Discrete: discrete, Ranged: ranged}, nil
}
