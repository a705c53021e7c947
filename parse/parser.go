// Package parse reads the almanac text format into a pipeline.Pipeline and its seeds.
//
// The format is a seeds declaration followed by named sections of rules:
//
//	seeds: 79 14 55 13
//
//	seed-to-soil map:
//	50 98 2
//	52 50 48
//
//	soil-to-fertilizer map:
//	...
//
// Every rule line is "dest_start source_start length". Sections end at a blank line, the
// next header, or the end of input. Any malformed input is reported as a
// *pipeline.ConfigError carrying the offending line.
package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/liznear/rangemap/model"
	"github.com/liznear/rangemap/pipeline"
)

const (
	seedsPrefix  = "seeds:"
	headerSuffix = "map:"
	chainSep     = "-to-"
)

// Almanac is the parsed input.
type Almanac struct {
	Seeds    []uint64
	Pipeline *pipeline.Pipeline
}

// DiscreteSeeds returns the declared values as discrete seeds.
func (a *Almanac) DiscreteSeeds() pipeline.SeedSpec {
	return pipeline.SeedsFromValues(a.Seeds)
}

// RangedSeeds returns the declared values as (start, length) pairs.
func (a *Almanac) RangedSeeds() (pipeline.SeedSpec, error) {
	return pipeline.SeedsFromPairs(a.Seeds)
}

type Config struct {
	// StrictChain requires every "<from>-to-<to>" section to start where the previous one
	// ended. A break is reported as a missing section.
	StrictChain bool
}

type Option func(*Config)

func WithStrictChain(strict bool) Option {
	return func(c *Config) {
		c.StrictChain = strict
	}
}

func String(s string, opts ...Option) (*Almanac, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Parse reads an almanac from r.
func Parse(r io.Reader, opts ...Option) (*Almanac, error) {
	cfg := &Config{
		StrictChain: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	p := &parser{cfg: cfg}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		if err := p.feed(strings.TrimSpace(scanner.Text())); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse: fail to read input: %w", err)
	}
	return p.finish()
}

type section struct {
	name  string
	line  int
	rules []model.Rule
}

type parser struct {
	cfg  *Config
	line int

	seeds    []uint64
	hasSeeds bool

	cur    *section
	stages []*pipeline.Stage
	// prevTo is the destination of the last chained section.
	prevTo string
}

func (p *parser) errorf(section string, err error) error {
	return &pipeline.ConfigError{Line: p.line, Section: section, Err: err}
}

func (p *parser) feed(line string) error {
	if !p.hasSeeds {
		if line == "" {
			return nil
		}
		return p.readSeeds(line)
	}

	switch {
	case line == "":
		return p.closeSection()
	case strings.HasSuffix(line, headerSuffix):
		if err := p.closeSection(); err != nil {
			return err
		}
		return p.openSection(strings.TrimSpace(strings.TrimSuffix(line, headerSuffix)))
	case p.cur == nil:
		return p.errorf("", fmt.Errorf("rule %q outside of a section: %w", line, pipeline.ErrMissingSection))
	}

	r, err := model.ParseRule(line)
	if err != nil {
		return p.errorf(p.cur.name, err)
	}
	p.cur.rules = append(p.cur.rules, r)
	return nil
}

func (p *parser) readSeeds(line string) error {
	if !strings.HasPrefix(line, seedsPrefix) {
		return p.errorf("seeds", fmt.Errorf("got %q: %w", line, pipeline.ErrMissingSeeds))
	}
	for _, f := range strings.Fields(strings.TrimPrefix(line, seedsPrefix)) {
		v, err := model.ParseUint(f)
		if err != nil {
			return p.errorf("seeds", err)
		}
		p.seeds = append(p.seeds, v)
	}
	if len(p.seeds) == 0 {
		return p.errorf("seeds", fmt.Errorf("no values declared: %w", pipeline.ErrMissingSeeds))
	}
	p.hasSeeds = true
	return nil
}

func (p *parser) openSection(name string) error {
	if name == "" {
		return p.errorf("", fmt.Errorf("section without a name: %w", pipeline.ErrMissingSection))
	}
	if p.cfg.StrictChain {
		if from, to, ok := strings.Cut(name, chainSep); ok {
			if p.prevTo != "" && from != p.prevTo {
				return p.errorf(name, fmt.Errorf("want a section from %q, got one from %q: %w", p.prevTo, from, pipeline.ErrMissingSection))
			}
			p.prevTo = to
		}
	}
	p.cur = &section{name: name, line: p.line}
	return nil
}

func (p *parser) closeSection() error {
	if p.cur == nil {
		return nil
	}
	s := p.cur
	p.cur = nil

	stage, err := pipeline.NewStage(s.name, s.rules...)
	if err != nil {
		var cerr *pipeline.ConfigError
		if errors.As(err, &cerr) {
			cerr.Line = s.line
			return cerr
		}
		return &pipeline.ConfigError{Line: s.line, Section: s.name, Err: err}
	}
	p.stages = append(p.stages, stage)
	return nil
}

func (p *parser) finish() (*Almanac, error) {
	if !p.hasSeeds {
		return nil, &pipeline.ConfigError{Section: "seeds", Err: pipeline.ErrMissingSeeds}
	}
	if err := p.closeSection(); err != nil {
		return nil, err
	}
	if len(p.stages) == 0 {
		return nil, &pipeline.ConfigError{Err: fmt.Errorf("no sections: %w", pipeline.ErrMissingSection)}
	}
	return &Almanac{
		Seeds:    p.seeds,
		Pipeline: pipeline.New(p.stages...),
	}, nil
}
