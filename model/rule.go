package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyRule     = errors.New("rule length must be positive")
	ErrMalformedRule = errors.New("rule line must have exactly 3 unsigned integers")
	ErrBadInteger    = errors.New("not an unsigned 64-bit integer")
)

// Rule maps [SourceStart, SourceStart+Length) onto [DestStart, DestStart+Length) with a
// constant offset.
//
// Values close to the uint64 limit may wrap when the rule is applied; the range is a
// documented bound and is not checked.
type Rule struct {
	DestStart   uint64
	SourceStart uint64
	Length      uint64
}

func NewRule(dest, source, length uint64) Rule {
	return Rule{
		DestStart:   dest,
		SourceStart: source,
		Length:      length,
	}
}

// ParseRule parses a "dest source length" line.
func ParseRule(line string) (Rule, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Rule{}, fmt.Errorf("rule: %q: %w", line, ErrMalformedRule)
	}
	var nums [3]uint64
	for i, f := range fields {
		n, err := ParseUint(f)
		if err != nil {
			return Rule{}, fmt.Errorf("rule: fail to parse %q: %w", line, err)
		}
		nums[i] = n
	}
	r := NewRule(nums[0], nums[1], nums[2])
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// ParseUint parses a base-10 unsigned 64-bit integer.
func ParseUint(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrBadInteger)
	}
	return n, nil
}

func (r Rule) Validate() error {
	if r.Length == 0 {
		return fmt.Errorf("rule: %s: %w", r, ErrEmptyRule)
	}
	return nil
}

func (r Rule) Source() Interval {
	return WithLength(r.SourceStart, r.Length)
}

func (r Rule) Dest() Interval {
	return WithLength(r.DestStart, r.Length)
}

func (r Rule) Covers(v uint64) bool {
	return r.Source().Contains(v)
}

// Translate maps v with the rule's offset. v must be covered by the rule.
func (r Rule) Translate(v uint64) uint64 {
	return v - r.SourceStart + r.DestStart
}

// TranslateInterval maps an interval lying inside r.Source(). The image has the same
// length as iv and its end saturates like Dest().
func (r Rule) TranslateInterval(iv Interval) Interval {
	return WithLength(r.Translate(iv.Start), iv.Len())
}

// GetDestIndex returns the destination of v, or false if v isn't covered by the rule.
func (r Rule) GetDestIndex(v uint64) (uint64, bool) {
	if !r.Covers(v) {
		return 0, false
	}
	return r.Translate(v), true
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.Source(), r.Dest())
}
