package pipeline

import (
	"errors"
	"fmt"

	"github.com/liznear/rangemap/model"
)

var (
	ErrEmptyRule        = model.ErrEmptyRule
	ErrMalformedRule    = model.ErrMalformedRule
	ErrOverlappingRules = errors.New("rules overlap in source domain")
	ErrMissingSection   = errors.New("missing section")
	ErrMissingSeeds     = errors.New("missing seeds declaration")
	ErrOddSeedCount     = errors.New("seed ranges need an even number of values")
	ErrBadInteger       = model.ErrBadInteger

	// ErrNoSeeds is returned by Runner when there is nothing to evaluate.
	ErrNoSeeds = errors.New("no seeds to evaluate")
)

// ConfigError is returned when a Pipeline or SeedSpec can't be built from its input.
//
// It is fatal. Nothing is mapped until construction succeeds.
type ConfigError struct {
	// Line is the 1-based line of the input the error refers to. 0 if unknown.
	Line    int
	Section string
	Err     error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Line > 0 && e.Section != "":
		return fmt.Sprintf("config: line %d (%s): %v", e.Line, e.Section, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("config: line %d: %v", e.Line, e.Err)
	case e.Section != "":
		return fmt.Sprintf("config: %s: %v", e.Section, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
