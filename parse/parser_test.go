package parse

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liznear/rangemap/pipeline"
)

// Indented the way it often arrives when pasted into a raw string.
const indented = `seeds: 79 14 55 13

        seed-to-soil map:
        50 98 2
        52 50 48

        soil-to-fertilizer map:
        0 15 37
        37 52 2
        39 0 15

        fertilizer-to-water map:
        49 53 8
        0 11 42
        42 0 7
        57 7 4

        water-to-light map:
        88 18 7
        18 25 70

        light-to-temperature map:
        45 77 23
        81 45 19
        68 64 13

        temperature-to-humidity map:
        0 69 1
        1 0 69

        humidity-to-location map:
        60 56 37
        56 93 4`

func TestParse_Sample(t *testing.T) {
	f, err := os.Open("testdata/sample.txt")
	require.NoError(t, err)
	defer f.Close()

	a, err := Parse(f)
	require.NoError(t, err)
	assert.Equal(t, []uint64{79, 14, 55, 13}, a.Seeds)
	require.Equal(t, 7, a.Pipeline.Len())

	names := []string{
		"seed-to-soil",
		"soil-to-fertilizer",
		"fertilizer-to-water",
		"water-to-light",
		"light-to-temperature",
		"temperature-to-humidity",
		"humidity-to-location",
	}
	for i, name := range names {
		assert.Equal(t, name, a.Pipeline.Stage(i).Name())
	}
	assert.Equal(t, 4, a.Pipeline.Stage(2).Len())

	lowest, ok := a.Pipeline.LowestScalar(a.Seeds)
	require.True(t, ok)
	assert.Equal(t, uint64(35), lowest)
}

func TestParse_Indented(t *testing.T) {
	a, err := String(indented)
	require.NoError(t, err)

	got, err := pipeline.NewRunner(a.Pipeline).Solve(context.Background(), a.Seeds)
	require.NoError(t, err)
	assert.Equal(t, pipeline.Solution{Discrete: 35, Ranged: 46}, got)

	ranged, err := a.RangedSeeds()
	require.NoError(t, err)
	assert.Len(t, ranged.Intervals(), 2)
	assert.Equal(t, []uint64{79, 14, 55, 13}, a.DiscreteSeeds().Values())
}

func TestParse_Flexible(t *testing.T) {
	tcs := []struct {
		name   string
		input  string
		stages int
		rules  []int
	}{
		{
			name:   "NoTrailingNewline",
			input:  "seeds: 1\na-to-b map:\n1 2 3",
			stages: 1,
			rules:  []int{1},
		},
		{
			name:   "EmptySection",
			input:  "seeds: 1\n\na-to-b map:\n\nb-to-c map:\n5 6 7\n",
			stages: 2,
			rules:  []int{0, 1},
		},
		{
			name:   "HeaderWithoutBlankLine",
			input:  "seeds: 1\na-to-b map:\n1 2 3\nb-to-c map:\n4 5 6\n",
			stages: 2,
			rules:  []int{1, 1},
		},
		{
			name:   "LeadingBlankLines",
			input:  "\n\n  seeds: 1 2\n\nx map:\n1 2 3\n\n\n",
			stages: 1,
			rules:  []int{1},
		},
		{
			name:   "CRLF",
			input:  "seeds: 1\r\n\r\na-to-b map:\r\n1 2 3\r\n",
			stages: 1,
			rules:  []int{1},
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			a, err := String(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.stages, a.Pipeline.Len())
			for i, n := range tc.rules {
				assert.Equal(t, n, a.Pipeline.Stage(i).Len(), "stage %d", i)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tcs := []struct {
		name    string
		input   string
		opts    []Option
		want    error
		line    int
		section string
	}{
		{
			name:    "Empty",
			input:   "",
			want:    pipeline.ErrMissingSeeds,
			section: "seeds",
		},
		{
			name:    "NoSeedsLine",
			input:   "a-to-b map:\n1 2 3\n",
			want:    pipeline.ErrMissingSeeds,
			line:    1,
			section: "seeds",
		},
		{
			name:    "NoSeedValues",
			input:   "seeds:\n\na-to-b map:\n1 2 3\n",
			want:    pipeline.ErrMissingSeeds,
			line:    1,
			section: "seeds",
		},
		{
			name:    "BadSeed",
			input:   "seeds: 1 x2\n",
			want:    pipeline.ErrBadInteger,
			line:    1,
			section: "seeds",
		},
		{
			name:  "NoSections",
			input: "seeds: 1 2\n\n",
			want:  pipeline.ErrMissingSection,
		},
		{
			name:    "RuleOutsideSection",
			input:   "seeds: 1\n\n1 2 3\n",
			want:    pipeline.ErrMissingSection,
			line:    3,
			section: "",
		},
		{
			name:    "TwoFields",
			input:   "seeds: 1\n\na-to-b map:\n1 2 3\n4 5\n",
			want:    pipeline.ErrMalformedRule,
			line:    5,
			section: "a-to-b",
		},
		{
			name:    "NegativeValue",
			input:   "seeds: 1\n\na-to-b map:\n1 -2 3\n",
			want:    pipeline.ErrBadInteger,
			line:    4,
			section: "a-to-b",
		},
		{
			name:    "TooLarge",
			input:   "seeds: 1\n\na-to-b map:\n1 2 18446744073709551616\n",
			want:    pipeline.ErrBadInteger,
			line:    4,
			section: "a-to-b",
		},
		{
			name:    "ZeroLength",
			input:   "seeds: 1\n\na-to-b map:\n1 2 0\n",
			want:    pipeline.ErrEmptyRule,
			line:    4,
			section: "a-to-b",
		},
		{
			name:    "OverlappingRules",
			input:   "seeds: 1\n\na-to-b map:\n0 10 10\n100 15 2\n",
			want:    pipeline.ErrOverlappingRules,
			line:    3,
			section: "a-to-b",
		},
		{
			name:    "BrokenChain",
			input:   "seeds: 1\n\na-to-b map:\n1 2 3\n\nc-to-d map:\n1 2 3\n",
			want:    pipeline.ErrMissingSection,
			line:    6,
			section: "c-to-d",
		},
		{
			name:    "UnnamedSection",
			input:   "seeds: 1\n\nmap:\n1 2 3\n",
			want:    pipeline.ErrMissingSection,
			line:    3,
			section: "",
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			a, err := String(tc.input, tc.opts...)
			require.Error(t, err)
			assert.Nil(t, a)
			assert.ErrorIs(t, err, tc.want)

			var cerr *pipeline.ConfigError
			require.True(t, errors.As(err, &cerr), "got %T", err)
			assert.Equal(t, tc.line, cerr.Line)
			assert.Equal(t, tc.section, cerr.Section)
		})
	}
}

func TestParse_LooseChain(t *testing.T) {
	input := "seeds: 1\n\na-to-b map:\n1 2 3\n\nc-to-d map:\n1 2 3\n"
	a, err := String(input, WithStrictChain(false))
	require.NoError(t, err)
	assert.Equal(t, 2, a.Pipeline.Len())
}

func TestAlmanac_OddSeeds(t *testing.T) {
	a, err := String("seeds: 1 2 3\n\na-to-b map:\n1 2 3\n")
	require.NoError(t, err)

	_, err = a.RangedSeeds()
	assert.ErrorIs(t, err, pipeline.ErrOddSeedCount)
}
