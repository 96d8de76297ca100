package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAlphabets(t *testing.T) {
	// both defaults carry 61 distinct symbols, so the base is the same
	// whichever alphabet is active
	assert.Equal(t, 61, len(DefaultAlphabet))
	assert.Equal(t, 61, len(DefaultShuffledAlphabet))

	for _, alphabet := range []string{DefaultAlphabet, DefaultShuffledAlphabet} {
		seen := make(map[byte]bool)
		for i := 0; i < len(alphabet); i++ {
			assert.False(t, seen[alphabet[i]], "duplicate symbol %q", alphabet[i])
			seen[alphabet[i]] = true
		}
	}
}

func TestEncodeZero(t *testing.T) {
	c := New(Options{})
	assert.Equal(t, "a", c.Encode(0))

	c.UseShuffledAlphabet(true)
	assert.Equal(t, "Q", c.Encode(0))
}

func TestEncodeKnownValues(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		value int64
		want  string
	}{
		{name: "plain_zero", value: 0, want: "a"},
		{name: "plain_one", value: 1, want: "b"},
		{name: "plain_last_single_digit", value: 60, want: "9"},
		{name: "plain_base", value: 61, want: "ba"},
		{name: "plain_10000", value: 10000, want: "cP6"},
		{name: "shuffled_zero", opts: Options{UseShuffled: true}, value: 0, want: "Q"},
		{name: "shuffled_10000", opts: Options{UseShuffled: true}, value: 10000, want: "F7e"},
		{name: "offset_zero", opts: Options{Offset: 10000}, value: 0, want: "cP6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.opts)
			assert.Equal(t, tt.want, c.Encode(tt.value))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "default"},
		{name: "shuffled", opts: Options{UseShuffled: true}},
		{name: "offset_7", opts: Options{Offset: 7}},
		{name: "offset_10000", opts: Options{Offset: 10000}},
		{name: "shuffled_offset_10000", opts: Options{UseShuffled: true, Offset: 10000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.opts)
			for i := int64(0); i < 5000; i++ {
				got, err := c.Decode(c.Encode(i))
				require.NoError(t, err)
				require.Equal(t, i, got)
			}
			for _, i := range []int64{1 << 20, 1 << 40, 1<<62 - 1} {
				got, err := c.Decode(c.Encode(i))
				require.NoError(t, err)
				require.Equal(t, i, got)
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	c := New(Options{})
	for _, i := range []int64{0, 1, 61, 10000, 1 << 40} {
		assert.Equal(t, c.Encode(i), c.Encode(i))

		first, err := c.Decode(c.Encode(i))
		require.NoError(t, err)
		second, err := c.Decode(c.Encode(i))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestDecodeInvalidSymbol(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		symbol byte
	}{
		{name: "bang", input: "!", symbol: '!'},
		{name: "embedded", input: "ab_cd", symbol: '_'},
		{name: "zero_digit_absent", input: "cP0", symbol: '0'},
	}
	c := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decode(tt.input)
			require.Error(t, err)

			var invErr *InvalidSymbolError
			require.True(t, errors.As(err, &invErr))
			assert.Equal(t, tt.symbol, invErr.Symbol)
			assert.Equal(t, tt.input, invErr.Input)
		})
	}
}

func TestOffsetSemantics(t *testing.T) {
	plain := New(Options{})
	shifted := New(Options{Offset: 10000})

	assert.Equal(t, "cP6", plain.Encode(10000))
	assert.Equal(t, plain.Encode(10000), shifted.Encode(0))

	id, err := shifted.Decode("cP6")
	require.NoError(t, err)
	assert.Equal(t, int64(0), id)
}

func TestCustomAlphabet(t *testing.T) {
	c := New(Options{})
	c.SetAlphabet("abcdef")

	assert.Equal(t, "a", c.Encode(0))
	assert.Equal(t, "ba", c.Encode(6))

	for i := int64(0); i < 300; i++ {
		got, err := c.Decode(c.Encode(i))
		require.NoError(t, err)
		require.Equal(t, i, got)
	}
}

func TestSetOffset(t *testing.T) {
	c := New(Options{})
	c.SetOffset(10000)
	assert.Equal(t, "cP6", c.Encode(0))

	c.SetOffset(0)
	assert.Equal(t, "a", c.Encode(0))
}

func TestNegativeEffectiveValue(t *testing.T) {
	// value+offset < 0 is out of the documented domain; the result is the
	// empty string, which Encode never produces for valid input
	c := New(Options{})
	assert.Equal(t, "", c.Encode(-1))
}

// Plain-alphabet encoding preserves numeric order: shorter strings encode
// smaller numbers, and equal-length strings compare by digit value. That is
// what makes sequential ids guessable and the shuffled alphabet worth having.
func TestPlainAlphabetMonotonicity(t *testing.T) {
	c := New(Options{})

	idx := indexTable(DefaultAlphabet)
	rank := func(s string) []int {
		r := make([]int, 0, len(s))
		for i := 0; i < len(s); i++ {
			r = append(r, idx[s[i]])
		}
		return r
	}

	prev := c.Encode(0)
	for i := int64(1); i < 4000; i++ {
		cur := c.Encode(i)
		require.LessOrEqual(t, len(prev), len(cur), "value %d", i)
		if len(prev) == len(cur) {
			pr, cr := rank(prev), rank(cur)
			less := false
			for k := range pr {
				if pr[k] != cr[k] {
					less = pr[k] < cr[k]
					break
				}
			}
			require.True(t, less, "value %d: %q not before %q", i, prev, cur)
		}
		prev = cur
	}
}
