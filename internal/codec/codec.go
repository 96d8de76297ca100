// Package codec converts non-negative integer ids to short strings and back.
// The mapping is a positional base-N conversion over a configurable alphabet,
// so no lookup table of issued strings is ever needed: Decode(Encode(i)) == i.
package codec

import "fmt"

// DefaultAlphabet is the ordered digit set used unless a custom one is
// configured: lowercase, then uppercase, then digits 1-9 (61 symbols).
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ123456789"

// DefaultShuffledAlphabet is a fixed permutation of the same symbols. Encoding
// with it breaks the guessable a, b, c, ... sequence of small ids.
const DefaultShuffledAlphabet = "QqFvjKLVgWSXPCIDBuz6ihw4Hp5ZlbArME1adcTR97xot3JO82fUsNGYnemky"

// InvalidSymbolError is returned by Decode when the input contains a symbol
// that is not part of the active alphabet.
type InvalidSymbolError struct {
	Symbol byte
	Input  string
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("codec: invalid symbol %q in %q", e.Symbol, e.Input)
}

// Options configures a Codec. Zero-value fields fall back to the defaults:
// DefaultAlphabet, DefaultShuffledAlphabet, plain alphabet, offset 0.
type Options struct {
	Alphabet         string
	ShuffledAlphabet string
	UseShuffled      bool
	Offset           int64
}

// Codec holds the two alphabets, the active-alphabet flag and the offset.
// Encode and Decode only read this state, so a Codec may be shared between
// goroutines as long as nobody reconfigures it concurrently; callers that
// need to swap alphabets at runtime must synchronize externally.
type Codec struct {
	alphabet    string
	shuffled    string
	useShuffled bool
	offset      int64

	alphabetIdx map[byte]int
	shuffledIdx map[byte]int
}

func New(opts Options) *Codec {
	if opts.Alphabet == "" {
		opts.Alphabet = DefaultAlphabet
	}
	if opts.ShuffledAlphabet == "" {
		opts.ShuffledAlphabet = DefaultShuffledAlphabet
	}
	return &Codec{
		alphabet:    opts.Alphabet,
		shuffled:    opts.ShuffledAlphabet,
		useShuffled: opts.UseShuffled,
		offset:      opts.Offset,
		alphabetIdx: indexTable(opts.Alphabet),
		shuffledIdx: indexTable(opts.ShuffledAlphabet),
	}
}

// indexTable precomputes symbol positions so Decode does not scan the
// alphabet per character. On duplicate symbols the first position wins.
func indexTable(alphabet string) map[byte]int {
	idx := make(map[byte]int, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		if _, ok := idx[alphabet[i]]; !ok {
			idx[alphabet[i]] = i
		}
	}
	return idx
}

// SetAlphabet replaces the plain alphabet. The alphabet must contain at least
// two distinct symbols.
func (c *Codec) SetAlphabet(alphabet string) {
	c.alphabet = alphabet
	c.alphabetIdx = indexTable(alphabet)
}

// SetShuffledAlphabet replaces the shuffled alphabet.
func (c *Codec) SetShuffledAlphabet(alphabet string) {
	c.shuffled = alphabet
	c.shuffledIdx = indexTable(alphabet)
}

// UseShuffledAlphabet selects which of the two alphabets Encode and Decode
// work with.
func (c *Codec) UseShuffledAlphabet(v bool) {
	c.useShuffled = v
}

// SetOffset replaces the additive offset.
func (c *Codec) SetOffset(offset int64) {
	c.offset = offset
}

func (c *Codec) alphabetInUse() (string, map[byte]int) {
	if c.useShuffled {
		return c.shuffled, c.shuffledIdx
	}
	return c.alphabet, c.alphabetIdx
}

// Encode converts value+offset to its base-N representation over the active
// alphabet. Zero encodes as the single zero digit, never as an empty string.
// The caller must keep value+offset non-negative; for a negative effective
// value Encode returns "", which is never produced for any valid input.
func (c *Codec) Encode(value int64) string {
	alphabet, _ := c.alphabetInUse()
	base := int64(len(alphabet))

	v := value + c.offset
	if v == 0 {
		return string(alphabet[0])
	}

	buf := make([]byte, 0, 11)
	for v > 0 {
		buf = append(buf, alphabet[v%base])
		v /= base
	}
	// digits were accumulated least-significant first
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// Decode converts a string produced by Encode back to the original integer.
// It fails with *InvalidSymbolError if any character of s is not part of the
// active alphabet; that is the only error case. Inputs longer than Encode
// ever produces (eleven digits over the default alphabets) exceed int64 and
// wrap, so callers must pass only strings obtained from Encode.
func (c *Codec) Decode(s string) (int64, error) {
	alphabet, idx := c.alphabetInUse()
	base := int64(len(alphabet))

	var n int64
	for i := 0; i < len(s); i++ {
		d, ok := idx[s[i]]
		if !ok {
			return 0, &InvalidSymbolError{Symbol: s[i], Input: s}
		}
		n = n*base + int64(d)
	}
	return n - c.offset, nil
}
