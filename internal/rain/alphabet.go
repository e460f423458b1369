package rain

import "errors"

const defaultGlyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" +
	"@#$%^&*()_+-=[]{}|;:,.<>?/~`" +
	"アイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワヲン"

// Alphabet is the ordered pool glyphs are sampled from. One entry per symbol.
type Alphabet []string

var ErrEmptyAlphabet = errors.New("alphabet must contain at least one glyph")

// DefaultAlphabet mixes latin letters, digits, punctuation and katakana.
var DefaultAlphabet = mustAlphabet(defaultGlyphs)

// NewAlphabet splits s into single-rune glyphs.
func NewAlphabet(s string) (Alphabet, error) {
	a := make(Alphabet, 0, len(s))
	for _, r := range s {
		a = append(a, string(r))
	}
	if len(a) == 0 {
		return nil, ErrEmptyAlphabet
	}
	return a, nil
}

func mustAlphabet(s string) Alphabet {
	a, err := NewAlphabet(s)
	if err != nil {
		panic(err)
	}
	return a
}
