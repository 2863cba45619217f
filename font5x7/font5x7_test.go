package font5x7

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableCoversPrintableASCII(t *testing.T) {
	require.Len(t, table, int(last-first)+1)
	assert.Len(t, Chars(), len(table))
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want Glyph
		ok   bool
	}{
		{"space", ' ', Glyph{0x00, 0x00, 0x00, 0x00, 0x00}, true},
		{"question mark", '?', Glyph{0x02, 0x01, 0x51, 0x09, 0x06}, true},
		{"exclamation", '!', Glyph{0x00, 0x00, 0x5F, 0x00, 0x00}, true},
		{"digit zero", '0', Glyph{0x3E, 0x51, 0x49, 0x45, 0x3E}, true},
		{"upper H", 'H', Glyph{0x7F, 0x08, 0x08, 0x08, 0x7F}, true},
		{"tilde", '~', Glyph{0x08, 0x08, 0x2A, 0x1C, 0x08}, true},
		{"control char", '\n', Glyph{}, false},
		{"DEL", 0x7F, Glyph{}, false},
		{"non-ASCII", 'é', Glyph{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(tt.r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGlyphsFitSevenRows(t *testing.T) {
	for _, c := range Chars() {
		g, ok := Lookup(c)
		require.True(t, ok, "missing glyph for %q", c)
		for i, col := range g {
			assert.Zero(t, col&0x80, "glyph %q column %d uses row 7", c, i)
		}
	}
}
