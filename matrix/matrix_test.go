package matrix

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/flavioheleno/tm1640/font5x7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"tinygo.org/x/tinyfont"
)

type pixel struct{ c, r int }

// lit returns every pixel that is on.
func lit(f *Framebuffer) map[pixel]bool {
	m := map[pixel]bool{}
	for c := 0; c < Width; c++ {
		for r := 0; r < Height; r++ {
			if f.Pix[c]&(1<<uint(r)) != 0 {
				m[pixel{c, r}] = true
			}
		}
	}
	return m
}

func pixels(ps ...pixel) map[pixel]bool {
	m := map[pixel]bool{}
	for _, p := range ps {
		m[p] = true
	}
	return m
}

func TestNew(t *testing.T) {
	f := New()
	require.Len(t, f.Bytes(), Width)
	assert.Equal(t, image.Rect(0, 0, Width, Height), f.Bounds())
	assert.Empty(t, lit(f))
}

func TestFill(t *testing.T) {
	f := New()
	f.Fill(0xFF)
	for i, b := range f.Bytes() {
		assert.Equal(t, byte(0xFF), b, "column %d", i)
	}
	f.Fill(0)
	for i, b := range f.Bytes() {
		assert.Equal(t, byte(0), b, "column %d", i)
	}
}

func TestInvertInvolution(t *testing.T) {
	f := New()
	copy(f.Bytes(), []byte{0xAA, 0x55, 0x00, 0xFF, 0x01, 0x80, 0x3C, 0xC3, 0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0})
	want := append([]byte(nil), f.Bytes()...)

	f.Invert()
	for i, b := range f.Bytes() {
		assert.Equal(t, want[i]^0xFF, b, "column %d", i)
	}
	f.Invert()
	assert.Equal(t, want, f.Bytes())
}

func TestColumn(t *testing.T) {
	f := New()
	f.Pix[3] = 0x42
	b, err := f.Column(3)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), b)

	_, err = f.Column(Width)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDrawPoint(t *testing.T) {
	f := New()
	require.NoError(t, f.DrawPoint(4, 2, image1bit.On))
	once := append([]byte(nil), f.Bytes()...)
	require.NoError(t, f.DrawPoint(4, 2, image1bit.On))
	assert.Equal(t, once, f.Bytes(), "drawing a point twice must be idempotent")
	assert.Equal(t, byte(0x04), f.Pix[4])

	f.Pix[4] = 0xFF
	require.NoError(t, f.DrawPoint(4, 2, image1bit.Off))
	assert.Equal(t, byte(0xFB), f.Pix[4], "only the addressed bit is cleared")
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		c0, r0, c1, r1 int
		want           map[pixel]bool
	}{
		{"horizontal", 0, 0, 5, 0, pixels(pixel{0, 0}, pixel{1, 0}, pixel{2, 0}, pixel{3, 0}, pixel{4, 0}, pixel{5, 0})},
		{"single point", 2, 2, 2, 2, pixels(pixel{2, 2})},
		{"vertical upward", 7, 5, 7, 2, pixels(pixel{7, 2}, pixel{7, 3}, pixel{7, 4}, pixel{7, 5})},
		{"diagonal", 0, 0, 3, 3, pixels(pixel{0, 0}, pixel{1, 1}, pixel{2, 2}, pixel{3, 3})},
		{"shallow", 0, 0, 4, 2, pixels(pixel{0, 0}, pixel{1, 0}, pixel{2, 1}, pixel{3, 1}, pixel{4, 2})},
		{"steep", 0, 0, 1, 4, pixels(pixel{0, 0}, pixel{0, 1}, pixel{0, 2}, pixel{1, 3}, pixel{1, 4})},
		{"right to left", 3, 0, 0, 0, pixels(pixel{0, 0}, pixel{1, 0}, pixel{2, 0}, pixel{3, 0})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New()
			require.NoError(t, f.DrawLine(tt.c0, tt.r0, tt.c1, tt.r1, image1bit.On))
			assert.Equal(t, tt.want, lit(f))
		})
	}
}

func TestDrawLineCrossesMatrix(t *testing.T) {
	f := New()
	require.NoError(t, f.DrawLine(0, 0, Width-1, Height-1, image1bit.On))
	got := lit(f)
	assert.True(t, got[pixel{0, 0}])
	assert.True(t, got[pixel{Width - 1, Height - 1}])
	// One pixel per column for a shallow line.
	assert.Len(t, got, Width)
}

func TestDrawLineH(t *testing.T) {
	f := New()
	require.NoError(t, f.DrawLineH(3, 6, 4, image1bit.On))
	assert.Equal(t, pixels(pixel{3, 6}, pixel{4, 6}, pixel{5, 6}, pixel{6, 6}), lit(f))

	require.NoError(t, f.DrawLineH(3, 6, 0, image1bit.Off))
	assert.Len(t, lit(f), 4, "zero length draws nothing")
}

func TestDrawLineV(t *testing.T) {
	f := New()
	require.NoError(t, f.DrawLineV(2, 3, 4, image1bit.On))
	assert.Equal(t, byte(0x78), f.Pix[2])

	f.Pix[5] = 0xFF
	require.NoError(t, f.DrawLineV(5, 1, 2, image1bit.Off))
	assert.Equal(t, byte(0xF9), f.Pix[5])

	require.NoError(t, f.DrawLineV(9, 0, Height, image1bit.On))
	assert.Equal(t, byte(0xFF), f.Pix[9])
}

func TestRectangleOutlineAndFill(t *testing.T) {
	outline := New()
	require.NoError(t, outline.DrawRectangle(0, 0, 4, 4, image1bit.On))
	assert.Equal(t, []byte{0x0F, 0x09, 0x09, 0x0F}, outline.Bytes()[:4])
	assert.Len(t, lit(outline), 12)

	filled := New()
	require.NoError(t, filled.FillRectangle(0, 0, 4, 4, image1bit.On))
	assert.Equal(t, []byte{0x0F, 0x0F, 0x0F, 0x0F}, filled.Bytes()[:4])
	fill := lit(filled)
	assert.Len(t, fill, 16)
	for p := range lit(outline) {
		assert.True(t, fill[p], "fill misses outline pixel %v", p)
	}
}

func TestRectangleFullScreen(t *testing.T) {
	f := New()
	require.NoError(t, f.DrawRectangle(0, 0, Width, Height, image1bit.On))
	assert.Equal(t, byte(0xFF), f.Pix[0])
	assert.Equal(t, byte(0xFF), f.Pix[Width-1])
	for c := 1; c < Width-1; c++ {
		assert.Equal(t, byte(0x81), f.Pix[c], "column %d", c)
	}
}

func TestDrawCircle(t *testing.T) {
	f := New()
	require.NoError(t, f.DrawCircle(8, 4, 3, image1bit.On))
	got := lit(f)

	want := pixels(
		pixel{8, 1}, pixel{7, 1}, pixel{9, 1},
		pixel{6, 2}, pixel{10, 2},
		pixel{5, 3}, pixel{11, 3},
		pixel{5, 4}, pixel{11, 4},
		pixel{5, 5}, pixel{11, 5},
		pixel{6, 6}, pixel{10, 6},
		pixel{7, 7}, pixel{8, 7}, pixel{9, 7},
	)
	assert.Equal(t, want, got)

	for p := range got {
		assert.True(t, got[pixel{16 - p.c, p.r}], "no mirror of %v across column 8", p)
		assert.True(t, got[pixel{p.c, 8 - p.r}], "no mirror of %v across row 4", p)
	}
}

func TestDrawCircleZeroRadius(t *testing.T) {
	f := New()
	require.NoError(t, f.DrawCircle(3, 3, 0, image1bit.On))
	assert.Equal(t, pixels(pixel{3, 3}), lit(f))
}

func TestFillCircle(t *testing.T) {
	f := New()
	require.NoError(t, f.FillCircle(8, 4, 2, image1bit.On))
	assert.Equal(t, []byte{0x38, 0x7C, 0x7C, 0x7C, 0x38}, f.Bytes()[6:11])
	assert.Len(t, lit(f), 21)

	outline := New()
	require.NoError(t, outline.DrawCircle(8, 4, 2, image1bit.On))
	fill := lit(f)
	for p := range lit(outline) {
		assert.True(t, fill[p], "disk misses outline pixel %v", p)
	}

	require.NoError(t, f.FillCircle(8, 4, 2, image1bit.Off))
	assert.Empty(t, lit(f))
}

func TestDrawCharacter(t *testing.T) {
	f := New()
	for i := range f.Bytes() {
		f.Pix[i] = 0xA5
	}
	require.NoError(t, f.DrawCharacter(0, 0, '?', image1bit.On))

	g, ok := font5x7.Lookup('?')
	require.True(t, ok)
	for i := 0; i < font5x7.Width; i++ {
		assert.Equal(t, g[i]<<1, f.Pix[i], "column %d", i)
		assert.Zero(t, f.Pix[i]&0x01, "row 0 must stay blank in column %d", i)
	}
	for i := font5x7.Width; i < Width; i++ {
		assert.Equal(t, byte(0xA5), f.Pix[i], "column %d must be unchanged", i)
	}
}

func TestDrawCharacterIgnoresRowAndValue(t *testing.T) {
	a, b := New(), New()
	require.NoError(t, a.DrawCharacter(6, 0, 'G', image1bit.On))
	require.NoError(t, b.DrawCharacter(6, 5, 'G', image1bit.Off))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestDrawCharacterInvalid(t *testing.T) {
	f := New()
	err := f.DrawCharacter(0, 0, '\t', image1bit.On)
	assert.ErrorIs(t, err, ErrInvalidCharacter)
	assert.Empty(t, lit(f))
}

func TestOutOfRangeLeavesFramebufferUntouched(t *testing.T) {
	tests := []struct {
		name string
		draw func(f *Framebuffer) error
	}{
		{"point column", func(f *Framebuffer) error { return f.DrawPoint(Width, 0, image1bit.On) }},
		{"point row", func(f *Framebuffer) error { return f.DrawPoint(0, Height, image1bit.On) }},
		{"point negative", func(f *Framebuffer) error { return f.DrawPoint(-1, 0, image1bit.On) }},
		{"line start", func(f *Framebuffer) error { return f.DrawLine(-1, 0, 3, 3, image1bit.On) }},
		{"line end", func(f *Framebuffer) error { return f.DrawLine(0, 0, 3, 8, image1bit.On) }},
		{"lineh overflow", func(f *Framebuffer) error { return f.DrawLineH(14, 0, 3, image1bit.On) }},
		{"lineh negative length", func(f *Framebuffer) error { return f.DrawLineH(0, 0, -1, image1bit.On) }},
		{"lineh bad row", func(f *Framebuffer) error { return f.DrawLineH(0, 8, 1, image1bit.On) }},
		{"linev overflow", func(f *Framebuffer) error { return f.DrawLineV(0, 6, 3, image1bit.On) }},
		{"linev bad column", func(f *Framebuffer) error { return f.DrawLineV(16, 0, 1, image1bit.On) }},
		{"rectangle overflow", func(f *Framebuffer) error { return f.DrawRectangle(13, 0, 4, 1, image1bit.On) }},
		{"rectangle zero width", func(f *Framebuffer) error { return f.DrawRectangle(0, 0, 0, 2, image1bit.On) }},
		{"fill overflow", func(f *Framebuffer) error { return f.FillRectangle(0, 5, 2, 4, image1bit.On) }},
		{"circle left", func(f *Framebuffer) error { return f.DrawCircle(1, 4, 2, image1bit.On) }},
		{"circle bottom", func(f *Framebuffer) error { return f.DrawCircle(8, 6, 2, image1bit.On) }},
		{"circle negative radius", func(f *Framebuffer) error { return f.DrawCircle(8, 4, -1, image1bit.On) }},
		{"fill circle", func(f *Framebuffer) error { return f.FillCircle(14, 4, 2, image1bit.On) }},
		{"character", func(f *Framebuffer) error { return f.DrawCharacter(12, 0, 'A', image1bit.On) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New()
			err := tt.draw(f)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOutOfRange), "got %v", err)
			assert.Empty(t, lit(f))
		})
	}
}

func TestImageDraw(t *testing.T) {
	f := New()
	draw.Draw(f, image.Rect(0, 0, 2, Height), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	assert.Equal(t, []byte{0xFF, 0xFF, 0x00}, f.Bytes()[:3])
	assert.Equal(t, image1bit.On, f.BitAt(1, 7))
}

func TestDrawText(t *testing.T) {
	f := New()
	w := f.DrawText(&tinyfont.TomThumb, 0, 6, "1", image1bit.On)
	assert.Greater(t, w, 0)
	on := lit(f)
	require.NotEmpty(t, on)
	for p := range on {
		assert.Less(t, p.c, w, "pixel %v outside the text width", p)
	}

	f.DrawText(&tinyfont.TomThumb, 0, 6, "1", image1bit.Off)
	assert.Empty(t, lit(f))
}

func TestDrawTextClips(t *testing.T) {
	f := New()
	assert.NotPanics(t, func() {
		f.DrawText(&tinyfont.TomThumb, -3, 6, "HELLO WORLD", image1bit.On)
	})
	assert.Len(t, f.Bytes(), Width)
}

func TestString(t *testing.T) {
	f := New()
	require.NoError(t, f.DrawPoint(0, 0, image1bit.On))
	require.NoError(t, f.DrawPoint(15, 7, image1bit.On))
	want := "#...............\n" +
		"................\n" +
		"................\n" +
		"................\n" +
		"................\n" +
		"................\n" +
		"................\n" +
		"...............#\n"
	assert.Equal(t, want, f.String())
}
