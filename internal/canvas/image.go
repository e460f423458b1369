package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"

	"github.com/fchimpan/matrix-rain/internal/rain"
)

// Image is a pixel surface backed by an *image.RGBA.
type Image struct {
	img        *image.RGBA
	background rain.Color

	ttf   *truetype.Font
	faces map[int]font.Face
	face  font.Face
}

var (
	_ rain.Surface = (*Image)(nil)
	_ rain.Resizer = (*Image)(nil)
)

// NewImage returns a w x h canvas filled with background. Glyphs are
// rasterized with Go Mono unless a font is loaded with LoadFont.
func NewImage(w, h int, background rain.Color) *Image {
	c := &Image{
		background: background,
		faces:      make(map[int]font.Face),
		face:       basicfont.Face7x13,
	}
	if tt, err := truetype.Parse(gomono.TTF); err == nil {
		c.ttf = tt
	}
	c.Resize(w, h)
	return c
}

// LoadFont replaces the glyph font with the TrueType file at path. Use a font
// with katakana coverage for the default alphabet.
func (c *Image) LoadFont(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read font: %w", err)
	}
	tt, err := truetype.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	c.ttf = tt
	c.faces = make(map[int]font.Face)
	return nil
}

func (c *Image) RGBA() *image.RGBA { return c.img }

func (c *Image) Bounds() image.Rectangle { return c.img.Bounds() }

// Resize reallocates the image and clears it to the background.
func (c *Image) Resize(w, h int) {
	c.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.background.RGBA()), image.Point{}, draw.Src)
}

func (c *Image) FillRect(x, y, w, h int, col rain.Color, alpha float64) {
	a := uint8(min(max(alpha, 0), 1)*255 + 0.5)
	src := image.NewUniform(color.NRGBA{R: col.R, G: col.G, B: col.B, A: a})
	draw.Draw(c.img, image.Rect(x, y, x+w, y+h), src, image.Point{}, draw.Over)
}

func (c *Image) SetFont(size int) {
	if c.ttf == nil || size <= 0 {
		c.face = basicfont.Face7x13
		return
	}
	face, ok := c.faces[size]
	if !ok {
		face = truetype.NewFace(c.ttf, &truetype.Options{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		c.faces[size] = face
	}
	c.face = face
}

func (c *Image) DrawText(s string, x, y int, col rain.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col.RGBA()),
		Face: c.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
