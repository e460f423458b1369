package rain

// Surface is the 2D drawing capability the animator paints through.
// Coordinates are pixels; DrawText's y is the text baseline.
type Surface interface {
	FillRect(x, y, w, h int, c Color, alpha float64)
	SetFont(size int)
	DrawText(s string, x, y int, c Color)
}

// Resizer is implemented by surfaces that own a backing buffer which must
// follow the host's dimensions.
type Resizer interface {
	Resize(width, height int)
}

type Size struct {
	Width  int
	Height int
}
