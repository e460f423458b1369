// Package raintest provides test doubles for the rain package.
package raintest

import "github.com/fchimpan/matrix-rain/internal/rain"

type OpKind string

const (
	OpFill OpKind = "fill"
	OpFont OpKind = "font"
	OpText OpKind = "text"
)

// Op is one recorded Surface call. Unused fields stay zero.
type Op struct {
	Kind  OpKind
	X, Y  int
	W, H  int
	Size  int
	Text  string
	Color rain.Color
	Alpha float64
}

// Recorder is a headless rain.Surface that keeps every call in order.
type Recorder struct {
	Ops []Op
}

var _ rain.Surface = (*Recorder)(nil)

func (r *Recorder) FillRect(x, y, w, h int, c rain.Color, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, X: x, Y: y, W: w, H: h, Color: c, Alpha: alpha})
}

func (r *Recorder) SetFont(size int) {
	r.Ops = append(r.Ops, Op{Kind: OpFont, Size: size})
}

func (r *Recorder) DrawText(s string, x, y int, c rain.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X: x, Y: y, Text: s, Color: c})
}

// Texts returns only the DrawText calls.
func (r *Recorder) Texts() []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Script is a rain.Source that replays fixed values. Float64 and IntN draw
// from separate queues; an exhausted queue yields zero.
type Script struct {
	Floats []float64
	Ints   []int
}

func (s *Script) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

func (s *Script) IntN(n int) int {
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return v % n
}
