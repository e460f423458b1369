// Package typewriter reveals lines of text one character at a time, the way
// a terminal prints them.
package typewriter

import (
	"strings"
	"time"
)

const (
	DefaultCharDelay = 10 * time.Millisecond
	DefaultLineDelay = 400 * time.Millisecond

	Cursor = "_"
)

// Typewriter is advanced by its host's clock; it never schedules anything on
// its own.
type Typewriter struct {
	lines     [][]rune
	charDelay time.Duration
	lineDelay time.Duration

	line int
	char int

	acc  time.Duration
	wait time.Duration
	done bool
}

// New starts typing lines immediately: the first character is visible
// before any time has passed.
func New(lines []string, charDelay, lineDelay time.Duration) *Typewriter {
	t := &Typewriter{
		lines:     make([][]rune, len(lines)),
		charDelay: max(charDelay, 0),
		lineDelay: max(lineDelay, 0),
	}
	for i, l := range lines {
		t.lines[i] = []rune(l)
	}
	t.wait = t.step()
	return t
}

// SplitLines trims every line of text and drops blank ones.
func SplitLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// step performs one typing action and returns the delay before the next.
func (t *Typewriter) step() time.Duration {
	if t.line >= len(t.lines) {
		t.done = true
		return 0
	}
	if t.char < len(t.lines[t.line]) {
		t.char++
		return t.charDelay
	}
	t.line++
	t.char = 0
	return t.lineDelay
}

// Advance moves the typewriter forward by dt.
func (t *Typewriter) Advance(dt time.Duration) {
	if t.done || dt < 0 {
		return
	}
	t.acc += dt
	for !t.done && t.acc >= t.wait {
		t.acc -= t.wait
		t.wait = t.step()
	}
}

// Skip reveals everything at once.
func (t *Typewriter) Skip() {
	t.line = len(t.lines)
	t.char = 0
	t.done = true
}

func (t *Typewriter) Done() bool { return t.done }

// Lines returns the text revealed so far. A line that has been fully typed
// is followed by a (possibly empty) line in progress; once every line is
// done the last line holds the cursor.
func (t *Typewriter) Lines() []string {
	out := make([]string, 0, t.line+2)
	for i := 0; i < t.line && i < len(t.lines); i++ {
		out = append(out, string(t.lines[i]))
	}
	if t.line < len(t.lines) {
		out = append(out, string(t.lines[t.line][:t.char]))
	}
	if t.done {
		out = append(out, Cursor)
	}
	return out
}
