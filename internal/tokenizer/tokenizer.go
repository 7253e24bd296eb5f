// Package tokenizer scans an object file held in memory.
//
// All extract methods stop at a space, a tab or an end of line byte and never
// fail: malformed input yields a best-effort value (usually zero).
package tokenizer

import (
	"bytes"
	"math"
	"strconv"
)

// Tokenizer is a cursor over a byte buffer with a stack of saved positions.
type Tokenizer struct {
	buf   []byte
	pos   int
	stack []int

	// Newlines counted before linePos.
	linePos int
	lines   int
}

// New creates a tokenizer positioned at the start of buf.
func New(buf []byte) *Tokenizer {
	return &Tokenizer{buf: buf}
}

func isEOL(b byte) bool   { return b == '\n' || b == '\r' || b == 0 }
func isSpace(b byte) bool { return b == ' ' || b == '\t' }

// IsEnd reports whether the whole buffer has been consumed.
func (t *Tokenizer) IsEnd() bool { return t.pos >= len(t.buf) }

// Pos returns the current byte offset.
func (t *Tokenizer) Pos() int { return t.pos }

// Line returns the 1-based line number of the current position.
func (t *Tokenizer) Line() int {
	end := min(t.pos, len(t.buf))
	if end < t.linePos {
		t.linePos, t.lines = 0, 0
	}
	t.lines += bytes.Count(t.buf[t.linePos:end], []byte{'\n'})
	t.linePos = end
	return t.lines + 1
}

func (t *Tokenizer) atEOL() bool   { return !t.IsEnd() && isEOL(t.buf[t.pos]) }
func (t *Tokenizer) atSpace() bool { return !t.IsEnd() && isSpace(t.buf[t.pos]) }

func (t *Tokenizer) atBoundary() bool {
	return t.IsEnd() || isSpace(t.buf[t.pos]) || isEOL(t.buf[t.pos])
}

func (t *Tokenizer) skipEOL() {
	for t.atEOL() {
		t.pos++
	}
}

// SkipSpace consumes spaces and tabs.
func (t *Tokenizer) SkipSpace() {
	for t.atSpace() {
		t.pos++
	}
}

// SkipUntilParam consumes spaces, tabs and line breaks.
func (t *Tokenizer) SkipUntilParam() {
	for !t.IsEnd() && (isSpace(t.buf[t.pos]) || isEOL(t.buf[t.pos])) {
		t.pos++
	}
}

// SkipWord consumes the current word.
func (t *Tokenizer) SkipWord() {
	for !t.atBoundary() {
		t.pos++
	}
}

// NextLine moves to the first byte of the next non-empty line.
func (t *Tokenizer) NextLine() {
	for !t.IsEnd() && !isEOL(t.buf[t.pos]) {
		t.pos++
	}
	t.skipEOL()
}

// ExtractWord returns the bytes up to the next space or end of line.
func (t *Tokenizer) ExtractWord() string {
	start := t.pos
	t.SkipWord()
	return string(t.buf[start:t.pos])
}

// ExtractLineTilEOL returns the rest of the line, trailing spaces included,
// and leaves the cursor on the line break.
func (t *Tokenizer) ExtractLineTilEOL() string {
	start := t.pos
	for !t.IsEnd() && !isEOL(t.buf[t.pos]) {
		t.pos++
	}
	return string(t.buf[start:t.pos])
}

// ExtractLine returns the rest of the line and consumes the line break.
func (t *Tokenizer) ExtractLine() string {
	s := t.ExtractLineTilEOL()
	t.skipEOL()
	return s
}

// ExtractInt reads an optionally signed integer. Leading spaces are skipped.
// Digits stop at the first non-digit byte and the rest of the token is dropped.
// Values beyond the int range saturate at math.MaxInt or -math.MaxInt.
func (t *Tokenizer) ExtractInt() int {
	t.SkipSpace()
	sign := 1
	if !t.IsEnd() {
		switch t.buf[t.pos] {
		case '-':
			sign = -1
			t.pos++
		case '+':
			t.pos++
		}
	}
	v := 0
	for !t.atBoundary() {
		c := t.buf[t.pos]
		if c < '0' || c > '9' {
			t.SkipWord()
			break
		}
		d := int(c - '0')
		if v > (math.MaxInt-d)/10 {
			v = math.MaxInt
			t.SkipWord()
			break
		}
		v = v*10 + d
		t.pos++
	}
	return sign * v
}

// ExtractFloat reads a decimal number the way existing object files have always
// been read: every '-' or '+' anywhere in the token sets the sign, '.' starts
// the fraction and any other non-digit byte is ignored. "1-2" reads as -12.
// Leading spaces are skipped.
func (t *Tokenizer) ExtractFloat() float32 {
	t.SkipSpace()
	var (
		v        float64
		sign     = 1.0
		decimals int
		fraction bool
	)
	for !t.atBoundary() {
		switch c := t.buf[t.pos]; {
		case c == '-':
			sign = -1
		case c == '+':
			sign = 1
		case c == '.':
			fraction = true
		case c >= '0' && c <= '9':
			v = v*10 + float64(c-'0')
			if fraction {
				decimals++
			}
		}
		t.pos++
	}
	for ; decimals > 0; decimals-- {
		v /= 10
	}
	return float32(v * sign)
}

// ExtractFloatStrict reads the token as a standard float literal. ok is false
// for a malformed token, which reads as 0: "1-2" is rejected. A missing
// token is also 0 but not malformed.
func (t *Tokenizer) ExtractFloatStrict() (v float32, ok bool) {
	t.SkipSpace()
	word := t.ExtractWord()
	if word == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(word, 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

// IsMatch skips leading spaces and reports whether the next word is keyword.
// The keyword must be followed by a space, an end of line or the end of the
// buffer. On a mismatch the cursor is restored, leading spaces included; on a
// match it is left after the keyword when consume is true.
func (t *Tokenizer) IsMatch(keyword string, consume bool) bool {
	start := t.pos
	t.SkipSpace()
	at := t.pos
	if keyword == "" || len(t.buf)-at < len(keyword) ||
		string(t.buf[at:at+len(keyword)]) != keyword {
		t.pos = start
		return false
	}
	t.pos += len(keyword)
	if !t.atBoundary() {
		t.pos = start
		return false
	}
	if !consume {
		t.pos = start
	}
	return true
}

// Match is IsMatch with consume set.
func (t *Tokenizer) Match(keyword string) bool { return t.IsMatch(keyword, true) }

// PushPosition saves the current position.
func (t *Tokenizer) PushPosition() {
	t.stack = append(t.stack, t.pos)
}

// PopPosition drops the last saved position. With restore set the cursor moves
// back to it. Popping an empty stack does nothing.
func (t *Tokenizer) PopPosition(restore bool) {
	n := len(t.stack)
	if n == 0 {
		return
	}
	if restore {
		t.pos = t.stack[n-1]
	}
	t.stack = t.stack[:n-1]
}

// Try runs fn as a transaction: the position is restored unless fn reports success.
func (t *Tokenizer) Try(fn func() bool) bool {
	t.PushPosition()
	ok := fn()
	t.PopPosition(!ok)
	return ok
}
