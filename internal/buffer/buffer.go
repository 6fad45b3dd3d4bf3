// Package buffer owns the in-memory build-file source. It supports
// splicing a byte range for a replacement string, the primitive the lexer
// uses to inline a define's value so the regular scan loop naturally
// rescans the expansion (macros may themselves expand further macros).
package buffer

// Buffer is a mutable, growable byte sequence. It is not safe for
// concurrent use; xmk's whole pipeline is single-threaded (see spec's
// concurrency model), so none is needed.
type Buffer struct {
	data []byte
}

// New wraps src. The buffer takes ownership of a private copy so later
// splices never alias caller-held memory.
func New(src []byte) *Buffer {
	data := make([]byte, len(src))
	copy(data, src)
	return &Buffer{data: data}
}

func (b *Buffer) Len() int { return len(b.data) }

// At returns the byte at i. Callers must keep i in [0, Len()).
func (b *Buffer) At(i int) byte { return b.data[i] }

// Slice returns the bytes in [i, j) as a string (a copy, since the
// underlying array may be spliced later).
func (b *Buffer) Slice(i, j int) string { return string(b.data[i:j]) }

// Splice replaces b.data[start:end] with replacement, reallocating and
// shifting the tail. The caller resumes scanning at start so the
// inserted text is rescanned in place, which is how nested macro
// references expand.
func (b *Buffer) Splice(start, end int, replacement string) {
	tail := append([]byte(nil), b.data[end:]...)
	data := make([]byte, 0, start+len(replacement)+len(tail))
	data = append(data, b.data[:start]...)
	data = append(data, replacement...)
	data = append(data, tail...)
	b.data = data
}
