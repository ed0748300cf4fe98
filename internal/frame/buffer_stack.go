package frame

import "github.com/flowraster/rastercore/internal/pixel"

// BufferStack is a direct Go port of buffer_stack.rs: a stack of working
// buffers the same length as the frame's base row, used to render a nested
// layer or sprite into its own buffer and then blend the result back down,
// reusing already-allocated buffers across push/pop pairs instead of
// reallocating every time.
type BufferStack struct {
	first       []pixel.PixelF64
	stack       [][]pixel.PixelF64
	readyStack  [][]pixel.PixelF64
}

// NewBufferStack creates a buffer stack rooted at buf, which must remain
// valid for the stack's lifetime.
func NewBufferStack(buf []pixel.PixelF64) *BufferStack {
	return &BufferStack{first: buf}
}

// Buffer returns the currently active buffer: the top of the stack, or the
// root buffer if nothing has been pushed.
func (s *BufferStack) Buffer() []pixel.PixelF64 {
	if n := len(s.stack); n > 0 {
		return s.stack[n-1]
	}
	return s.first
}

// PushEntry allocates a new top-of-stack entry, copying the [lo,hi) range
// from the buffer it's pushed over - everything outside that range is left
// at its zero value, matching the original's "only the bytes in the range
// are relevant" contract.
func (s *BufferStack) PushEntry(lo, hi int) {
	below := s.Buffer()

	var entry []pixel.PixelF64
	if n := len(s.readyStack); n > 0 {
		entry = s.readyStack[n-1]
		s.readyStack = s.readyStack[:n-1]
	} else {
		entry = make([]pixel.PixelF64, len(s.first))
	}

	copy(entry[lo:hi], below[lo:hi])
	s.stack = append(s.stack, entry)
}

// PopEntry removes the top-of-stack entry and hands it, along with the
// buffer now exposed beneath it, to blend so the caller can composite the
// two; the popped buffer is then kept ready for reuse by a later PushEntry.
func (s *BufferStack) PopEntry(blend func(removed, below []pixel.PixelF64)) {
	n := len(s.stack)
	if n == 0 {
		return
	}
	removed := s.stack[n-1]
	s.stack = s.stack[:n-1]

	below := s.Buffer()
	blend(removed, below)

	s.readyStack = append(s.readyStack, removed)
}
