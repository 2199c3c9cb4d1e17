package terminal

import "sync"

// Buffer is a thread-safe circular byte buffer holding a session's
// most recent output. It decouples the PTY reader from stream clients:
// a late subscriber can fetch the backlog without the engine keeping
// unbounded scrollback.
type Buffer struct {
	data []byte
	size int
	head int
	tail int
	full bool
	mu   sync.Mutex
}

// NewBuffer creates a circular buffer of the given capacity.
func NewBuffer(size int) *Buffer {
	return &Buffer{
		data: make([]byte, size),
		size: size,
	}
}

// Write appends p, overwriting the oldest bytes once full.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range p {
		b.data[b.tail] = c
		b.tail = (b.tail + 1) % b.size
		if b.full {
			b.head = b.tail
		} else if b.tail == b.head {
			b.full = true
		}
	}
	return len(p), nil
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lenLocked()
}

func (b *Buffer) lenLocked() int {
	if b.full {
		return b.size
	}
	if b.tail >= b.head {
		return b.tail - b.head
	}
	return b.size - b.head + b.tail
}

// Snapshot copies the buffered bytes oldest-first without draining.
func (b *Buffer) Snapshot() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.lenLocked()
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	if b.head < b.tail && !b.full {
		copy(out, b.data[b.head:b.tail])
	} else {
		copied := copy(out, b.data[b.head:])
		copy(out[copied:], b.data[:b.tail])
	}
	return out
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.head = 0
	b.tail = 0
	b.full = false
}
