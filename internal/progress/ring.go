package progress

// ring is a fixed-capacity FIFO that overwrites its oldest entry when full.
// It is not synchronised; Tracker guards it.
type ring[T any] struct {
	buf  []T
	head int // index of the oldest entry
	size int
}

func newRing[T any](capacity int) *ring[T] {
	if capacity <= 0 {
		panic("ring capacity must be positive")
	}
	return &ring[T]{buf: make([]T, capacity)}
}

// push appends item, evicting the oldest entry when full. It reports whether
// an entry was evicted.
func (r *ring[T]) push(item T) bool {
	if r.size == len(r.buf) {
		r.buf[r.head] = item
		r.head = (r.head + 1) % len(r.buf)
		return true
	}
	r.buf[(r.head+r.size)%len(r.buf)] = item
	r.size++
	return false
}

// newestFirst returns the entries from most to least recent.
func (r *ring[T]) newestFirst() []T {
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.head+r.size-1-i)%len(r.buf)]
	}
	return out
}

func (r *ring[T]) clear() {
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
	r.head, r.size = 0, 0
}
