package temporal

// Ring is a fixed-capacity ring buffer. Pushing onto a full ring
// evicts the oldest element, so memory stays bounded no matter how
// long a session runs.
type Ring[T any] struct {
	items []T
	head  int
	size  int
}

// NewRing creates a ring buffer with the given capacity
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Push appends a value, evicting the oldest one when full
func (r *Ring[T]) Push(v T) {
	if r.size < len(r.items) {
		r.items[(r.head+r.size)%len(r.items)] = v
		r.size++
		return
	}
	r.items[r.head] = v
	r.head = (r.head + 1) % len(r.items)
}

// Len returns the number of buffered values
func (r *Ring[T]) Len() int {
	return r.size
}

// Values returns the buffered values oldest-first, as a copy
func (r *Ring[T]) Values() []T {
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.items[(r.head+i)%len(r.items)]
	}
	return out
}

// Clear drops all buffered values
func (r *Ring[T]) Clear() {
	r.head = 0
	r.size = 0
}
