package ast

// Arena is append-only storage assigning stable 1-based indices.
// Index 0 is reserved for "no node".
type Arena[T any] struct {
	data []T
}

// NewArena allocates an arena with the given capacity hint (zero is fine).
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate stores value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data)) // #nosec G115 -- arenas never exceed uint32
}

// Get returns the element at the 1-based index, or nil for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || index > uint32(len(a.data)) { // #nosec G115
		return nil
	}
	return &a.data[index-1]
}
