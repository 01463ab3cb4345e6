// Package collection provides an identified, order-preserving collection:
// stable iteration order with O(1) lookup by id and no duplicate ids.
package collection

// Identifiable is anything with a stable string id.
type Identifiable interface {
	Identity() string
}

// Identified keeps elements in insertion order and indexed by id.
// The zero value is not usable; call NewIdentified.
type Identified[T Identifiable] struct {
	order []string
	byID  map[string]T
}

// NewIdentified returns an empty collection.
func NewIdentified[T Identifiable]() *Identified[T] {
	return &Identified[T]{byID: make(map[string]T)}
}

// FromSlice builds a collection appending each element in turn.
// Later duplicates replace earlier ones in place.
func FromSlice[T Identifiable](items []T) *Identified[T] {
	c := NewIdentified[T]()
	for _, it := range items {
		c.Append(it)
	}
	return c
}

// Len returns the element count.
func (c *Identified[T]) Len() int {
	return len(c.order)
}

// Get returns the element with the given id.
func (c *Identified[T]) Get(id string) (T, bool) {
	v, ok := c.byID[id]
	return v, ok
}

// Append adds v at the tail. If the id already exists the element is
// replaced without moving.
func (c *Identified[T]) Append(v T) {
	id := v.Identity()
	if _, ok := c.byID[id]; !ok {
		c.order = append(c.order, id)
	}
	c.byID[id] = v
}

// InsertHead adds v at the head. If the id already exists the element is
// replaced without moving.
func (c *Identified[T]) InsertHead(v T) {
	id := v.Identity()
	if _, ok := c.byID[id]; !ok {
		c.order = append([]string{id}, c.order...)
	}
	c.byID[id] = v
}

// Update replaces the element with the same id, keeping its position.
// It reports whether the id was present; absent ids are a no-op.
func (c *Identified[T]) Update(v T) bool {
	id := v.Identity()
	if _, ok := c.byID[id]; !ok {
		return false
	}
	c.byID[id] = v
	return true
}

// Remove deletes the element with the given id. Removing an absent id is
// a no-op.
func (c *Identified[T]) Remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns the elements in order. The slice is freshly allocated.
func (c *Identified[T]) All() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Filter returns the elements, in order, for which keep returns true.
func (c *Identified[T]) Filter(keep func(T) bool) []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		if v := c.byID[id]; keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Clone returns a shallow copy sharing the elements but not the index.
func (c *Identified[T]) Clone() *Identified[T] {
	out := &Identified[T]{
		order: append([]string(nil), c.order...),
		byID:  make(map[string]T, len(c.byID)),
	}
	for id, v := range c.byID {
		out.byID[id] = v
	}
	return out
}
