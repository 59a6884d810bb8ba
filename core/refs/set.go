// Package refs — ordered set with deduplication.
package refs

// Set keeps strings in insertion order, ignoring repeats.
type Set struct {
	items []string
	seen  map[string]bool
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{seen: make(map[string]bool)}
}

// Add inserts s unless it is already present.
func (s *Set) Add(item string) {
	if s.seen[item] {
		return
	}
	s.seen[item] = true
	s.items = append(s.items, item)
}

// Len returns the number of distinct items.
func (s *Set) Len() int {
	return len(s.items)
}

// All returns the items in insertion order.
func (s *Set) All() []string {
	return s.items
}
