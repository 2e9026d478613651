package utils

// HashSet tracks row fingerprints already seen during cleaning. The
// pipeline is single-threaded, so no locking is needed.
type HashSet struct {
	seen map[string]struct{}
}

// NewHashSet creates an empty HashSet.
func NewHashSet() *HashSet {
	return &HashSet{seen: make(map[string]struct{})}
}

// Add returns true if the key was newly added, false if already present.
func (s *HashSet) Add(key string) bool {
	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Contains returns true if the key has already been added.
func (s *HashSet) Contains(key string) bool {
	_, exists := s.seen[key]
	return exists
}

// Size returns the number of unique keys tracked.
func (s *HashSet) Size() int {
	return len(s.seen)
}
