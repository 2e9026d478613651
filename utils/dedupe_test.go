package utils

import "testing"

func TestHashSetNoDuplicates(t *testing.T) {
	s := NewHashSet()

	added := s.Add("9e107d9d372bb6826bd81d3542a419d6")
	if !added {
		t.Error("first Add should return true")
	}

	added = s.Add("9e107d9d372bb6826bd81d3542a419d6")
	if added {
		t.Error("second Add of same key should return false")
	}

	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}

func TestHashSetContains(t *testing.T) {
	s := NewHashSet()
	s.Add("abc")

	if !s.Contains("abc") {
		t.Error("Contains should report an added key")
	}
	if s.Contains("def") {
		t.Error("Contains should not report a missing key")
	}
}
