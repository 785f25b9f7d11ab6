package ordmap

import (
	"slices"
	"testing"
)

func TestRangeFunctions(t *testing.T) {
	m := newIntMap(t, 5, 3, 8, 1, 4, 7, 9, 2, 6)
	if keys := slices.Collect(m.Keys()); !slices.Equal(keys, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}) {
		t.Errorf("unexpected keys %v", keys)
	}
	var back []int
	for k, v := range m.Backward() {
		if v != itoa(k) {
			t.Errorf("unexpected value %q for key %d", v, k)
		}
		back = append(back, k)
	}
	if !slices.Equal(back, []int{9, 8, 7, 6, 5, 4, 3, 2, 1}) {
		t.Errorf("unexpected reverse keys %v", back)
	}
	values := slices.Collect(m.Values())
	if len(values) != 9 || values[0] != itoa(1) {
		t.Errorf("unexpected values %v", values)
	}
	var rng []int
	for k := range m.Range(3, 7) {
		rng = append(rng, k)
	}
	if !slices.Equal(rng, []int{3, 4, 5, 6}) {
		t.Errorf("expected half-open range [3,7), have %v", rng)
	}
	for k := range m.Range(10, 20) {
		t.Errorf("expected empty range, have key %d", k)
	}
	n := 0
	for range m.All() {
		n++
		if n == 4 {
			break
		}
	}
	if n != 4 {
		t.Errorf("expected early break after 4 elements, have %d", n)
	}
}

func TestForEachMayEraseCurrent(t *testing.T) {
	m := newIntMap(t, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	var seen []int
	m.ForEach(func(k int, _ string) bool {
		seen = append(seen, k)
		if k%2 == 0 {
			m.Erase(k)
		}
		return true
	})
	checked(t, m)
	if len(seen) != 10 {
		t.Errorf("expected all 10 keys to be visited, have %v", seen)
	}
	if keys := slices.Collect(m.Keys()); !slices.Equal(keys, []int{1, 3, 5, 7, 9}) {
		t.Errorf("expected even keys to be erased, have %v", keys)
	}
}

func TestForEachStopsWhenNextIsErased(t *testing.T) {
	m := newIntMap(t, 1, 2, 3, 4)
	var seen []int
	for k := range m.All() {
		seen = append(seen, k)
		if k == 2 {
			m.Erase(3)
		}
	}
	if !slices.Equal(seen, []int{1, 2}) {
		t.Errorf("expected walk to end when upcoming element is erased, have %v", seen)
	}
}

func TestRangeOnEmptyMap(t *testing.T) {
	m := New[string, int]()
	for k := range m.All() {
		t.Errorf("unexpected key %q", k)
	}
	for k := range m.Backward() {
		t.Errorf("unexpected key %q", k)
	}
	m.ForEach(nil)
}
