package ordmap

import (
	"cmp"
	"errors"
	"slices"
	"testing"

	"github.com/npillmayer/ordmap/arena"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestIteratorZeroValue(t *testing.T) {
	var it Iterator[int, string]
	if it.Valid() || !errors.Is(it.Err(), ErrInvalidIterator) {
		t.Errorf("expected zero iterator to be invalid")
	}
	if it.Key() != 0 || it.Value() != "" || it.ValueRef() != nil {
		t.Errorf("expected zero iterator to yield zero values")
	}
	if it.Next().Valid() || it.Prev().Valid() {
		t.Errorf("expected stepping an invalid iterator to stay invalid")
	}
	if err := it.SetValue("x"); !errors.Is(err, ErrInvalidIterator) {
		t.Errorf("expected SetValue on invalid iterator to fail, have %v", err)
	}
	if !it.Equal(Iterator[int, string]{}) {
		t.Errorf("expected invalid iterators to be equal")
	}
}

func TestIteratorEnds(t *testing.T) {
	m := newIntMap(t, 1, 2, 3)
	if m.Last().Next().Valid() {
		t.Errorf("expected successor of last element to be invalid")
	}
	if m.First().Prev().Valid() {
		t.Errorf("expected predecessor of first element to be invalid")
	}
	end := m.Last().Next()
	if !end.Equal(m.Find(99)) {
		t.Errorf("expected all end iterators to compare equal")
	}
	if !m.Find(3).Equal(m.First().Next().Next()) {
		t.Errorf("expected Find(3) to equal the third element")
	}
	if m.Find(2).Equal(m.Find(3)) {
		t.Errorf("expected iterators to different elements to differ")
	}
}

func TestIteratorSetValue(t *testing.T) {
	m := newIntMap(t, 1, 2, 3)
	it := m.Find(2)
	if err := it.SetValue("two"); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.Get(2); v != "two" {
		t.Errorf("expected value to be changed in place, have %q", v)
	}
	*it.ValueRef() = "deux"
	if it.Const().Value() != "deux" {
		t.Errorf("expected value change through pointer to be visible")
	}
}

func TestIteratorStaysValidWhenOthersAreErased(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	m := newIntMap(t, 5, 3, 8, 1, 4, 7, 9, 2, 6)
	its := make(map[int]Iterator[int, string])
	for it := m.First(); it.Valid(); it = it.Next() {
		its[it.Key()] = it
	}
	for _, k := range []int{5, 3, 8} { // inner nodes with two children
		m.Erase(k)
		checked(t, m)
		for key, it := range its {
			erased := key == 5 || key == 3 && k != 5 || key == 8 && k == 8
			if it.Valid() == erased {
				t.Errorf("after erasing %d: iterator to %d valid=%v", k, key, it.Valid())
			}
			if !erased && (it.Key() != key || it.Value() != itoa(key)) {
				t.Errorf("after erasing %d: iterator to %d now at %d", k, key, it.Key())
			}
		}
	}
}

func TestIteratorStale(t *testing.T) {
	m := newIntMap(t, 1, 2, 3)
	it := m.Find(2)
	m.Erase(2)
	if it.Valid() || !errors.Is(it.Err(), ErrStaleIterator) {
		t.Errorf("expected iterator to erased element to be stale, have %v", it.Err())
	}
	if _, err := m.EraseAt(it); !errors.Is(err, ErrStaleIterator) {
		t.Errorf("expected EraseAt to reject stale iterator, have %v", err)
	}
	if err := it.SetValue("x"); !errors.Is(err, ErrStaleIterator) {
		t.Errorf("expected SetValue to reject stale iterator, have %v", err)
	}
	m.Insert(2, "again") // reuses the slot of the erased node
	if it.Valid() {
		t.Errorf("expected stale iterator to stay stale after its slot is reused")
	}
	first := m.First()
	m.Clear()
	if first.Valid() {
		t.Errorf("expected iterator to become stale on Clear")
	}
}

func TestIteratorForeign(t *testing.T) {
	m1 := newIntMap(t, 1, 2, 3)
	m2 := newIntMap(t, 1, 2, 3)
	if _, err := m2.EraseAt(m1.Find(2)); !errors.Is(err, ErrForeignIterator) {
		t.Errorf("expected EraseAt to reject foreign iterator, have %v", err)
	}
	if m2.Len() != 3 || m1.Len() != 3 {
		t.Errorf("expected rejected EraseAt to leave maps unchanged")
	}
	if _, err := m2.EraseAt(Iterator[int, string]{}); !errors.Is(err, ErrInvalidIterator) {
		t.Errorf("expected EraseAt to reject invalid iterator, have %v", err)
	}
	if m1.Find(1).Equal(m2.Find(1)) {
		t.Errorf("expected iterators of different maps to differ")
	}
}

func TestEraseAtReturnsSuccessor(t *testing.T) {
	m := newIntMap(t, 5, 3, 8, 1, 4, 7, 9, 2, 6)
	it := m.Find(4)
	next, err := m.EraseAt(it)
	if err != nil {
		t.Fatal(err)
	}
	if !next.Valid() || next.Key() != 5 {
		t.Errorf("expected successor 5, have %d", next.Key())
	}
	// erase every remaining element from the front
	var erased []int
	for it := m.First(); it.Valid(); {
		erased = append(erased, it.Key())
		if it, err = m.EraseAt(it); err != nil {
			t.Fatal(err)
		}
		checked(t, m)
	}
	if !slices.Equal(erased, []int{1, 2, 3, 5, 6, 7, 8, 9}) || !m.IsEmpty() {
		t.Errorf("unexpected erase sequence %v", erased)
	}
}

func TestEraseAtLastElement(t *testing.T) {
	m := newIntMap(t, 1, 2)
	next, err := m.EraseAt(m.Last())
	if err != nil {
		t.Fatal(err)
	}
	if next.Valid() {
		t.Errorf("expected erasing the last element to return an invalid iterator")
	}
}

func TestEraseAtComparesNoKeys(t *testing.T) {
	compares := 0
	cfg := Config[int]{
		Compare: func(a, b int) int {
			compares++
			return cmp.Compare(a, b)
		},
		Allocator: arena.PagedAllocator(1),
	}
	m, err := NewWithConfig[int, int](cfg)
	if err != nil {
		t.Fatal(err)
	}
	for k := range 200 {
		if _, err := m.Insert((k*37)%200, k); err != nil {
			t.Fatal(err)
		}
	}
	var kept []int
	for it := m.First(); it.Valid(); {
		if it.Key()%3 != 0 {
			kept = append(kept, it.Key())
			it = it.Next()
			continue
		}
		compares = 0
		if it, err = m.EraseAt(it); err != nil {
			t.Fatal(err)
		}
		if compares != 0 {
			t.Fatalf("expected EraseAt to compare no keys, have %d comparisons", compares)
		}
		checked(t, m)
	}
	var have []int
	for k := range m.Keys() {
		have = append(have, k)
	}
	if !slices.Equal(have, kept) || m.Len() != len(kept) {
		t.Errorf("unexpected keys after erase: %v", have)
	}
}
