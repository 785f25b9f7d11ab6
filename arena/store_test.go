package arena

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidAllocator(t *testing.T) {
	_, err := New[int](badAllocator{})
	require.ErrorIs(t, err, ErrInvalidAllocator)
}

func TestAcquireNeverHandsOutNil(t *testing.T) {
	s, err := New[string](PagedAllocator(2))
	require.NoError(t, err)
	for k := 0; k < 10; k++ {
		i, err := s.Acquire("x")
		require.NoError(t, err)
		require.NotEqual(t, Nil, i)
	}
	require.Equal(t, 10, s.Len())
	require.Equal(t, 10, s.Slots())
}

func TestReleaseRecyclesLIFO(t *testing.T) {
	s, err := New[int](nil)
	require.NoError(t, err)
	var idx []Index
	for k := 0; k < 5; k++ {
		i, err := s.Acquire(k)
		require.NoError(t, err)
		idx = append(idx, i)
	}
	s.Release(idx[1])
	s.Release(idx[3])
	require.Equal(t, 3, s.Len())
	require.Equal(t, 2, s.Stats().Free)

	i, err := s.Acquire(30)
	require.NoError(t, err)
	require.Equal(t, idx[3], i, "most recently released slot should be reused first")
	i, err = s.Acquire(10)
	require.NoError(t, err)
	require.Equal(t, idx[1], i)
	require.Equal(t, 5, s.Slots(), "high-water mark must not grow while free slots exist")
	require.Equal(t, 10, *s.At(idx[1]))
}

func TestReleaseZeroesItem(t *testing.T) {
	s, err := New[*int](nil)
	require.NoError(t, err)
	v := 7
	i, err := s.Acquire(&v)
	require.NoError(t, err)
	p := s.At(i)
	s.Release(i)
	require.Nil(t, *p, "released slot must not keep its item reachable")
}

func TestAddressesAreStable(t *testing.T) {
	s, err := New[int](PagedAllocator(4))
	require.NoError(t, err)
	first, err := s.Acquire(1)
	require.NoError(t, err)
	p := s.At(first)
	for k := 0; k < 100; k++ {
		_, err := s.Acquire(k)
		require.NoError(t, err)
	}
	*p = 42
	require.Equal(t, 42, *s.At(first))
	require.Greater(t, s.Stats().Pages, 20)
}

func TestRefDetectsReuse(t *testing.T) {
	s, err := New[int](nil)
	require.NoError(t, err)
	i, err := s.Acquire(1)
	require.NoError(t, err)
	r := s.Ref(i)
	require.True(t, s.Live(r))
	s.Release(i)
	require.False(t, s.Live(r))
	j, err := s.Acquire(2)
	require.NoError(t, err)
	require.Equal(t, i, j)
	require.False(t, s.Live(r), "ref to a reused slot must stay stale")
	require.True(t, s.Live(s.Ref(j)))
	require.False(t, s.Live(Ref{}))
	require.True(t, s.Ref(Nil).IsNil())
}

func TestLimitRefusesGrowth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ordmap")
	defer teardown()
	//
	s, err := New[int](Limit(PagedAllocator(4), 8))
	require.NoError(t, err)
	// two pages of 4 slots, one of them the sentinel
	for k := 0; k < 7; k++ {
		_, err := s.Acquire(k)
		require.NoError(t, err)
	}
	before := s.Stats()
	_, err = s.Acquire(99)
	require.ErrorIs(t, err, ErrExhausted)
	require.Equal(t, before, s.Stats(), "failed acquire must leave the store unchanged")
	s.Release(3)
	_, err = s.Acquire(99)
	require.NoError(t, err, "free slots are reusable after exhaustion")
}

func TestAcquireWithSingleSlotPages(t *testing.T) {
	s, err := New[int](PagedAllocator(1))
	require.NoError(t, err)
	var idx []Index
	for k := 0; k < 5; k++ {
		i, err := s.Acquire(k * 10)
		require.NoError(t, err)
		idx = append(idx, i)
	}
	for k, i := range idx {
		require.Equal(t, k*10, *s.At(i))
	}
	require.Equal(t, 6, s.Stats().Pages, "sentinel page plus one page per item")
	//
	l, err := New[int](Limit(PagedAllocator(1), 3))
	require.NoError(t, err)
	for k := 0; k < 2; k++ {
		_, err := l.Acquire(k)
		require.NoError(t, err)
	}
	_, err = l.Acquire(2)
	require.ErrorIs(t, err, ErrExhausted)
	require.Equal(t, 2, l.Len())
}

func TestForeignGrowErrorIsWrapped(t *testing.T) {
	s, err := New[int](refusingAllocator{})
	require.NoError(t, err)
	_, err = s.Acquire(1)
	require.ErrorIs(t, err, ErrExhausted)
}

func TestClearReleasesAll(t *testing.T) {
	s, err := New[int](PagedAllocator(8))
	require.NoError(t, err)
	var refs []Ref
	for k := 0; k < 20; k++ {
		i, err := s.Acquire(k)
		require.NoError(t, err)
		refs = append(refs, s.Ref(i))
	}
	s.Release(refs[5].Index())
	s.Clear()
	require.Equal(t, 0, s.Len())
	require.Equal(t, 20, s.Stats().Free)
	for _, r := range refs {
		require.False(t, s.Live(r))
	}
	i, err := s.Acquire(100)
	require.NoError(t, err)
	require.Equal(t, Index(1), i, "clear should hand out low indices first")
	require.Equal(t, 20, s.Slots())
}

func TestEachVisitsLiveSlots(t *testing.T) {
	s, err := New[int](nil)
	require.NoError(t, err)
	for k := 1; k <= 6; k++ {
		_, err := s.Acquire(k)
		require.NoError(t, err)
	}
	s.Release(2)
	s.Release(4)
	sum := 0
	s.Each(func(_ Index, item *int) bool {
		sum += *item
		return true
	})
	require.Equal(t, 1+3+5+6, sum)
	cnt := 0
	s.Each(func(Index, *int) bool {
		cnt++
		return cnt < 2
	})
	require.Equal(t, 2, cnt)
}

func TestReleaseOfFreeSlotPanics(t *testing.T) {
	s, err := New[int](nil)
	require.NoError(t, err)
	i, err := s.Acquire(1)
	require.NoError(t, err)
	s.Release(i)
	require.Panics(t, func() { s.Release(i) })
	require.Panics(t, func() { s.Release(Nil) })
}

// --- Helpers ---------------------------------------------------------------

type badAllocator struct{}

func (badAllocator) PageSize() int       { return 0 }
func (badAllocator) Grow(_, _ int) error { return nil }

type refusingAllocator struct{}

func (refusingAllocator) PageSize() int { return 16 }
func (refusingAllocator) Grow(_, _ int) error {
	return errors.New("no memory for you")
}
