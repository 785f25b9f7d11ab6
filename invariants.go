package ordmap

import (
	"fmt"

	"github.com/npillmayer/ordmap/arena"
)

// Check validates structural tree invariants: the AA level rules, parent
// links, strict ascending key order and the element count.
//
// Check is meant for tests and debugging. It visits every node and takes
// O(n) time.
func (m *Map[K, V]) Check() error {
	if m == nil {
		return fmt.Errorf("%w: nil map", ErrInvariant)
	}
	if m.root == arena.Nil {
		if n := m.store.Len(); n != 0 {
			return m.violation("empty tree, but %d live nodes", n)
		}
		return nil
	}
	if p := m.node(m.root).parent; p != arena.Nil {
		return m.violation("root %d has parent %d", m.root, p)
	}
	count, err := m.checkNode(m.root, arena.Nil, arena.Nil)
	if err != nil {
		return err
	}
	if count != m.store.Len() {
		return m.violation("%d nodes reachable, but %d live nodes", count, m.store.Len())
	}
	return nil
}

// checkNode checks the subtree rooted at t. lo and hi are the nodes whose
// keys bound the subtree from below and above (Nil for no bound). It
// returns the number of nodes in the subtree.
func (m *Map[K, V]) checkNode(t, lo, hi arena.Index) (int, error) {
	tn := m.node(t)
	if lo != arena.Nil && m.cfg.Compare(m.node(lo).key, tn.key) >= 0 {
		return 0, m.violation("key order broken at node %d", t)
	}
	if hi != arena.Nil && m.cfg.Compare(tn.key, m.node(hi).key) >= 0 {
		return 0, m.violation("key order broken at node %d", t)
	}
	l, r := tn.left, tn.right
	switch {
	case l == arena.Nil && r == arena.Nil && tn.level != 1:
		return 0, m.violation("leaf %d on level %d", t, tn.level)
	case m.level(l) >= tn.level:
		return 0, m.violation("left child of node %d on level %d >= %d", t, m.level(l), tn.level)
	case m.level(r) > tn.level:
		return 0, m.violation("right child of node %d on level %d > %d", t, m.level(r), tn.level)
	case tn.level > 1 && (l == arena.Nil || r == arena.Nil):
		return 0, m.violation("node %d on level %d lacks a child", t, tn.level)
	}
	if r != arena.Nil {
		if rr := m.node(r).right; m.level(rr) >= tn.level {
			return 0, m.violation("right grandchild of node %d on level %d >= %d", t, m.level(rr), tn.level)
		}
	}
	count := 1
	for _, c := range [2]arena.Index{l, r} {
		if c == arena.Nil {
			continue
		}
		if p := m.node(c).parent; p != t {
			return 0, m.violation("node %d has parent %d, expected %d", c, p, t)
		}
	}
	if l != arena.Nil {
		n, err := m.checkNode(l, lo, t)
		if err != nil {
			return 0, err
		}
		count += n
	}
	if r != arena.Nil {
		n, err := m.checkNode(r, t, hi)
		if err != nil {
			return 0, err
		}
		count += n
	}
	return count, nil
}

func (m *Map[K, V]) violation(format string, args ...any) error {
	err := fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
	T().Errorf("ordmap: %v", err)
	return err
}
