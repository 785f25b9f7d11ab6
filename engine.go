package ordmap

import "github.com/npillmayer/ordmap/arena"

// Andersson tree rules, checked by Check:
//
//  1. leaves are on level 1
//  2. a left child is on a level lower than its parent
//  3. a right child is on the same level as its parent or on a lower one
//  4. a right grandchild is on a level lower than its grandparent
//  5. every node on a level greater than 1 has two children
//
// A right child on the same level as its parent is called a horizontal link.
// Skew removes left horizontal links, split removes two consecutive right
// horizontal links.
//
// arena.Nil takes the role of the sentinel node: it is on level 0 and ends
// every path. All link updates go through setLeft and setRight, which keep
// parent links in sync.

func (m *Map[K, V]) level(i arena.Index) int32 {
	if i == arena.Nil {
		return 0
	}
	return m.node(i).level
}

func (m *Map[K, V]) setLeft(p, c arena.Index) {
	m.node(p).left = c
	if c != arena.Nil {
		m.node(c).parent = p
	}
}

func (m *Map[K, V]) setRight(p, c arena.Index) {
	m.node(p).right = c
	if c != arena.Nil {
		m.node(c).parent = p
	}
}

// skew rotates t right if it has a left horizontal link and returns the new
// subtree root. The new root inherits t's parent link.
func (m *Map[K, V]) skew(t arena.Index) arena.Index {
	if t == arena.Nil {
		return t
	}
	tn := m.node(t)
	l := tn.left
	if l == arena.Nil || m.node(l).level != tn.level {
		return t
	}
	ln := m.node(l)
	ln.parent = tn.parent
	m.setLeft(t, ln.right)
	m.setRight(l, t)
	return l
}

// split rotates t left if it starts two consecutive right horizontal links,
// promoting the middle node one level up. It returns the new subtree root,
// which inherits t's parent link.
func (m *Map[K, V]) split(t arena.Index) arena.Index {
	if t == arena.Nil {
		return t
	}
	tn := m.node(t)
	r := tn.right
	if r == arena.Nil {
		return t
	}
	rn := m.node(r)
	if m.level(rn.right) != tn.level {
		return t
	}
	rn.parent = tn.parent
	m.setRight(t, rn.left)
	m.setLeft(r, t)
	rn.level++
	return r
}

// insert adds key to the subtree rooted at t, whose parent is parent.
//
// It returns the new subtree root, the node holding key and whether that
// node has been created. On error the subtree is unchanged.
func (m *Map[K, V]) insert(t, parent arena.Index, key K, value V) (root, at arena.Index, created bool, err error) {
	if t == arena.Nil {
		i, err := m.store.Acquire(node[K, V]{
			key:    key,
			value:  value,
			level:  1,
			parent: parent,
		})
		if err != nil {
			return t, arena.Nil, false, err
		}
		return i, i, true, nil
	}
	tn := m.node(t)
	c := m.cfg.Compare(key, tn.key)
	switch {
	case c < 0:
		var l arena.Index
		if l, at, created, err = m.insert(tn.left, t, key, value); err != nil {
			return t, arena.Nil, false, err
		}
		m.setLeft(t, l)
	case c > 0:
		var r arena.Index
		if r, at, created, err = m.insert(tn.right, t, key, value); err != nil {
			return t, arena.Nil, false, err
		}
		m.setRight(t, r)
	default:
		return t, t, false, nil
	}
	if !created {
		return t, at, false, nil
	}
	t = m.skew(t)
	t = m.split(t)
	return t, at, true, nil
}

// erase removes key from the subtree rooted at t and returns the new subtree
// root and whether key has been found.
func (m *Map[K, V]) erase(t arena.Index, key K) (arena.Index, bool) {
	if t == arena.Nil {
		return t, false
	}
	tn := m.node(t)
	c := m.cfg.Compare(key, tn.key)
	switch {
	case c < 0:
		l, found := m.erase(tn.left, key)
		if !found {
			return t, false
		}
		m.setLeft(t, l)
	case c > 0:
		r, found := m.erase(tn.right, key)
		if !found {
			return t, false
		}
		m.setRight(t, r)
	default:
		return m.unlink(t), true
	}
	return m.rebalance(t), true
}

// eraseNode removes node t, which has to be part of the tree, without
// comparing keys. It walks up the parent links, rebalancing every ancestor,
// and returns the new root.
func (m *Map[K, V]) eraseNode(t arena.Index) arena.Index {
	p := m.node(t).parent
	isLeft := p != arena.Nil && m.node(p).left == t
	sub := m.unlink(t)
	for p != arena.Nil {
		if isLeft {
			m.setLeft(p, sub)
		} else {
			m.setRight(p, sub)
		}
		gp := m.node(p).parent
		isLeft = gp != arena.Nil && m.node(gp).left == p
		sub = m.rebalance(p)
		p = gp
	}
	return sub
}

// unlink removes node t from the tree, releases it and returns the subtree
// which takes its place.
//
// A node with two children is replaced by its in-order successor node. The
// successor is relinked, not copied, so no key/value pair changes its node.
func (m *Map[K, V]) unlink(t arena.Index) arena.Index {
	tn := m.node(t)
	parent := tn.parent
	if tn.left == arena.Nil || tn.right == arena.Nil {
		child := tn.right
		if child == arena.Nil {
			child = tn.left
		}
		if child != arena.Nil {
			m.node(child).parent = parent
		}
		m.store.Release(t)
		return child
	}
	var succ arena.Index
	right := m.detachMin(tn.right, &succ)
	assert(succ != arena.Nil, "unlink: successor not found")
	sn := m.node(succ)
	sn.level = tn.level
	sn.parent = parent
	m.setLeft(succ, tn.left)
	m.setRight(succ, right)
	m.store.Release(t)
	return m.rebalance(succ)
}

// detachMin cuts the leftmost node out of the subtree rooted at t, stores
// it in out and returns the rebalanced remainder. The detached node keeps
// its slot.
func (m *Map[K, V]) detachMin(t arena.Index, out *arena.Index) arena.Index {
	tn := m.node(t)
	if tn.left == arena.Nil {
		*out = t
		r := tn.right
		if r != arena.Nil {
			m.node(r).parent = tn.parent
		}
		tn.right = arena.Nil
		tn.parent = arena.Nil
		return r
	}
	l := m.detachMin(tn.left, out)
	m.setLeft(t, l)
	return m.rebalance(t)
}

// rebalance restores the AA rules at t after a removal below t and returns
// the new subtree root.
func (m *Map[K, V]) rebalance(t arena.Index) arena.Index {
	tn := m.node(t)
	should := min(m.level(tn.left), m.level(tn.right)) + 1
	if should < tn.level {
		tn.level = should
		if r := tn.right; should < m.level(r) {
			m.node(r).level = should
		}
	}
	t = m.skew(t)
	m.setRight(t, m.skew(m.node(t).right))
	if r := m.node(t).right; r != arena.Nil {
		m.setRight(r, m.skew(m.node(r).right))
	}
	t = m.split(t)
	m.setRight(t, m.split(m.node(t).right))
	return t
}

// --- Lookup ----------------------------------------------------------------

func (m *Map[K, V]) find(key K) arena.Index {
	t := m.root
	for t != arena.Nil {
		tn := m.node(t)
		c := m.cfg.Compare(key, tn.key)
		switch {
		case c < 0:
			t = tn.left
		case c > 0:
			t = tn.right
		default:
			return t
		}
	}
	return arena.Nil
}

func (m *Map[K, V]) lowerBound(key K) arena.Index {
	best := arena.Nil
	t := m.root
	for t != arena.Nil {
		tn := m.node(t)
		if m.cfg.Compare(tn.key, key) >= 0 {
			best = t
			t = tn.left
		} else {
			t = tn.right
		}
	}
	return best
}

func (m *Map[K, V]) upperBound(key K) arena.Index {
	best := arena.Nil
	t := m.root
	for t != arena.Nil {
		tn := m.node(t)
		if m.cfg.Compare(tn.key, key) > 0 {
			best = t
			t = tn.left
		} else {
			t = tn.right
		}
	}
	return best
}

// --- Traversal -------------------------------------------------------------

func (m *Map[K, V]) first() arena.Index {
	return m.leftmost(m.root)
}

func (m *Map[K, V]) last() arena.Index {
	return m.rightmost(m.root)
}

func (m *Map[K, V]) leftmost(t arena.Index) arena.Index {
	if t == arena.Nil {
		return t
	}
	for l := m.node(t).left; l != arena.Nil; l = m.node(t).left {
		t = l
	}
	return t
}

func (m *Map[K, V]) rightmost(t arena.Index) arena.Index {
	if t == arena.Nil {
		return t
	}
	for r := m.node(t).right; r != arena.Nil; r = m.node(t).right {
		t = r
	}
	return t
}

// successor returns the in-order successor of node i, or Nil.
func (m *Map[K, V]) successor(i arena.Index) arena.Index {
	if r := m.node(i).right; r != arena.Nil {
		return m.leftmost(r)
	}
	for {
		p := m.node(i).parent
		if p == arena.Nil || m.node(p).left == i {
			return p
		}
		i = p
	}
}

// predecessor returns the in-order predecessor of node i, or Nil.
func (m *Map[K, V]) predecessor(i arena.Index) arena.Index {
	if l := m.node(i).left; l != arena.Nil {
		return m.rightmost(l)
	}
	for {
		p := m.node(i).parent
		if p == arena.Nil || m.node(p).right == i {
			return p
		}
		i = p
	}
}

func (m *Map[K, V]) height(t arena.Index) int {
	if t == arena.Nil {
		return 0
	}
	tn := m.node(t)
	return 1 + max(m.height(tn.left), m.height(tn.right))
}
