package btree

import "fmt"

// Insert records one more occurrence of key in the multiset.
//
// An exact match anywhere in the tree bumps that entry's multiplicity and
// causes no structural change. Otherwise a fresh entry with multiplicity 1 is
// placed into the proper leaf, and overflowing nodes split on the unwind,
// promoting their median entry. A root split grows the tree by one level.
//
// Insert fails with ErrInvalidKey for NaN or ±Inf; the tree is left
// unchanged in that case.
func (t *Tree) Insert(key float64) error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if !isFinite(key) {
		return fmt.Errorf("%w: %v", ErrInvalidKey, key)
	}
	if t.root == nil {
		t.root = &node{entries: []entry{{key: key, mult: 1}}}
		t.height = 1
		t.size = 1
		t.distinct = 1
		return nil
	}
	created := t.insertRecursive(t.root, key)
	if t.nodeOverflow(t.root) {
		median, right := t.splitNode(t.root)
		t.root = &node{
			entries:  []entry{median},
			children: []*node{t.root, right},
		}
		t.height++
	}
	t.size++
	if created {
		t.distinct++
	}
	return nil
}

// insertRecursive inserts one occurrence of key into subtree n.
//
// It reports whether a new entry was created (as opposed to a multiplicity
// bump). The caller must check n for overflow afterwards; child overflow is
// repaired here by splitting on the unwind.
func (t *Tree) insertRecursive(n *node, key float64) (created bool) {
	assert(n != nil, "insertRecursive called with nil node")
	idx, found := n.find(key)
	if found {
		n.entries[idx].mult++
		return false
	}
	if n.isLeaf() {
		n.entries = insertAt(n.entries, idx, entry{key: key, mult: 1})
		return true
	}
	created = t.insertRecursive(n.children[idx], key)
	if t.nodeOverflow(n.children[idx]) {
		median, right := t.splitNode(n.children[idx])
		n.entries = insertAt(n.entries, idx, median)
		n.children = insertAt(n.children, idx+1, right)
	}
	return created
}

func (t *Tree) nodeOverflow(n *node) bool {
	return n != nil && len(n.entries) > t.cfg.maxEntries()
}

func (t *Tree) nodeDeficient(n *node) bool {
	return n != nil && len(n.entries) < t.cfg.minEntries()
}

// splitNode splits an overflowing node around its median entry. The receiver
// keeps the low half, the returned sibling takes the high half, and the
// median is handed to the caller for promotion into the parent.
func (t *Tree) splitNode(n *node) (entry, *node) {
	assert(n != nil, "splitNode called with nil node")
	assert(t.nodeOverflow(n), "splitNode called on non-overflowing node")
	mid := len(n.entries) / 2
	median := n.entries[mid]
	right := &node{
		entries: append([]entry(nil), n.entries[mid+1:]...),
	}
	n.entries = n.entries[:mid:mid]
	if !n.isLeaf() {
		right.children = append([]*node(nil), n.children[mid+1:]...)
		n.children = n.children[:mid+1 : mid+1]
	}
	assert(len(n.entries) >= t.cfg.minEntries() && len(right.entries) >= t.cfg.minEntries(),
		"splitNode violates occupancy bounds")
	return median, right
}
