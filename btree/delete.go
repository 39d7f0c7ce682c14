package btree

import "fmt"

// Remove deletes one occurrence of key from the multiset.
//
// A key held by more than one agent just has its multiplicity decremented.
// The last occurrence is removed structurally: an entry found in an internal
// node is replaced by its in-order predecessor, and deficient nodes on the
// unwind first borrow from an adjacent sibling and merge only when no
// sibling has a spare entry. A root emptied by a merge cascade shrinks the
// tree by one level.
//
// Remove fails with ErrKeyNotFound when key is absent. A failed removal is
// a driver bookkeeping bug (an opinion was never recorded), which is why it
// is reported instead of ignored. The tree is left unchanged on failure.
func (t *Tree) Remove(key float64) error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if !isFinite(key) {
		return fmt.Errorf("%w: %v", ErrInvalidKey, key)
	}
	if t.root == nil {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	removed, found := t.removeRecursive(t.root, key)
	if !found {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	t.size--
	if removed {
		t.distinct--
	}
	if len(t.root.entries) == 0 {
		if t.root.isLeaf() {
			t.root = nil
			t.height = 0
		} else {
			// sole child of a drained root becomes the new root
			t.root = t.root.children[0]
			t.height--
		}
	}
	return nil
}

// removeRecursive removes one occurrence of key from subtree n.
//
// It reports whether an entry was removed structurally (as opposed to a
// multiplicity decrement) and whether key was present at all. No node is
// mutated unless the key was found, keeping failed removals all-or-nothing.
// Child deficiency is repaired on the unwind; the caller must check n itself.
func (t *Tree) removeRecursive(n *node, key float64) (removed, found bool) {
	assert(n != nil, "removeRecursive called with nil node")
	idx, match := n.find(key)
	if match {
		if n.entries[idx].mult > 1 {
			n.entries[idx].mult--
			return false, true
		}
		if n.isLeaf() {
			n.entries = removeAt(n.entries, idx)
			return true, true
		}
		// Replace the doomed entry with its in-order predecessor, the
		// maximum of the left child subtree, then repair that subtree.
		n.entries[idx] = t.removeMax(n.children[idx])
		t.rebalanceChild(n, idx)
		return true, true
	}
	if n.isLeaf() {
		return false, false
	}
	removed, found = t.removeRecursive(n.children[idx], key)
	if removed {
		t.rebalanceChild(n, idx)
	}
	return removed, found
}

// removeMax extracts the maximum entry of subtree n, repairing deficiency on
// the unwind. The entry moves as a whole, multiplicity included.
func (t *Tree) removeMax(n *node) entry {
	assert(n != nil && len(n.entries) > 0, "removeMax called on empty subtree")
	if n.isLeaf() {
		last := len(n.entries) - 1
		e := n.entries[last]
		n.entries = n.entries[:last]
		return e
	}
	slot := len(n.children) - 1
	e := t.removeMax(n.children[slot])
	t.rebalanceChild(n, slot)
	return e
}

// rebalanceChild repairs occupancy for a deficient child at slot. The policy
// order is borrow-left, borrow-right, merge-left, merge-right; borrows
// rotate through the separating parent entry.
func (t *Tree) rebalanceChild(parent *node, slot int) {
	assert(parent != nil, "rebalanceChild called with nil parent")
	assert(slot >= 0 && slot < len(parent.children), "rebalanceChild slot out of range")
	child := parent.children[slot]
	if !t.nodeDeficient(child) {
		return
	}
	spare := t.cfg.minEntries()
	if slot > 0 && len(parent.children[slot-1].entries) > spare {
		left := parent.children[slot-1]
		child.entries = insertAt(child.entries, 0, parent.entries[slot-1])
		parent.entries[slot-1] = left.entries[len(left.entries)-1]
		left.entries = left.entries[:len(left.entries)-1]
		if !left.isLeaf() {
			moved := left.children[len(left.children)-1]
			left.children = left.children[:len(left.children)-1]
			child.children = insertAt(child.children, 0, moved)
		}
		return
	}
	if slot+1 < len(parent.children) && len(parent.children[slot+1].entries) > spare {
		right := parent.children[slot+1]
		child.entries = append(child.entries, parent.entries[slot])
		parent.entries[slot] = right.entries[0]
		right.entries = removeAt(right.entries, 0)
		if !right.isLeaf() {
			moved := right.children[0]
			right.children = removeAt(right.children, 0)
			child.children = append(child.children, moved)
		}
		return
	}
	if slot > 0 {
		t.mergeChildren(parent, slot-1)
	} else {
		t.mergeChildren(parent, slot)
	}
}

// mergeChildren merges the children at slot and slot+1, pulling the
// separating parent entry down into the merged node. The parent loses one
// entry and one child and may become deficient itself.
func (t *Tree) mergeChildren(parent *node, slot int) {
	assert(slot >= 0 && slot+1 < len(parent.children), "mergeChildren slot out of range")
	left, right := parent.children[slot], parent.children[slot+1]
	left.entries = append(left.entries, parent.entries[slot])
	left.entries = append(left.entries, right.entries...)
	left.children = append(left.children, right.children...)
	parent.entries = removeAt(parent.entries, slot)
	parent.children = removeAt(parent.children, slot+1)
}
