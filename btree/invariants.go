package btree

import "fmt"

// Check validates structural tree invariants.
//
// This checker is intentionally strict and meant for tests: order and
// separation of keys, uniform leaf depth, occupancy bounds, positive
// multiplicities and cached counter consistency.
func (t *Tree) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if t.root == nil {
		if t.height != 0 || t.size != 0 || t.distinct != 0 {
			return fmt.Errorf("%w: empty tree must have zero height and counters", ErrInvalidConfig)
		}
		return nil
	}
	if t.height <= 0 {
		return fmt.Errorf("%w: non-empty tree must have height > 0", ErrInvalidConfig)
	}
	size, distinct, height, err := t.checkNode(t.root, true, nil, nil)
	if err != nil {
		return err
	}
	if height != t.height {
		return fmt.Errorf("%w: height mismatch (%d != %d)", ErrInvalidConfig, height, t.height)
	}
	if size != t.size {
		return fmt.Errorf("%w: size counter mismatch (%d != %d)", ErrInvalidConfig, size, t.size)
	}
	if distinct != t.distinct {
		return fmt.Errorf("%w: distinct counter mismatch (%d != %d)", ErrInvalidConfig, distinct, t.distinct)
	}
	return nil
}

// checkNode validates subtree n. Keys must lie strictly between lo and hi;
// nil bounds are open.
func (t *Tree) checkNode(n *node, isRoot bool, lo, hi *float64) (size, distinct, height int, err error) {
	if n == nil {
		return 0, 0, 0, fmt.Errorf("%w: nil node", ErrInvalidConfig)
	}
	if len(n.entries) == 0 {
		return 0, 0, 0, fmt.Errorf("%w: node has no entries", ErrInvalidConfig)
	}
	if len(n.entries) > t.cfg.maxEntries() {
		return 0, 0, 0, fmt.Errorf("%w: entry count %d exceeds bound %d",
			ErrInvalidConfig, len(n.entries), t.cfg.maxEntries())
	}
	if !isRoot && len(n.entries) < t.cfg.minEntries() {
		return 0, 0, 0, fmt.Errorf("%w: non-root node deficient (%d < %d)",
			ErrInvalidConfig, len(n.entries), t.cfg.minEntries())
	}
	for i, e := range n.entries {
		if !isFinite(e.key) {
			return 0, 0, 0, fmt.Errorf("%w: non-finite key %v in tree", ErrInvalidConfig, e.key)
		}
		if e.mult < 1 {
			return 0, 0, 0, fmt.Errorf("%w: non-positive multiplicity %d for key %v",
				ErrInvalidConfig, e.mult, e.key)
		}
		if i > 0 && n.entries[i-1].key >= e.key {
			return 0, 0, 0, fmt.Errorf("%w: entries not strictly increasing at %v", ErrInvalidConfig, e.key)
		}
		if lo != nil && e.key <= *lo {
			return 0, 0, 0, fmt.Errorf("%w: key %v violates lower separation bound %v",
				ErrInvalidConfig, e.key, *lo)
		}
		if hi != nil && e.key >= *hi {
			return 0, 0, 0, fmt.Errorf("%w: key %v violates upper separation bound %v",
				ErrInvalidConfig, e.key, *hi)
		}
		size += e.mult
		distinct++
	}
	if n.isLeaf() {
		return size, distinct, 1, nil
	}
	if len(n.children) != len(n.entries)+1 {
		return 0, 0, 0, fmt.Errorf("%w: internal node has %d children for %d entries",
			ErrInvalidConfig, len(n.children), len(n.entries))
	}
	var childHeight int
	for i, child := range n.children {
		clo, chi := lo, hi
		if i > 0 {
			clo = &n.entries[i-1].key
		}
		if i < len(n.entries) {
			chi = &n.entries[i].key
		}
		cSize, cDistinct, cHeight, cErr := t.checkNode(child, false, clo, chi)
		if cErr != nil {
			return 0, 0, 0, cErr
		}
		size += cSize
		distinct += cDistinct
		if i == 0 {
			childHeight = cHeight
		} else if cHeight != childHeight {
			return 0, 0, 0, fmt.Errorf("%w: non-uniform subtree heights", ErrInvalidConfig)
		}
	}
	return size, distinct, childHeight + 1, nil
}
