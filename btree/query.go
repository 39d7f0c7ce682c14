package btree

import "fmt"

// RangeAggregate returns the pair (Σ key·multiplicity, Σ multiplicity) over
// all entries with lower <= key <= upper.
//
// The traversal is pruned by the order invariant: a child preceding an entry
// is visited only when that entry's key exceeds lower, and a child following
// an entry only when its key is below upper. Work is O(log n + m) with m the
// number of distinct keys intersecting the interval, so clusters of agents
// sharing one opinion cost a single entry visit.
//
// RangeAggregate fails with ErrInvalidRange for inverted (lower > upper) or
// non-finite bounds. An empty match yields (0, 0) without error; callers
// must decide on a fallback themselves.
func (t *Tree) RangeAggregate(lower, upper float64) (sum float64, count int, err error) {
	if t == nil {
		return 0, 0, fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if !isFinite(lower) || !isFinite(upper) {
		return 0, 0, fmt.Errorf("%w: non-finite bound [%v, %v]", ErrInvalidRange, lower, upper)
	}
	if lower > upper {
		return 0, 0, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, lower, upper)
	}
	if t.root == nil {
		return 0, 0, nil
	}
	sum, count = t.aggregateNode(t.root, lower, upper)
	return sum, count, nil
}

// aggregateNode accumulates (sum, count) over [lower, upper] within subtree n.
func (t *Tree) aggregateNode(n *node, lower, upper float64) (sum float64, count int) {
	assert(n != nil, "aggregateNode called with nil node")
	for i, e := range n.entries {
		// everything under children[i] is < e.key; skip when all < lower
		if !n.isLeaf() && e.key > lower {
			s, c := t.aggregateNode(n.children[i], lower, upper)
			sum += s
			count += c
		}
		if e.key > upper {
			return sum, count
		}
		if e.key >= lower {
			sum += e.key * float64(e.mult)
			count += e.mult
		}
		if e.key == upper {
			// the child following e holds only keys > upper
			return sum, count
		}
	}
	if !n.isLeaf() {
		s, c := t.aggregateNode(n.children[len(n.entries)], lower, upper)
		sum += s
		count += c
	}
	return sum, count
}
