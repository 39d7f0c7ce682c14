package btree

import "sort"

// entry is one distinct opinion value together with the number of agents
// currently holding it. Multiplicity is always positive; an entry whose
// multiplicity would drop to zero is removed structurally instead.
type entry struct {
	key  float64
	mult int
}

// node is a B-tree node. Leaves have nil children; internal nodes hold
// exactly len(entries)+1 children. Entries are strictly increasing by key,
// and all keys under children[i] lie strictly between entries[i-1].key and
// entries[i].key (open at the node boundary).
type node struct {
	entries  []entry
	children []*node
}

func (n *node) isLeaf() bool { return len(n.children) == 0 }

// find binary-searches for key among the node's entries. It returns the
// index of the matching entry and true, or the child slot where the search
// must continue (equally the insertion position) and false.
func (n *node) find(key float64) (int, bool) {
	i := sort.Search(len(n.entries), func(i int) bool {
		return n.entries[i].key >= key
	})
	if i < len(n.entries) && n.entries[i].key == key {
		return i, true
	}
	return i, false
}

// insertAt inserts values into a slice at idx and returns the grown slice.
func insertAt[T any](src []T, idx int, values ...T) []T {
	assert(idx >= 0 && idx <= len(src), "insertAt index out of range")
	if len(values) == 0 {
		return src
	}
	out := make([]T, 0, len(src)+len(values))
	out = append(out, src[:idx]...)
	out = append(out, values...)
	out = append(out, src[idx:]...)
	return out
}

// removeAt removes the element at idx from a slice in place.
func removeAt[T any](src []T, idx int) []T {
	assert(idx >= 0 && idx < len(src), "removeAt index out of range")
	return append(src[:idx], src[idx+1:]...)
}
