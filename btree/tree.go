package btree

// Tree is a balanced multiway search tree over finite float64 keys, each key
// carrying a multiplicity counter.
//
// A Tree must be created with New. The zero value is not usable.
type Tree struct {
	cfg      Config
	root     *node
	height   int // 0 means empty tree
	size     int // total multiplicity over all entries
	distinct int // number of distinct keys
}

// New creates an empty tree with validated configuration.
func New(cfg Config) (*Tree, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	return &Tree{cfg: cfg}, nil
}

// Config returns a copy of the effective tree configuration.
func (t *Tree) Config() Config {
	return t.cfg
}

// IsEmpty reports whether the tree holds no entries.
func (t *Tree) IsEmpty() bool {
	return t == nil || t.root == nil
}

// Size returns the total multiplicity over all entries, i.e. the number of
// agents currently represented in the multiset.
func (t *Tree) Size() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Len returns the number of distinct keys in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.distinct
}

// Height returns the tree height, where 0 means empty and 1 means a leaf root.
func (t *Tree) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// Min returns the smallest key in the tree, or false for an empty tree.
func (t *Tree) Min() (float64, bool) {
	if t.IsEmpty() {
		return 0, false
	}
	n := t.root
	for !n.isLeaf() {
		n = n.children[0]
	}
	return n.entries[0].key, true
}

// Max returns the largest key in the tree, or false for an empty tree.
func (t *Tree) Max() (float64, bool) {
	if t.IsEmpty() {
		return 0, false
	}
	n := t.root
	for !n.isLeaf() {
		n = n.children[len(n.children)-1]
	}
	return n.entries[len(n.entries)-1].key, true
}

// ForEachEntry walks entries in key order, calling fn with each distinct key
// and its multiplicity.
//
// Iteration stops early if fn returns false.
func (t *Tree) ForEachEntry(fn func(key float64, mult int) bool) {
	if t == nil || t.root == nil || fn == nil {
		return
	}
	t.forEachEntryNode(t.root, fn)
}

func (t *Tree) forEachEntryNode(n *node, fn func(key float64, mult int) bool) bool {
	assert(n != nil, "forEachEntryNode called with nil node")
	if n.isLeaf() {
		for _, e := range n.entries {
			if !fn(e.key, e.mult) {
				return false
			}
		}
		return true
	}
	for i, e := range n.entries {
		if !t.forEachEntryNode(n.children[i], fn) {
			return false
		}
		if !fn(e.key, e.mult) {
			return false
		}
	}
	return t.forEachEntryNode(n.children[len(n.entries)], fn)
}

// Multiplicity returns the multiplicity of key, or 0 if key is not present.
func (t *Tree) Multiplicity(key float64) int {
	if t == nil || t.root == nil {
		return 0
	}
	n := t.root
	for {
		idx, found := n.find(key)
		if found {
			return n.entries[idx].mult
		}
		if n.isLeaf() {
			return 0
		}
		n = n.children[idx]
	}
}
