package btree

import (
	"fmt"
	"math"
)

const (
	// DefaultOrder is the degree bound B used when a config does not set one.
	// A node is full at 2B-1 entries and deficient below B-1. Larger orders
	// trade more per-node scan work for fewer node visits.
	DefaultOrder = 12
	// minOrder is the smallest degree bound that still allows splitting.
	minOrder = 2
)

// Config configures an opinion multiset tree.
type Config struct {
	// Order is the degree bound B of the tree. Zero selects DefaultOrder.
	Order int
}

func (cfg Config) normalized() Config {
	if cfg.Order == 0 {
		cfg.Order = DefaultOrder
	}
	return cfg
}

func (cfg Config) validate() error {
	cfg = cfg.normalized()
	if cfg.Order < minOrder {
		return fmt.Errorf("%w: order must be >= %d", ErrInvalidConfig, minOrder)
	}
	return nil
}

// maxEntries is the largest legal entry count per node (a node is "full").
func (cfg Config) maxEntries() int {
	return 2*cfg.Order - 1
}

// minEntries is the smallest legal entry count per non-root node.
func (cfg Config) minEntries() int {
	return cfg.Order - 1
}

// isFinite reports whether x is an ordinary float, i.e. neither NaN nor ±Inf.
// Non-finite values have no place in a search tree: NaN breaks the total
// order the node layout depends on.
func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
