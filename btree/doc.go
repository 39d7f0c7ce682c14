/*
Package btree provides a balanced multiway search tree over float64 keys with
per-key multiplicity counters.

The package is intentionally not a generic map/set container. It is
specialized for maintaining a multiset of scalar opinion values: many agents
may share the exact same opinion, and storing a counter per distinct key lets
range queries collapse whole clusters of identical values into a single
visited entry. This is the dominant speedup late in a bounded-confidence
simulation, when agents converge onto a few opinion values.

Current status:
  - classic B-tree node layout (entries in internal nodes, k entries /
    k+1 children, all leaves at equal depth),
  - insert with multiplicity bump on exact match and median-promotion splits,
  - remove with multiplicity decrement, predecessor replacement and
    borrow/merge rebalancing,
  - pruned closed-interval aggregation of (sum, count),
  - strict structural invariant checker for tests,
  - Graphviz DOT dump for debugging.

All operations are synchronous and single-threaded; the tree is exclusively
owned by its driving loop and holds no references to anything but its own
nodes.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package btree

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
