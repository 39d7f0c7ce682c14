package btree

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func newTestTree(t *testing.T, order int) *Tree {
	t.Helper()
	tree, err := New(Config{Order: order})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tree
}

func mustInsert(t *testing.T, tree *Tree, keys ...float64) {
	t.Helper()
	for _, k := range keys {
		if err := tree.Insert(k); err != nil {
			t.Fatalf("Insert(%v) failed: %v", k, err)
		}
	}
}

func collectEntries(tree *Tree) (keys []float64, mults []int) {
	tree.ForEachEntry(func(key float64, mult int) bool {
		keys = append(keys, key)
		mults = append(mults, mult)
		return true
	})
	return keys, mults
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{Order: 1})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewAppliesDefaultOrder(t *testing.T) {
	tree := newTestTree(t, 0)
	if tree.Config().Order != DefaultOrder {
		t.Fatalf("expected default order %d, got %d", DefaultOrder, tree.Config().Order)
	}
}

func TestCheckEmptyTree(t *testing.T) {
	tree := newTestTree(t, 2)
	if err := tree.Check(); err != nil {
		t.Fatalf("expected empty tree to be valid, got %v", err)
	}
	if tree.Size() != 0 || tree.Len() != 0 || tree.Height() != 0 {
		t.Fatalf("unexpected empty tree state size=%d len=%d height=%d",
			tree.Size(), tree.Len(), tree.Height())
	}
}

func TestInsertRejectsNonFiniteKeys(t *testing.T) {
	tree := newTestTree(t, 2)
	for _, k := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := tree.Insert(k); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("Insert(%v): expected ErrInvalidKey, got %v", k, err)
		}
	}
	if tree.Size() != 0 {
		t.Fatalf("rejected insert must not change the tree, size=%d", tree.Size())
	}
}

func TestInsertOrderedTraversal(t *testing.T) {
	tree := newTestTree(t, 2)
	mustInsert(t, tree, 5, 3, 6, 1, 4, 8, 7, 9)
	if err := tree.Check(); err != nil {
		t.Fatalf("invariant violation: %v", err)
	}
	keys, mults := collectEntries(tree)
	want := []float64{1, 3, 4, 5, 6, 7, 8, 9}
	if len(keys) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(keys))
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("entry %d: expected key %v, got %v", i, k, keys[i])
		}
		if mults[i] != 1 {
			t.Errorf("entry %d: expected multiplicity 1, got %d", i, mults[i])
		}
	}
	if tree.Size() != 8 || tree.Len() != 8 {
		t.Fatalf("unexpected counters size=%d len=%d", tree.Size(), tree.Len())
	}
}

func TestRangeAggregateMidInterval(t *testing.T) {
	tree := newTestTree(t, 2)
	mustInsert(t, tree, 5, 3, 6, 1, 4, 8, 7, 9)
	sum, count, err := tree.RangeAggregate(3, 7)
	if err != nil {
		t.Fatalf("RangeAggregate failed: %v", err)
	}
	if sum != 25 || count != 5 {
		t.Fatalf("expected (25, 5), got (%v, %d)", sum, count)
	}
}

func TestRangeAggregateLowBoundary(t *testing.T) {
	tree := newTestTree(t, 2)
	mustInsert(t, tree, 5, 3, 6, 1, 4, 8, 7, 9, 0)
	if err := tree.Check(); err != nil {
		t.Fatalf("invariant violation: %v", err)
	}
	sum, count, err := tree.RangeAggregate(0, 1)
	if err != nil {
		t.Fatalf("RangeAggregate failed: %v", err)
	}
	if sum != 1 || count != 2 {
		t.Fatalf("expected (1, 2), got (%v, %d)", sum, count)
	}
}

func TestInsertDuplicateBumpsMultiplicity(t *testing.T) {
	tree := newTestTree(t, 2)
	mustInsert(t, tree, 5, 3, 6, 1, 4, 8, 7, 9)
	sizeBefore := tree.Size()
	mustInsert(t, tree, 5)
	if tree.Size() != sizeBefore+1 {
		t.Fatalf("expected size %d, got %d", sizeBefore+1, tree.Size())
	}
	keys, mults := collectEntries(tree)
	fives := 0
	for i, k := range keys {
		if k == 5 {
			fives++
			if mults[i] != 2 {
				t.Fatalf("expected multiplicity 2 for key 5, got %d", mults[i])
			}
		}
	}
	if fives != 1 {
		t.Fatalf("expected exactly one entry for key 5, got %d", fives)
	}
	sum, count, err := tree.RangeAggregate(5, 5)
	if err != nil {
		t.Fatalf("RangeAggregate failed: %v", err)
	}
	if sum != 10 || count != 2 {
		t.Fatalf("expected (10, 2), got (%v, %d)", sum, count)
	}
}

func TestRemoveStepsThroughMultiplicity(t *testing.T) {
	tree := newTestTree(t, 2)
	mustInsert(t, tree, 5, 3, 6, 1, 4, 8, 7, 9, 5)
	if err := tree.Remove(5); err != nil {
		t.Fatalf("first Remove(5) failed: %v", err)
	}
	if got := tree.Multiplicity(5); got != 1 {
		t.Fatalf("expected multiplicity 1 after first removal, got %d", got)
	}
	if err := tree.Remove(5); err != nil {
		t.Fatalf("second Remove(5) failed: %v", err)
	}
	if got := tree.Multiplicity(5); got != 0 {
		t.Fatalf("expected key 5 gone after second removal, got multiplicity %d", got)
	}
	if err := tree.Remove(5); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("third Remove(5): expected ErrKeyNotFound, got %v", err)
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("invariant violation: %v", err)
	}
}

func TestRemoveAbsentKeyLeavesTreeUnchanged(t *testing.T) {
	tree := newTestTree(t, 2)
	mustInsert(t, tree, 1, 2, 3)
	if err := tree.Remove(4); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if tree.Size() != 3 {
		t.Fatalf("failed removal must not change size, got %d", tree.Size())
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("invariant violation: %v", err)
	}
}

func TestRangeAggregateRejectsInvertedBounds(t *testing.T) {
	tree := newTestTree(t, 2)
	mustInsert(t, tree, 5, 3, 6, 1, 4, 8, 7, 9)
	_, _, err := tree.RangeAggregate(10, 5)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	keys, _ := collectEntries(tree)
	if len(keys) != 8 || tree.Size() != 8 {
		t.Fatalf("rejected query must not change the tree")
	}
}

func TestRangeAggregateRejectsNonFiniteBounds(t *testing.T) {
	tree := newTestTree(t, 2)
	mustInsert(t, tree, 1, 2, 3)
	if _, _, err := tree.RangeAggregate(math.Inf(-1), 2); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for -Inf bound, got %v", err)
	}
	if _, _, err := tree.RangeAggregate(1, math.NaN()); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for NaN bound, got %v", err)
	}
}

func TestRangeAggregateEmptyMatch(t *testing.T) {
	tree := newTestTree(t, 2)
	mustInsert(t, tree, 1, 2, 3)
	sum, count, err := tree.RangeAggregate(10, 20)
	if err != nil {
		t.Fatalf("RangeAggregate failed: %v", err)
	}
	if sum != 0 || count != 0 {
		t.Fatalf("expected (0, 0) for empty match, got (%v, %d)", sum, count)
	}
}

func TestHeightGrowsAndShrinks(t *testing.T) {
	tree := newTestTree(t, 2)
	for i := 0; i < 64; i++ {
		mustInsert(t, tree, float64(i))
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("invariant violation after growth: %v", err)
	}
	if tree.Height() < 3 {
		t.Fatalf("expected tree to have grown, height=%d", tree.Height())
	}
	for i := 0; i < 64; i++ {
		if err := tree.Remove(float64(i)); err != nil {
			t.Fatalf("Remove(%d) failed: %v", i, err)
		}
		if err := tree.Check(); err != nil {
			t.Fatalf("invariant violation after Remove(%d): %v", i, err)
		}
	}
	if !tree.IsEmpty() || tree.Height() != 0 {
		t.Fatalf("expected empty tree, size=%d height=%d", tree.Size(), tree.Height())
	}
}

func dotDump(tree *Tree) string {
	var buf strings.Builder
	tree.Dot(&buf)
	return buf.String()
}

func TestRoundTripLeavesStructureUnchanged(t *testing.T) {
	tree := newTestTree(t, 4)
	mustInsert(t, tree, 5, 3, 6, 1, 4)
	before := dotDump(tree)
	// 2 lands in the root leaf without triggering a split
	mustInsert(t, tree, 2)
	if err := tree.Remove(2); err != nil {
		t.Fatalf("Remove(2) failed: %v", err)
	}
	if after := dotDump(tree); after != before {
		t.Fatalf("round trip changed structure:\nbefore:\n%safter:\n%s", before, after)
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("invariant violation: %v", err)
	}
}

func TestMinMax(t *testing.T) {
	tree := newTestTree(t, 2)
	if _, ok := tree.Min(); ok {
		t.Fatalf("expected no min on empty tree")
	}
	mustInsert(t, tree, 5, 3, 6, 1, 4, 8, 7, 9)
	if lo, ok := tree.Min(); !ok || lo != 1 {
		t.Fatalf("expected min 1, got %v (%v)", lo, ok)
	}
	if hi, ok := tree.Max(); !ok || hi != 9 {
		t.Fatalf("expected max 9, got %v (%v)", hi, ok)
	}
}
