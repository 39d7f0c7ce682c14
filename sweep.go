package hk

import "fmt"

// SweepEvent is broadcast to subscribers after every completed sweep.
type SweepEvent struct {
	// Sweep is the 1-based sweep counter since the last Reset.
	Sweep int
	// Change is the accumulated absolute opinion change of the sweep.
	Change float64
}

// Events subscribes to per-sweep progress events. The returned cancel
// function must be called when the subscriber is done; the channel is closed
// when the model is closed.
func (m *Model) Events() (<-chan interface{}, func()) {
	ch, _ := m.cast.Sub(nil, 1)
	return ch, func() { m.cast.Unsub(ch) }
}

// Sweep updates every agent once, using the tree-based algorithm.
func (m *Model) Sweep() error {
	return m.SweepTree()
}

// SweepNaive updates every agent by linearly scanning all other agents.
//
// The naive sweep is strictly synchronous: all new opinions are computed
// from the prior sweep's state. It serves as the reference implementation
// for the tree sweep and as the baseline in benchmarks.
func (m *Model) SweepNaive() error {
	fresh := make([]float64, len(m.agents))
	for i, a := range m.agents {
		var sum float64
		var count int
		for _, b := range m.agents {
			if abs(a.Opinion-b.Opinion) < a.Confidence {
				sum += b.Opinion
				count++
			}
		}
		if count == 0 {
			// nobody in range, not even the agent itself (confidence 0):
			// keep the current opinion
			fresh[i] = a.Opinion
			continue
		}
		fresh[i] = sum / float64(count)
	}
	return m.applySweep(fresh)
}

// SweepTree updates every agent using a confidence-interval aggregation over
// the opinion tree.
func (m *Model) SweepTree() error {
	switch m.cfg.Policy {
	case Sequential:
		return m.sweepTreeSequential()
	default:
		return m.sweepTreeSynchronous()
	}
}

func (m *Model) sweepTreeSynchronous() error {
	fresh := make([]float64, len(m.agents))
	for i, a := range m.agents {
		next, err := m.treeOpinion(a)
		if err != nil {
			return err
		}
		fresh[i] = next
	}
	return m.applySweep(fresh)
}

func (m *Model) sweepTreeSequential() error {
	m.accumulatedChange = 0
	for i := range m.agents {
		next, err := m.treeOpinion(m.agents[i])
		if err != nil {
			return err
		}
		if err := m.updateEntry(m.agents[i].Opinion, next); err != nil {
			return err
		}
		m.accumulatedChange += abs(m.agents[i].Opinion - next)
		m.agents[i].Opinion = next
	}
	m.finishSweep()
	return nil
}

// treeOpinion computes an agent's next opinion as the average over the
// closed confidence interval around its current opinion.
func (m *Model) treeOpinion(a Agent) (float64, error) {
	sum, count, err := m.opinions.RangeAggregate(a.Opinion-a.Confidence, a.Opinion+a.Confidence)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		// cannot normally happen: the agent's own opinion is in the tree,
		// so an empty interval means lost bookkeeping; keep the opinion
		// rather than divide by zero
		return a.Opinion, nil
	}
	return sum / float64(count), nil
}

// applySweep installs precomputed opinions, maintaining the opinion tree and
// the accumulated-change measure.
func (m *Model) applySweep(fresh []float64) error {
	assert(len(fresh) == len(m.agents), "applySweep: opinion count mismatch")
	m.accumulatedChange = 0
	for i, next := range fresh {
		old := m.agents[i].Opinion
		if err := m.updateEntry(old, next); err != nil {
			return err
		}
		m.accumulatedChange += abs(old - next)
		m.agents[i].Opinion = next
	}
	m.finishSweep()
	return nil
}

// updateEntry moves one opinion occurrence in the tree. Opinions that did
// not change are skipped; the float comparison is deliberate, a false
// negative only costs a redundant remove/insert pair and late in a
// simulation most opinions are bit-identical to their cluster's value.
func (m *Model) updateEntry(old, next float64) error {
	if old == next {
		return nil
	}
	if err := m.opinions.Remove(old); err != nil {
		return fmt.Errorf("%w: removed opinion was not in the tree: %v", ErrInconsistentState, err)
	}
	return m.opinions.Insert(next)
}

func (m *Model) finishSweep() {
	m.sweeps++
	m.cast.TryPub(SweepEvent{Sweep: m.sweeps, Change: m.accumulatedChange})
}

// Run sweeps until convergence or until maxSweeps is reached (0 means no
// bound). It returns the number of sweeps performed.
func (m *Model) Run(maxSweeps int) (int, error) {
	start := m.sweeps
	for {
		if err := m.Sweep(); err != nil {
			return m.sweeps - start, err
		}
		if m.Converged() {
			return m.sweeps - start, nil
		}
		if maxSweeps > 0 && m.sweeps-start >= maxSweeps {
			T().Infof("hk: no convergence after %d sweeps", maxSweeps)
			return m.sweeps - start, nil
		}
	}
}
