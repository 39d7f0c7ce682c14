package hk

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/guiguan/caster"
	"github.com/npillmayer/hk/btree"
)

// eps is the numerical tolerance below which two opinions count as equal for
// cluster detection.
const eps = 1e-5

// convergenceThreshold is the accumulated-change bound below which a sweep
// counts as converged.
const convergenceThreshold = 1e-4

// Policy selects how opinion updates are sequenced within one sweep.
type Policy int

const (
	// Synchronous computes every new opinion from the prior sweep's
	// snapshot before applying any of them.
	Synchronous Policy = iota
	// Sequential applies each agent's update immediately, so later agents
	// in the same sweep see partially updated state.
	Sequential
)

func (p Policy) String() string {
	switch p {
	case Synchronous:
		return "synchronous"
	case Sequential:
		return "sequential"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy parses a policy name as used on the command line.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "synchronous", "sync":
		return Synchronous, nil
	case "sequential", "seq":
		return Sequential, nil
	}
	return 0, fmt.Errorf("%w: unknown update policy %q", ErrInvalidConfig, s)
}

// Agent is one simulated individual: its current opinion and the half-width
// of the interval of opinions it is willing to listen to.
type Agent struct {
	Opinion    float64
	Confidence float64
}

// Config configures a model realization.
type Config struct {
	// N is the number of interacting agents.
	N int
	// MinConfidence and MaxConfidence bound the uniformly distributed
	// per-agent confidence radii.
	MinConfidence float64
	MaxConfidence float64
	// Seed seeds the model's PCG random number generator.
	Seed uint64
	// Policy selects the update sequencing within a sweep.
	Policy Policy
	// TreeOrder is the degree bound of the opinion tree; zero selects the
	// tree package default.
	TreeOrder int
}

func (cfg Config) validate() error {
	if cfg.N <= 0 {
		return fmt.Errorf("%w: need at least one agent", ErrInvalidConfig)
	}
	if cfg.MinConfidence < 0 || cfg.MaxConfidence < cfg.MinConfidence {
		return fmt.Errorf("%w: confidence bounds [%v, %v] invalid",
			ErrInvalidConfig, cfg.MinConfidence, cfg.MaxConfidence)
	}
	if cfg.Policy != Synchronous && cfg.Policy != Sequential {
		return fmt.Errorf("%w: unknown update policy %v", ErrInvalidConfig, cfg.Policy)
	}
	return nil
}

// Model is one realization of the Hegselmann-Krause model.
//
// A Model must be created with New and is not safe for concurrent use; one
// sweep completes fully before the next is issued.
type Model struct {
	cfg    Config
	agents []Agent
	// opinions is the multiset of current opinions, keyed by exact value
	opinions          *btree.Tree
	accumulatedChange float64
	sweeps            int
	rng               *rand.Rand
	cast              *caster.Caster // broadcasts SweepEvent after every sweep
}

// New creates a model with validated configuration and random initial state,
// ready for a fresh simulation.
func New(cfg Config) (*Model, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	m := &Model{
		cfg:  cfg,
		rng:  rand.New(rand.NewPCG(cfg.Seed, 0)),
		cast: caster.New(nil),
	}
	if err := m.Reset(); err != nil {
		return nil, err
	}
	return m, nil
}

// Close shuts down the model's event broadcaster. Pending subscriber
// channels are closed.
func (m *Model) Close() {
	m.cast.Close()
}

// Reset initializes the agents with fresh random opinions and confidences
// and rebuilds the opinion tree. Afterwards the model is ready for a new
// simulation run; the random number stream continues, so consecutive resets
// produce independent samples.
func (m *Model) Reset() error {
	m.agents = make([]Agent, m.cfg.N)
	for i := range m.agents {
		m.agents[i] = Agent{
			Opinion:    m.rng.Float64(),
			Confidence: scale(m.rng.Float64(), m.cfg.MinConfidence, m.cfg.MaxConfidence),
		}
	}
	tree, err := btree.New(btree.Config{Order: m.cfg.TreeOrder})
	if err != nil {
		return err
	}
	for _, a := range m.agents {
		if err := tree.Insert(a.Opinion); err != nil {
			return err
		}
	}
	if tree.Size() != m.cfg.N {
		return fmt.Errorf("%w: tree holds %d opinions for %d agents",
			ErrInconsistentState, tree.Size(), m.cfg.N)
	}
	m.opinions = tree
	m.accumulatedChange = 0
	m.sweeps = 0
	return nil
}

// scale maps a uniform [0,1) random number to uniform [low, high).
func scale(x, low, high float64) float64 {
	return x*(high-low) + low
}

// N returns the number of agents.
func (m *Model) N() int {
	return m.cfg.N
}

// Policy returns the configured update sequencing policy.
func (m *Model) Policy() Policy {
	return m.cfg.Policy
}

// Agents returns a copy of the current agent population.
func (m *Model) Agents() []Agent {
	return append([]Agent(nil), m.agents...)
}

// Opinions exposes the opinion multiset for inspection. The returned tree is
// owned by the model and must not be mutated.
func (m *Model) Opinions() *btree.Tree {
	return m.opinions
}

// AccumulatedChange returns the total absolute opinion change of the last
// sweep.
func (m *Model) AccumulatedChange() float64 {
	return m.accumulatedChange
}

// Sweeps returns the number of sweeps performed since the last Reset.
func (m *Model) Sweeps() int {
	return m.sweeps
}

// Converged reports whether the last sweep changed opinions by less than the
// convergence threshold. A freshly reset model is not converged.
func (m *Model) Converged() bool {
	return m.sweeps > 0 && m.accumulatedChange < convergenceThreshold
}

// Equal compares the agent populations of two models up to numerical
// tolerance. Used by tests to compare update algorithms.
func (m *Model) Equal(other *Model) bool {
	if len(m.agents) != len(other.agents) {
		return false
	}
	for i, a := range m.agents {
		b := other.agents[i]
		if abs(a.Opinion-b.Opinion) >= eps || abs(a.Confidence-b.Confidence) >= eps {
			return false
		}
	}
	return true
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
