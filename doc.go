/*
Package hk simulates the Hegselmann-Krause model of bounded-confidence
opinion dynamics.

Every agent holds a scalar opinion and an idiosyncratic confidence radius.
In each sweep an agent averages over all opinions within its confidence
interval and adopts that average as its next opinion. The package offers two
update algorithms:

  - a naive sweep iterating over all agents for every agent (quadratic),
  - a tree sweep answering the confidence-interval query through a balanced
    multiway search tree with per-opinion multiplicity counters
    (see package btree), which collapses clusters of identical opinions
    into single tree entries.

Both sweeps support a synchronous sequencing policy, where every agent sees
the prior sweep's opinions, and the tree sweep additionally a sequential
policy, where updates are applied immediately and later agents see partially
updated state. The two policies yield different trajectories and must not be
conflated; the policy is part of the model configuration.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package hk

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
