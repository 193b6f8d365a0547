// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package rstdp implements synaptic resource based spike-timing-dependent
plasticity (STDP) for spiking populations, driven step by step by spike
messages and an optional dopamine signal.

Each neuron accumulates "free" synaptic resource, and each synapse keeps its
own synaptic resource value, from which the effective weight is derived via a
saturating function bounded by [WMin, WMax):

	Wt = WMin + (WMax - WMin) * r / ((WMax - WMin) + r),  r = max(SynRes, 0)

Learning runs once per step for each population, in a fixed order
(see PlasticityStep):

  - ProcessSpikingNeurons advances the inter-spike-interval (ISI) state of each
    neuron that spiked, and applies Hebbian resource updates to the synapses
    that contributed to the spike.

  - DopaminePlasticity applies reward-modulated resource changes to all
    neurons with a non-zero DA value, and updates their Stability.

  - RenormalizeResource distributes free resource of neurons that have left
    their ISI period across all of their incoming synapses, and recomputes
    the weights.

Populations and Projections are connected by uuid identifiers, and
Projections store synapses in a flat arena (Syns) addressed by int32 handles,
with index arrays for access by receiving and by sending neuron.
Different synapse representations participate in learning through the
WeightUpdater hooks registered in WeightUpdaters.
*/
package rstdp
