// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import "fmt"

// SynapseTypes enumerates the synapse representations that can be
// stored in a Projection. Each type must have a WeightUpdater
// registered in WeightUpdaters.
type SynapseTypes int32 //enums:enum

const (
	// DeltaSynapse is a static delta-pulse synapse: its weight never learns.
	DeltaSynapse SynapseTypes = iota

	// ResourceDeltaSynapse is a delta-pulse synapse that learns with
	// the synaptic resource STDP rule.
	ResourceDeltaSynapse
)

// ResourceSynapse returns true if the given synapse type learns with the
// synaptic resource rule, and can thus be processed by PlasticityStep.
func ResourceSynapse(typ SynapseTypes) bool {
	return typ == ResourceDeltaSynapse
}

// WeightUpdater is the set of hooks by which a synapse representation
// takes part in learning. Representations without specific behavior
// implement all of them as no-ops.
type WeightUpdater interface {

	// InitProjection is called once per step when the projection
	// receives spike messages, before any InitSynapse call.
	InitProjection(pj *Projection, msgs []SpikeMessage, step uint64)

	// InitSynapse is called for a synapse whose presynaptic neuron
	// spiked on the given step.
	InitSynapse(sy *Synapse, step uint64)

	// ModifyWeights is called after all learning passes of a step.
	ModifyWeights(pj *Projection)
}

// WeightUpdaters has the WeightUpdater for each SynapseTypes value.
var WeightUpdaters = map[SynapseTypes]WeightUpdater{
	DeltaSynapse:         StaticUpdater{},
	ResourceDeltaSynapse: ResourceUpdater{},
}

// StaticUpdater is the WeightUpdater for non-learning synapses.
type StaticUpdater struct{}

func (su StaticUpdater) InitProjection(pj *Projection, msgs []SpikeMessage, step uint64) {}
func (su StaticUpdater) InitSynapse(sy *Synapse, step uint64)                            {}
func (su StaticUpdater) ModifyWeights(pj *Projection)                                    {}

// ResourceUpdater is the WeightUpdater for synaptic resource STDP synapses.
type ResourceUpdater struct{}

func (ru ResourceUpdater) InitProjection(pj *Projection, msgs []SpikeMessage, step uint64) {}

// InitSynapse records the presynaptic spike step, which is used to
// decide whether the synapse contributed to a postsynaptic spike.
func (ru ResourceUpdater) InitSynapse(sy *Synapse, step uint64) {
	sy.Rule.LastSpikeStep = step
}

func (ru ResourceUpdater) ModifyWeights(pj *Projection) {}

// Updater returns the WeightUpdater for the projection type,
// or ErrDispatchMismatch.
func (pj *Projection) Updater() (WeightUpdater, error) {
	wu, ok := WeightUpdaters[pj.Type]
	if !ok {
		return nil, fmt.Errorf("projection %q type %v: %w", pj.Name, pj.Type, ErrDispatchMismatch)
	}
	return wu, nil
}

// RecvSpikes processes the spike messages arriving at this projection from
// its sending population on given step: it calls the WeightUpdater hooks
// (InitProjection once, then InitSynapse on every synapse of each spiking
// sender) and returns the resulting synaptic impacts.
// Messages from other senders are ignored.
func (pj *Projection) RecvSpikes(msgs []SpikeMessage, step uint64) ([]SynapticImpact, error) {
	wu, err := pj.Updater()
	if err != nil {
		return nil, err
	}
	wu.InitProjection(pj, msgs, step)
	var imps []SynapticImpact
	for mi := range msgs {
		msg := &msgs[mi]
		if msg.Header.SenderID != pj.SendID {
			continue
		}
		for _, si := range msg.NeuronIndexes {
			if si < 0 || si >= len(pj.SConN) {
				return imps, fmt.Errorf("projection %q sender index %d: %w", pj.Name, si, ErrInvalidSpike)
			}
			st := pj.SConIndexSt[si]
			syns, rcons := pj.SynapsesBySend(si)
			for ci := range syns {
				sy := &syns[ci]
				wu.InitSynapse(sy, step)
				imps = append(imps, SynapticImpact{SynIndex: st + int32(ci), SendIndex: int32(si), RecvIndex: rcons[ci], Value: sy.Wt, Delay: sy.Delay})
			}
		}
	}
	return imps, nil
}
