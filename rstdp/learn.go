// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import (
	"errors"
	"fmt"
	"log"

	"cogentcore.org/core/math32"
)

// PlasticityStep runs synaptic resource learning for one population on
// one step, given its working projections (see FindProjections) and the
// spike message of the population for this step, if any (nil otherwise).
// The passes run in a fixed order, each seeing the results of the previous
// one: ProcessSpikingNeurons, DopaminePlasticity, RenormalizeResource,
// and then the ModifyWeights hook of each projection.
//
// Fatal errors (see IsFatal) abort the step, with the changes made up to
// that point left in place. ErrDegenerateRenorm errors for individual
// neurons are logged and returned after all passes are done.
func PlasticityStep(pop *Population, pjs []*Projection, msg *SpikeMessage, step uint64) error {
	if msg != nil {
		if err := ProcessSpikingNeurons(msg, pjs, pop, step); err != nil {
			return err
		}
	}
	DopaminePlasticity(pjs, pop, step)
	rerr := RenormalizeResource(pjs, pop, step)
	for _, pj := range pjs {
		wu, err := pj.Updater()
		if err != nil {
			return err
		}
		wu.ModifyWeights(pj)
	}
	if rerr != nil {
		log.Printf("PlasticityStep: population %q step %d: %v\n", pop.Name, step, rerr)
	}
	return rerr
}

// ProcessSpikingNeurons updates the ISI state of each neuron in the spike
// message, and applies the Hebbian resource update to all of its incoming
// synapses in pjs. Each neuron is updated at most once, even if listed
// multiple times in the message.
func ProcessSpikingNeurons(msg *SpikeMessage, pjs []*Projection, pop *Population, step uint64) error {
	if err := msg.Validate(pop); err != nil {
		return err
	}
	done := make(map[int]bool, len(msg.NeuronIndexes))
	var syns []*Synapse
	for _, ni := range msg.NeuronIndexes {
		if done[ni] {
			continue
		}
		done[ni] = true
		syns = ConnectedSynapses(pjs, ni, syns[:0])
		nrn := pop.Neuron(ni)
		status, err := nrn.UpdateISI(step)
		if err != nil {
			return &NeuronError{Population: pop.Name, Neuron: ni, Err: err}
		}
		nrn.LastSpikeStep = step
		SpikeUpdate(nrn, status, syns, step)
	}
	return nil
}

// SpikeUpdate applies the resource update for one spiking neuron with
// given (already updated) ISI status to its incoming synapses.
func SpikeUpdate(nrn *Neuron, status ISIPeriodTypes, syns []*Synapse, step uint64) {
	if status == PeriodStarted {
		nrn.Stability -= nrn.StabilityChangeAtISI
	}

	// mark contributing synapses
	nrn.AddThr = 0
	for _, sy := range syns {
		if sy.Wt > 0 {
			nrn.AddThr += sy.Wt
		}
		rl := &sy.Rule
		hadSpike := PointInInterval(step-rl.DopaPlastPeriod, step, rl.LastSpikeStep+uint64(sy.Delay)-1)
		// within a continued period, contribution is only ever added
		if status != PeriodContinued || hadSpike {
			rl.HasContributed = hadSpike
		}
	}
	nrn.AddThr *= nrn.SynSumThrCoef

	if status != PeriodContinued {
		for _, sy := range syns {
			sy.Rule.HadHebbUpdate = false
		}
	}

	if status != IsForced {
		dh := nrn.DH * nrn.StabilityFactor()
		for _, sy := range syns {
			rl := &sy.Rule
			rl.SynRes -= rl.DU
			nrn.FreeSynRes += rl.DU
			if rl.HasContributed && !rl.HadHebbUpdate {
				rl.SynRes += dh
				nrn.FreeSynRes -= dh
				rl.HadHebbUpdate = true
			}
		}
	}
	RecalcWeights(syns)
}

// DopaminePlasticity applies the dopamine signal of each neuron in the
// population to the resource of its contributing synapses, and updates
// the neuron Stability. Dopamine punishment (DA < 0) has no effect on
// forced neurons.
func DopaminePlasticity(pjs []*Projection, pop *Population, step uint64) {
	var syns []*Synapse
	for ni := range pop.Neurons {
		nrn := &pop.Neurons[ni]
		if !(nrn.DA > 0 || (nrn.DA < 0 && nrn.ISIStatus != IsForced)) {
			continue
		}
		syns = ConnectedSynapses(pjs, ni, syns[:0])
		DopamineUpdate(nrn, syns, step)
	}
}

// DopamineUpdate applies the dopamine value of one neuron to given
// incoming synapses, and updates its Stability.
func DopamineUpdate(nrn *Neuron, syns []*Synapse, step uint64) {
	inWindow := step-nrn.LastSpikeStep <= nrn.DopaPlastTime
	dr := nrn.DA * nrn.StabilityFactor()
	for _, sy := range syns {
		if inWindow && sy.Rule.HasContributed {
			sy.Rule.SynRes += dr
			nrn.FreeSynRes -= dr
		}
	}

	if nrn.IsBeingForced || nrn.DA < 0 {
		// reward when forced, or punishment: reduce stability
		nrn.Stability = math32.Max(nrn.Stability-nrn.DA*nrn.StabilityChangeParam, 0)
	} else {
		// reward on own spiking: scaled by how well the period length
		// matches ISIMax, floored at -1
		diff := float32(int64(step) - int64(nrn.FirstISISpike) - int64(nrn.ISIMax))
		rel := float32(0)
		if diff != 0 {
			if nrn.ISIMax > 0 {
				rel = math32.Abs(diff) / float32(nrn.ISIMax)
			} else {
				rel = math32.Inf(1)
			}
		}
		nrn.Stability += nrn.StabilityChangeParam * nrn.DA * math32.Max(2-rel, -1)
	}
	RecalcWeights(syns)
}

// RenormalizeResource distributes the free resource of each neuron that is
// no longer in its ISI period, and whose free resource magnitude is at
// least SynResThr, equally among its incoming synapses in pjs
// (plus the ResDrain share that is lost), and recalculates their weights.
// A neuron with no synapses and no drain can not be renormalized:
// it is skipped and reported in the returned error, and the other
// neurons are still processed.
func RenormalizeResource(pjs []*Projection, pop *Population, step uint64) error {
	var errs []error
	var syns []*Synapse
	for ni := range pop.Neurons {
		nrn := &pop.Neurons[ni]
		if nrn.InISIPeriod(step) {
			continue
		}
		if math32.Abs(nrn.FreeSynRes) < nrn.SynResThr {
			continue
		}
		syns = ConnectedSynapses(pjs, ni, syns[:0])
		if err := RenormalizeNeuron(nrn, syns); err != nil {
			errs = append(errs, &NeuronError{Population: pop.Name, Neuron: ni, Err: err})
		}
	}
	return errors.Join(errs...)
}

// RenormalizeNeuron adds FreeSynRes / (len(syns) + ResDrain) to each
// synapse, sets FreeSynRes to 0, and recalculates the weights.
func RenormalizeNeuron(nrn *Neuron, syns []*Synapse) error {
	div := float32(len(syns)) + nrn.ResDrain
	if div == 0 {
		return fmt.Errorf("free resource %g with no synapses and no drain: %w", nrn.FreeSynRes, ErrDegenerateRenorm)
	}
	add := nrn.FreeSynRes / div
	for _, sy := range syns {
		sy.Rule.SynRes += add
	}
	nrn.FreeSynRes = 0
	RecalcWeights(syns)
	return nil
}
