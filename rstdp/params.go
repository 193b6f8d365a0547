// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import (
	"fmt"

	"github.com/emer/emergent/v2/params"
)

// NeuronParams are the initial resource learning parameters
// for all neurons in a Population, copied into each Neuron by InitNeurons.
type NeuronParams struct {

	// initial free synaptic resource.
	FreeSynRes float32 `default:"0"`

	// minimum absolute free resource for renormalization.
	SynResThr float32 `default:"1"`

	// extra divisor for renormalization, resource lost to non-synaptic processes. Must be >= 0.
	ResDrain float32 `default:"0"`

	// maximum number of steps between spikes of the same ISI period.
	ISIMax uint64 `default:"1"`

	// steps after a spike during which dopamine changes contributing synapses.
	DopaPlastTime uint64 `default:"10"`

	// initial stability.
	Stability float32 `default:"0"`

	// rate of dopamine-driven stability changes.
	StabilityChangeParam float32 `default:"0"`

	// stability decrement at the start of each ISI period.
	StabilityChangeAtISI float32 `default:"0"`

	// Hebbian resource increment per contributing synapse.
	DH float32 `default:"1"`

	// multiplier on the sum of positive incoming weights for the additional threshold.
	SynSumThrCoef float32 `default:"0"`
}

func (np *NeuronParams) Defaults() {
	np.FreeSynRes = 0
	np.SynResThr = 1
	np.ResDrain = 0
	np.ISIMax = 1
	np.DopaPlastTime = 10
	np.Stability = 0
	np.StabilityChangeParam = 0
	np.StabilityChangeAtISI = 0
	np.DH = 1
	np.SynSumThrCoef = 0
}

func (np *NeuronParams) Update() {
}

// Validate returns an ErrConfiguration error for invalid parameter values.
func (np *NeuronParams) Validate() error {
	if np.ResDrain < 0 {
		return fmt.Errorf("ResDrain %g < 0: %w", np.ResDrain, ErrConfiguration)
	}
	if np.SynResThr < 0 {
		return fmt.Errorf("SynResThr %g < 0: %w", np.SynResThr, ErrConfiguration)
	}
	return nil
}

// InitNeuron sets the neuron to its initial state from these params.
func (np *NeuronParams) InitNeuron(nrn *Neuron) {
	*nrn = Neuron{}
	nrn.FreeSynRes = np.FreeSynRes
	nrn.SynResThr = np.SynResThr
	nrn.ResDrain = np.ResDrain
	nrn.ISIMax = np.ISIMax
	nrn.DopaPlastTime = np.DopaPlastTime
	nrn.Stability = np.Stability
	nrn.StabilityChangeParam = np.StabilityChangeParam
	nrn.StabilityChangeAtISI = np.StabilityChangeAtISI
	nrn.DH = np.DH
	nrn.SynSumThrCoef = np.SynSumThrCoef
}

// SynParams are the initial parameters for all synapses of a Projection,
// copied into each Synapse by InitWeights.
type SynParams struct {

	// initial synaptic resource.
	SynRes float32 `default:"0"`

	// minimum weight.
	WMin float32 `default:"0"`

	// maximum weight.
	WMax float32 `default:"1"`

	// resource moved to the neuron at each postsynaptic spike.
	DU float32 `default:"0"`

	// window for presynaptic spikes to count as contributing.
	DopaPlastPeriod uint64 `default:"10"`

	// transmission delay in steps.
	Delay uint32 `default:"1"`
}

func (sp *SynParams) Defaults() {
	sp.SynRes = 0
	sp.WMin = 0
	sp.WMax = 1
	sp.DU = 0
	sp.DopaPlastPeriod = 10
	sp.Delay = 1
}

func (sp *SynParams) Update() {
}

// Validate returns an ErrConfiguration error for invalid parameter values.
func (sp *SynParams) Validate() error {
	if sp.WMin > sp.WMax {
		return fmt.Errorf("WMin %g > WMax %g: %w", sp.WMin, sp.WMax, ErrConfiguration)
	}
	return nil
}

// InitSyn sets the synapse to its initial state from these params.
func (sp *SynParams) InitSyn(sy *Synapse) {
	*sy = Synapse{}
	sy.Delay = sp.Delay
	rl := &sy.Rule
	rl.SynRes = sp.SynRes
	rl.WMin = sp.WMin
	rl.WMax = sp.WMax
	rl.DU = sp.DU
	rl.DopaPlastPeriod = sp.DopaPlastPeriod
	sy.RecalcWeight()
}

//////// Param sheets

// PopulationSheets contains Population parameter sheets.
type PopulationSheets = params.Sheets[*Population]

// PopulationSheet is one Population parameter sheet.
type PopulationSheet = params.Sheet[*Population]

// PopulationSel is one Population parameter Selector.
type PopulationSel = params.Sel[*Population]

// ProjectionSheets contains Projection parameter sheets.
type ProjectionSheets = params.Sheets[*Projection]

// ProjectionSheet is one Projection parameter sheet.
type ProjectionSheet = params.Sheet[*Projection]

// ProjectionSel is one Projection parameter Selector.
type ProjectionSel = params.Sel[*Projection]
