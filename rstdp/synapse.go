// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Synapse holds state for the synaptic connection between neurons.
type Synapse struct {

	// synaptic weight, derived from Rule.SynRes by RecalcWeight.
	Wt float32

	// transmission delay in steps.
	Delay uint32

	// resource-based STDP rule state.
	Rule ResourceRule
}

// ResourceRule is the synapse-level state of the synaptic resource STDP rule.
type ResourceRule struct {

	// synaptic resource accumulated by learning, from which Wt is computed.
	// Can be negative: it is only clipped to 0 for the weight computation.
	SynRes float32

	// minimum weight value.
	WMin float32

	// maximum weight value, approached asymptotically as SynRes grows.
	WMax float32

	// resource moved from the synapse to the neuron free resource
	// at each non-forced postsynaptic spike.
	DU float32

	// step of the last presynaptic spike through this synapse.
	LastSpikeStep uint64

	// number of steps before a postsynaptic spike within which a
	// presynaptic spike arrival counts as a contribution.
	DopaPlastPeriod uint64

	// true if the synapse contributed to the current ISI period.
	HasContributed bool

	// true if the synapse already got its Hebbian update in the current ISI period.
	HadHebbUpdate bool
}

// WtFromResource returns the weight for given synaptic resource and weight
// range: wmin + d * r / (d + r), with d = wmax - wmin and r = max(res, 0).
// Returns wmin for r = 0 and approaches wmax as r grows.
func WtFromResource(res, wmin, wmax float32) float32 {
	r := math32.Max(res, 0)
	d := wmax - wmin
	if d+r == 0 {
		return wmin
	}
	return wmin + d*r/(d+r)
}

// RecalcWeight sets Wt from the current synaptic resource.
func (sy *Synapse) RecalcWeight() {
	sy.Wt = WtFromResource(sy.Rule.SynRes, sy.Rule.WMin, sy.Rule.WMax)
}

// RecalcWeights recalculates the weights of all given synapses.
func RecalcWeights(syns []*Synapse) {
	for _, sy := range syns {
		sy.RecalcWeight()
	}
}

// SynapseVars are the synapse variables available through VarByName.
var SynapseVars = []string{"Wt", "Delay", "SynRes", "WMin", "WMax", "DU", "LastSpikeStep", "DopaPlastPeriod", "HasContributed", "HadHebbUpdate"}

var SynapseVarsMap map[string]int

func init() {
	SynapseVarsMap = make(map[string]int, len(SynapseVars))
	for i, v := range SynapseVars {
		SynapseVarsMap[v] = i
	}
}

func (sy *Synapse) VarNames() []string {
	return SynapseVars
}

// SynapseVarByName returns the index of the variable in the Synapse, or error
func SynapseVarByName(varNm string) (int, error) {
	i, ok := SynapseVarsMap[varNm]
	if !ok {
		return 0, fmt.Errorf("Synapse VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in SynapseVars list)
func (sy *Synapse) VarByIndex(idx int) float32 {
	rl := &sy.Rule
	switch idx {
	case 0:
		return sy.Wt
	case 1:
		return float32(sy.Delay)
	case 2:
		return rl.SynRes
	case 3:
		return rl.WMin
	case 4:
		return rl.WMax
	case 5:
		return rl.DU
	case 6:
		return float32(rl.LastSpikeStep)
	case 7:
		return float32(rl.DopaPlastPeriod)
	case 8:
		return boolFloat(rl.HasContributed)
	case 9:
		return boolFloat(rl.HadHebbUpdate)
	}
	return math32.NaN()
}

// VarByName returns variable by name, or error
func (sy *Synapse) VarByName(varNm string) (float32, error) {
	i, err := SynapseVarByName(varNm)
	if err != nil {
		return math32.NaN(), err
	}
	return sy.VarByIndex(i), nil
}

// SetVarByName sets a float32 synapse variable to given value.
// Wt can not be set: it is always derived from SynRes.
func (sy *Synapse) SetVarByName(varNm string, val float32) error {
	rl := &sy.Rule
	switch varNm {
	case "SynRes":
		rl.SynRes = val
	case "WMin":
		rl.WMin = val
	case "WMax":
		rl.WMax = val
	case "DU":
		rl.DU = val
	default:
		return fmt.Errorf("Synapse SetVarByName: variable name: %v not settable", varNm)
	}
	sy.RecalcWeight()
	return nil
}

func boolFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
