// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import (
	"fmt"
	"reflect"

	"cogentcore.org/core/math32"
)

// Neuron holds the synaptic resource learning state of one neuron.
// It is owned by its Population, and is only modified by the learning
// functions in this package, apart from DA and IsBeingForced which are
// set from outside for each step.
type Neuron struct {

	////////  Resource

	// free synaptic resource accumulated since the last renormalization,
	// not yet assigned to any synapse. Can be negative.
	FreeSynRes float32

	// minimum absolute value of FreeSynRes needed for renormalization.
	SynResThr float32

	// additional divisor for renormalization, representing resource lost
	// to non-synaptic processes. Must be >= 0.
	ResDrain float32

	////////  ISI

	// state of the inter-spike-interval period, only set by UpdateISI.
	ISIStatus ISIPeriodTypes

	// step of the last spike processed by UpdateISI (forced spikes excluded).
	LastStep uint64

	// step at which the current ISI period started.
	FirstISISpike uint64

	// maximum number of steps between spikes of the same ISI period.
	ISIMax uint64

	// step of the last spike, forced or not.
	LastSpikeStep uint64

	// true if the spike on this step was forced from outside.
	IsBeingForced bool

	////////  Dopamine

	// dopamine value for the current step, set from outside.
	DA float32

	// number of steps after a spike during which dopamine modifies
	// the resource of contributing synapses.
	DopaPlastTime uint64

	// stability of the neuron: learning increments are scaled by
	// min(2^-Stability, 1), so higher values mean slower learning.
	Stability float32

	// rate of dopamine-driven Stability changes.
	StabilityChangeParam float32

	// amount Stability decreases at the start of each ISI period.
	StabilityChangeAtISI float32

	////////  Hebbian

	// Hebbian resource increment for each contributing synapse, once per ISI period.
	DH float32

	// additional firing threshold computed from the sum of positive
	// incoming weights at the last spike.
	AddThr float32

	// multiplier on the sum of positive weights for AddThr.
	SynSumThrCoef float32
}

// NeuronVars are the neuron variables available through VarByName.
var NeuronVars = []string{"FreeSynRes", "SynResThr", "ResDrain", "ISIStatus", "LastStep", "FirstISISpike", "ISIMax", "LastSpikeStep", "IsBeingForced", "DA", "DopaPlastTime", "Stability", "StabilityChangeParam", "StabilityChangeAtISI", "DH", "AddThr", "SynSumThrCoef"}

var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

func (nrn *Neuron) VarNames() []string {
	return NeuronVars
}

// NeuronVarIndexByName returns the index of the variable in the Neuron, or error
func NeuronVarIndexByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list),
// converted to float32.
func (nrn *Neuron) VarByIndex(idx int) float32 {
	return fieldFloat(reflect.ValueOf(nrn).Elem().FieldByName(NeuronVars[idx]))
}

// VarByName returns variable by name, or error
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	i, err := NeuronVarIndexByName(varNm)
	if err != nil {
		return math32.NaN(), err
	}
	return nrn.VarByIndex(i), nil
}

// StabilityFactor returns the multiplier on resource increments
// for the current Stability: min(2^-Stability, 1).
func (nrn *Neuron) StabilityFactor() float32 {
	return math32.Min(math32.Pow(2, -nrn.Stability), 1)
}

// InitModulators resets the per-step external signals.
func (nrn *Neuron) InitModulators() {
	nrn.DA = 0
	nrn.IsBeingForced = false
}

// fieldFloat converts a numeric, bool or enum struct field to float32.
func fieldFloat(v reflect.Value) float32 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return float32(v.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float32(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float32(v.Uint())
	case reflect.Bool:
		if v.Bool() {
			return 1
		}
		return 0
	}
	return math32.NaN()
}
