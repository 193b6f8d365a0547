// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import (
	"cogentcore.org/core/math32/minmax"
)

// WeightStats returns the average and maximum synaptic weight
// of the projection.
func (pj *Projection) WeightStats() minmax.AvgMax32 {
	var am minmax.AvgMax32
	am.Init()
	for si := range pj.Syns {
		am.UpdateValue(pj.Syns[si].Wt, int32(si))
	}
	am.CalcAvg()
	return am
}

// ResourceStats returns the average and maximum synaptic resource
// of the projection.
func (pj *Projection) ResourceStats() minmax.AvgMax32 {
	var am minmax.AvgMax32
	am.Init()
	for si := range pj.Syns {
		am.UpdateValue(pj.Syns[si].Rule.SynRes, int32(si))
	}
	am.CalcAvg()
	return am
}

// FreeResourceStats returns the average and maximum free synaptic
// resource of the neurons in the population.
func (pop *Population) FreeResourceStats() minmax.AvgMax32 {
	var am minmax.AvgMax32
	am.Init()
	for ni := range pop.Neurons {
		am.UpdateValue(pop.Neurons[ni].FreeSynRes, int32(ni))
	}
	am.CalcAvg()
	return am
}

// IntervalRecalc returns a function that linearly maps values from
// one interval onto another, for use with NormalizeSynapses to rescale
// synaptic resource, e.g.:
//
//	rc := IntervalRecalc(minmax.F32{Min: 0, Max: 10}, minmax.F32{Min: 0, Max: 1})
//	pj.NormalizeSynapses(func(sy *Synapse) { sy.Rule.SynRes = rc(sy.Rule.SynRes); sy.RecalcWeight() })
func IntervalRecalc(from, to minmax.F32) func(v float32) float32 {
	return func(v float32) float32 {
		return to.ProjValue(from.NormValue(v))
	}
}
