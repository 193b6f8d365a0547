// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import (
	"errors"
	"strings"
	"testing"

	"cogentcore.org/core/math32/minmax"
	"github.com/emer/emergent/v2/paths"
)

func makeMultiNet(t *testing.T, nthr int) *Network {
	t.Helper()
	nt := NewNetwork("Multi")
	nt.NThreads = nthr
	in := nt.AddPopulation("In", 4)
	for _, nm := range []string{"A", "B", "C"} {
		pop := nt.AddPopulation(nm, 3)
		pop.Params.ISIMax = 2
		pop.Params.StabilityChangeParam = 0.1
		pop.Params.StabilityChangeAtISI = 0.05
		pj := nt.ConnectPopulations(in, pop, paths.NewFull(), ResourceDeltaSynapse)
		pj.Params.DU = 0.1
	}
	nt.ConnectPopulations(nt.PopulationByName("A"), nt.PopulationByName("B"), paths.NewFull(), ResourceDeltaSynapse)
	if err := nt.Build(); err != nil {
		t.Fatal(err)
	}
	return nt
}

func multiMsgs(nt *Network, step uint64) []SpikeMessage {
	var msgs []SpikeMessage
	in := nt.PopulationByName("In")
	msgs = append(msgs, *NewSpikeMessage(in, step, int(step%4), int((step+1)%4)))
	if step%2 == 0 {
		msgs = append(msgs, *NewSpikeMessage(nt.PopulationByName("A"), step, int(step%3)))
	}
	if step%3 == 0 {
		msgs = append(msgs, *NewSpikeMessage(nt.PopulationByName("B"), step, 0, 2))
		msgs = append(msgs, *NewSpikeMessage(nt.PopulationByName("B"), step, 1))
	}
	if step%5 == 0 {
		msgs = append(msgs, *NewSpikeMessage(nt.PopulationByName("C"), step, 1))
	}
	return msgs
}

func runMultiNet(t *testing.T, nt *Network) {
	t.Helper()
	for step := uint64(1); step <= 40; step++ {
		if step%10 == 0 {
			nt.SendDA(0.5, "C")
			nt.SendDA(-0.25, "A", "B")
		}
		if _, err := nt.Step(step, multiMsgs(nt, step)); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLearnStepThreads(t *testing.T) {
	seq := makeMultiNet(t, 1)
	par := makeMultiNet(t, 3)
	runMultiNet(t, seq)
	runMultiNet(t, par)
	for pi, spj := range seq.Projections {
		ppj := par.Projections[pi]
		CmprFloats(synValues(t, ppj, "SynRes"), synValues(t, spj, "SynRes"), "threaded SynRes "+spj.Name, t)
		CmprFloats(synValues(t, ppj, "Wt"), synValues(t, spj, "Wt"), "threaded Wt "+spj.Name, t)
	}
	for pi, spop := range seq.Populations {
		ppop := par.Populations[pi]
		for _, vnm := range []string{"FreeSynRes", "Stability", "ISIStatus"} {
			var sv, pv []float32
			spop.UnitValues(&sv, vnm)
			ppop.UnitValues(&pv, vnm)
			CmprFloats(pv, sv, "threaded "+vnm+" "+spop.Name, t)
		}
	}
	if st := seq.PopulationByName("B").Neuron(1).ISIStatus; st == NotInPeriod {
		t.Errorf("B neuron 1 never spiked\n")
	}
}

func TestLearnStepLocked(t *testing.T) {
	nt, in, out, pj := MakeTestNet(t, 1)
	pj.Locked = true
	nt.DeliverSpikes([]SpikeMessage{*NewSpikeMessage(in, 1, 0, 1, 2, 3)}, 1)
	if err := nt.LearnStep(2, []SpikeMessage{*NewSpikeMessage(out, 2, 0)}); err != nil {
		t.Fatal(err)
	}
	if out.Neuron(0).ISIStatus != PeriodStarted {
		t.Errorf("status: %v, trg PeriodStarted\n", out.Neuron(0).ISIStatus)
	}
	CmprFloats(synValues(t, pj, "SynRes"), []float32{0, 0, 0, 0}, "locked SynRes", t)

	// static synapses do not learn
	nt.LearnType = DeltaSynapse
	pj.Locked = false
	if err := nt.LearnStep(3, []SpikeMessage{*NewSpikeMessage(out, 3, 0)}); err != nil {
		t.Fatal(err)
	}
	CmprFloats(synValues(t, pj, "SynRes"), []float32{0, 0, 0, 0}, "static SynRes", t)
}

func TestLearnStepErrors(t *testing.T) {
	nt, _, _, _ := MakeTestNet(t, 1)
	other := NewPopulation("Other", 2)
	err := nt.LearnStep(1, []SpikeMessage{*NewSpikeMessage(other, 1, 0)})
	if !errors.Is(err, ErrInvalidSpike) {
		t.Errorf("unknown sender: got err: %v\n", err)
	}

	nt.LearnType = SynapseTypesN
	err = nt.LearnStep(1, nil)
	if !errors.Is(err, ErrDispatchMismatch) || !IsFatal(err) {
		t.Errorf("unregistered type: got err: %v\n", err)
	}
}

func TestSendDA(t *testing.T) {
	nt := makeMultiNet(t, 1)
	nt.SendDA(0.5, "A", "Missing")
	a := nt.PopulationByName("A")
	b := nt.PopulationByName("B")
	if a.Neuron(2).DA != 0.5 || b.Neuron(0).DA != 0 {
		t.Errorf("SendDA to A: %v, %v\n", a.Neuron(2).DA, b.Neuron(0).DA)
	}
	nt.SendDA(1)
	for _, pop := range nt.Populations {
		for ni := range pop.Neurons {
			if pop.Neurons[ni].DA != 1 {
				t.Errorf("SendDA all: %v neuron %d: %v\n", pop.Name, ni, pop.Neurons[ni].DA)
			}
		}
	}
	a.Neuron(1).FreeSynRes = 3
	if fs := a.FreeResourceStats(); fs.Max != 3 || fs.Avg != 1 {
		t.Errorf("FreeResourceStats: %v\n", fs)
	}
	nt.InitModulators()
	if a.Neuron(0).DA != 0 {
		t.Errorf("InitModulators: DA %v\n", a.Neuron(0).DA)
	}
}

func TestReports(t *testing.T) {
	nt := makeMultiNet(t, 1)
	runMultiNet(t, nt)
	sr := nt.SizeReport()
	for _, s := range []string{"Neurons: 4", "InToA", "AToB", "Syns: 12", "Multi"} {
		if !strings.Contains(sr, s) {
			t.Errorf("SizeReport missing %q:\n%s\n", s, sr)
		}
	}
	tr := nt.TimerReport()
	for _, s := range []string{"LearnStep", "DeliverSpikes", "Total"} {
		if !strings.Contains(tr, s) {
			t.Errorf("TimerReport missing %q:\n%s\n", s, tr)
		}
	}
	if nt.PopulationByID(nt.Populations[2].ID) != nt.Populations[2] {
		t.Errorf("PopulationByID failed\n")
	}
	if _, err := nt.ProjectionByName("AToB"); err != nil {
		t.Error(err)
	}
	if _, err := nt.ProjectionByName("BToA"); err == nil {
		t.Errorf("ProjectionByName should fail for missing projection\n")
	}
}

func TestVarByName(t *testing.T) {
	nt, _, out, pj := MakeTestNet(t, 2)
	out.SetForced(1)
	out.Neuron(1).ISIStatus = PeriodContinued
	var vals []float32
	if err := out.UnitValues(&vals, "IsBeingForced"); err != nil {
		t.Fatal(err)
	}
	CmprFloats(vals, []float32{0, 1}, "IsBeingForced", t)
	out.UnitValues(&vals, "ISIStatus")
	CmprFloats(vals, []float32{0, float32(PeriodContinued)}, "ISIStatus", t)
	if err := out.UnitValues(&vals, "Bogus"); err == nil {
		t.Errorf("UnitValues should fail for invalid name\n")
	}
	if v, err := out.Neuron(0).VarByName("SynResThr"); err != nil || v != 1 {
		t.Errorf("VarByName SynResThr: %v, %v\n", v, err)
	}
	out.NormalizeNeurons(func(nrn *Neuron) { nrn.SynResThr *= 2 })
	out.UnitValues(&vals, "SynResThr")
	CmprFloats(vals, []float32{2, 2}, "normalized SynResThr", t)
	if err := pj.Syns[0].SetVarByName("Wt", 1); err == nil {
		t.Errorf("Wt should not be settable\n")
	}
	if _, err := pj.Syns[0].VarByName("Bogus"); err == nil {
		t.Errorf("VarByName should fail for invalid name\n")
	}
	pjs := learnPaths(t, nt, out)
	if len(pjs) != 1 || pjs[0].NumSyns() != 8 {
		t.Errorf("got %d projections\n", len(pjs))
	}
}

func TestIntervalRecalc(t *testing.T) {
	_, _, _, pj := MakeTestNet(t, 1)
	for si := range pj.Syns {
		pj.Syns[si].SetVarByName("SynRes", float32(2*si))
	}
	rc := IntervalRecalc(minmax.F32{Min: 0, Max: 8}, minmax.F32{Min: 0, Max: 1})
	pj.NormalizeSynapses(func(sy *Synapse) {
		sy.Rule.SynRes = rc(sy.Rule.SynRes)
		sy.RecalcWeight()
	})
	CmprFloats(synValues(t, pj, "SynRes"), []float32{0, 0.25, 0.5, 0.75}, "recalc SynRes", t)
	CmprFloats(synValues(t, pj, "Wt"), []float32{0, 0.2, 0.33333334, 0.42857143}, "recalc Wt", t)
	am := pj.WeightStats()
	CmprFloats([]float32{am.Max}, []float32{0.42857143}, "WeightStats max", t)
	rs := pj.ResourceStats()
	CmprFloats([]float32{rs.Max, rs.Avg}, []float32{0.75, 0.375}, "ResourceStats", t)
}

func TestStepResetsModulators(t *testing.T) {
	nt, in, out, _ := MakeTestNet(t, 1)
	nt.SendDA(1)
	out.SetForced(0)
	_, err := nt.Step(1, []SpikeMessage{*NewSpikeMessage(in, 1, 4)})
	if !errors.Is(err, ErrInvalidSpike) {
		t.Errorf("got err: %v, trg: ErrInvalidSpike\n", err)
	}
	nrn := out.Neuron(0)
	if nrn.DA != 0 || nrn.IsBeingForced || in.Neuron(0).DA != 0 {
		t.Errorf("modulators not reset after failed step: DA %v, forced %v\n", nrn.DA, nrn.IsBeingForced)
	}
}
