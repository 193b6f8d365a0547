// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import (
	"errors"
	"math"
	"testing"
)

func TestISIBurst(t *testing.T) {
	nrn := &Neuron{ISIMax: 5}
	steps := []uint64{1, 2, 3}
	trg := []ISIPeriodTypes{PeriodStarted, PeriodContinued, PeriodContinued}
	for i, st := range steps {
		status, err := nrn.UpdateISI(st)
		if err != nil {
			t.Fatal(err)
		}
		if status != trg[i] {
			t.Errorf("step %d: got status: %v, trg: %v\n", st, status, trg[i])
		}
		if nrn.LastStep != st {
			t.Errorf("step %d: LastStep %d\n", st, nrn.LastStep)
		}
	}
	if nrn.FirstISISpike != 1 {
		t.Errorf("FirstISISpike: got %d, trg 1\n", nrn.FirstISISpike)
	}
}

func TestISIGapRestart(t *testing.T) {
	nrn := &Neuron{ISIMax: 5}
	if status, _ := nrn.UpdateISI(1); status != PeriodStarted {
		t.Errorf("step 1: got status: %v\n", status)
	}
	status, err := nrn.UpdateISI(10)
	if err != nil {
		t.Fatal(err)
	}
	if status != PeriodStarted {
		t.Errorf("step 10: got status: %v, trg: PeriodStarted\n", status)
	}
	if nrn.FirstISISpike != 10 {
		t.Errorf("FirstISISpike: got %d, trg 10\n", nrn.FirstISISpike)
	}

	// a continued period ends on a long gap
	nrn.UpdateISI(11)
	status, _ = nrn.UpdateISI(20)
	if status != PeriodStarted || nrn.FirstISISpike != 20 {
		t.Errorf("continued gap: got status: %v, first: %d\n", status, nrn.FirstISISpike)
	}
}

func TestISIDopamineRestart(t *testing.T) {
	nrn := &Neuron{ISIMax: 5}
	nrn.UpdateISI(1)
	nrn.UpdateISI(2)
	nrn.DA = 1
	status, _ := nrn.UpdateISI(3)
	if status != PeriodStarted || nrn.FirstISISpike != 3 {
		t.Errorf("got status: %v, first: %d\n", status, nrn.FirstISISpike)
	}
	// dopamine has no effect on a started period
	status, _ = nrn.UpdateISI(4)
	if status != PeriodContinued {
		t.Errorf("got status: %v, trg: PeriodContinued\n", status)
	}
}

func TestISIForced(t *testing.T) {
	for _, st := range ISIPeriodTypesValues() {
		nrn := &Neuron{ISIMax: 5, ISIStatus: st, LastStep: 3, IsBeingForced: true}
		status, err := nrn.UpdateISI(4)
		if err != nil {
			t.Fatal(err)
		}
		if status != IsForced || nrn.ISIStatus != IsForced {
			t.Errorf("from %v: got status: %v, trg: IsForced\n", st, status)
		}
		if nrn.LastStep != 3 {
			t.Errorf("from %v: forced spike changed LastStep to %d\n", st, nrn.LastStep)
		}
	}

	nrn := &Neuron{ISIMax: 5, ISIStatus: IsForced, LastStep: 3}
	status, _ := nrn.UpdateISI(4)
	if status != PeriodStarted || nrn.FirstISISpike != 4 {
		t.Errorf("after forced: got status: %v, first: %d\n", status, nrn.FirstISISpike)
	}
}

func TestISIErrors(t *testing.T) {
	nrn := &Neuron{ISIMax: 5}
	nrn.UpdateISI(10)
	_, err := nrn.UpdateISI(5)
	if !errors.Is(err, ErrStepOrder) {
		t.Errorf("got err: %v, trg: ErrStepOrder\n", err)
	}
	if !IsFatal(err) {
		t.Errorf("step order error should be fatal\n")
	}
	if nrn.LastStep != 10 {
		t.Errorf("LastStep changed to %d\n", nrn.LastStep)
	}

	nrn = &Neuron{ISIStatus: ISIPeriodTypesN + 3}
	_, err = nrn.UpdateISI(1)
	if !errors.Is(err, ErrUnsupportedState) {
		t.Errorf("got err: %v, trg: ErrUnsupportedState\n", err)
	}
	if !IsFatal(err) {
		t.Errorf("unsupported state error should be fatal\n")
	}
}

func TestInISIPeriod(t *testing.T) {
	nrn := &Neuron{ISIMax: 5, LastStep: 10, ISIStatus: PeriodStarted}
	if !nrn.InISIPeriod(15) {
		t.Errorf("step 15 should be in period\n")
	}
	if nrn.InISIPeriod(16) {
		t.Errorf("step 16 should not be in period\n")
	}
	nrn.ISIStatus = IsForced
	if nrn.InISIPeriod(12) {
		t.Errorf("forced neuron should not be in period\n")
	}
}

func TestPointInInterval(t *testing.T) {
	big := uint64(math.MaxUint64)
	tests := []struct {
		begin, end, point uint64
		in                bool
	}{
		{2, 5, 3, true},
		{2, 5, 2, true},
		{2, 5, 5, true},
		{2, 5, 6, false},
		{2, 5, 1, false},
		{big - 1, 2, 1, true},
		{big - 1, 2, big, true},
		{big - 1, 2, 5, false},
	}
	for _, ts := range tests {
		if in := PointInInterval(ts.begin, ts.end, ts.point); in != ts.in {
			t.Errorf("[%d, %d] point %d: got %v, trg %v\n", ts.begin, ts.end, ts.point, in, ts.in)
		}
	}
}

func TestISIForcedStepOrder(t *testing.T) {
	nrn := &Neuron{ISIMax: 5}
	nrn.UpdateISI(10)
	nrn.IsBeingForced = true
	nrn.UpdateISI(12)
	nrn.IsBeingForced = false
	status, err := nrn.UpdateISI(5)
	if !errors.Is(err, ErrStepOrder) {
		t.Errorf("after forced: got err: %v, trg: ErrStepOrder\n", err)
	}
	if status != IsForced || nrn.LastStep != 10 {
		t.Errorf("after forced: status: %v, LastStep: %d\n", status, nrn.LastStep)
	}
}
