// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import "fmt"

//go:generate core generate

// ISIPeriodTypes are the states of the inter-spike-interval (ISI) period
// of a neuron: a period is a burst of spikes that are less than ISIMax
// steps apart, and is treated as a single learning episode.
type ISIPeriodTypes int32 //enums:enum

const (
	// NotInPeriod means the neuron has not spiked since it was initialized.
	NotInPeriod ISIPeriodTypes = iota

	// IsForced means the last spike was forced from outside (e.g., by a
	// supervision signal), and does not belong to a spiking sequence.
	IsForced

	// PeriodStarted means the last spike started a new ISI period.
	PeriodStarted

	// PeriodContinued means the last spike continued the current ISI period.
	PeriodContinued
)

// UpdateISI updates the ISI state of the neuron for a spike at given step,
// and returns the new status. It must be called once per spike,
// with steps in non-decreasing order: a step earlier than LastStep
// returns ErrStepOrder.
//
// A forced spike always results in IsForced and leaves LastStep unchanged.
// Otherwise a spike within ISIMax steps of the previous one continues the
// period, and a larger gap (or any dopamine during a continued period)
// starts a new one at FirstISISpike = step.
func (nrn *Neuron) UpdateISI(step uint64) (ISIPeriodTypes, error) {
	if nrn.IsBeingForced {
		nrn.ISIStatus = IsForced
		return nrn.ISIStatus, nil
	}

	switch nrn.ISIStatus {
	case NotInPeriod, IsForced:
		if step < nrn.LastStep {
			return nrn.ISIStatus, fmt.Errorf("spike at step %d, last step %d: %w", step, nrn.LastStep, ErrStepOrder)
		}
		nrn.ISIStatus = PeriodStarted
		nrn.FirstISISpike = step
	case PeriodStarted:
		if step < nrn.LastStep {
			return nrn.ISIStatus, fmt.Errorf("spike at step %d, last step %d: %w", step, nrn.LastStep, ErrStepOrder)
		}
		if step-nrn.LastStep < nrn.ISIMax {
			nrn.ISIStatus = PeriodContinued
		} else {
			nrn.FirstISISpike = step
		}
	case PeriodContinued:
		if step < nrn.LastStep {
			return nrn.ISIStatus, fmt.Errorf("spike at step %d, last step %d: %w", step, nrn.LastStep, ErrStepOrder)
		}
		if step-nrn.LastStep >= nrn.ISIMax || nrn.DA != 0 {
			nrn.ISIStatus = PeriodStarted
			nrn.FirstISISpike = step
		}
	default:
		return nrn.ISIStatus, fmt.Errorf("status %d: %w", int32(nrn.ISIStatus), ErrUnsupportedState)
	}

	nrn.LastStep = step
	return nrn.ISIStatus, nil
}

// InISIPeriod returns true if the neuron is still within its ISI period at
// given step, i.e., not more than ISIMax steps since its last spike, and
// that spike was not forced. Such a neuron has not settled yet and its
// free resource is not renormalized.
func (nrn *Neuron) InISIPeriod(step uint64) bool {
	return step-nrn.LastStep <= nrn.ISIMax && nrn.ISIStatus != IsForced
}

// PointInInterval returns true if point lies within [begin, end],
// where the interval may wrap around the end of the step counter
// (end < begin).
func PointInInterval(begin, end, point uint64) bool {
	after := point >= begin
	before := point <= end
	overflow := end < begin
	return (after && before) || ((after || before) && overflow)
}
