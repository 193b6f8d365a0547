// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned by Validate and Build for invalid
	// parameters, e.g., WMin > WMax or a negative ResDrain.
	ErrConfiguration = errors.New("rstdp: invalid configuration")

	// ErrUnsupportedState is returned when a neuron has an ISIStatus
	// outside of the defined ISIPeriodTypes values.
	ErrUnsupportedState = errors.New("rstdp: unsupported ISI status")

	// ErrStepOrder is returned when a neuron receives a spike for a step
	// earlier than its LastStep.
	ErrStepOrder = errors.New("rstdp: step out of order")

	// ErrDegenerateRenorm is returned for a neuron that has free resource
	// to renormalize but neither connected synapses nor a drain coefficient.
	ErrDegenerateRenorm = errors.New("rstdp: degenerate renormalization")

	// ErrDispatchMismatch is returned when a synapse type has no registered
	// WeightUpdater.
	ErrDispatchMismatch = errors.New("rstdp: no weight updater for synapse type")

	// ErrInvalidSpike is returned for spike messages that do not belong to
	// the population, or that have out of range neuron indexes.
	ErrInvalidSpike = errors.New("rstdp: invalid spike message")
)

// NeuronError is an error isolated to one neuron of a population.
type NeuronError struct {
	// Population name
	Population string

	// Neuron index within the population
	Neuron int

	// Err is the underlying error
	Err error
}

func (ne *NeuronError) Error() string {
	return fmt.Sprintf("population %q neuron %d: %v", ne.Population, ne.Neuron, ne.Err)
}

func (ne *NeuronError) Unwrap() error { return ne.Err }

// IsFatal returns true if err contains an error that must abort
// the current step: everything except ErrDegenerateRenorm warnings.
func IsFatal(err error) bool {
	return errors.Is(err, ErrUnsupportedState) || errors.Is(err, ErrStepOrder) ||
		errors.Is(err, ErrDispatchMismatch) || errors.Is(err, ErrInvalidSpike) ||
		errors.Is(err, ErrConfiguration)
}
