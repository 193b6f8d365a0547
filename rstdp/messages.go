// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import (
	"fmt"

	"github.com/google/uuid"
)

// MessageHeader identifies the sender and the step of a message.
type MessageHeader struct {

	// identifier of the sending population.
	SenderID uuid.UUID

	// step on which the message was sent.
	Step uint64
}

// SpikeMessage lists the neurons of a population that spiked on a step.
type SpikeMessage struct {
	Header MessageHeader

	// indexes of the neurons that spiked.
	NeuronIndexes []int
}

// NewSpikeMessage returns a new spike message for given population.
func NewSpikeMessage(pop *Population, step uint64, idxs ...int) *SpikeMessage {
	return &SpikeMessage{Header: MessageHeader{SenderID: pop.ID, Step: step}, NeuronIndexes: idxs}
}

// Validate checks that the message belongs to given population,
// and that all of its indexes are within range.
func (sm *SpikeMessage) Validate(pop *Population) error {
	if sm.Header.SenderID != pop.ID {
		return fmt.Errorf("message from %v sent to population %q (%v): %w", sm.Header.SenderID, pop.Name, pop.ID, ErrInvalidSpike)
	}
	n := pop.Size()
	for _, ni := range sm.NeuronIndexes {
		if ni < 0 || ni >= n {
			return fmt.Errorf("neuron index %d out of range for population %q of size %d: %w", ni, pop.Name, n, ErrInvalidSpike)
		}
	}
	return nil
}

// SynapticImpact is the effect of one presynaptic spike on one
// postsynaptic neuron, to be delivered after Delay steps.
type SynapticImpact struct {

	// index of the synapse in the projection.
	SynIndex int32

	// presynaptic neuron index.
	SendIndex int32

	// postsynaptic neuron index.
	RecvIndex int32

	// impact value: the synaptic weight.
	Value float32

	// delivery delay in steps.
	Delay uint32
}
