// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import (
	"fmt"

	"github.com/google/uuid"
)

// FindProjections returns the projections of given synapse type whose
// receiving population is post, in the order of pjs. Locked projections
// are skipped if excludeLocked is true. Returns ErrDispatchMismatch if
// typ has no registered WeightUpdater.
// The result is only valid for the current step.
func FindProjections(pjs []*Projection, typ SynapseTypes, post uuid.UUID, excludeLocked bool) ([]*Projection, error) {
	if _, ok := WeightUpdaters[typ]; !ok {
		return nil, fmt.Errorf("synapse type %v: %w", typ, ErrDispatchMismatch)
	}
	var res []*Projection
	for _, pj := range pjs {
		if pj.Type != typ {
			continue
		}
		if excludeLocked && pj.IsLocked() {
			continue
		}
		if pj.RecvID == post {
			res = append(res, pj)
		}
	}
	return res, nil
}

// ConnectedSynapses appends to syns all synapses onto receiving neuron ri
// across given projections, and returns the extended slice.
// Pass syns[:0] to reuse memory across neurons.
func ConnectedSynapses(pjs []*Projection, ri int, syns []*Synapse) []*Synapse {
	for _, pj := range pjs {
		for _, h := range pj.SynapsesByRecv(ri) {
			syns = append(syns, pj.Synapse(h))
		}
	}
	return syns
}
