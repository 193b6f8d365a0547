// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package rstdp is the overall repository for synaptic resource based
spike-timing-dependent plasticity (STDP) learning, implemented in the Go
language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* rstdp: the learning engine: per-neuron inter-spike-interval (ISI) tracking,
Hebbian and dopamine-modulated updates of synaptic resource, renormalization of
free resource into per-synapse weights, and the weight update hooks by which
different synapse types take part in learning. Populations, Projections and a
Network step driver provide the containers the engine operates on.
*/
package rstdp
