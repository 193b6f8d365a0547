// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"unsafe"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/timer"
	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/v2/paths"
	"github.com/google/uuid"
)

// Network holds populations and the projections between them, and drives
// the learning step for all of them.
type Network struct {

	// overall name of network, helps discriminate if there are multiple.
	Name string

	// list of populations.
	Populations []*Population

	// list of projections.
	Projections []*Projection

	// synapse type that learns on each LearnStep.
	LearnType SynapseTypes

	// number of parallel goroutines used to process populations in
	// LearnStep. Values <= 1 process all populations in order.
	NThreads int

	// map of name to populations; names must be unique.
	PopMap map[string]*Population `display:"-"`

	// timers for each major function (step of processing).
	FunTimes map[string]*timer.Time `display:"-"`
}

// NewNetwork returns a new network with given name.
func NewNetwork(name string) *Network {
	nt := &Network{Name: name}
	nt.LearnType = ResourceDeltaSynapse
	nt.NThreads = 1
	nt.FunTimes = make(map[string]*timer.Time)
	return nt
}

// AddPopulation adds a new population with given name and shape.
func (nt *Network) AddPopulation(name string, shape ...int) *Population {
	pop := NewPopulation(name, shape...)
	nt.Populations = append(nt.Populations, pop)
	nt.MakePopMap()
	return pop
}

// ConnectPopulations adds a new projection between given populations,
// using given pattern and synapse type.
func (nt *Network) ConnectPopulations(send, recv *Population, pat paths.Pattern, typ SynapseTypes) *Projection {
	pj := NewProjection(send, recv, pat, typ)
	nt.Projections = append(nt.Projections, pj)
	return pj
}

// MakePopMap updates the population map based on current populations.
func (nt *Network) MakePopMap() {
	nt.PopMap = make(map[string]*Population, len(nt.Populations))
	for _, pop := range nt.Populations {
		nt.PopMap[pop.Name] = pop
	}
}

// PopulationByName returns a population by name, or nil if not found.
func (nt *Network) PopulationByName(name string) *Population {
	if nt.PopMap == nil || len(nt.PopMap) != len(nt.Populations) {
		nt.MakePopMap()
	}
	return nt.PopMap[name]
}

// PopulationByID returns the population with given identifier,
// or nil if not found.
func (nt *Network) PopulationByID(id uuid.UUID) *Population {
	for _, pop := range nt.Populations {
		if pop.ID == id {
			return pop
		}
	}
	return nil
}

// ProjectionByName returns a projection by name, or an error if not found.
func (nt *Network) ProjectionByName(name string) (*Projection, error) {
	for _, pj := range nt.Projections {
		if pj.Name == name {
			return pj, nil
		}
	}
	return nil, fmt.Errorf("could not find projection with name %q", name)
}

// Build constructs the neurons of all populations and the synapses
// of all projections.
func (nt *Network) Build() error {
	nt.MakePopMap()
	if len(nt.PopMap) != len(nt.Populations) {
		return fmt.Errorf("network %q: population names must be unique: %w", nt.Name, ErrConfiguration)
	}
	if nt.FunTimes == nil {
		nt.FunTimes = make(map[string]*timer.Time)
	}
	var errs []error
	for _, pop := range nt.Populations {
		if err := pop.Build(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, pj := range nt.Projections {
		send := nt.PopulationByID(pj.SendID)
		recv := nt.PopulationByID(pj.RecvID)
		if send == nil || recv == nil {
			errs = append(errs, fmt.Errorf("projection %q: populations not found in network %q: %w", pj.Name, nt.Name, ErrConfiguration))
			continue
		}
		if err := pj.Build(&send.Shape, &recv.Shape); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InitWeights initializes all neurons and synapses to their initial
// state from their parameters.
func (nt *Network) InitWeights() {
	for _, pop := range nt.Populations {
		pop.InitNeurons()
	}
	for _, pj := range nt.Projections {
		pj.InitWeights()
	}
}

// Defaults sets default parameters for all populations and projections.
func (nt *Network) Defaults() {
	for _, pop := range nt.Populations {
		pop.Defaults()
	}
	for _, pj := range nt.Projections {
		pj.Defaults()
	}
}

// UpdateParams updates all the derived parameters if any have changed.
func (nt *Network) UpdateParams() {
	for _, pop := range nt.Populations {
		pop.UpdateParams()
	}
	for _, pj := range nt.Projections {
		pj.UpdateParams()
	}
}

// ApplyParams applies given parameter sheets to all populations and
// projections (either sheet can be nil), and validates the result.
// Call InitWeights afterwards for the new values to take effect
// on neurons and synapses.
func (nt *Network) ApplyParams(popSheet *PopulationSheet, pjSheet *ProjectionSheet) error {
	var errs []error
	for _, pop := range nt.Populations {
		if popSheet != nil {
			popSheet.Apply(pop)
		}
		pop.UpdateParams()
		if err := pop.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, pj := range nt.Projections {
		if pjSheet != nil {
			pjSheet.Apply(pj)
		}
		pj.UpdateParams()
		if err := pj.Validate(false); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Log(errors.Join(errs...))
}

// InitModulators resets the dopamine and forcing signals of all populations.
func (nt *Network) InitModulators() {
	for _, pop := range nt.Populations {
		pop.InitModulators()
	}
}

// SendDA sends dopamine to the named populations,
// or all populations if no names are given.
func (nt *Network) SendDA(da float32, names ...string) {
	if len(names) == 0 {
		for _, pop := range nt.Populations {
			pop.SetDA(da)
		}
		return
	}
	for _, nm := range names {
		pop := nt.PopulationByName(nm)
		if pop == nil {
			log.Printf("Network SendDA: population %q not found in network %q\n", nm, nt.Name)
			continue
		}
		pop.SetDA(da)
	}
}

// DeliverSpikes passes the spike messages of a step to all projections
// (calling their WeightUpdater hooks), and returns the resulting
// synaptic impacts of each projection, in projection order.
func (nt *Network) DeliverSpikes(msgs []SpikeMessage, step uint64) ([][]SynapticImpact, error) {
	nt.FunTimerStart("DeliverSpikes")
	defer nt.FunTimerStop("DeliverSpikes")
	imps := make([][]SynapticImpact, len(nt.Projections))
	for pi, pj := range nt.Projections {
		im, err := pj.RecvSpikes(msgs, step)
		if err != nil {
			return imps, errors.Log(err)
		}
		imps[pi] = im
	}
	return imps, nil
}

// PopulationMessage returns a single message with the spikes of given
// population in msgs, or nil if the population did not spike.
func PopulationMessage(pop *Population, msgs []SpikeMessage, step uint64) *SpikeMessage {
	var pm *SpikeMessage
	for mi := range msgs {
		msg := &msgs[mi]
		if msg.Header.SenderID != pop.ID {
			continue
		}
		if pm == nil {
			pm = NewSpikeMessage(pop, step)
		}
		pm.NeuronIndexes = append(pm.NeuronIndexes, msg.NeuronIndexes...)
	}
	return pm
}

// LearnStep runs PlasticityStep on every population for given step,
// using the projections of LearnType onto it that are not locked, and the
// spikes of that population in msgs. With NThreads > 1, populations are
// processed in parallel, as each projection has exactly one receiving
// population. All errors are returned together.
func (nt *Network) LearnStep(step uint64, msgs []SpikeMessage) error {
	nt.FunTimerStart("LearnStep")
	defer nt.FunTimerStop("LearnStep")
	for mi := range msgs {
		if nt.PopulationByID(msgs[mi].Header.SenderID) == nil {
			return errors.Log(fmt.Errorf("message from %v not in network %q: %w", msgs[mi].Header.SenderID, nt.Name, ErrInvalidSpike))
		}
	}
	errs := make([]error, len(nt.Populations))
	learn := func(pi int) {
		pop := nt.Populations[pi]
		pjs, err := FindProjections(nt.Projections, nt.LearnType, pop.ID, true)
		if err != nil {
			errs[pi] = err
			return
		}
		errs[pi] = PlasticityStep(pop, pjs, PopulationMessage(pop, msgs, step), step)
	}
	np := len(nt.Populations)
	if nt.NThreads <= 1 || np <= 1 {
		for pi := range np {
			learn(pi)
		}
	} else {
		var wg sync.WaitGroup
		nthr := min(nt.NThreads, np)
		for th := range nthr {
			wg.Add(1)
			go func(th int) {
				defer wg.Done()
				for pi := th; pi < np; pi += nthr {
					learn(pi)
				}
			}(th)
		}
		wg.Wait()
	}
	err := errors.Join(errs...)
	if IsFatal(err) {
		return errors.Log(err)
	}
	return err
}

// Step runs one full step: spike delivery through the projections,
// learning on all populations, and the reset of the modulators.
// The modulators are reset even if the step fails.
// Returns the synaptic impacts of each projection.
func (nt *Network) Step(step uint64, msgs []SpikeMessage) ([][]SynapticImpact, error) {
	defer nt.InitModulators()
	imps, err := nt.DeliverSpikes(msgs, step)
	if err != nil {
		return imps, err
	}
	err = nt.LearnStep(step, msgs)
	return imps, err
}

//////// Timing reports

// FunTimerStart starts function timer for given function name, ensures creation of timer
func (nt *Network) FunTimerStart(fun string) {
	if nt.FunTimes == nil {
		nt.FunTimes = make(map[string]*timer.Time)
	}
	ft, ok := nt.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		nt.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer, timer must already exist
func (nt *Network) FunTimerStop(fun string) {
	ft := nt.FunTimes[fun]
	ft.Stop()
}

// TimerReport returns a report of the amount of time spent in each function.
func (nt *Network) TimerReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TimerReport: %v, NThreads: %v\n", nt.Name, nt.NThreads)
	fmt.Fprintf(&b, "\t%13s \t%7s\t%7s\n", "Function Name", "Secs", "Pct")
	fnms := make([]string, 0, len(nt.FunTimes))
	for k := range nt.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	secs := make([]float64, len(fnms))
	tot := 0.0
	for i, fn := range fnms {
		secs[i] = nt.FunTimes[fn].Total.Seconds()
		tot += secs[i]
	}
	for i, fn := range fnms {
		pct := 0.0
		if tot > 0 {
			pct = 100 * (secs[i] / tot)
		}
		fmt.Fprintf(&b, "\t%13s \t%7.3f\t%7.1f\n", fn, secs[i], pct)
	}
	fmt.Fprintf(&b, "\t%13s \t%7.3f\n", "Total", tot)
	return b.String()
}

// SizeReport returns a string reporting the size of each population and
// projection in the network, and total memory footprint.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	neur := 0
	neurMem := 0
	syn := 0
	synMem := 0
	for _, pop := range nt.Populations {
		nn := len(pop.Neurons)
		nmem := nn * int(unsafe.Sizeof(Neuron{}))
		neur += nn
		neurMem += nmem
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t NeurMem: %v \t Recvs From:\n", pop.Name, nn, (datasize.ByteSize)(nmem).HumanReadable())
		for _, pj := range nt.Projections {
			if pj.RecvID != pop.ID {
				continue
			}
			ns := len(pj.Syns)
			syn += ns
			pmem := ns*int(unsafe.Sizeof(Synapse{})) + 4*(len(pj.RConIndex)+len(pj.RSynIndex)+len(pj.SConIndex))
			synMem += pmem
			fmt.Fprintf(&b, "\t%14s:\t Syns: %d\t SynnMem: %v\n", pj.Name, ns, (datasize.ByteSize)(pmem).HumanReadable())
		}
	}
	fmt.Fprintf(&b, "\n\n%14s:\t Neurons: %d\t NeurMem: %v \t Syns: %d \t SynMem: %v\n", nt.Name, neur, (datasize.ByteSize)(neurMem).HumanReadable(), syn, (datasize.ByteSize)(synMem).HumanReadable())
	return b.String()
}
