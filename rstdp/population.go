// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import (
	"fmt"

	"cogentcore.org/core/math32"
	"cogentcore.org/lab/tensor"
	"github.com/google/uuid"
)

// Population is an ordered, index-addressable collection of neurons
// that learn with the synaptic resource rule.
type Population struct {

	// unique identifier, used by projections to refer to this population.
	ID uuid.UUID

	// name of the population, must be unique within a network.
	Name string

	// space-separated class names for parameter styling.
	Class string

	// shape of the population; the number of neurons is Shape.Len().
	Shape tensor.Shape

	// initial learning parameters for all neurons.
	Params NeuronParams `display:"add-fields"`

	// slice of neurons for this population, as a flat list of len = Shape.Len().
	// Must iterate over index and use pointer to modify values.
	Neurons []Neuron
}

// NewPopulation returns a new population with given name and shape,
// with default parameters. Call Build to allocate the neurons.
func NewPopulation(name string, shape ...int) *Population {
	pop := &Population{ID: uuid.New(), Name: name}
	pop.Shape.SetShapeSizes(shape...)
	pop.Defaults()
	return pop
}

// StyleClass implements the params.Styler interface.
func (pop *Population) StyleClass() string { return pop.Class }

// StyleName implements the params.Styler interface.
func (pop *Population) StyleName() string { return pop.Name }

// AddClass adds a CSS-style class name(s) for this population,
// ensuring that it is not a duplicate, and properly space separated.
func (pop *Population) AddClass(cls ...string) *Population {
	for _, cl := range cls {
		if pop.Class == "" {
			pop.Class = cl
		} else {
			pop.Class += " " + cl
		}
	}
	return pop
}

func (pop *Population) Defaults() {
	pop.Params.Defaults()
}

// UpdateParams updates all params given any changes that might have been made to individual values
func (pop *Population) UpdateParams() {
	pop.Params.Update()
}

// Validate checks the population parameters and the state of all neurons.
func (pop *Population) Validate() error {
	if err := pop.Params.Validate(); err != nil {
		return fmt.Errorf("population %q: %w", pop.Name, err)
	}
	for ni := range pop.Neurons {
		nrn := &pop.Neurons[ni]
		if nrn.ResDrain < 0 {
			return fmt.Errorf("population %q neuron %d: ResDrain %g < 0: %w", pop.Name, ni, nrn.ResDrain, ErrConfiguration)
		}
	}
	return nil
}

// Build allocates and initializes the neurons.
func (pop *Population) Build() error {
	if err := pop.Params.Validate(); err != nil {
		return fmt.Errorf("population %q: %w", pop.Name, err)
	}
	pop.Neurons = make([]Neuron, pop.Shape.Len())
	pop.InitNeurons()
	return nil
}

// InitNeurons initializes all neurons from Params.
func (pop *Population) InitNeurons() {
	for ni := range pop.Neurons {
		pop.Params.InitNeuron(&pop.Neurons[ni])
	}
}

// Size returns the number of neurons.
func (pop *Population) Size() int {
	return len(pop.Neurons)
}

// Neuron returns the neuron at given index for modification.
func (pop *Population) Neuron(idx int) *Neuron {
	return &pop.Neurons[idx]
}

// SetDA sets the dopamine value of all neurons.
func (pop *Population) SetDA(da float32) {
	for ni := range pop.Neurons {
		pop.Neurons[ni].DA = da
	}
}

// SetForced marks given neurons as being forced on this step.
func (pop *Population) SetForced(idxs ...int) {
	for _, ni := range idxs {
		pop.Neurons[ni].IsBeingForced = true
	}
}

// InitModulators resets the dopamine and forcing signals of all neurons,
// typically at the start of each step.
func (pop *Population) InitModulators() {
	for ni := range pop.Neurons {
		pop.Neurons[ni].InitModulators()
	}
}

// NormalizeNeurons calls given function on every neuron, e.g., to
// rescale parameters after loading.
func (pop *Population) NormalizeNeurons(fun func(nrn *Neuron)) {
	for ni := range pop.Neurons {
		fun(&pop.Neurons[ni])
	}
}

// UnitValues fills in values of given variable name on neurons,
// into given float32 slice (only resized if not big enough).
// Returns error on invalid var name.
func (pop *Population) UnitValues(vals *[]float32, varNm string) error {
	nn := len(pop.Neurons)
	if *vals == nil || cap(*vals) < nn {
		*vals = make([]float32, nn)
	} else if len(*vals) < nn {
		*vals = (*vals)[0:nn]
	}
	vidx, err := NeuronVarIndexByName(varNm)
	if err != nil {
		for i := range *vals {
			(*vals)[i] = math32.NaN()
		}
		return err
	}
	for ni := range pop.Neurons {
		(*vals)[ni] = pop.Neurons[ni].VarByIndex(vidx)
	}
	return nil
}

// String satisfies fmt.Stringer for population
func (pop *Population) String() string {
	return fmt.Sprintf("%s (%d neurons)", pop.Name, len(pop.Neurons))
}
