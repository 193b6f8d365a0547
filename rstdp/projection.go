// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstdp

import (
	"errors"
	"fmt"
	"log"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/math32/minmax"
	"cogentcore.org/lab/tensor"
	"github.com/emer/emergent/v2/paths"
	"github.com/google/uuid"
)

// note: projection.go has the container infrastructure; learn.go has the
// learning algorithm operating on it.

// Projection is the set of synapses from a sending to a receiving population.
// Populations are referred to by identifier only. Synapses are stored in a
// flat arena ordered by sending neuron, and are addressed by int32 handles.
type Projection struct {

	// unique identifier.
	ID uuid.UUID

	// name of the projection.
	Name string

	// space-separated class names for parameter styling.
	Class string

	// identifier of the sending (presynaptic) population.
	SendID uuid.UUID

	// identifier of the receiving (postsynaptic) population.
	RecvID uuid.UUID

	// synapse representation type, which selects the WeightUpdater.
	Type SynapseTypes

	// if true, the projection is structurally frozen and is excluded
	// from learning. This is a topology lock only.
	Locked bool

	// connectivity pattern.
	Pattern paths.Pattern `json:"-"`

	// initial synapse parameters.
	Params SynParams `display:"add-fields"`

	// synaptic state values, ordered by the sending population
	// units which owns them -- one-to-one with SConIndex array.
	Syns []Synapse

	// number of recv connections for each neuron in the receiving population,
	// as a flat list.
	RConN []int32 `display:"-"`

	// average and maximum number of recv connections in the receiving population.
	RConNAvgMax minmax.AvgMax32 `edit:"-" display:"inline"`

	// starting index into ConIndex list for each neuron in
	// receiving population; list incremented by ConN.
	RConIndexSt []int32 `display:"-"`

	// index of other neuron on sending side of projection,
	// ordered by the receiving population's order of units as the
	// outer loop (each start is in ConIndexSt),
	// and then by the sending population's units within that.
	RConIndex []int32 `display:"-"`

	// index of synaptic state values for each recv unit x connection,
	// indexing into the sender-ordered Syns.
	RSynIndex []int32 `display:"-"`

	// number of sending connections for each neuron in the
	// sending population, as a flat list.
	SConN []int32 `display:"-"`

	// average and maximum number of sending connections
	// in the sending population.
	SConNAvgMax minmax.AvgMax32 `edit:"-" display:"inline"`

	// starting index into ConIndex list for each neuron in
	// sending population; list incremented by ConN.
	SConIndexSt []int32 `display:"-"`

	// index of other neuron on receiving side of projection,
	// ordered by the sending population's order of units as the
	// outer loop (each start is in ConIndexSt), and then
	// by the receiving population's units within that.
	SConIndex []int32 `display:"-"`
}

// NewProjection returns a new projection between given populations,
// with default parameters. Call Build to construct the synapses.
func NewProjection(send, recv *Population, pat paths.Pattern, typ SynapseTypes) *Projection {
	pj := &Projection{ID: uuid.New()}
	pj.Connect(send, recv, pat, typ)
	pj.Defaults()
	return pj
}

// StyleClass implements the params.Styler interface.
// The synapse type is always included as a class.
func (pj *Projection) StyleClass() string {
	if pj.Class == "" {
		return pj.Type.String()
	}
	return pj.Type.String() + " " + pj.Class
}

// StyleName implements the params.Styler interface.
func (pj *Projection) StyleName() string { return pj.Name }

// AddClass adds a CSS-style class name(s) for this projection.
func (pj *Projection) AddClass(cls ...string) *Projection {
	for _, cl := range cls {
		if pj.Class == "" {
			pj.Class = cl
		} else {
			pj.Class += " " + cl
		}
	}
	return pj
}

func (pj *Projection) Defaults() {
	pj.Params.Defaults()
}

// UpdateParams updates all params given any changes that might have been made to individual values
func (pj *Projection) UpdateParams() {
	pj.Params.Update()
}

// IsLocked returns true if the projection is structurally locked.
func (pj *Projection) IsLocked() bool { return pj.Locked }

// Connect sets the populations and the pattern to use in interconnecting them.
func (pj *Projection) Connect(send, recv *Population, pat paths.Pattern, typ SynapseTypes) {
	pj.SendID = send.ID
	pj.RecvID = recv.ID
	pj.Pattern = pat
	pj.Type = typ
	pj.Name = send.Name + "To" + recv.Name
}

// Validate tests for non-nil settings and valid parameters for the
// projection -- returns error message or nil if no problems
// (and logs them if logmsg = true)
func (pj *Projection) Validate(logmsg bool) error {
	emsg := ""
	if pj.Pattern == nil {
		emsg += "Pattern is nil; "
	}
	if pj.RecvID == uuid.Nil {
		emsg += "RecvID is nil; "
	}
	if pj.SendID == uuid.Nil {
		emsg += "SendID is nil; "
	}
	var err error
	if emsg != "" {
		err = errors.New(emsg)
	}
	if perr := pj.Params.Validate(); perr != nil {
		err = errors.Join(err, fmt.Errorf("projection %q: %w", pj.Name, perr))
	}
	for si := range pj.Syns {
		rl := &pj.Syns[si].Rule
		if rl.WMin > rl.WMax {
			err = errors.Join(err, fmt.Errorf("projection %q synapse %d: WMin %g > WMax %g: %w", pj.Name, si, rl.WMin, rl.WMax, ErrConfiguration))
			break
		}
	}
	if err != nil && logmsg {
		log.Println(err)
	}
	return err
}

// Build constructs the full connectivity between the given sending and
// receiving population shapes, according to the Pattern, and initializes
// the synapses.
func (pj *Projection) Build(send, recv *tensor.Shape) error {
	err := pj.Validate(true)
	if err != nil {
		return err
	}
	sendn, recvn, cons := pj.Pattern.Connect(send, recv, pj.SendID == pj.RecvID)
	slen := send.Len()
	rlen := recv.Len()
	tcons := pj.SetNIndexSt(&pj.SConN, &pj.SConNAvgMax, &pj.SConIndexSt, sendn)
	tconr := pj.SetNIndexSt(&pj.RConN, &pj.RConNAvgMax, &pj.RConIndexSt, recvn)
	if tconr != tcons {
		log.Printf("%v programmer error: total recv cons %v != total send cons %v\n", pj.String(), tconr, tcons)
	}
	pj.RConIndex = make([]int32, tconr)
	pj.RSynIndex = make([]int32, tconr)
	pj.SConIndex = make([]int32, tcons)

	sconN := make([]int32, slen) // temporary mem needed to tracks cur n of sending cons

	cbits := cons.Values
	for ri := 0; ri < rlen; ri++ {
		rbi := ri * slen     // recv bit index
		rtcn := pj.RConN[ri] // number of cons
		rst := pj.RConIndexSt[ri]
		rci := int32(0)
		for si := 0; si < slen; si++ {
			if !cbits.Index(rbi + si) { // no connection
				continue
			}
			sst := pj.SConIndexSt[si]
			if rci >= rtcn {
				log.Printf("%v programmer error: recv target total con number: %v exceeded at recv idx: %v, send idx: %v\n", pj.String(), rtcn, ri, si)
				break
			}
			pj.RConIndex[rst+rci] = int32(si)

			sci := sconN[si]
			stcn := pj.SConN[si]
			if sci >= stcn {
				log.Printf("%v programmer error: send target total con number: %v exceeded at recv idx: %v, send idx: %v\n", pj.String(), stcn, ri, si)
				break
			}
			pj.SConIndex[sst+sci] = int32(ri)
			pj.RSynIndex[rst+rci] = sst + sci
			(sconN[si])++
			rci++
		}
	}
	pj.Syns = make([]Synapse, len(pj.SConIndex))
	pj.InitWeights()
	return nil
}

// SetNIndexSt sets the *ConN and *ConIndexSt values given n tensor from Pattern.
// Returns total number of connections for this direction.
func (pj *Projection) SetNIndexSt(n *[]int32, avgmax *minmax.AvgMax32, idxst *[]int32, tn *tensor.Int32) int32 {
	ln := tn.Len()
	tnv := tn.Values
	*n = make([]int32, ln)
	*idxst = make([]int32, ln)
	idx := int32(0)
	avgmax.Init()
	for i := 0; i < ln; i++ {
		nv := tnv[i]
		(*n)[i] = nv
		(*idxst)[i] = idx
		idx += nv
		avgmax.UpdateValue(float32(nv), int32(i))
	}
	avgmax.CalcAvg()
	return idx
}

// InitWeights initializes all synapses from Params.
func (pj *Projection) InitWeights() {
	for si := range pj.Syns {
		pj.Params.InitSyn(&pj.Syns[si])
	}
}

// NumSyns returns the number of synapses for this projection.
func (pj *Projection) NumSyns() int {
	return len(pj.Syns)
}

// Synapse returns the synapse for given handle (index into Syns).
func (pj *Projection) Synapse(h int32) *Synapse {
	return &pj.Syns[h]
}

// SynapsesByRecv returns the handles of all synapses onto given
// receiving neuron. The returned slice must not be modified.
func (pj *Projection) SynapsesByRecv(ri int) []int32 {
	if ri < 0 || ri >= len(pj.RConN) {
		return nil
	}
	nc := pj.RConN[ri]
	st := pj.RConIndexSt[ri]
	return pj.RSynIndex[st : st+nc]
}

// SynapsesBySend returns the synapses from given sending neuron, which are
// contiguous in Syns, together with their receiving neuron indexes.
func (pj *Projection) SynapsesBySend(si int) ([]Synapse, []int32) {
	if si < 0 || si >= len(pj.SConN) {
		return nil, nil
	}
	nc := pj.SConN[si]
	st := pj.SConIndexSt[si]
	return pj.Syns[st : st+nc], pj.SConIndex[st : st+nc]
}

// SynIndex returns the index of the synapse between given send, recv unit indexes
// (1D, flat indexes). Returns -1 if synapse not found between these two neurons.
func (pj *Projection) SynIndex(sidx, ridx int) int {
	nc := int(pj.SConN[sidx])
	st := int(pj.SConIndexSt[sidx])
	for ci := 0; ci < nc; ci++ {
		ri := int(pj.SConIndex[st+ci])
		if ri != ridx {
			continue
		}
		return int(st + ci)
	}
	return -1
}

// SynValue returns value of given variable name on the synapse
// between given send, recv unit indexes (1D, flat indexes).
// Returns math32.NaN() for access errors.
func (pj *Projection) SynValue(varNm string, sidx, ridx int) float32 {
	vidx, err := SynapseVarByName(varNm)
	if err != nil {
		return math32.NaN()
	}
	synIndex := pj.SynIndex(sidx, ridx)
	if synIndex < 0 {
		return math32.NaN()
	}
	return pj.Syns[synIndex].VarByIndex(vidx)
}

// SynValues sets values of given variable name for each synapse,
// using the natural ordering of the synapses (sender based),
// into given float32 slice (only resized if not big enough).
// Returns error on invalid var name.
func (pj *Projection) SynValues(vals *[]float32, varNm string) error {
	vidx, err := SynapseVarByName(varNm)
	if err != nil {
		return err
	}
	ns := len(pj.Syns)
	if *vals == nil || cap(*vals) < ns {
		*vals = make([]float32, ns)
	} else if len(*vals) < ns {
		*vals = (*vals)[0:ns]
	}
	for i := range pj.Syns {
		(*vals)[i] = pj.Syns[i].VarByIndex(vidx)
	}
	return nil
}

// NormalizeSynapses calls given function on every synapse, e.g., to rescale
// resource or weight ranges.
func (pj *Projection) NormalizeSynapses(fun func(sy *Synapse)) {
	for si := range pj.Syns {
		fun(&pj.Syns[si])
	}
}

// String satisfies fmt.Stringer for projection
func (pj *Projection) String() string {
	str := pj.Name
	if pj.Pattern == nil {
		str += " Pat=nil"
	} else {
		str += " Pat=" + pj.Pattern.Name()
	}
	return str
}
