// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Spring represents a two-node axial spring acting along the line that
// connects its end nodes. Only the translational DOFs participate.
type Spring struct {

	// basic data
	Id     int         // index in the model
	Name   string      // identifier given at the build API
	Ni, Nj int         // node indices in the model
	X      [][]float64 // matrix of nodal coordinates [3][2]

	// parameters
	Ks     float64      // axial stiffness (force per unit elongation)
	Nonlin Nonlinearity // tension-only / compression-only activity rule

	// derived
	L float64     // undeformed length
	d []float64   // unit direction from node i to node j
	K [][]float64 // global stiffness [6][6]

	// problem variables
	Umap []int // assembly map [6]
}

// Recompute computes the direction cosines and the stiffness matrix
func (o *Spring) Recompute() (err error) {
	o.d = make([]float64, 3)
	for i := 0; i < 3; i++ {
		o.d[i] = o.X[i][1] - o.X[i][0]
	}
	o.L = la.VecNorm(o.d)
	if o.L < MinLength {
		return errZeroLength(o.Name)
	}
	for i := 0; i < 3; i++ {
		o.d[i] /= o.L
	}
	o.K = la.MatAlloc(6, 6)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			kij := o.Ks * o.d[i] * o.d[j]
			o.K[i][j] = kij
			o.K[i+3][j+3] = kij
			o.K[i][j+3] = -kij
			o.K[i+3][j] = -kij
		}
	}
	return
}

// SetEqs sets the assembly map from the translational equation numbers of
// both end nodes
func (o *Spring) SetEqs(eqsI, eqsJ []int) {
	chk.IntAssert(len(eqsI), 3)
	chk.IntAssert(len(eqsJ), 3)
	o.Umap = make([]int, 6)
	for i := 0; i < 3; i++ {
		o.Umap[i] = eqsI[i]
		o.Umap[3+i] = eqsJ[i]
	}
}

// AddToKb adds α times the spring's global stiffness to the triplet
func (o *Spring) AddToKb(Kb *la.Triplet, α float64) {
	for i, I := range o.Umap {
		for j, J := range o.Umap {
			Kb.Put(I, J, α*o.K[i][j])
		}
	}
}

// Elongation computes the change in length from the global solution.
// Positive values correspond to stretching.
func (o *Spring) Elongation(y []float64) (δ float64) {
	for i := 0; i < 3; i++ {
		δ += o.d[i] * (y[o.Umap[3+i]] - y[o.Umap[i]])
	}
	return
}

// AxialForce computes the spring force (tension positive)
func (o *Spring) AxialForce(y []float64) float64 {
	return o.Ks * o.Elongation(y)
}
