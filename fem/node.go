// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the model container, DOF numbering and the
// direct-stiffness solver
package fem

// NodalLoad is a concentrated load applied directly to a node, given in the
// global system
type NodalLoad struct {
	Dof  int     // 0..5: fx, fy, fz, mx, my, mz
	P    float64 // magnitude
	Case string  // load case tag
}

// Node holds one point of the model with 6 degrees of freedom. Supports,
// ground springs and enforced displacements are defined per DOF.
type Node struct {

	// basic data
	Id   int       // index in the model
	Name string    // identifier given at the build API
	X    []float64 // coordinates [3]

	// boundary conditions
	Sup     [6]bool    // support flags
	SprK    [6]float64 // ground spring stiffness (0 means none)
	SprAct  [6]bool    // ground spring participates
	EnfDisp [6]float64 // enforced displacement values
	HasEnf  [6]bool    // enforced displacement flags

	// loads
	Loads []NodalLoad

	// derived
	Eqs []int // equation numbers [6]
}

// Restrained tells whether the DOF has a prescribed displacement, either
// from a support (zero) or from an enforced value
func (o *Node) Restrained(dof int) bool {
	return o.Sup[dof] || o.HasEnf[dof]
}

// Prescribed returns the prescribed displacement of a restrained DOF
func (o *Node) Prescribed(dof int) float64 {
	if o.HasEnf[dof] {
		return o.EnfDisp[dof]
	}
	return 0
}

// CoordMatrix builds the [3][nnodes] coordinate matrix the elements take,
// one column per node
func CoordMatrix(nodes ...*Node) (x [][]float64) {
	x = make([][]float64, 3)
	for i := 0; i < 3; i++ {
		x[i] = make([]float64, len(nodes))
		for j, n := range nodes {
			x[i][j] = n.X[i]
		}
	}
	return
}
