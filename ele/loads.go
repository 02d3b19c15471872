// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// constants
const (
	MinLength   = 1e-12 // minimum member length allowed
	VerticalTol = 1e-9  // tolerance to detect vertical members
)

// Local load directions
const (
	DirAxial = iota // 0: force along local 0-axis
	Dir1            // 1: force along local 1-axis
	Dir2            // 2: force along local 2-axis
	DirTor          // 3: moment about local 0-axis
	DirM1           // 4: moment about local 1-axis
	DirM2           // 5: moment about local 2-axis
)

// PointLoad is a concentrated member load given in the local system
type PointLoad struct {
	Dir  int     // local direction: DirAxial..DirM2
	P    float64 // magnitude
	X    float64 // position measured from end i
	Case string  // load case tag
}

// DistLoad is a linearly varying distributed member load in the local system
type DistLoad struct {
	Dir    int     // local direction: DirAxial, Dir1 or Dir2
	W1, W2 float64 // start/end magnitudes (force per unit length)
	X1, X2 float64 // start/end positions measured from end i
	Case   string  // load case tag
}

// 5-point Gauss-Legendre rule on [-1,1]; exact for the polynomial
// integrands produced by the Hermite influence functions times a linear
// load variation
var GaussXi = []float64{
	-0.9061798459386640, -0.5384693101056831, 0.0,
	0.5384693101056831, 0.9061798459386640,
}
var GaussW = []float64{
	0.2369268850561891, 0.4786286704993665, 0.5688888888888889,
	0.4786286704993665, 0.2369268850561891,
}

// Hermite evaluates the cubic beam shape functions and their first
// derivatives at position x of a member with length l
func Hermite(x, l float64) (n1, n2, n3, n4, d1, d2, d3, d4 float64) {
	ξ := x / l
	ξ2 := ξ * ξ
	ξ3 := ξ2 * ξ
	n1 = 1.0 - 3.0*ξ2 + 2.0*ξ3
	n2 = l * (ξ - 2.0*ξ2 + ξ3)
	n3 = 3.0*ξ2 - 2.0*ξ3
	n4 = l * (ξ3 - ξ2)
	d1 = (-6.0*ξ + 6.0*ξ2) / l
	d2 = 1.0 - 4.0*ξ + 3.0*ξ2
	d3 = (6.0*ξ - 6.0*ξ2) / l
	d4 = 3.0*ξ2 - 2.0*ξ
	return
}

// addPointForces accumulates the consistent nodal forces of a concentrated
// load into the local force vector fe
func (o *Member) addPointForces(fe []float64, dir int, p, x float64) {
	l := o.L
	n1, n2, n3, n4, d1, d2, d3, d4 := Hermite(x, l)
	ξ := x / l
	switch dir {
	case DirAxial:
		fe[0] += p * (1.0 - ξ)
		fe[6] += p * ξ
	case Dir1:
		fe[1] += p * n1
		fe[5] += p * n2
		fe[7] += p * n3
		fe[11] += p * n4
	case Dir2:
		// the 0-2 bending plane uses the opposite rotation sign
		fe[2] += p * n1
		fe[4] -= p * n2
		fe[8] += p * n3
		fe[10] -= p * n4
	case DirTor:
		fe[3] += p * (1.0 - ξ)
		fe[9] += p * ξ
	case DirM1:
		fe[2] -= p * d1
		fe[4] += p * d2
		fe[8] -= p * d3
		fe[10] += p * d4
	case DirM2:
		fe[1] += p * d1
		fe[5] += p * d2
		fe[7] += p * d3
		fe[11] += p * d4
	default:
		chk.Panic("point load direction %d is invalid", dir)
	}
}

// addDistForces accumulates the consistent nodal forces of a linearly
// varying distributed load by Gauss integration of the point-load
// influence functions over the loaded span
func (o *Member) addDistForces(fe []float64, ld *DistLoad) {
	span := ld.X2 - ld.X1
	if span <= 0 {
		return
	}
	half := span / 2.0
	mid := (ld.X1 + ld.X2) / 2.0
	for k := 0; k < len(GaussXi); k++ {
		x := mid + half*GaussXi[k]
		ξ := (x - ld.X1) / span
		w := ld.W1 + (ld.W2-ld.W1)*ξ
		o.addPointForces(fe, ld.Dir, w*GaussW[k]*half, x)
	}
}

// EquivForcesLocal computes the local equivalent nodal force vector from
// all case-tagged loads scaled by the combination factors. Cases absent
// from the factor map contribute nothing.
func (o *Member) EquivForcesLocal(factors map[string]float64) (fe []float64) {
	fe = make([]float64, 12)
	for i := range o.PtLoads {
		ld := &o.PtLoads[i]
		f, ok := factors[ld.Case]
		if !ok || f == 0 {
			continue
		}
		o.addPointForces(fe, ld.Dir, f*ld.P, ld.X)
	}
	for i := range o.DistLoads {
		ld := &o.DistLoads[i]
		f, ok := factors[ld.Case]
		if !ok || f == 0 {
			continue
		}
		scaled := *ld
		scaled.W1 *= f
		scaled.W2 *= f
		o.addDistForces(fe, &scaled)
	}
	return
}

// AddToRhs adds the member's combination-scaled equivalent nodal forces
// (global system) to the right-hand side vector
func (o *Member) AddToRhs(fb []float64, factors map[string]float64) {
	fe := o.CondenseF(o.EquivForcesLocal(factors))
	fg := make([]float64, 12)
	la.MatTrVecMulAdd(fg, 1, o.T, fe) // fg += trans(T) * fe
	for i, I := range o.Umap {
		fb[I] += fg[i]
	}
}

// AddSelfWeight appends distributed loads equivalent to the member weight
// acting along global -z, tagged with the given case
func (o *Member) AddSelfWeight(caseTag string, gravity float64) {
	w := o.Rho * o.A * gravity // force per unit length, along global -z
	// project -z onto the local directions
	o.DistLoads = append(o.DistLoads,
		DistLoad{Dir: DirAxial, W1: -w * o.e0[2], W2: -w * o.e0[2], X1: 0, X2: o.L, Case: caseTag},
		DistLoad{Dir: Dir1, W1: -w * o.e1[2], W2: -w * o.e1[2], X1: 0, X2: o.L, Case: caseTag},
		DistLoad{Dir: Dir2, W1: -w * o.e2[2], W2: -w * o.e2[2], X1: 0, X2: o.L, Case: caseTag},
	)
}
