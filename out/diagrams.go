// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out samples internal forces and deflections along solved members
// for diagramming
package out

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/gofea/gofea/ele"
	"github.com/gofea/gofea/fem"
)

// Diagram holds per-station samples along one member for one combination.
// Stations run from end i to end j and always include every load position,
// so kinks and jumps are captured exactly.
//
// Sign conventions (local system): axial tension positive; the bending
// moment of a sagging 0-1 plane span under negative (downward) load is
// negative.
type Diagram struct {
	Member string
	Combo  string
	Active bool // tension/compression-only members may be switched off

	X  []float64 // stations measured from end i
	N  []float64 // axial force
	T  []float64 // torsion moment
	V1 []float64 // shear in the 0-1 plane
	M2 []float64 // bending moment in the 0-1 plane (about axis 2)
	V2 []float64 // shear in the 0-2 plane
	M1 []float64 // bending moment in the 0-2 plane (about axis 1)
	D1 []float64 // transverse deflection along axis 1
	D2 []float64 // transverse deflection along axis 2
}

// Member samples one member of a solved combination at nsta evenly spaced
// stations plus every load discontinuity. The model is not mutated.
func Member(m *fem.Model, memberName, combo string, nsta int) (dg *Diagram, err error) {
	mb := m.GetMember(memberName)
	if mb == nil {
		return nil, chk.Err("unknown member %q", memberName)
	}
	y := m.Res.Disp(combo)
	if y == nil {
		return nil, chk.Err("combination %q has no results", combo)
	}
	if nsta < 2 {
		nsta = 2
	}
	c := m.Combos.Get(combo)

	dg = &Diagram{
		Member: memberName,
		Combo:  combo,
		Active: m.Res.MemberActive(combo, mb.Id),
		X:      stations(mb, c.Factors, nsta),
	}
	n := len(dg.X)
	dg.N = make([]float64, n)
	dg.T = make([]float64, n)
	dg.V1 = make([]float64, n)
	dg.M2 = make([]float64, n)
	dg.V2 = make([]float64, n)
	dg.M1 = make([]float64, n)
	dg.D1 = make([]float64, n)
	dg.D2 = make([]float64, n)

	ul := mb.CondensedDisp(y, c.Factors)
	for k, x := range dg.X {
		dg.D1[k] = deflection(mb, c.Factors, ul, x, 1)
		dg.D2[k] = deflection(mb, c.Factors, ul, x, 2)
	}

	// an inactive member carries no internal forces
	if !dg.Active {
		return
	}
	r := mb.EndForcesLocal(y, c.Factors)
	for k, x := range dg.X {
		dg.N[k] = -(r[0] + accumForce(mb, c.Factors, x, ele.DirAxial))
		dg.T[k] = -(r[3] + accumForce(mb, c.Factors, x, ele.DirTor))
		dg.V1[k] = -(r[1] + accumForce(mb, c.Factors, x, ele.Dir1))
		dg.V2[k] = -(r[2] + accumForce(mb, c.Factors, x, ele.Dir2))
		dg.M2[k] = -(r[5] + r[1]*x + accumMoment(mb, c.Factors, x, ele.Dir1, ele.DirM2, 1))
		dg.M1[k] = -(-r[4] + r[2]*x + accumMoment(mb, c.Factors, x, ele.Dir2, ele.DirM1, -1))
	}
	return
}

// PlateResultants holds membrane and bending stress resultants sampled at
// one natural-coordinate position of a plate element
type PlateResultants struct {
	Quad  string
	Combo string

	Nx, Ny, Nxy float64 // membrane forces per unit length
	Mx, My, Mxy float64 // bending/twisting moments per unit length
	Qx, Qy      float64 // transverse shears per unit length
}

// Plate samples the stress resultants of a plate element of a solved
// combination at natural coordinates ξ,η ∈ [-1,1]
func Plate(m *fem.Model, quadName, combo string, ξ, η float64) (*PlateResultants, error) {
	q := m.GetQuad(quadName)
	if q == nil {
		return nil, chk.Err("unknown plate element %q", quadName)
	}
	y := m.Res.Disp(combo)
	if y == nil {
		return nil, chk.Err("combination %q has no results", combo)
	}
	pr := &PlateResultants{Quad: quadName, Combo: combo}
	pr.Nx, pr.Ny, pr.Nxy, pr.Mx, pr.My, pr.Mxy, pr.Qx, pr.Qy = q.StressResultants(y, ξ, η)
	return pr, nil
}

// stations merges nsta evenly spaced points with every load position of
// the combination's cases
func stations(mb *ele.Member, factors map[string]float64, nsta int) (xs []float64) {
	xs = utl.LinSpace(0, mb.L, nsta)
	add := func(x float64) {
		if x < 0 || x > mb.L {
			return
		}
		for _, v := range xs {
			if math.Abs(v-x) < 1e-9*mb.L {
				return
			}
		}
		xs = append(xs, x)
	}
	for _, ld := range mb.PtLoads {
		if _, ok := factors[ld.Case]; ok {
			add(ld.X)
		}
	}
	for _, ld := range mb.DistLoads {
		if _, ok := factors[ld.Case]; ok {
			add(ld.X1)
			add(ld.X2)
		}
	}
	sort.Float64s(xs)
	return
}

// accumForce sums the combination-scaled loads of one local direction
// applied between end i and position x
func accumForce(mb *ele.Member, factors map[string]float64, x float64, dir int) (sum float64) {
	for _, ld := range mb.PtLoads {
		f, ok := factors[ld.Case]
		if !ok || ld.Dir != dir || ld.X > x {
			continue
		}
		sum += f * ld.P
	}
	for _, ld := range mb.DistLoads {
		f, ok := factors[ld.Case]
		if !ok || ld.Dir != dir || ld.X1 >= x {
			continue
		}
		sum += f * distInt(&ld, math.Min(x, ld.X2), 0, 0)
	}
	return
}

// accumMoment sums the moment of the loads on segment [0,x] about the
// station at x: transverse forces enter with lever arm (x-a), applied
// concentrated moments enter directly with the plane's sign
func accumMoment(mb *ele.Member, factors map[string]float64, x float64, dir, mdir int, s float64) (sum float64) {
	for _, ld := range mb.PtLoads {
		f, ok := factors[ld.Case]
		if !ok || ld.X > x {
			continue
		}
		switch ld.Dir {
		case dir:
			sum += f * ld.P * (x - ld.X)
		case mdir:
			sum += s * f * ld.P
		}
	}
	for _, ld := range mb.DistLoads {
		f, ok := factors[ld.Case]
		if !ok || ld.Dir != dir || ld.X1 >= x {
			continue
		}
		sum += f * distInt(&ld, math.Min(x, ld.X2), x, 1)
	}
	return
}

// distInt integrates the linearly varying load intensity from X1 to u:
// order 0 gives the resultant, order 1 gives its moment about position x
func distInt(ld *ele.DistLoad, u, x float64, order int) float64 {
	span := ld.X2 - ld.X1
	a := ld.W1 - (ld.W2-ld.W1)*ld.X1/span
	b := (ld.W2 - ld.W1) / span
	f0 := func(s float64) float64 { return a*s + b*s*s/2.0 }
	if order == 0 {
		return f0(u) - f0(ld.X1)
	}
	// ∫ (a+b·s)(x-s) ds
	f1 := func(s float64) float64 {
		return a*x*s - a*s*s/2.0 + b*x*s*s/2.0 - b*s*s*s/3.0
	}
	return f1(u) - f1(ld.X1)
}

// deflection evaluates the transverse deflection at x in the given
// bending plane: cubic interpolation of the end displacements plus the
// clamped-clamped particular solution of the span loads
func deflection(mb *ele.Member, factors map[string]float64, ul []float64, x float64, plane int) float64 {
	n1, n2, n3, n4, _, _, _, _ := ele.Hermite(x, mb.L)
	var v float64
	if plane == 1 {
		v = n1*ul[1] + n2*ul[5] + n3*ul[7] + n4*ul[11]
	} else {
		v = n1*ul[2] - n2*ul[4] + n3*ul[8] - n4*ul[10]
	}
	ei := mb.E * mb.I22
	dir := ele.Dir1
	if plane == 2 {
		ei = mb.E * mb.I11
		dir = ele.Dir2
	}
	if ei <= 0 {
		return v
	}
	for _, ld := range mb.PtLoads {
		f, ok := factors[ld.Case]
		if !ok || ld.Dir != dir {
			continue
		}
		v += f * ld.P * clampedUnit(x, ld.X, mb.L) / ei
	}
	for _, ld := range mb.DistLoads {
		f, ok := factors[ld.Case]
		if !ok || ld.Dir != dir {
			continue
		}
		// split at the station: the influence function has a kink there
		v += f / ei * (gaussClamped(&ld, x, ld.X1, math.Min(x, ld.X2), mb.L) +
			gaussClamped(&ld, x, math.Max(x, ld.X1), ld.X2, mb.L))
	}
	return v
}

// clampedUnit is E·I times the deflection at x of a clamped-clamped beam
// of length l under a unit transverse load at a
func clampedUnit(x, a, l float64) float64 {
	if x > a {
		x, a = l-x, l-a
	}
	b := l - a
	return b * b * x * x * (3.0*a*l - (3.0*a+b)*x) / (6.0 * l * l * l)
}

// gaussClamped integrates intensity(a)·clampedUnit(x,a) over [lo,hi]
func gaussClamped(ld *ele.DistLoad, x, lo, hi, l float64) (sum float64) {
	if hi <= lo {
		return 0
	}
	span := ld.X2 - ld.X1
	half := (hi - lo) / 2.0
	mid := (lo + hi) / 2.0
	for k := 0; k < len(ele.GaussXi); k++ {
		a := mid + half*ele.GaussXi[k]
		w := ld.W1 + (ld.W2-ld.W1)*(a-ld.X1)/span
		sum += w * clampedUnit(x, a, l) * ele.GaussW[k] * half
	}
	return
}
