// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements the element stiffness formulations: frame members,
// plate/shell quads and springs
package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Nonlinearity selects the axial activity rule of a member
type Nonlinearity int

const (
	NonlinNone      Nonlinearity = iota // member is always active
	TensionOnly                         // member carries tension only
	CompressionOnly                     // member carries compression only
)

// Member represents a 3D structural frame element (Euler-Bernoulli by
// default; Timoshenko shear correction when the section carries shear
// correction factors)
//
//          y1
//           ^           local system
//           |
//           o--------------------------------o ------> y0
//         (0)                               (1)
//          ,'
//        y2
//
//  Local DOF order: {u0, u1, u2, r0, r1, r2}_i + {u0, u1, u2, r0, r1, r2}_j
//  Bending in the y0-y1 plane uses I22; bending in the y0-y2 plane uses I11.
type Member struct {

	// basic data
	Id   int         // index in the model
	Name string      // identifier given at the build API
	X    [][]float64 // matrix of nodal coordinates [3][2]
	Ni   int         // node i index in the model
	Nj   int         // node j index in the model

	// parameters and properties
	E, G             float64 // material
	A, I22, I11, Jtt float64 // section
	Scf2, Scf1       float64 // shear correction factors (0 disables)
	Rho              float64 // density (for self-weight generation)
	Psi              float64 // roll angle about the member axis [rad]
	Rel              [12]bool
	Nonlin           Nonlinearity
	PtLoads          []PointLoad
	DistLoads        []DistLoad

	// derived
	L          float64     // length
	e0, e1, e2 []float64   // unit vectors of the local system
	T          [][]float64 // global-to-local transformation [12][12]
	Kl         [][]float64 // local K (after release condensation) [12][12]
	K          [][]float64 // global K [12][12]

	// release condensation data
	hasRel bool
	keep   []int       // kept local DOF indices
	rel    []int       // released local DOF indices
	iKbb   [][]float64 // inverse of the released-released block
	Kab    [][]float64 // kept-released coupling block

	// problem variables
	Umap []int // assembly map (location array/element equations)
}

// Recompute computes length, local axes, transformation and stiffness
// matrices. It must be called after geometry, properties or releases change.
func (o *Member) Recompute() (err error) {

	// length and axial unit vector
	o.e0 = make([]float64, 3)
	o.e1 = make([]float64, 3)
	o.e2 = make([]float64, 3)
	dx := make([]float64, 3)
	o.L = 0.0
	for i := 0; i < 3; i++ {
		dx[i] = o.X[i][1] - o.X[i][0]
		o.L += dx[i] * dx[i]
	}
	o.L = math.Sqrt(o.L)
	if o.L < MinLength {
		return errZeroLength(o.Name)
	}
	for i := 0; i < 3; i++ {
		o.e0[i] = dx[i] / o.L
	}

	// reference vector for the local 1-axis: global z, or global x for
	// vertical members
	ref := []float64{0, 0, 1}
	if math.Abs(o.e0[0]) < VerticalTol && math.Abs(o.e0[1]) < VerticalTol {
		ref = []float64{1, 0, 0}
	}

	// e1 := normalized projection of ref onto the plane normal to e0
	dot := ref[0]*o.e0[0] + ref[1]*o.e0[1] + ref[2]*o.e0[2]
	for i := 0; i < 3; i++ {
		o.e1[i] = ref[i] - dot*o.e0[i]
	}
	n1 := la.VecNorm(o.e1)
	for i := 0; i < 3; i++ {
		o.e1[i] /= n1
	}
	utl.Cross3d(o.e2, o.e0, o.e1) // e2 := e0 cross e1

	// roll rotation about e0
	if o.Psi != 0 {
		c, s := math.Cos(o.Psi), math.Sin(o.Psi)
		b1 := make([]float64, 3)
		b2 := make([]float64, 3)
		for i := 0; i < 3; i++ {
			b1[i] = c*o.e1[i] + s*o.e2[i]
			b2[i] = -s*o.e1[i] + c*o.e2[i]
		}
		o.e1, o.e2 = b1, b2
	}

	// global-to-local transformation matrix
	o.T = la.MatAlloc(12, 12)
	for k := 0; k < 4; k++ {
		o.T[3*k+0][3*k+0], o.T[3*k+0][3*k+1], o.T[3*k+0][3*k+2] = o.e0[0], o.e0[1], o.e0[2]
		o.T[3*k+1][3*k+0], o.T[3*k+1][3*k+1], o.T[3*k+1][3*k+2] = o.e1[0], o.e1[1], o.e1[2]
		o.T[3*k+2][3*k+0], o.T[3*k+2][3*k+1], o.T[3*k+2][3*k+2] = o.e2[0], o.e2[1], o.e2[2]
	}

	// stiffness
	o.Kl = o.CalcKl()
	err = o.condense()
	if err != nil {
		return
	}
	o.K = la.MatAlloc(12, 12)
	la.MatTrMul3(o.K, 1, o.T, o.Kl, o.T) // K := 1 * trans(T) * Kl * T
	return
}

// CalcKl computes the local stiffness matrix (before release condensation).
// Pure function: no member state is modified.
func (o *Member) CalcKl() (Kl [][]float64) {

	// constants
	EIr := o.E * o.I22
	EIs := o.E * o.I11
	GJ := o.G * o.Jtt
	EA := o.E * o.A
	l := o.L
	ll := l * l
	lll := l * ll

	// shear deformation parameters
	var ϕr, ϕs float64
	if o.Scf2 > 0 {
		ϕr = 12.0 * EIr * o.Scf2 / (o.G * o.A * ll)
	}
	if o.Scf1 > 0 {
		ϕs = 12.0 * EIs * o.Scf1 / (o.G * o.A * ll)
	}
	mr := 1.0 / (1.0 + ϕr)
	ms := 1.0 / (1.0 + ϕs)

	Kl = la.MatAlloc(12, 12)

	Kl[0][0] = EA / l
	Kl[0][6] = -EA / l

	Kl[1][1] = mr * 12.0 * EIr / lll
	Kl[1][5] = mr * 6.0 * EIr / ll
	Kl[1][7] = -mr * 12.0 * EIr / lll
	Kl[1][11] = mr * 6.0 * EIr / ll

	Kl[2][2] = ms * 12.0 * EIs / lll
	Kl[2][4] = -ms * 6.0 * EIs / ll
	Kl[2][8] = -ms * 12.0 * EIs / lll
	Kl[2][10] = -ms * 6.0 * EIs / ll

	Kl[3][3] = GJ / l
	Kl[3][9] = -GJ / l

	Kl[4][2] = -ms * 6.0 * EIs / ll
	Kl[4][4] = (4.0 + ϕs) * ms * EIs / l
	Kl[4][8] = ms * 6.0 * EIs / ll
	Kl[4][10] = (2.0 - ϕs) * ms * EIs / l

	Kl[5][1] = mr * 6.0 * EIr / ll
	Kl[5][5] = (4.0 + ϕr) * mr * EIr / l
	Kl[5][7] = -mr * 6.0 * EIr / ll
	Kl[5][11] = (2.0 - ϕr) * mr * EIr / l

	Kl[6][0] = -EA / l
	Kl[6][6] = EA / l

	Kl[7][1] = -mr * 12.0 * EIr / lll
	Kl[7][5] = -mr * 6.0 * EIr / ll
	Kl[7][7] = mr * 12.0 * EIr / lll
	Kl[7][11] = -mr * 6.0 * EIr / ll

	Kl[8][2] = -ms * 12.0 * EIs / lll
	Kl[8][4] = ms * 6.0 * EIs / ll
	Kl[8][8] = ms * 12.0 * EIs / lll
	Kl[8][10] = ms * 6.0 * EIs / ll

	Kl[9][3] = -GJ / l
	Kl[9][9] = GJ / l

	Kl[10][2] = -ms * 6.0 * EIs / ll
	Kl[10][4] = (2.0 - ϕs) * ms * EIs / l
	Kl[10][8] = ms * 6.0 * EIs / ll
	Kl[10][10] = (4.0 + ϕs) * ms * EIs / l

	Kl[11][1] = mr * 6.0 * EIr / ll
	Kl[11][5] = (2.0 - ϕr) * mr * EIr / l
	Kl[11][7] = -mr * 6.0 * EIr / ll
	Kl[11][11] = (4.0 + ϕr) * mr * EIr / l
	return
}

// condense applies end releases to Kl by static condensation of the
// released DOFs. Released rows and columns end up zeroed; the load transfer
// to the remaining DOFs is preserved via the iKbb and Kab blocks, which are
// also needed to condense equivalent nodal force vectors.
func (o *Member) condense() (err error) {
	o.keep = o.keep[:0]
	o.rel = o.rel[:0]
	for i := 0; i < 12; i++ {
		if o.Rel[i] {
			o.rel = append(o.rel, i)
		} else {
			o.keep = append(o.keep, i)
		}
	}
	o.hasRel = len(o.rel) > 0
	if !o.hasRel {
		return
	}

	na, nb := len(o.keep), len(o.rel)
	Kaa := la.MatAlloc(na, na)
	o.Kab = la.MatAlloc(na, nb)
	Kbb := la.MatAlloc(nb, nb)
	for i, I := range o.keep {
		for j, J := range o.keep {
			Kaa[i][j] = o.Kl[I][J]
		}
		for j, J := range o.rel {
			o.Kab[i][j] = o.Kl[I][J]
		}
	}
	for i, I := range o.rel {
		for j, J := range o.rel {
			Kbb[i][j] = o.Kl[I][J]
		}
	}

	// a released DOF pair forming a mechanism (e.g. axial release at both
	// ends) makes Kbb singular
	o.iKbb = la.MatAlloc(nb, nb)
	err = la.MatInvG(o.iKbb, Kbb, 1e-13)
	if err != nil {
		return errReleaseMechanism(o.Name)
	}

	// Kcond := Kaa - Kab * inv(Kbb) * trans(Kab)
	tmp := la.MatAlloc(na, nb)
	la.MatMul(tmp, 1, o.Kab, o.iKbb)
	cond := la.MatAlloc(12, 12)
	for i, I := range o.keep {
		for j, J := range o.keep {
			s := Kaa[i][j]
			for k := 0; k < nb; k++ {
				s -= tmp[i][k] * o.Kab[j][k]
			}
			cond[I][J] = s
		}
	}
	o.Kl = cond
	return
}

// CondenseF returns the local equivalent nodal force vector with released
// DOFs condensed out: fa' = fa - Kab * inv(Kbb) * fb
func (o *Member) CondenseF(fl []float64) []float64 {
	if !o.hasRel {
		return fl
	}
	nb := len(o.rel)
	fb := make([]float64, nb)
	for i, I := range o.rel {
		fb[i] = fl[I]
	}
	out := make([]float64, 12)
	for i, I := range o.keep {
		s := fl[I]
		for j := 0; j < nb; j++ {
			for k := 0; k < nb; k++ {
				s -= o.Kab[i][j] * o.iKbb[j][k] * fb[k]
			}
		}
		out[I] = s
	}
	return out
}

// SetEqs sets the assembly map from the two node equation offsets
func (o *Member) SetEqs(eqsI, eqsJ []int) {
	chk.IntAssert(len(eqsI), 6)
	chk.IntAssert(len(eqsJ), 6)
	o.Umap = make([]int, 12)
	for i := 0; i < 6; i++ {
		o.Umap[i] = eqsI[i]
		o.Umap[6+i] = eqsJ[i]
	}
}

// AddToKb adds α times the member's global stiffness to the triplet
func (o *Member) AddToKb(Kb *la.Triplet, α float64) {
	for i, I := range o.Umap {
		for j, J := range o.Umap {
			Kb.Put(I, J, α*o.K[i][j])
		}
	}
}

// LocalDisp computes the local displacement vector from the global solution
func (o *Member) LocalDisp(y []float64) (ul []float64) {
	ug := make([]float64, 12)
	for i, I := range o.Umap {
		ug[i] = y[I]
	}
	ul = make([]float64, 12)
	la.MatVecMul(ul, 1, o.T, ug) // ul := T * ug
	return
}

// CondensedDisp returns the local displacement vector with released DOFs
// recovered from the condensation blocks:
//  ub = inv(Kbb) * (fe_b - trans(Kab)*ua)
// The node value at a released DOF is not the member's: a hinged end
// rotates with the member, not with the node.
func (o *Member) CondensedDisp(y []float64, factors map[string]float64) (ul []float64) {
	ul = o.LocalDisp(y)
	if !o.hasRel {
		return
	}
	fe := o.EquivForcesLocal(factors)
	nb := len(o.rel)
	g := make([]float64, nb)
	for i, I := range o.rel {
		g[i] = fe[I]
		for j, J := range o.keep {
			g[i] -= o.Kab[j][i] * ul[J]
		}
	}
	for i, I := range o.rel {
		s := 0.0
		for k := 0; k < nb; k++ {
			s += o.iKbb[i][k] * g[k]
		}
		ul[I] = s
	}
	return
}

// EndForcesLocal computes the member end forces in the local system:
// r = Kl*ul - fe, with fe the (condensed) equivalent nodal forces of the
// case loads scaled by the combination factors
func (o *Member) EndForcesLocal(y []float64, factors map[string]float64) (r []float64) {
	ul := o.LocalDisp(y)
	r = make([]float64, 12)
	la.MatVecMul(r, 1, o.Kl, ul) // r := Kl * ul
	fe := o.CondenseF(o.EquivForcesLocal(factors))
	for i := 0; i < 12; i++ {
		r[i] -= fe[i]
	}
	return
}

// AxialForce returns the internal axial force (tension positive) for the
// given solved displacements and combination factors
func (o *Member) AxialForce(y []float64, factors map[string]float64) float64 {
	r := o.EndForcesLocal(y, factors)
	return r[6]
}

// Elongation returns the change of length for the given global solution.
// Used to re-activate tension/compression-only members during the
// activity iteration, where the axial force of an inactive member is
// meaningless.
func (o *Member) Elongation(y []float64) float64 {
	ul := o.LocalDisp(y)
	return ul[6] - ul[0]
}
