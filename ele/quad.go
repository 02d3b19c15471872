// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// PressureLoad is a uniform lateral pressure on a plate, positive along the
// plate's local normal
type PressureLoad struct {
	P    float64 // magnitude (force per unit area)
	Case string  // load case tag
}

// Quad represents a 4-node plate/shell element combining a plane-stress
// membrane with a Mindlin-Reissner bending formulation. Selective reduced
// integration is used for the transverse shear terms (2x2 Gauss for
// membrane and bending, 1x1 for shear) to avoid shear locking. The drilling
// rotation carries a small stabilization stiffness.
//
// Triangles are handled as degenerate quads: the last corner is repeated
// and the duplicated equations are summed during assembly.
type Quad struct {

	// basic data
	Id    int         // index in the model
	Name  string      // identifier given at the build API
	Nodes []int       // [4] node indices in the model (tri: last repeated)
	X     [][]float64 // matrix of nodal coordinates [3][4]
	IsTri bool

	// parameters and properties
	E, Nu float64 // material
	Th    float64 // thickness
	Rho   float64 // density

	// loads
	PressLoads []PressureLoad

	// derived
	e0, e1, e2 []float64   // local axes (e2 = plate normal)
	xl         [][]float64 // [4][2] corner coordinates in the local plane
	Area       float64
	T          [][]float64 // global-to-local transformation [24][24]
	Kl         [][]float64 // local K [24][24]
	K          [][]float64 // global K [24][24]

	// problem variables
	Umap []int // assembly map [24]
}

// corner natural coordinates
var quadNat = [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// 2x2 Gauss rule
var gauss2 = []float64{-1.0 / math.Sqrt(3.0), 1.0 / math.Sqrt(3.0)}

// shapeQ4 evaluates bilinear shape functions and natural derivatives
func shapeQ4(ξ, η float64, S []float64, dSdR [][]float64) {
	for m := 0; m < 4; m++ {
		ξm, ηm := quadNat[m][0], quadNat[m][1]
		S[m] = 0.25 * (1.0 + ξ*ξm) * (1.0 + η*ηm)
		dSdR[m][0] = 0.25 * ξm * (1.0 + η*ηm)
		dSdR[m][1] = 0.25 * ηm * (1.0 + ξ*ξm)
	}
}

// Recompute computes local axes, the element stiffness matrix and the
// transformation to global coordinates
func (o *Quad) Recompute() (err error) {

	// local axes: e0 along corner 0 -> 1; normal from the corner diagonals
	o.e0 = make([]float64, 3)
	o.e1 = make([]float64, 3)
	o.e2 = make([]float64, 3)
	v01 := make([]float64, 3)
	v03 := make([]float64, 3)
	k3 := 3
	if o.IsTri {
		k3 = 2
	}
	for i := 0; i < 3; i++ {
		v01[i] = o.X[i][1] - o.X[i][0]
		v03[i] = o.X[i][k3] - o.X[i][0]
	}
	utl.Cross3d(o.e2, v01, v03) // e2 := v01 cross v03
	n2 := la.VecNorm(o.e2)
	n0 := la.VecNorm(v01)
	if n2 < MinLength || n0 < MinLength {
		return errDegenerate(o.Name)
	}
	for i := 0; i < 3; i++ {
		o.e2[i] /= n2
		o.e0[i] = v01[i] / n0
	}
	utl.Cross3d(o.e1, o.e2, o.e0) // e1 := e2 cross e0

	// corner coordinates in the local plane
	o.xl = la.MatAlloc(4, 2)
	for m := 0; m < 4; m++ {
		var dx [3]float64
		for i := 0; i < 3; i++ {
			dx[i] = o.X[i][m] - o.X[i][0]
		}
		o.xl[m][0] = dx[0]*o.e0[0] + dx[1]*o.e0[1] + dx[2]*o.e0[2]
		o.xl[m][1] = dx[0]*o.e1[0] + dx[1]*o.e1[1] + dx[2]*o.e1[2]
	}

	// transformation matrix: 8 diagonal 3x3 blocks
	o.T = la.MatAlloc(24, 24)
	for k := 0; k < 8; k++ {
		o.T[3*k+0][3*k+0], o.T[3*k+0][3*k+1], o.T[3*k+0][3*k+2] = o.e0[0], o.e0[1], o.e0[2]
		o.T[3*k+1][3*k+0], o.T[3*k+1][3*k+1], o.T[3*k+1][3*k+2] = o.e1[0], o.e1[1], o.e1[2]
		o.T[3*k+2][3*k+0], o.T[3*k+2][3*k+1], o.T[3*k+2][3*k+2] = o.e2[0], o.e2[1], o.e2[2]
	}

	// constitutive matrices
	t := o.Th
	cm := o.E * t / (1.0 - o.Nu*o.Nu)
	cb := o.E * t * t * t / (12.0 * (1.0 - o.Nu*o.Nu))
	cs := 5.0 / 6.0 * o.E / (2.0 * (1.0 + o.Nu)) * t
	Dm := [][]float64{
		{cm, cm * o.Nu, 0},
		{cm * o.Nu, cm, 0},
		{0, 0, cm * (1.0 - o.Nu) / 2.0},
	}
	Db := [][]float64{
		{cb, cb * o.Nu, 0},
		{cb * o.Nu, cb, 0},
		{0, 0, cb * (1.0 - o.Nu) / 2.0},
	}

	// scratchpad
	S := make([]float64, 4)
	dSdR := la.MatAlloc(4, 2)
	dSdx := la.MatAlloc(4, 2)

	// integrate membrane and bending at 2x2 Gauss points
	o.Kl = la.MatAlloc(24, 24)
	o.Area = 0.0
	for _, ξ := range gauss2 {
		for _, η := range gauss2 {
			detJ, ok := o.calcGrads(ξ, η, S, dSdR, dSdx)
			if !ok {
				return errDegenerate(o.Name)
			}
			o.Area += detJ
			o.addMembrane(Dm, dSdx, detJ)
			o.addBending(Db, dSdx, detJ)
		}
	}

	// transverse shear at the centre (reduced integration)
	detJ, ok := o.calcGrads(0, 0, S, dSdR, dSdx)
	if !ok {
		return errDegenerate(o.Name)
	}
	o.addShear(cs, S, dSdx, 4.0*detJ)

	// drilling stabilization: small diagonal stiffness relative to the
	// largest bending/membrane entry
	kmax := 0.0
	for i := 0; i < 24; i++ {
		if o.Kl[i][i] > kmax {
			kmax = o.Kl[i][i]
		}
	}
	kdr := 1e-8 * kmax
	for m := 0; m < 4; m++ {
		o.Kl[6*m+5][6*m+5] += kdr
	}

	// global stiffness
	o.K = la.MatAlloc(24, 24)
	la.MatTrMul3(o.K, 1, o.T, o.Kl, o.T) // K := 1 * trans(T) * Kl * T
	return
}

// calcGrads computes shape functions, cartesian gradients and the Jacobian
// determinant at a natural coordinate pair
func (o *Quad) calcGrads(ξ, η float64, S []float64, dSdR, dSdx [][]float64) (detJ float64, ok bool) {
	shapeQ4(ξ, η, S, dSdR)
	var j00, j01, j10, j11 float64
	for m := 0; m < 4; m++ {
		j00 += dSdR[m][0] * o.xl[m][0]
		j01 += dSdR[m][0] * o.xl[m][1]
		j10 += dSdR[m][1] * o.xl[m][0]
		j11 += dSdR[m][1] * o.xl[m][1]
	}
	detJ = j00*j11 - j01*j10
	if detJ < MinLength {
		return 0, false
	}
	i00, i01 := j11/detJ, -j01/detJ
	i10, i11 := -j10/detJ, j00/detJ
	for m := 0; m < 4; m++ {
		dSdx[m][0] = dSdR[m][0]*i00 + dSdR[m][1]*i10
		dSdx[m][1] = dSdR[m][0]*i01 + dSdR[m][1]*i11
	}
	return detJ, true
}

// addMembrane accumulates the plane-stress membrane contribution.
// Membrane DOFs per node: u (6m+0), v (6m+1).
func (o *Quad) addMembrane(Dm, dSdx [][]float64, detJ float64) {
	var Bm, Bn [3][2]float64
	for m := 0; m < 4; m++ {
		Bm[0][0], Bm[1][1] = dSdx[m][0], dSdx[m][1]
		Bm[2][0], Bm[2][1] = dSdx[m][1], dSdx[m][0]
		for n := 0; n < 4; n++ {
			Bn[0][0], Bn[1][1] = dSdx[n][0], dSdx[n][1]
			Bn[2][0], Bn[2][1] = dSdx[n][1], dSdx[n][0]
			for a := 0; a < 2; a++ {
				for b := 0; b < 2; b++ {
					s := 0.0
					for p := 0; p < 3; p++ {
						for q := 0; q < 3; q++ {
							s += Bm[p][a] * Dm[p][q] * Bn[q][b]
						}
					}
					o.Kl[6*m+a][6*n+b] += s * detJ
				}
			}
		}
	}
}

// bendingB fills the curvature matrix row block of node m.
// Bending DOFs per node: w (6m+2), θx (6m+3), θy (6m+4), with
// κ = {dθy/dx, -dθx/dy, dθy/dy - dθx/dx}.
func bendingB(B *[3][3]float64, dSdx [][]float64, m int) {
	B[0][0], B[0][1], B[0][2] = 0, 0, dSdx[m][0]
	B[1][0], B[1][1], B[1][2] = 0, -dSdx[m][1], 0
	B[2][0], B[2][1], B[2][2] = 0, -dSdx[m][0], dSdx[m][1]
}

// addBending accumulates the plate bending contribution
func (o *Quad) addBending(Db, dSdx [][]float64, detJ float64) {
	var Bm, Bn [3][3]float64
	for m := 0; m < 4; m++ {
		bendingB(&Bm, dSdx, m)
		for n := 0; n < 4; n++ {
			bendingB(&Bn, dSdx, n)
			for a := 0; a < 3; a++ {
				for b := 0; b < 3; b++ {
					s := 0.0
					for p := 0; p < 3; p++ {
						for q := 0; q < 3; q++ {
							s += Bm[p][a] * Db[p][q] * Bn[q][b]
						}
					}
					o.Kl[6*m+2+a][6*n+2+b] += s * detJ
				}
			}
		}
	}
}

// addShear accumulates the transverse shear contribution with
// γ = {dw/dx + θy, dw/dy - θx}
func (o *Quad) addShear(cs float64, S []float64, dSdx [][]float64, w float64) {
	var Bm, Bn [2][3]float64
	for m := 0; m < 4; m++ {
		Bm[0][0], Bm[0][1], Bm[0][2] = dSdx[m][0], 0, S[m]
		Bm[1][0], Bm[1][1], Bm[1][2] = dSdx[m][1], -S[m], 0
		for n := 0; n < 4; n++ {
			Bn[0][0], Bn[0][1], Bn[0][2] = dSdx[n][0], 0, S[n]
			Bn[1][0], Bn[1][1], Bn[1][2] = dSdx[n][1], -S[n], 0
			for a := 0; a < 3; a++ {
				for b := 0; b < 3; b++ {
					s := cs * (Bm[0][a]*Bn[0][b] + Bm[1][a]*Bn[1][b])
					o.Kl[6*m+2+a][6*n+2+b] += s * w
				}
			}
		}
	}
}

// SetEqs sets the assembly map from the four node equation offsets.
// Triangles pass the same offsets for the repeated corner.
func (o *Quad) SetEqs(eqs [][]int) {
	chk.IntAssert(len(eqs), 4)
	o.Umap = make([]int, 24)
	for m := 0; m < 4; m++ {
		chk.IntAssert(len(eqs[m]), 6)
		for i := 0; i < 6; i++ {
			o.Umap[6*m+i] = eqs[m][i]
		}
	}
}

// AddToKb adds α times the quad's global stiffness to the triplet
func (o *Quad) AddToKb(Kb *la.Triplet, α float64) {
	for i, I := range o.Umap {
		for j, J := range o.Umap {
			Kb.Put(I, J, α*o.K[i][j])
		}
	}
}

// AddToRhs adds the combination-scaled pressure loads as equivalent nodal
// forces (global system) to the right-hand side vector
func (o *Quad) AddToRhs(fb []float64, factors map[string]float64) {
	p := 0.0
	for i := range o.PressLoads {
		ld := &o.PressLoads[i]
		if f, ok := factors[ld.Case]; ok {
			p += f * ld.P
		}
	}
	if p == 0 {
		return
	}
	S := make([]float64, 4)
	dSdR := la.MatAlloc(4, 2)
	dSdx := la.MatAlloc(4, 2)
	fe := make([]float64, 24)
	for _, ξ := range gauss2 {
		for _, η := range gauss2 {
			detJ, ok := o.calcGrads(ξ, η, S, dSdR, dSdx)
			if !ok {
				continue
			}
			for m := 0; m < 4; m++ {
				fe[6*m+2] += p * S[m] * detJ
			}
		}
	}
	fg := make([]float64, 24)
	la.MatTrVecMulAdd(fg, 1, o.T, fe) // fg += trans(T) * fe
	for i, I := range o.Umap {
		fb[I] += fg[i]
	}
}

// LocalDisp computes the local displacement vector from the global solution
func (o *Quad) LocalDisp(y []float64) (ul []float64) {
	ug := make([]float64, 24)
	for i, I := range o.Umap {
		ug[i] = y[I]
	}
	ul = make([]float64, 24)
	la.MatVecMul(ul, 1, o.T, ug) // ul := T * ug
	return
}

// StressResultants evaluates membrane forces, bending moments and shear
// forces (per unit width, local system) at the natural coordinates ξ,η
func (o *Quad) StressResultants(y []float64, ξ, η float64) (Nx, Ny, Nxy, Mx, My, Mxy, Qx, Qy float64) {
	ul := o.LocalDisp(y)
	S := make([]float64, 4)
	dSdR := la.MatAlloc(4, 2)
	dSdx := la.MatAlloc(4, 2)
	if _, ok := o.calcGrads(ξ, η, S, dSdR, dSdx); !ok {
		return
	}

	// strains and curvatures
	var εx, εy, γxy, κx, κy, κxy, γxz, γyz float64
	for m := 0; m < 4; m++ {
		u, v := ul[6*m+0], ul[6*m+1]
		w, θx, θy := ul[6*m+2], ul[6*m+3], ul[6*m+4]
		εx += dSdx[m][0] * u
		εy += dSdx[m][1] * v
		γxy += dSdx[m][1]*u + dSdx[m][0]*v
		κx += dSdx[m][0] * θy
		κy += -dSdx[m][1] * θx
		κxy += dSdx[m][1]*θy - dSdx[m][0]*θx
		γxz += dSdx[m][0]*w + S[m]*θy
		γyz += dSdx[m][1]*w - S[m]*θx
	}

	t := o.Th
	cm := o.E * t / (1.0 - o.Nu*o.Nu)
	cb := o.E * t * t * t / (12.0 * (1.0 - o.Nu*o.Nu))
	cs := 5.0 / 6.0 * o.E / (2.0 * (1.0 + o.Nu)) * t
	Nx = cm * (εx + o.Nu*εy)
	Ny = cm * (εy + o.Nu*εx)
	Nxy = cm * (1.0 - o.Nu) / 2.0 * γxy
	Mx = cb * (κx + o.Nu*κy)
	My = cb * (κy + o.Nu*κx)
	Mxy = cb * (1.0 - o.Nu) / 2.0 * κxy
	Qx = cs * γxz
	Qy = cs * γyz
	return
}
