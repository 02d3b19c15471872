// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// unit square in the x-y plane, E=100, ν=0.25, t=0.1
func newTestQuad() *Quad {
	return &Quad{
		Name:  "Q1",
		Nodes: []int{0, 1, 2, 3},
		X: [][]float64{
			{0, 1, 1, 0},
			{0, 0, 1, 1},
			{0, 0, 0, 0},
		},
		E: 100, Nu: 0.25, Th: 0.1,
	}
}

func quadEqs() [][]int {
	eqs := make([][]int, 4)
	all := utl.IntRange(24)
	for m := 0; m < 4; m++ {
		eqs[m] = all[6*m : 6*m+6]
	}
	return eqs
}

func Test_quad01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("quad01. geometry and symmetry")

	q := newTestQuad()
	err := q.Recompute()
	if err != nil {
		tst.Errorf("Recompute failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "area", 1e-14, q.Area, 1.0)
	chk.Vector(tst, "e2", 1e-15, q.e2, []float64{0, 0, 1})
	for i := 0; i < 24; i++ {
		for j := i + 1; j < 24; j++ {
			chk.Scalar(tst, "Kl sym", 1e-12, q.Kl[i][j], q.Kl[j][i])
		}
	}

	// collapsed nodes must fail
	b := newTestQuad()
	b.X = [][]float64{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}
	err = b.Recompute()
	if err == nil {
		tst.Errorf("degenerate quad should have failed\n")
	}
}

func Test_quad02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("quad02. rigid body modes")

	q := newTestQuad()
	err := q.Recompute()
	if err != nil {
		tst.Errorf("Recompute failed:\n%v", err)
		return
	}

	// translations along x, y, z produce no forces
	for dof := 0; dof < 3; dof++ {
		u := make([]float64, 24)
		for m := 0; m < 4; m++ {
			u[6*m+dof] = 1.0
		}
		f := make([]float64, 24)
		for i := 0; i < 24; i++ {
			for j := 0; j < 24; j++ {
				f[i] += q.K[i][j] * u[j]
			}
		}
		for i := 0; i < 24; i++ {
			chk.Scalar(tst, "rigid translation", 1e-11, f[i], 0)
		}
	}

	// rigid rotation about the x-axis through the origin:
	// w = y*θ, θx = θ at all nodes
	θ := 1e-3
	u := make([]float64, 24)
	for m := 0; m < 4; m++ {
		u[6*m+2] = q.X[1][m] * θ
		u[6*m+3] = θ
	}
	f := make([]float64, 24)
	for i := 0; i < 24; i++ {
		for j := 0; j < 24; j++ {
			f[i] += q.K[i][j] * u[j]
		}
	}
	for i := 0; i < 24; i++ {
		chk.Scalar(tst, "rigid rotation", 1e-11, f[i], 0)
	}
}

func Test_quad03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("quad03. membrane patch")

	// uniaxial strain εx with v=0 everywhere gives
	// σx = E εx/(1-ν²) and σy = ν σx
	q := newTestQuad()
	err := q.Recompute()
	if err != nil {
		tst.Errorf("Recompute failed:\n%v", err)
		return
	}
	q.SetEqs(quadEqs())

	εx := 1e-3
	y := make([]float64, 24)
	for m := 0; m < 4; m++ {
		y[6*m] = εx * q.X[0][m]
	}
	Nx, Ny, Nxy, _, _, _, _, _ := q.StressResultants(y, 0, 0)
	cm := q.E * q.Th / (1.0 - q.Nu*q.Nu)
	chk.Scalar(tst, "Nx", 1e-14, Nx, cm*εx)
	chk.Scalar(tst, "Ny", 1e-14, Ny, cm*q.Nu*εx)
	chk.Scalar(tst, "Nxy", 1e-15, Nxy, 0)

	// edge forces from f = K·u: the loaded edge carries σx·t split half
	// and half between its corners
	f := make([]float64, 24)
	for i := 0; i < 24; i++ {
		for j := 0; j < 24; j++ {
			f[i] += q.K[i][j] * y[j]
		}
	}
	chk.Scalar(tst, "corner 1 fx", 1e-13, f[6], cm*εx/2.0)
	chk.Scalar(tst, "corner 2 fx", 1e-13, f[12], cm*εx/2.0)
	chk.Scalar(tst, "corner 0 fx", 1e-13, f[0], -cm*εx/2.0)
}

func Test_quad04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("quad04. constant curvature")

	// pure bending: w = κx²/2, θy = -κx keeps the transverse shear zero
	// and produces Mx = -D κ
	q := newTestQuad()
	err := q.Recompute()
	if err != nil {
		tst.Errorf("Recompute failed:\n%v", err)
		return
	}
	q.SetEqs(quadEqs())

	κ := 1e-3
	y := make([]float64, 24)
	for m := 0; m < 4; m++ {
		x := q.X[0][m]
		y[6*m+2] = κ * x * x / 2.0
		y[6*m+4] = -κ * x
	}
	_, _, _, Mx, My, _, Qx, Qy := q.StressResultants(y, 0, 0)
	D := q.E * q.Th * q.Th * q.Th / (12.0 * (1.0 - q.Nu*q.Nu))
	chk.Scalar(tst, "Mx", 1e-14, Mx, -D*κ)
	chk.Scalar(tst, "My", 1e-14, My, -D*q.Nu*κ)
	chk.Scalar(tst, "Qx", 1e-14, Qx, 0)
	chk.Scalar(tst, "Qy", 1e-15, Qy, 0)
}

func Test_quad05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("quad05. pressure loads")

	q := newTestQuad()
	q.PressLoads = []PressureLoad{{P: 5.0, Case: "L"}}
	err := q.Recompute()
	if err != nil {
		tst.Errorf("Recompute failed:\n%v", err)
		return
	}
	q.SetEqs(quadEqs())

	// total force equals p·A along the local normal (global z here)
	fb := make([]float64, 24)
	q.AddToRhs(fb, map[string]float64{"L": 1.6})
	sum := 0.0
	for m := 0; m < 4; m++ {
		sum += fb[6*m+2]
		chk.Scalar(tst, "no in-plane force", 1e-15, fb[6*m], 0)
	}
	chk.Scalar(tst, "Σfz = p·A", 1e-13, sum, 1.6*5.0*1.0)

	// absent case contributes nothing
	fb = make([]float64, 24)
	q.AddToRhs(fb, map[string]float64{"D": 1})
	for i := 0; i < 24; i++ {
		chk.Scalar(tst, "no load", 1e-15, fb[i], 0)
	}
}

func Test_quad06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("quad06. degenerate triangle")

	// right triangle as a collapsed quad: last node repeated
	q := &Quad{
		Name:  "T1",
		Nodes: []int{0, 1, 2, 2},
		IsTri: true,
		X: [][]float64{
			{0, 1, 0, 0},
			{0, 0, 1, 1},
			{0, 0, 0, 0},
		},
		E: 100, Nu: 0.25, Th: 0.1,
	}
	err := q.Recompute()
	if err != nil {
		tst.Errorf("Recompute failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "area", 1e-13, q.Area, 0.5)

	// rigid translation still produces no forces
	u := make([]float64, 24)
	for m := 0; m < 4; m++ {
		u[6*m+2] = 1.0
	}
	f := make([]float64, 24)
	for i := 0; i < 24; i++ {
		for j := 0; j < 24; j++ {
			f[i] += q.K[i][j] * u[j]
		}
	}
	for i := 0; i < 24; i++ {
		chk.Scalar(tst, "rigid translation", 1e-11, f[i], 0)
	}
}

func Test_spring01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("spring01. axial spring")

	s := &Spring{
		Name: "S1",
		X:    [][]float64{{0, 3}, {0, 4}, {0, 0}},
		Ks:   10.0,
	}
	err := s.Recompute()
	if err != nil {
		tst.Errorf("Recompute failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "L", 1e-15, s.L, 5.0)
	eqs := utl.IntRange(6)
	s.SetEqs(eqs[:3], eqs[3:])

	// stretch along the axis
	y := []float64{0, 0, 0, 0.6 * 0.01, 0.8 * 0.01, 0}
	chk.Scalar(tst, "elongation", 1e-15, s.Elongation(y), 0.01)
	chk.Scalar(tst, "force", 1e-14, s.AxialForce(y), 0.1)

	// perpendicular motion produces no force
	y = []float64{0, 0, 0, -0.8, 0.6, 0}
	chk.Scalar(tst, "perp elongation", 1e-15, s.Elongation(y), 0)

	// stiffness symmetry and row sums (equilibrium)
	for i := 0; i < 6; i++ {
		sum := 0.0
		for j := 0; j < 3; j++ {
			chk.Scalar(tst, "K sym", 1e-15, s.K[i][j], s.K[j][i])
			sum += s.K[i][j] + s.K[i][j+3]
		}
		chk.Scalar(tst, "row sum", 1e-15, sum, 0)
	}
}
