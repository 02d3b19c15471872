// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"context"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/gofea/gofea/ele"
	"github.com/gofea/gofea/fem"
	"github.com/gofea/gofea/mdl"
)

func Test_diag01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diag01. simply supported beam, uniform load")

	E, I, L, w := 200000.0, 8.0e6, 4000.0, -10.0
	m := fem.NewModel()
	m.AddNode("A", 0, 0, 0)
	m.AddNode("B", L, 0, 0)
	m.AddMaterial(testMaterial())
	m.AddSection(testSection())
	m.AddMember("M1", "A", "B", "steel", "sec")
	m.SetSupport("A", 0, 1, 2, 3)
	m.SetSupport("B", 1, 2)
	m.AddDistLoad("M1", ele.Dir1, w, w, 0, L, "D")
	m.AddCombo("C1", map[string]float64{"D": 1.0})

	sv := fem.NewSolver(m)
	err := sv.Analyze(context.Background())
	if err != nil {
		tst.Errorf("Analyze failed:\n%v", err)
		return
	}

	dg, err := Member(m, "M1", "C1", 9)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	if !dg.Active {
		tst.Errorf("member should be active")
		return
	}
	chk.IntAssert(len(dg.X), 9)

	// shear is linear from wL/2 to -wL/2
	chk.Scalar(tst, "V(0)  ", 1e-7, dg.V1[0], w*L/2.0)
	chk.Scalar(tst, "V(L/2)", 1e-4, dg.V1[4], 0)
	chk.Scalar(tst, "V(L)  ", 1e-7, dg.V1[8], -w*L/2.0)

	// midspan moment is wL²/8, end moments vanish
	chk.Scalar(tst, "M(0)  ", 1e-4, dg.M2[0], 0)
	chk.Scalar(tst, "M(L/2)", 1e-4, dg.M2[4], w*L*L/8.0)
	chk.Scalar(tst, "M(L)  ", 1e-4, dg.M2[8], 0)

	// midspan deflection is 5wL⁴/384EI
	chk.Scalar(tst, "w(L/2)", 1e-6, dg.D1[4], 5.0*w*L*L*L*L/(384.0*E*I))

	// no axial force or torsion anywhere
	for k := range dg.X {
		chk.Scalar(tst, "N", 1e-9, dg.N[k], 0)
		chk.Scalar(tst, "T", 1e-9, dg.T[k], 0)
	}
}

func Test_diag02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diag02. cantilever, interior point load")

	E, I, L := 200000.0, 8.0e6, 5000.0
	P, a := -1000.0, 2500.0
	m := fem.NewModel()
	m.AddNode("A", 0, 0, 0)
	m.AddNode("B", L, 0, 0)
	m.AddMaterial(testMaterial())
	m.AddSection(testSection())
	m.AddMember("M1", "A", "B", "steel", "sec")
	m.SetSupport("A", 0, 1, 2, 3, 4, 5)
	m.AddPointLoad("M1", ele.Dir1, P, a, "L")
	m.AddCombo("C1", map[string]float64{"L": 1.0})

	sv := fem.NewSolver(m)
	err := sv.Analyze(context.Background())
	if err != nil {
		tst.Errorf("Analyze failed:\n%v", err)
		return
	}

	// 6 even stations plus the inserted load position
	dg, err := Member(m, "M1", "C1", 6)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.IntAssert(len(dg.X), 7)
	chk.Scalar(tst, "station at load", 1e-12, dg.X[3], a)

	// shear is P before the load and zero beyond it
	chk.Scalar(tst, "V(2000)", 1e-7, dg.V1[2], P)
	chk.Scalar(tst, "V(3000)", 1e-4, dg.V1[4], 0)

	// moment is P(x-a) before the load and zero beyond it
	chk.Scalar(tst, "M(0)   ", 1e-7, dg.M2[0], -P*a)
	chk.Scalar(tst, "M(a)   ", 1e-4, dg.M2[3], 0)
	chk.Scalar(tst, "M(4000)", 1e-4, dg.M2[5], 0)

	// tip deflection Pa²(3L-a)/6EI
	chk.Scalar(tst, "w(L)", 1e-6, dg.D1[6], P*a*a*(3.0*L-a)/(6.0*E*I))
}

func Test_diag03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diag03. simply supported beam, triangular load")

	E, I, L, w := 200000.0, 8.0e6, 6000.0, -12.0
	m := fem.NewModel()
	m.AddNode("A", 0, 0, 0)
	m.AddNode("B", L, 0, 0)
	m.AddMaterial(testMaterial())
	m.AddSection(testSection())
	m.AddMember("M1", "A", "B", "steel", "sec")
	m.SetSupport("A", 0, 1, 2, 3)
	m.SetSupport("B", 1, 2)
	m.AddDistLoad("M1", ele.Dir1, 0, w, 0, L, "D")
	m.AddCombo("C1", map[string]float64{"D": 1.0})

	sv := fem.NewSolver(m)
	err := sv.Analyze(context.Background())
	if err != nil {
		tst.Errorf("Analyze failed:\n%v", err)
		return
	}

	dg, err := Member(m, "M1", "C1", 9)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}

	// end shears wL/6 and wL/3
	chk.Scalar(tst, "V(0)", 1e-7, dg.V1[0], w*L/6.0)
	chk.Scalar(tst, "V(L)", 1e-7, dg.V1[8], -w*L/3.0)

	// midspan moment wL²/16
	chk.Scalar(tst, "M(L/2)", 1e-6, dg.M2[4], w*L*L/16.0)

	// deflection of the exact solution at midspan
	x := L / 2.0
	dex := w * x * (7.0*L*L*L*L - 10.0*L*L*x*x + 3.0*x*x*x*x) / (360.0 * L * E * I)
	chk.Scalar(tst, "w(L/2)", 1e-6, dg.D1[4], dex)
}

func Test_diag04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diag04. error paths and inactive members")

	m := fem.NewModel()
	m.AddNode("A", 0, 0, 0)
	m.AddNode("B", 3000, 0, 0)
	m.AddMaterial(testMaterial())
	m.AddSection(testSection())
	m.AddMember("M1", "A", "B", "steel", "sec")
	m.SetSupport("A", 0, 1, 2, 3, 4, 5)
	m.AddNodalLoad("B", 0, -1000, "L")
	m.AddCombo("C1", map[string]float64{"L": 1.0})

	if _, err := Member(m, "nope", "C1", 5); err == nil {
		tst.Errorf("unknown member must fail")
		return
	}
	if _, err := Member(m, "M1", "C1", 5); err == nil {
		tst.Errorf("unsolved combination must fail")
		return
	}

	// a deactivated tension-only strut reports zero internal forces
	mb := m.GetMember("M1")
	mb.Nonlin = ele.TensionOnly
	sv := fem.NewSolver(m)
	err := sv.Analyze(context.Background())
	if err != nil {
		tst.Errorf("Analyze failed:\n%v", err)
		return
	}
	dg, err := Member(m, "M1", "C1", 5)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	if dg.Active {
		tst.Errorf("compressed tension-only member must be inactive")
		return
	}
	for k := range dg.X {
		chk.Scalar(tst, "N inactive", 1e-9, dg.N[k], 0)
		chk.Scalar(tst, "M inactive", 1e-9, dg.M2[k], 0)
	}
}

func Test_diag05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diag05. plate stress resultants")

	E, σ, W, H, th := 200000.0, 10.0, 1000.0, 1000.0, 10.0
	m := fem.NewModel()
	m.AddMaterial(mdl.NewMaterial("conc", E, 0, 2.4e-9))
	m.AddNode("N0", 0, 0, 0)
	m.AddNode("N1", W, 0, 0)
	m.AddNode("N2", W, H, 0)
	m.AddNode("N3", 0, H, 0)
	if _, err := m.AddQuad("P1", []string{"N0", "N1", "N2", "N3"}, "conc", th); err != nil {
		tst.Errorf("%v", err)
		return
	}
	m.SetSupport("N0", 0, 1, 2, 3, 4)
	m.SetSupport("N3", 0, 2, 3, 4)
	m.SetSupport("N1", 2, 3, 4)
	m.SetSupport("N2", 2, 3, 4)
	F := σ * th * H / 2.0
	m.AddNodalLoad("N1", 0, F, "L")
	m.AddNodalLoad("N2", 0, F, "L")
	m.AddCombo("C1", map[string]float64{"L": 1.0})

	sv := fem.NewSolver(m)
	if err := sv.Analyze(context.Background()); err != nil {
		tst.Errorf("Analyze failed:\n%v", err)
		return
	}

	if _, err := Plate(m, "nope", "C1", 0, 0); err == nil {
		tst.Errorf("unknown plate must fail")
		return
	}
	pr, err := Plate(m, "P1", "C1", 0, 0)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Scalar(tst, "Nx ", 1e-10, pr.Nx, σ*th)
	chk.Scalar(tst, "Ny ", 1e-10, pr.Ny, 0)
	chk.Scalar(tst, "Nxy", 1e-10, pr.Nxy, 0)
	chk.Scalar(tst, "Mx ", 1e-10, pr.Mx, 0)
	chk.Scalar(tst, "Qx ", 1e-10, pr.Qx, 0)
}

func Test_diag06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diag06. hinged member between clamped nodes")

	// both bending releases turn the member into a simply supported span
	// even though the nodes themselves do not rotate: the deflection must
	// use the recovered member-end rotations, not the node values
	E, I, L, w := 200000.0, 8.0e6, 4000.0, -10.0
	m := fem.NewModel()
	m.AddNode("A", 0, 0, 0)
	m.AddNode("B", L, 0, 0)
	m.AddMaterial(testMaterial())
	m.AddSection(testSection())
	m.AddMember("M1", "A", "B", "steel", "sec")
	m.SetSupport("A", 0, 1, 2, 3, 4, 5)
	m.SetSupport("B", 0, 1, 2, 3, 4)
	mb := m.GetMember("M1")
	mb.Rel[5] = true
	mb.Rel[11] = true
	m.AddDistLoad("M1", ele.Dir1, w, w, 0, L, "D")
	m.AddCombo("C1", map[string]float64{"D": 1.0})

	sv := fem.NewSolver(m)
	if err := sv.Analyze(context.Background()); err != nil {
		tst.Errorf("Analyze failed:\n%v", err)
		return
	}

	dg, err := Member(m, "M1", "C1", 9)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}

	// hinge moments vanish, midspan carries wL²/8
	chk.Scalar(tst, "M(0)  ", 1e-4, dg.M2[0], 0)
	chk.Scalar(tst, "M(L/2)", 1e-4, dg.M2[4], w*L*L/8.0)
	chk.Scalar(tst, "M(L)  ", 1e-4, dg.M2[8], 0)

	// simply supported deflection despite zero node rotations
	chk.Scalar(tst, "w(L/2)", 1e-6, dg.D1[4], 5.0*w*L*L*L*L/(384.0*E*I))
	chk.Scalar(tst, "w(0)  ", 1e-9, dg.D1[0], 0)
	chk.Scalar(tst, "w(L)  ", 1e-9, dg.D1[8], 0)
}

func Test_diag07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diag07. bending in the 0-2 plane")

	// same simply supported span as diag01 but loaded along the local
	// 2-axis: the V2/M1/D2 components must mirror the 0-1 plane answers
	E, I, L, w := 200000.0, 8.0e6, 4000.0, -10.0
	m := fem.NewModel()
	m.AddNode("A", 0, 0, 0)
	m.AddNode("B", L, 0, 0)
	m.AddMaterial(testMaterial())
	m.AddSection(testSection())
	m.AddMember("M1", "A", "B", "steel", "sec")
	m.SetSupport("A", 0, 1, 2, 3)
	m.SetSupport("B", 1, 2)
	m.AddDistLoad("M1", ele.Dir2, w, w, 0, L, "D")
	m.AddCombo("C1", map[string]float64{"D": 1.0})

	sv := fem.NewSolver(m)
	if err := sv.Analyze(context.Background()); err != nil {
		tst.Errorf("Analyze failed:\n%v", err)
		return
	}

	dg, err := Member(m, "M1", "C1", 9)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Scalar(tst, "V2(0)  ", 1e-7, dg.V2[0], w*L/2.0)
	chk.Scalar(tst, "V2(L)  ", 1e-7, dg.V2[8], -w*L/2.0)
	chk.Scalar(tst, "M1(0)  ", 1e-4, dg.M1[0], 0)
	chk.Scalar(tst, "M1(L/2)", 1e-4, dg.M1[4], w*L*L/8.0)
	chk.Scalar(tst, "D2(L/2)", 1e-6, dg.D2[4], 5.0*w*L*L*L*L/(384.0*E*I))

	// nothing leaks into the 0-1 plane
	for k := range dg.X {
		chk.Scalar(tst, "V1", 1e-9, dg.V1[k], 0)
		chk.Scalar(tst, "M2", 1e-7, dg.M2[k], 0)
		chk.Scalar(tst, "D1", 1e-12, dg.D1[k], 0)
	}
}
