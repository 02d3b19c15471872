// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdl

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// CrossSection holds cross-sectional properties of frame members
//
//   ^ 1       +-------+                        tw
//   |         |       |                    -->| |<--
//   |         |       |                ___    | |     ___
//   +----> 2  |       | h = hei      tf |   ########   |
//             |       |                ---  ########   |
//             |       |                        ##      |
//             +-------+                        ##      | h = hei
//              b = wid                         ##      |
//                                      ---  ########   |
//                                    tf_|_  ########  ---
//                                           b = wid
//
//  I22 is the major moment of inertia (bending about the local 2-axis)
//  I11 is the minor moment of inertia
//  Jtt is the torsional constant
//  Cw  is the warping constant; it feeds no stiffness term and is stored
//      for downstream design checks only
type CrossSection struct {

	// input
	Name string  // identifier
	Type string  // "rectangle", "I-beam", "circle" or "generic"
	Wid  float64 // width (b) if not circular
	Hei  float64 // height (h) if not circular
	Tf   float64 // flange thickness if I-beam
	Tw   float64 // web thickness if I-beam
	R    float64 // radius if circular

	// derived (or given, if generic)
	A   float64 // cross-sectional area
	I22 float64 // major cross-section moment of inertia
	I11 float64 // minor cross-section moment of inertia
	Jtt float64 // torsional constant
	Cw  float64 // warping constant (storage only)

	// shear deformation factors: As2 = A/Scf2, As1 = A/Scf1.
	// zero values disable the shear correction
	Scf2 float64 // shear correction factor for shear along 2-axis
	Scf1 float64 // shear correction factor for shear along 1-axis
}

// NewSection returns a generic section with explicitly given properties
func NewSection(name string, A, I22, I11, Jtt float64) *CrossSection {
	if A <= 0 || I22 <= 0 || I11 <= 0 || Jtt <= 0 {
		chk.Panic("section %q must have positive A, I22, I11 and Jtt", name)
	}
	return &CrossSection{Name: name, Type: "generic", A: A, I22: I22, I11: I11, Jtt: Jtt}
}

// Init initialises the section and computes derived properties
func (o *CrossSection) Init(name, typ string, wid, hei, tf, tw, rad float64) {

	// input data
	o.Name, o.Type, o.Wid, o.Hei, o.Tf, o.Tw, o.R = name, typ, wid, hei, tf, tw, rad

	// derived
	switch typ {
	case "rectangle":
		b, h := wid, hei
		b3 := b * b * b
		h3 := h * h * h
		o.A = b * h
		o.I22 = b * h3 / 12.0
		o.I11 = b3 * h / 12.0
		if b == h {
			o.Jtt = 9.0 * b3 * b / 64.0
		} else {
			if b > h {
				b, h = h, b
				b3 = b * b * b
				h3 = h * h * h
			}
			o.Jtt = h * b3 * (1.0/3.0 - 0.21*(b/h)*(1.0-b*b3/(12.0*h*h3))) // approximate
		}
		o.Scf2, o.Scf1 = 1.2, 1.2

	case "I-beam":
		b, h := wid, hei
		b3 := b * b * b
		h3 := h * h * h
		tf3 := tf * tf * tf
		tw3 := tw * tw * tw
		l := h - 2.0*tf
		l3 := l * l * l
		o.A = b*h - l*(b-tw)
		o.I22 = b*h3/12.0 - (b-tw)*l3/12.0
		o.I11 = l*tw3/12.0 + tf*b3/6.0
		o.Jtt = (2.0*b*tf3 + (h-2.0*tf)*tw3) / 3.0
		o.Cw = o.I11 * (h - tf) * (h - tf) / 4.0
		o.Scf2 = o.A / (h * tw) // shear carried by the web

	case "circle":
		r2 := rad * rad
		o.A = math.Pi * r2
		o.I22 = math.Pi * r2 * r2 / 4.0
		o.I11 = o.I22
		o.Jtt = o.I22 + o.I11
		o.Scf2, o.Scf1 = 10.0/9.0, 10.0/9.0

	default:
		chk.Panic("cross-section type %q is unavailable", typ)
	}
}

func (o *CrossSection) String() string {
	return io.Sf("{%q %s A=%g I22=%g I11=%g Jtt=%g}", o.Name, o.Type, o.A, o.I22, o.I11, o.Jtt)
}
