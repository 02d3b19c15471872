// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mdl implements material and cross-section property records
package mdl

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Material holds linear elastic material parameters. Records are immutable
// once referenced by an element: the model stores copies, never the caller's
// pointer.
type Material struct {
	Name string  // identifier
	Desc string  // description
	E    float64 // Young's modulus
	Nu   float64 // Poisson's coefficient
	G    float64 // shear modulus
	Rho  float64 // density
}

// NewMaterial returns a material with G derived from E and nu
func NewMaterial(name string, E, nu, rho float64) *Material {
	if E <= 0 {
		chk.Panic("material %q must have positive Young's modulus. E=%g is invalid", name, E)
	}
	return &Material{
		Name: name,
		E:    E,
		Nu:   nu,
		G:    E / (2.0 * (1.0 + nu)),
		Rho:  rho,
	}
}

// ReferenceMaterial returns one of the reference materials
//  typ -- "steel", "aluminum", "concrete-low", "concrete-high", "wood-douglas-fir"
//  Values are in MPa for E and Gg/m³ for rho
func ReferenceMaterial(typ string) (o *Material) {
	o = new(Material)
	o.Name = typ
	switch typ {
	case "steel":
		o.Desc = "Steel: structural A36"
		o.E = 200000.0
		o.Nu = 0.32
		o.Rho = 7.85e-3
	case "aluminum":
		o.Desc = "Aluminum: 2014-T6"
		o.E = 73100.0
		o.Nu = 0.35
		o.Rho = 2.79e-3
	case "concrete-low":
		o.Desc = "Concrete: low strength"
		o.E = 22100.0
		o.Nu = 0.15
		o.Rho = 2.38e-3
	case "concrete-high":
		o.Desc = "Concrete: high strength"
		o.E = 30000.0
		o.Nu = 0.15
		o.Rho = 2.38e-3
	case "wood-douglas-fir":
		o.Desc = "Wood: Douglas-fir"
		o.E = 13100.0
		o.Nu = 0.29
		o.Rho = 4.70e-4
	default:
		chk.Panic("material type %q is unavailable", typ)
	}
	o.G = o.E / (2.0 * (1.0 + o.Nu))
	return
}

func (o *Material) String() string {
	return io.Sf("{%q E=%g G=%g nu=%g rho=%g}", o.Name, o.E, o.G, o.Nu, o.Rho)
}
