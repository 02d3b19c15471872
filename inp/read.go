// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp reads structural model definitions from JSON files
package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/gofea/gofea/ele"
	"github.com/gofea/gofea/fem"
	"github.com/gofea/gofea/mdl"
)

// MatData holds material input data
type MatData struct {
	Name string  `json:"name"` // name of material
	E    float64 `json:"e"`    // Young's modulus
	Nu   float64 `json:"nu"`   // Poisson's ratio
	Rho  float64 `json:"rho"`  // mass density
}

// SecData holds cross-section input data
type SecData struct {
	Name string  `json:"name"` // name of section
	A    float64 `json:"a"`    // area
	I22  float64 `json:"i22"`  // second moment about local 2-axis
	I11  float64 `json:"i11"`  // second moment about local 1-axis
	Jtt  float64 `json:"jtt"`  // torsion constant
}

// NodeData holds node input data
type NodeData struct {
	Name string    `json:"name"`          // name of node
	C    []float64 `json:"c"`             // coordinates: x, y, z
	Sup  []string  `json:"sup,omitempty"` // supported dofs; e.g. ["ux","uy","uz"]
}

// SprSupData holds elastic support input data
type SprSupData struct {
	Node string  `json:"node"` // name of node
	Dof  string  `json:"dof"`  // dof key; e.g. "uz"
	K    float64 `json:"k"`    // spring stiffness
}

// EnfData holds enforced displacement input data
type EnfData struct {
	Node  string  `json:"node"`  // name of node
	Dof   string  `json:"dof"`   // dof key
	Value float64 `json:"value"` // prescribed value
}

// MemberData holds frame member input data
type MemberData struct {
	Name   string  `json:"name"`             // name of member
	Ni     string  `json:"ni"`               // name of node at end i
	Nj     string  `json:"nj"`               // name of node at end j
	Mat    string  `json:"mat"`              // material name
	Sec    string  `json:"sec"`              // section name
	Nonlin string  `json:"nonlin,omitempty"` // "", "tension" or "compression"
	Rel    []int   `json:"rel,omitempty"`    // released local dof indices: 0..11
	Psi    float64 `json:"psi,omitempty"`    // roll angle about the member axis [rad]
}

// QuadData holds plate/shell element input data
type QuadData struct {
	Name  string   `json:"name"`  // name of element
	Nodes []string `json:"nodes"` // 3 or 4 corner node names
	Mat   string   `json:"mat"`   // material name
	Th    float64  `json:"th"`    // thickness
}

// SpringData holds two-node spring input data
type SpringData struct {
	Name   string  `json:"name"`             // name of spring
	Ni     string  `json:"ni"`               // name of node at end i
	Nj     string  `json:"nj"`               // name of node at end j
	K      float64 `json:"k"`                // axial stiffness
	Nonlin string  `json:"nonlin,omitempty"` // "", "tension" or "compression"
}

// NodalLoadData holds nodal load input data
type NodalLoadData struct {
	Node string  `json:"node"` // name of node
	Dof  string  `json:"dof"`  // dof key
	P    float64 `json:"p"`    // magnitude
	Case string  `json:"case"` // load case tag
}

// PointLoadData holds concentrated member load input data
type PointLoadData struct {
	Member string  `json:"member"` // name of member
	Dir    string  `json:"dir"`    // local direction key; e.g. "d1"
	P      float64 `json:"p"`      // magnitude
	X      float64 `json:"x"`      // position from end i
	Case   string  `json:"case"`   // load case tag
}

// DistLoadData holds distributed member load input data
type DistLoadData struct {
	Member string  `json:"member"` // name of member
	Dir    string  `json:"dir"`    // local direction key
	W1     float64 `json:"w1"`     // start magnitude
	W2     float64 `json:"w2"`     // end magnitude
	X1     float64 `json:"x1"`     // start position from end i
	X2     float64 `json:"x2"`     // end position from end i
	Case   string  `json:"case"`   // load case tag
}

// PressData holds plate pressure load input data
type PressData struct {
	Quad string  `json:"quad"` // name of plate element
	P    float64 `json:"p"`    // pressure along local normal
	Case string  `json:"case"` // load case tag
}

// SelfWeightData holds self-weight generation input data
type SelfWeightData struct {
	Case    string  `json:"case"`    // load case tag
	Gravity float64 `json:"gravity"` // gravity acceleration
}

// ComboData holds load combination input data
type ComboData struct {
	Name    string             `json:"name"`    // name of combination
	Factors map[string]float64 `json:"factors"` // case tag => factor
}

// ModelData holds a complete structural model definition
type ModelData struct {
	Title      string           `json:"title"`                // description
	Materials  []MatData        `json:"materials"`            // all materials
	Sections   []SecData        `json:"sections"`             // all cross-sections
	Nodes      []NodeData       `json:"nodes"`                // all nodes
	SprSups    []SprSupData     `json:"sprsups,omitempty"`    // elastic supports
	EnfDisps   []EnfData        `json:"enfdisps,omitempty"`   // enforced displacements
	Members    []MemberData     `json:"members"`              // all frame members
	Quads      []QuadData       `json:"quads,omitempty"`      // all plate elements
	Springs    []SpringData     `json:"springs,omitempty"`    // all two-node springs
	NodalLoads []NodalLoadData  `json:"nodalloads,omitempty"` // nodal loads
	PointLoads []PointLoadData  `json:"pointloads,omitempty"` // concentrated member loads
	DistLoads  []DistLoadData   `json:"distloads,omitempty"`  // distributed member loads
	Pressures  []PressData      `json:"pressures,omitempty"`  // plate pressures
	SelfWeight []SelfWeightData `json:"selfweight,omitempty"` // self-weight cases
	Combos     []ComboData      `json:"combos"`               // load combinations
}

// dof keys for supports, loads and enforced displacements
var dofKeys = map[string]int{
	"ux": 0, "uy": 1, "uz": 2,
	"rx": 3, "ry": 4, "rz": 5,
}

// local direction keys for member loads
var dirKeys = map[string]int{
	"ax": ele.DirAxial, "d1": ele.Dir1, "d2": ele.Dir2,
	"tor": ele.DirTor, "m1": ele.DirM1, "m2": ele.DirM2,
}

func parseDof(key string) (int, error) {
	dof, ok := dofKeys[key]
	if !ok {
		return 0, chk.Err("unknown dof key %q", key)
	}
	return dof, nil
}

func parseDir(key string) (int, error) {
	dir, ok := dirKeys[key]
	if !ok {
		return 0, chk.Err("unknown direction key %q", key)
	}
	return dir, nil
}

func parseNonlin(key string) (ele.Nonlinearity, error) {
	switch key {
	case "":
		return ele.NonlinNone, nil
	case "tension":
		return ele.TensionOnly, nil
	case "compression":
		return ele.CompressionOnly, nil
	}
	return ele.NonlinNone, chk.Err("unknown nonlinearity %q", key)
}

// Read reads a model definition file
func Read(fn string) (dat *ModelData, err error) {
	b, err := io.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read %q:\n%v", fn, err)
	}
	dat = new(ModelData)
	if err = json.Unmarshal(b, dat); err != nil {
		return nil, chk.Err("cannot parse %q:\n%v", fn, err)
	}
	return
}

// Build assembles a model out of the definition data
func (o *ModelData) Build() (m *fem.Model, err error) {
	m = fem.NewModel()
	for _, d := range o.Materials {
		if err = m.AddMaterial(mdl.NewMaterial(d.Name, d.E, d.Nu, d.Rho)); err != nil {
			return nil, err
		}
	}
	for _, d := range o.Sections {
		if err = m.AddSection(mdl.NewSection(d.Name, d.A, d.I22, d.I11, d.Jtt)); err != nil {
			return nil, err
		}
	}
	for _, d := range o.Nodes {
		if len(d.C) != 3 {
			return nil, chk.Err("node %q needs 3 coordinates", d.Name)
		}
		if _, err = m.AddNode(d.Name, d.C[0], d.C[1], d.C[2]); err != nil {
			return nil, err
		}
		if len(d.Sup) > 0 {
			dofs := make([]int, len(d.Sup))
			for k, key := range d.Sup {
				if dofs[k], err = parseDof(key); err != nil {
					return nil, err
				}
			}
			if err = m.SetSupport(d.Name, dofs...); err != nil {
				return nil, err
			}
		}
	}
	for _, d := range o.SprSups {
		dof, err := parseDof(d.Dof)
		if err != nil {
			return nil, err
		}
		if err = m.SetSpringSupport(d.Node, dof, d.K); err != nil {
			return nil, err
		}
	}
	for _, d := range o.EnfDisps {
		dof, err := parseDof(d.Dof)
		if err != nil {
			return nil, err
		}
		if err = m.SetEnforcedDisp(d.Node, dof, d.Value); err != nil {
			return nil, err
		}
	}
	for _, d := range o.Members {
		mb, err := m.AddMember(d.Name, d.Ni, d.Nj, d.Mat, d.Sec)
		if err != nil {
			return nil, err
		}
		if mb.Nonlin, err = parseNonlin(d.Nonlin); err != nil {
			return nil, err
		}
		mb.Psi = d.Psi
		for _, idx := range d.Rel {
			if idx < 0 || idx > 11 {
				return nil, chk.Err("member %q: release index %d out of range", d.Name, idx)
			}
			mb.Rel[idx] = true
		}
	}
	for _, d := range o.Quads {
		if _, err = m.AddQuad(d.Name, d.Nodes, d.Mat, d.Th); err != nil {
			return nil, err
		}
	}
	for _, d := range o.Springs {
		sp, err := m.AddSpring(d.Name, d.Ni, d.Nj, d.K)
		if err != nil {
			return nil, err
		}
		if sp.Nonlin, err = parseNonlin(d.Nonlin); err != nil {
			return nil, err
		}
	}
	for _, d := range o.NodalLoads {
		dof, err := parseDof(d.Dof)
		if err != nil {
			return nil, err
		}
		if err = m.AddNodalLoad(d.Node, dof, d.P, d.Case); err != nil {
			return nil, err
		}
	}
	for _, d := range o.PointLoads {
		dir, err := parseDir(d.Dir)
		if err != nil {
			return nil, err
		}
		if err = m.AddPointLoad(d.Member, dir, d.P, d.X, d.Case); err != nil {
			return nil, err
		}
	}
	for _, d := range o.DistLoads {
		dir, err := parseDir(d.Dir)
		if err != nil {
			return nil, err
		}
		if err = m.AddDistLoad(d.Member, dir, d.W1, d.W2, d.X1, d.X2, d.Case); err != nil {
			return nil, err
		}
	}
	for _, d := range o.Pressures {
		if err = m.AddPressureLoad(d.Quad, d.P, d.Case); err != nil {
			return nil, err
		}
	}
	for _, d := range o.SelfWeight {
		if err = m.AddSelfWeight(d.Case, d.Gravity); err != nil {
			return nil, err
		}
	}
	for _, d := range o.Combos {
		if err = m.AddCombo(d.Name, d.Factors); err != nil {
			return nil, err
		}
	}
	return
}

// ReadModel reads a definition file and assembles the model
func ReadModel(fn string) (*fem.Model, error) {
	dat, err := Read(fn)
	if err != nil {
		return nil, err
	}
	return dat.Build()
}
