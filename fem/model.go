// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	goerr "errors"

	"github.com/Konstantin8105/errors"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/gofea/gofea/ele"
	"github.com/gofea/gofea/mdl"
)

// Model owns the name-indexed collections built before an analysis: nodes,
// members, plates, springs, materials, sections and the combination
// registry. Names are resolved to integer ids at the build boundary; the
// solver works on the flat arrays only.
//
// The solver never mutates the model; it writes into Res. Any edit after a
// solve drops all stored results.
type Model struct {

	// entities
	Nodes   []*Node
	Members []*ele.Member
	Quads   []*ele.Quad
	Springs []*ele.Spring

	// properties
	Materials map[string]*mdl.Material
	Sections  map[string]*mdl.CrossSection

	// combinations and results
	Combos Combos
	Res    *Results

	// name resolution (build boundary only)
	nodIdx  map[string]int
	memIdx  map[string]int
	quadIdx map[string]int
	sprIdx  map[string]int
}

// NewModel creates an empty model
func NewModel() *Model {
	return &Model{
		Materials: make(map[string]*mdl.Material),
		Sections:  make(map[string]*mdl.CrossSection),
		Res:       NewResults(),
		nodIdx:    make(map[string]int),
		memIdx:    make(map[string]int),
		quadIdx:   make(map[string]int),
		sprIdx:    make(map[string]int),
	}
}

// defErr builds a ModelDefinitionError
func defErr(msg string, prm ...interface{}) error {
	return &ModelDefinitionError{Msg: io.Sf(msg, prm...)}
}

// ClearResults drops every stored combination result. Called automatically
// by all mutating operations.
func (o *Model) ClearResults() {
	o.Res.clear()
}

// AddNode creates a node. Duplicate names are definition errors.
func (o *Model) AddNode(name string, x, y, z float64) (*Node, error) {
	if _, ok := o.nodIdx[name]; ok {
		return nil, defErr("duplicate node name %q", name)
	}
	o.ClearResults()
	n := &Node{Id: len(o.Nodes), Name: name, X: []float64{x, y, z}}
	o.nodIdx[name] = n.Id
	o.Nodes = append(o.Nodes, n)
	return n, nil
}

// GetNode finds a node by name
func (o *Model) GetNode(name string) *Node {
	i, ok := o.nodIdx[name]
	if !ok {
		return nil
	}
	return o.Nodes[i]
}

// SetSupport restrains the listed DOFs (0..5) of a node
func (o *Model) SetSupport(nodeName string, dofs ...int) error {
	n := o.GetNode(nodeName)
	if n == nil {
		return defErr("support references unknown node %q", nodeName)
	}
	o.ClearResults()
	for _, d := range dofs {
		if d < 0 || d > 5 {
			return defErr("support DOF %d of node %q is out of range", d, nodeName)
		}
		n.Sup[d] = true
	}
	return nil
}

// SetSpringSupport attaches a ground spring with stiffness k to one DOF
func (o *Model) SetSpringSupport(nodeName string, dof int, k float64) error {
	n := o.GetNode(nodeName)
	if n == nil {
		return defErr("spring support references unknown node %q", nodeName)
	}
	if dof < 0 || dof > 5 {
		return defErr("spring DOF %d of node %q is out of range", dof, nodeName)
	}
	if k <= 0 {
		return defErr("spring stiffness of node %q must be positive", nodeName)
	}
	o.ClearResults()
	n.SprK[dof] = k
	n.SprAct[dof] = true
	return nil
}

// SetEnforcedDisp prescribes a displacement value at one DOF
func (o *Model) SetEnforcedDisp(nodeName string, dof int, value float64) error {
	n := o.GetNode(nodeName)
	if n == nil {
		return defErr("enforced displacement references unknown node %q", nodeName)
	}
	if dof < 0 || dof > 5 {
		return defErr("enforced displacement DOF %d of node %q is out of range", dof, nodeName)
	}
	o.ClearResults()
	n.EnfDisp[dof] = value
	n.HasEnf[dof] = true
	return nil
}

// AddNodalLoad applies a concentrated load (global system) to a node
func (o *Model) AddNodalLoad(nodeName string, dof int, p float64, caseTag string) error {
	n := o.GetNode(nodeName)
	if n == nil {
		return defErr("nodal load references unknown node %q", nodeName)
	}
	if dof < 0 || dof > 5 {
		return defErr("nodal load DOF %d of node %q is out of range", dof, nodeName)
	}
	o.ClearResults()
	n.Loads = append(n.Loads, NodalLoad{Dof: dof, P: p, Case: caseTag})
	return nil
}

// AddMaterial registers a material record
func (o *Model) AddMaterial(m *mdl.Material) error {
	if _, ok := o.Materials[m.Name]; ok {
		return defErr("duplicate material name %q", m.Name)
	}
	o.ClearResults()
	o.Materials[m.Name] = m
	return nil
}

// AddSection registers a cross-section record
func (o *Model) AddSection(s *mdl.CrossSection) error {
	if _, ok := o.Sections[s.Name]; ok {
		return defErr("duplicate section name %q", s.Name)
	}
	o.ClearResults()
	o.Sections[s.Name] = s
	return nil
}

// AddMember creates a frame member between two nodes. Releases, roll angle
// and nonlinearity can be set on the returned member before the analysis.
func (o *Model) AddMember(name, ni, nj, matName, secName string) (*ele.Member, error) {
	if _, ok := o.memIdx[name]; ok {
		return nil, defErr("duplicate member name %q", name)
	}
	a, b := o.GetNode(ni), o.GetNode(nj)
	if a == nil || b == nil {
		return nil, defErr("member %q references unknown node", name)
	}
	if a.Id == b.Id {
		return nil, defErr("member %q connects node %q to itself", name, ni)
	}
	mat, ok := o.Materials[matName]
	if !ok {
		return nil, defErr("member %q references unknown material %q", name, matName)
	}
	sec, ok := o.Sections[secName]
	if !ok {
		return nil, defErr("member %q references unknown section %q", name, secName)
	}
	o.ClearResults()
	m := &ele.Member{
		Id: len(o.Members), Name: name, Ni: a.Id, Nj: b.Id,
		X: CoordMatrix(a, b),
		E: mat.E, G: mat.G, Rho: mat.Rho,
		A: sec.A, I22: sec.I22, I11: sec.I11, Jtt: sec.Jtt,
		Scf2: sec.Scf2, Scf1: sec.Scf1,
	}
	o.memIdx[name] = m.Id
	o.Members = append(o.Members, m)
	return m, nil
}

// GetMember finds a member by name
func (o *Model) GetMember(name string) *ele.Member {
	i, ok := o.memIdx[name]
	if !ok {
		return nil
	}
	return o.Members[i]
}

// AddPointLoad applies a concentrated member load (local system)
func (o *Model) AddPointLoad(member string, dir int, p, x float64, caseTag string) error {
	m := o.GetMember(member)
	if m == nil {
		return defErr("point load references unknown member %q", member)
	}
	o.ClearResults()
	m.PtLoads = append(m.PtLoads, ele.PointLoad{Dir: dir, P: p, X: x, Case: caseTag})
	return nil
}

// AddDistLoad applies a linearly varying distributed member load (local
// system) between positions x1 and x2 measured from end i
func (o *Model) AddDistLoad(member string, dir int, w1, w2, x1, x2 float64, caseTag string) error {
	m := o.GetMember(member)
	if m == nil {
		return defErr("distributed load references unknown member %q", member)
	}
	if x2 <= x1 {
		return defErr("distributed load on member %q has a non-positive span", member)
	}
	o.ClearResults()
	m.DistLoads = append(m.DistLoads, ele.DistLoad{Dir: dir, W1: w1, W2: w2, X1: x1, X2: x2, Case: caseTag})
	return nil
}

// AddSelfWeight appends member self-weight loads (density times area along
// global -z) to every member, tagged with the given case. Members must be
// created first.
func (o *Model) AddSelfWeight(caseTag string, gravity float64) error {
	o.ClearResults()
	for _, m := range o.Members {
		if err := m.Recompute(); err != nil {
			return defErr("member %q: %v", m.Name, err)
		}
		m.AddSelfWeight(caseTag, gravity)
	}
	return nil
}

// AddQuad creates a plate element from 3 or 4 node names. Three names
// produce a degenerate (triangular) quad with the last corner repeated.
func (o *Model) AddQuad(name string, nodeNames []string, matName string, thickness float64) (*ele.Quad, error) {
	if _, ok := o.quadIdx[name]; ok {
		return nil, defErr("duplicate plate name %q", name)
	}
	if len(nodeNames) < 3 || len(nodeNames) > 4 {
		return nil, defErr("plate %q must reference 3 or 4 nodes", name)
	}
	mat, ok := o.Materials[matName]
	if !ok {
		return nil, defErr("plate %q references unknown material %q", name, matName)
	}
	if thickness <= 0 {
		return nil, defErr("plate %q must have a positive thickness", name)
	}
	nn := make([]*Node, 4)
	ids := make([]int, 4)
	for i := 0; i < 4; i++ {
		j := i
		if j >= len(nodeNames) {
			j = len(nodeNames) - 1
		}
		nn[i] = o.GetNode(nodeNames[j])
		if nn[i] == nil {
			return nil, defErr("plate %q references unknown node %q", name, nodeNames[j])
		}
		ids[i] = nn[i].Id
	}

	// fewer than 3 distinct corners is degenerate
	distinct := make(map[int]bool)
	for _, id := range ids {
		distinct[id] = true
	}
	if len(distinct) < 3 {
		return nil, defErr("plate %q has fewer than 3 distinct corners", name)
	}
	o.ClearResults()
	q := &ele.Quad{
		Id: len(o.Quads), Name: name, Nodes: ids, IsTri: len(distinct) == 3,
		X: CoordMatrix(nn...),
		E: mat.E, Nu: mat.Nu, Th: thickness, Rho: mat.Rho,
	}
	o.quadIdx[name] = q.Id
	o.Quads = append(o.Quads, q)
	return q, nil
}

// GetQuad finds a plate by name
func (o *Model) GetQuad(name string) *ele.Quad {
	i, ok := o.quadIdx[name]
	if !ok {
		return nil
	}
	return o.Quads[i]
}

// AddPressureLoad applies a uniform pressure (local normal) to a plate
func (o *Model) AddPressureLoad(quad string, p float64, caseTag string) error {
	q := o.GetQuad(quad)
	if q == nil {
		return defErr("pressure load references unknown plate %q", quad)
	}
	o.ClearResults()
	q.PressLoads = append(q.PressLoads, ele.PressureLoad{P: p, Case: caseTag})
	return nil
}

// AddSpring creates a two-node axial spring. Nonlinearity can be set on the
// returned spring before the analysis.
func (o *Model) AddSpring(name, ni, nj string, k float64) (*ele.Spring, error) {
	if _, ok := o.sprIdx[name]; ok {
		return nil, defErr("duplicate spring name %q", name)
	}
	a, b := o.GetNode(ni), o.GetNode(nj)
	if a == nil || b == nil {
		return nil, defErr("spring %q references unknown node", name)
	}
	if a.Id == b.Id {
		return nil, defErr("spring %q connects node %q to itself", name, ni)
	}
	if k <= 0 {
		return nil, defErr("spring %q must have a positive stiffness", name)
	}
	o.ClearResults()
	s := &ele.Spring{
		Id: len(o.Springs), Name: name, Ni: a.Id, Nj: b.Id,
		X: CoordMatrix(a, b), Ks: k,
	}
	o.sprIdx[name] = s.Id
	o.Springs = append(o.Springs, s)
	return s, nil
}

// GetSpring finds a spring by name
func (o *Model) GetSpring(name string) *ele.Spring {
	i, ok := o.sprIdx[name]
	if !ok {
		return nil
	}
	return o.Springs[i]
}

// AddCombo defines a load combination
func (o *Model) AddCombo(name string, factors map[string]float64) error {
	if o.Combos.Get(name) != nil {
		return defErr("duplicate combination name %q", name)
	}
	o.ClearResults()
	o.Combos.Add(name, factors)
	return nil
}

// Validate recomputes all element matrices and aggregates every definition
// problem found: zero-length members, release mechanisms, degenerate
// plates. Returns a ModelDefinitionError carrying the full list.
func (o *Model) Validate() error {
	et := errors.New("model definition")
	if len(o.Nodes) == 0 {
		et.Add(goerr.New("model has no nodes"))
	}
	for _, m := range o.Members {
		if err := m.Recompute(); err != nil {
			et.Add(chk.Err("member %q: %v", m.Name, err))
		}
	}
	for _, q := range o.Quads {
		if err := q.Recompute(); err != nil {
			et.Add(chk.Err("plate %q: %v", q.Name, err))
		}
	}
	for _, s := range o.Springs {
		if err := s.Recompute(); err != nil {
			et.Add(chk.Err("spring %q: %v", s.Name, err))
		}
	}
	if et.IsError() {
		return &ModelDefinitionError{Msg: et.Error()}
	}
	return nil
}

// NodeDisp returns the 6 displacement components of a node for a solved
// combination
// SolvedCombos returns the solved combination names in definition order
func (o *Model) SolvedCombos() (names []string) {
	for _, name := range o.Combos.Names() {
		if o.Res.Has(name) {
			names = append(names, name)
		}
	}
	return
}

func (o *Model) NodeDisp(nodeName, combo string) ([]float64, error) {
	n := o.GetNode(nodeName)
	if n == nil {
		return nil, defErr("unknown node %q", nodeName)
	}
	d := o.Res.Disp(combo)
	if d == nil {
		return nil, chk.Err("combination %q has no results", combo)
	}
	out := make([]float64, 6)
	for i := 0; i < 6; i++ {
		out[i] = d[n.Eqs[i]]
	}
	return out, nil
}

// NodeReaction returns the 6 reaction components of a node for a solved
// combination. Unrestrained DOFs report zero.
func (o *Model) NodeReaction(nodeName, combo string) ([]float64, error) {
	n := o.GetNode(nodeName)
	if n == nil {
		return nil, defErr("unknown node %q", nodeName)
	}
	r := o.Res.Reac(combo)
	if r == nil {
		return nil, chk.Err("combination %q has no results", combo)
	}
	out := make([]float64, 6)
	for i := 0; i < 6; i++ {
		out[i] = r[n.Eqs[i]]
	}
	return out, nil
}
