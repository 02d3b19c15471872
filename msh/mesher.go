// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh generates plate meshes over planar faces
package msh

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// constants
const (
	DefaultTol       = 1e-6 // node dedup tolerance
	DefaultMinAngle  = 20.0 // quality threshold [deg]
	DefaultMaxAspect = 8.0  // quality threshold
)

// Vert holds vertex data
type Vert struct {
	Id int       // id
	C  []float64 // coordinates (size==3)
}

// Cell holds one quad cell
type Cell struct {
	Id    int   // id
	Verts []int // vertex ids, counter-clockwise
	Bad   bool  // failed the quality thresholds
}

// Face is a planar rectangular region given by an origin and two edge
// vectors: U spans the width, V the height. U and V must be orthogonal.
type Face struct {
	Origin []float64 // [3]
	U      []float64 // [3] width direction, length = width
	V      []float64 // [3] height direction, length = height
}

// Params controls element size and quality thresholds. Zero values take
// the package defaults.
type Params struct {
	TargetSize float64 // target element edge length
	Tol        float64 // node dedup tolerance
	MinAngle   float64 // smallest acceptable interior angle [deg]
	MaxAspect  float64 // largest acceptable edge length ratio
}

// Mesh holds one generated mesh. Vertices are deduplicated within the
// mesh; Merge joins meshes of adjacent faces deduplicating the shared
// boundary vertices.
type Mesh struct {
	Verts []*Vert
	Cells []*Cell

	// derived
	Nrows, Ncols int
	tol          float64
	hash         map[[3]int64]int
}

// key quantizes coordinates to the dedup tolerance
func (o *Mesh) key(x, y, z float64) [3]int64 {
	return [3]int64{
		int64(math.Round(x / o.tol)),
		int64(math.Round(y / o.tol)),
		int64(math.Round(z / o.tol)),
	}
}

// AddVert returns the id of the vertex at the given coordinates, creating
// it unless a vertex already sits there within the tolerance
func (o *Mesh) AddVert(x, y, z float64) int {
	if o.hash == nil {
		o.hash = make(map[[3]int64]int)
	}
	k := o.key(x, y, z)
	if id, ok := o.hash[k]; ok {
		return id
	}
	id := len(o.Verts)
	o.Verts = append(o.Verts, &Vert{Id: id, C: []float64{x, y, z}})
	o.hash[k] = id
	return id
}

// GenRect meshes one rectangular face into ceil(width/s) by ceil(height/s)
// quads. Elements failing the quality thresholds are flagged, not dropped.
func GenRect(face Face, prm Params) (o *Mesh, err error) {
	if prm.TargetSize <= 0 {
		return nil, chk.Err("target element size must be positive")
	}
	if prm.Tol <= 0 {
		prm.Tol = DefaultTol
	}
	if prm.MinAngle <= 0 {
		prm.MinAngle = DefaultMinAngle
	}
	if prm.MaxAspect <= 0 {
		prm.MaxAspect = DefaultMaxAspect
	}
	W := norm3(face.U)
	H := norm3(face.V)
	if W < prm.Tol || H < prm.Tol {
		return nil, chk.Err("face edges are too short to mesh")
	}
	o = &Mesh{tol: prm.Tol}
	o.Ncols = int(math.Ceil(W / prm.TargetSize))
	o.Nrows = int(math.Ceil(H / prm.TargetSize))

	// grid of vertex ids; positions come from the face parametrisation
	ids := make([][]int, o.Nrows+1)
	for r := 0; r <= o.Nrows; r++ {
		ids[r] = make([]int, o.Ncols+1)
		tv := float64(r) / float64(o.Nrows)
		for c := 0; c <= o.Ncols; c++ {
			tu := float64(c) / float64(o.Ncols)
			x := face.Origin[0] + tu*face.U[0] + tv*face.V[0]
			y := face.Origin[1] + tu*face.U[1] + tv*face.V[1]
			z := face.Origin[2] + tu*face.U[2] + tv*face.V[2]
			ids[r][c] = o.AddVert(x, y, z)
		}
	}
	for r := 0; r < o.Nrows; r++ {
		for c := 0; c < o.Ncols; c++ {
			cell := &Cell{
				Id:    len(o.Cells),
				Verts: []int{ids[r][c], ids[r][c+1], ids[r+1][c+1], ids[r+1][c]},
			}
			minAngle, aspect, jacOK := o.CellQuality(cell)
			cell.Bad = minAngle < prm.MinAngle || aspect > prm.MaxAspect || !jacOK
			o.Cells = append(o.Cells, cell)
		}
	}
	return
}

// Merge copies another mesh into this one, deduplicating vertices shared
// across the face boundary
func (o *Mesh) Merge(other *Mesh) {
	remap := make([]int, len(other.Verts))
	for i, v := range other.Verts {
		remap[i] = o.AddVert(v.C[0], v.C[1], v.C[2])
	}
	for _, c := range other.Cells {
		verts := make([]int, len(c.Verts))
		for i, id := range c.Verts {
			verts[i] = remap[id]
		}
		o.Cells = append(o.Cells, &Cell{Id: len(o.Cells), Verts: verts, Bad: c.Bad})
	}
}

// Flagged returns the ids of cells failing the quality thresholds
func (o *Mesh) Flagged() (bad []int) {
	for _, c := range o.Cells {
		if c.Bad {
			bad = append(bad, c.Id)
		}
	}
	return
}

// CellQuality scores one cell: smallest interior angle [deg], edge aspect
// ratio, and corner Jacobian positivity (consistent normal orientation)
func (o *Mesh) CellQuality(cell *Cell) (minAngle, aspect float64, jacOK bool) {
	n := len(cell.Verts)
	minAngle = 180.0
	emin, emax := math.MaxFloat64, 0.0
	jacOK = true
	var ref []float64
	for k := 0; k < n; k++ {
		a := o.Verts[cell.Verts[(k+n-1)%n]].C
		b := o.Verts[cell.Verts[k]].C
		c := o.Verts[cell.Verts[(k+1)%n]].C
		u := []float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
		v := []float64{c[0] - b[0], c[1] - b[1], c[2] - b[2]}
		nu, nv := norm3(u), norm3(v)
		if nv < emin {
			emin = nv
		}
		if nv > emax {
			emax = nv
		}
		if nu*nv == 0 {
			return 0, math.MaxFloat64, false
		}
		cosθ := (u[0]*v[0] + u[1]*v[1] + u[2]*v[2]) / (nu * nv)
		if cosθ > 1 {
			cosθ = 1
		}
		if cosθ < -1 {
			cosθ = -1
		}
		θ := math.Acos(cosθ) * 180.0 / math.Pi
		if θ < minAngle {
			minAngle = θ
		}

		// corner normal v × u must not flip across corners
		w := []float64{
			v[1]*u[2] - v[2]*u[1],
			v[2]*u[0] - v[0]*u[2],
			v[0]*u[1] - v[1]*u[0],
		}
		if ref == nil {
			ref = w
		} else if w[0]*ref[0]+w[1]*ref[1]+w[2]*ref[2] <= 0 {
			jacOK = false
		}
	}
	aspect = emax / emin
	return
}

func norm3(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
