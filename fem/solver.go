// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"math"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/gofea/gofea/ele"
)

// Solver runs the direct-stiffness analysis: stability scan, assembly,
// partition by boundary condition, factorize-once/solve-many over the load
// combinations, tension/compression-only activity iteration and reaction
// recovery. Results land in Mdl.Res; the model itself is never mutated.
type Solver struct {
	Mdl *Model

	// settings
	LinSolName     string  // sparse solver name; "umfpack" by default
	MaxIter        int     // nonlinear activity iteration limit
	AxTol          float64 // axial force sign tolerance
	InactiveFactor float64 // stiffness scale of inactive members
	NWorkers       int     // combinations solved concurrently (<=1: sequential)
	Verbose        bool
}

// NewSolver returns a solver with default settings
func NewSolver(m *Model) *Solver {
	return &Solver{
		Mdl:            m,
		LinSolName:     "umfpack",
		MaxIter:        30,
		AxTol:          1e-9,
		InactiveFactor: 1e-8,
		NWorkers:       1,
	}
}

// run holds the per-analysis state shared by all combinations: equation
// numbering, the free/restrained partition and the prescribed values
type run struct {
	sv   *Solver
	ndof int
	res  []bool    // restrained flags [ndof]
	pos  []int     // eq -> position inside its partition [ndof]
	ff   []int     // free equation numbers
	rr   []int     // restrained equation numbers
	dr   []float64 // prescribed displacements [len(rr)]
	nnz  int       // triplet capacity estimate
}

// sysmat is one activity state's assembled and factorized system
type sysmat struct {
	Kff *la.Triplet
	Kfr *la.CCMatrix
	Krr *la.CCMatrix
	lis la.LinSol
}

func (o *sysmat) free() {
	if o.lis != nil {
		o.lis.Free()
	}
}

// Analyze solves the named combinations (all registered ones when the list
// is empty). Definition and instability errors abort the whole run; a
// convergence or numerical failure aborts only its combination and the
// first such error is returned after all combinations were attempted.
func (o *Solver) Analyze(ctx context.Context, comboNames ...string) (err error) {

	// validation recomputes all element matrices
	if err = o.Mdl.Validate(); err != nil {
		return
	}
	if len(comboNames) == 0 {
		comboNames = o.Mdl.Combos.Names()
	}
	combos := make([]*Combo, len(comboNames))
	for i, name := range comboNames {
		combos[i] = o.Mdl.Combos.Get(name)
		if combos[i] == nil {
			return defErr("unknown combination %q", name)
		}
	}

	// numbering, partition and stability scan
	r, err := o.prepare()
	if err != nil {
		return
	}

	if o.NWorkers > 1 && len(combos) > 1 {
		return o.analyzeConcurrent(ctx, r, combos)
	}

	// factorize the all-active state once; every combination starts from it
	base, err := r.newSysmat("", nil, nil)
	if err != nil {
		return
	}
	defer base.free()
	for _, c := range combos {
		if e := ctx.Err(); e != nil {
			return e
		}
		if e := r.solveCombo(ctx, c, base); e != nil {
			if err == nil {
				err = e
			} else if o.Verbose {
				io.Pf("combination %q failed: %v\n", c.Name, e)
			}
		}
	}
	return
}

// AnalyzeLinear is the convenience form for models without nonlinear
// members or springs: a single activity state, one factorization, one
// back-substitution per combination
func (o *Solver) AnalyzeLinear(ctx context.Context, comboNames ...string) error {
	for _, m := range o.Mdl.Members {
		if m.Nonlin != ele.NonlinNone {
			return chk.Err("member %q is nonlinear; use Analyze", m.Name)
		}
	}
	for _, s := range o.Mdl.Springs {
		if s.Nonlin != ele.NonlinNone {
			return chk.Err("spring %q is nonlinear; use Analyze", s.Name)
		}
	}
	return o.Analyze(ctx, comboNames...)
}

// analyzeConcurrent spreads combinations over workers. Each worker owns its
// own factorization, so the factorization count scales with workers, not
// with combinations. Result rows are disjoint per combination; the store
// itself is guarded.
func (o *Solver) analyzeConcurrent(ctx context.Context, r *run, combos []*Combo) (err error) {
	nw := o.NWorkers
	if nw > len(combos) {
		nw = len(combos)
	}
	jobs := make(chan *Combo, len(combos))
	for _, c := range combos {
		jobs <- c
	}
	close(jobs)
	errs := make([]error, nw)
	var wg sync.WaitGroup
	for w := 0; w < nw; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			base, e := r.newSysmat("", nil, nil)
			if e != nil {
				errs[w] = e
				return
			}
			defer base.free()
			for c := range jobs {
				if e := ctx.Err(); e != nil {
					errs[w] = e
					return
				}
				if e := r.solveCombo(ctx, c, base); e != nil && errs[w] == nil {
					errs[w] = e
				}
			}
		}(w)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// prepare numbers the equations, partitions the DOFs and runs the
// stability scan
func (o *Solver) prepare() (r *run, err error) {
	m := o.Mdl
	r = &run{sv: o, ndof: 6 * len(m.Nodes)}

	// equation numbers and element assembly maps
	for _, n := range m.Nodes {
		n.Eqs = make([]int, 6)
		for i := 0; i < 6; i++ {
			n.Eqs[i] = 6*n.Id + i
		}
	}
	for _, mb := range m.Members {
		mb.SetEqs(m.Nodes[mb.Ni].Eqs, m.Nodes[mb.Nj].Eqs)
	}
	for _, q := range m.Quads {
		eqs := make([][]int, 4)
		for k, id := range q.Nodes {
			eqs[k] = m.Nodes[id].Eqs
		}
		q.SetEqs(eqs)
	}
	for _, s := range m.Springs {
		s.SetEqs(m.Nodes[s.Ni].Eqs[:3], m.Nodes[s.Nj].Eqs[:3])
	}

	// stability scan on the pre-BC diagonal: a free DOF with no stiffness
	// from any element or ground spring cannot be solved
	diag := make([]float64, r.ndof)
	for _, mb := range m.Members {
		for i, I := range mb.Umap {
			diag[I] += math.Abs(mb.K[i][i])
		}
	}
	for _, q := range m.Quads {
		for i, I := range q.Umap {
			diag[I] += math.Abs(q.K[i][i])
		}
	}
	for _, s := range m.Springs {
		for i, I := range s.Umap {
			diag[I] += math.Abs(s.K[i][i])
		}
	}
	for _, n := range m.Nodes {
		for i := 0; i < 6; i++ {
			if n.SprAct[i] {
				diag[n.Eqs[i]] += n.SprK[i]
			}
		}
	}
	// release condensation leaves machine-epsilon residuals on the
	// diagonal, so "zero" is judged relative to the largest entry
	maxdiag := 0.0
	for _, d := range diag {
		if d > maxdiag {
			maxdiag = d
		}
	}
	zero := 1e-12 * maxdiag
	var unstable []UnstableDof
	for _, n := range m.Nodes {
		for i := 0; i < 6; i++ {
			if !n.Restrained(i) && diag[n.Eqs[i]] <= zero {
				unstable = append(unstable, UnstableDof{Node: n.Name, Dof: i})
			}
		}
	}
	if len(unstable) > 0 {
		return nil, &InstabilityError{Dofs: unstable}
	}

	// partition
	r.res = make([]bool, r.ndof)
	r.pos = make([]int, r.ndof)
	for _, n := range m.Nodes {
		for i := 0; i < 6; i++ {
			eq := n.Eqs[i]
			if n.Restrained(i) {
				r.res[eq] = true
				r.pos[eq] = len(r.rr)
				r.rr = append(r.rr, eq)
				r.dr = append(r.dr, n.Prescribed(i))
			} else {
				r.pos[eq] = len(r.ff)
				r.ff = append(r.ff, eq)
			}
		}
	}
	if len(r.ff) == 0 {
		return nil, defErr("model has no free DOFs")
	}
	r.nnz = 144*len(m.Members) + 576*len(m.Quads) + 36*len(m.Springs) + r.ndof
	return
}

// newSysmat assembles the partitioned blocks for one activity state and
// factorizes Kff. Nil activity slices mean everything active. The combo
// name only labels errors.
func (r *run) newSysmat(combo string, memAct, sprAct []bool) (s *sysmat, err error) {
	m := r.sv.Mdl
	nf, nr := len(r.ff), len(r.rr)
	s = &sysmat{Kff: new(la.Triplet)}
	s.Kff.Init(nf, nf, r.nnz)
	kfr := new(la.Triplet)
	kfr.Init(nf, nr, r.nnz)
	krr := new(la.Triplet)
	krr.Init(nr, nr, r.nnz)

	put := func(I, J int, v float64) {
		switch {
		case !r.res[I] && !r.res[J]:
			s.Kff.Put(r.pos[I], r.pos[J], v)
		case !r.res[I] && r.res[J]:
			kfr.Put(r.pos[I], r.pos[J], v)
		case r.res[I] && r.res[J]:
			krr.Put(r.pos[I], r.pos[J], v)
		}
		// the restrained-free block is recovered as trans(Kfr)
	}
	addBlock := func(umap []int, K [][]float64, α float64) {
		for i, I := range umap {
			for j, J := range umap {
				put(I, J, α*K[i][j])
			}
		}
	}

	for k, mb := range m.Members {
		α := 1.0
		if memAct != nil && !memAct[k] {
			α = r.sv.InactiveFactor
		}
		addBlock(mb.Umap, mb.K, α)
	}
	for _, q := range m.Quads {
		addBlock(q.Umap, q.K, 1)
	}
	for k, sp := range m.Springs {
		α := 1.0
		if sprAct != nil && !sprAct[k] {
			α = r.sv.InactiveFactor
		}
		addBlock(sp.Umap, sp.K, α)
	}
	for _, n := range m.Nodes {
		for i := 0; i < 6; i++ {
			if n.SprAct[i] {
				put(n.Eqs[i], n.Eqs[i], n.SprK[i])
			}
		}
	}

	s.Kfr = kfr.ToMatrix(nil)
	s.Krr = krr.ToMatrix(nil)
	s.lis = la.GetSolver(r.sv.LinSolName)
	err = s.lis.InitR(s.Kff, false, false, false)
	if err != nil {
		s.free()
		return nil, &NumericalError{Combo: combo, Msg: io.Sf("linear solver initialisation failed: %v", err)}
	}
	err = s.lis.Fact()
	if err != nil {
		s.free()
		return nil, &NumericalError{Combo: combo, Msg: io.Sf("factorisation failed: %v", err)}
	}
	return
}

// assembleRhs builds the full-length load vector of one combination from
// member, plate and nodal loads scaled by the combination factors
func (r *run) assembleRhs(factors map[string]float64) (fb []float64) {
	m := r.sv.Mdl
	fb = make([]float64, r.ndof)
	for _, mb := range m.Members {
		mb.AddToRhs(fb, factors)
	}
	for _, q := range m.Quads {
		q.AddToRhs(fb, factors)
	}
	for _, n := range m.Nodes {
		for _, ld := range n.Loads {
			if f, ok := factors[ld.Case]; ok {
				fb[n.Eqs[ld.Dof]] += f * ld.P
			}
		}
	}
	return
}

// backSub solves one right-hand side with the factorized system and
// scatters the solution into a full displacement vector
func (r *run) backSub(s *sysmat, fb []float64, combo string) (y []float64, err error) {
	nf := len(r.ff)
	bf := make([]float64, nf)
	for i, eq := range r.ff {
		bf[i] = fb[eq]
	}
	la.SpMatVecMulAdd(bf, -1, s.Kfr, r.dr) // bf += -1 * Kfr * dr
	xf := make([]float64, nf)
	err = s.lis.SolveR(xf, bf, false)
	if err != nil {
		return nil, &NumericalError{Combo: combo, Msg: io.Sf("solve failed: %v", err)}
	}
	y = make([]float64, r.ndof)
	for i, eq := range r.ff {
		if math.IsNaN(xf[i]) || math.IsInf(xf[i], 0) {
			return nil, &NumericalError{Combo: combo, Msg: "solution contains non-finite values"}
		}
		y[eq] = xf[i]
	}
	for i, eq := range r.rr {
		y[eq] = r.dr[i]
	}
	return
}

// reactions recovers R_r = trans(Kfr)*D_f + Krr*D_r - F_r and scatters it
// into a full-length vector. Ground springs restrain free DOFs, so their
// forces -k*d are support reactions too.
func (r *run) reactions(s *sysmat, y, fb []float64) (rv []float64) {
	nf, nr := len(r.ff), len(r.rr)
	df := make([]float64, nf)
	for i, eq := range r.ff {
		df[i] = y[eq]
	}
	rr := make([]float64, nr)
	la.SpMatTrVecMulAdd(rr, 1, s.Kfr, df) // rr += trans(Kfr) * df
	la.SpMatVecMulAdd(rr, 1, s.Krr, r.dr) // rr += Krr * dr
	rv = make([]float64, r.ndof)
	for i, eq := range r.rr {
		rv[eq] = rr[i] - fb[eq]
	}
	for _, n := range r.sv.Mdl.Nodes {
		for i := 0; i < 6; i++ {
			eq := n.Eqs[i]
			if n.SprAct[i] && !r.res[eq] {
				rv[eq] -= n.SprK[i] * y[eq]
			}
		}
	}
	return
}

// updateActivity flips tension/compression-only members and springs whose
// state disagrees with the solution: active members carrying the wrong
// axial sign are deactivated; inactive members whose elongation matches
// their allowed sign are reactivated. Returns the names of members that
// switched.
func (r *run) updateActivity(y []float64, factors map[string]float64, memAct, sprAct []bool) (switched []string) {
	m := r.sv.Mdl
	tol := r.sv.AxTol
	for k, mb := range m.Members {
		var flip bool
		switch mb.Nonlin {
		case ele.TensionOnly:
			if memAct[k] {
				flip = mb.AxialForce(y, factors) < -tol
			} else {
				flip = mb.Elongation(y) > 0
			}
		case ele.CompressionOnly:
			if memAct[k] {
				flip = mb.AxialForce(y, factors) > tol
			} else {
				flip = mb.Elongation(y) < 0
			}
		}
		if flip {
			memAct[k] = !memAct[k]
			switched = append(switched, mb.Name)
		}
	}
	for k, sp := range m.Springs {
		var flip bool
		switch sp.Nonlin {
		case ele.TensionOnly:
			if sprAct[k] {
				flip = sp.AxialForce(y) < -tol
			} else {
				flip = sp.Elongation(y) > 0
			}
		case ele.CompressionOnly:
			if sprAct[k] {
				flip = sp.AxialForce(y) > tol
			} else {
				flip = sp.Elongation(y) < 0
			}
		}
		if flip {
			sprAct[k] = !sprAct[k]
			switched = append(switched, sp.Name)
		}
	}
	return
}

var storeMu sync.Mutex

// solveCombo runs the activity iteration of one combination and stores its
// results. A failure stores nothing for this combination.
func (r *run) solveCombo(ctx context.Context, c *Combo, base *sysmat) error {
	m := r.sv.Mdl
	memAct := make([]bool, len(m.Members))
	sprAct := make([]bool, len(m.Springs))
	for i := range memAct {
		memAct[i] = true
	}
	for i := range sprAct {
		sprAct[i] = true
	}
	fb := r.assembleRhs(c.Factors)

	st := base
	defer func() {
		if st != base {
			st.free()
		}
	}()
	for it := 0; it < r.sv.MaxIter; it++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		y, err := r.backSub(st, fb, c.Name)
		if err != nil {
			return err
		}
		switched := r.updateActivity(y, c.Factors, memAct, sprAct)
		if len(switched) == 0 {
			rv := r.reactions(st, y, fb)
			storeMu.Lock()
			m.Res.store(c.Name, y, rv, memAct, sprAct)
			storeMu.Unlock()
			if r.sv.Verbose {
				io.Pf("combination %q solved after %d iteration(s)\n", c.Name, it+1)
			}
			return nil
		}
		if st != base {
			st.free()
			st = base // avoid double free if newSysmat fails
		}
		st, err = r.newSysmat(c.Name, memAct, sprAct)
		if err != nil {
			st = base
			return err
		}
	}

	// not stabilized: report the last state by name
	last := make(map[string]bool, len(memAct)+len(sprAct))
	var offenders []string
	for k, mb := range m.Members {
		if mb.Nonlin != ele.NonlinNone {
			last[mb.Name] = memAct[k]
			offenders = append(offenders, mb.Name)
		}
	}
	for k, sp := range m.Springs {
		if sp.Nonlin != ele.NonlinNone {
			last[sp.Name] = sprAct[k]
			offenders = append(offenders, sp.Name)
		}
	}
	return &ConvergenceError{Combo: c.Name, MaxIt: r.sv.MaxIter, Members: offenders, Active: last}
}

// CheckStatics sums the combination-scaled applied loads and the recovered
// reactions: three force components and three moment components taken
// about the origin. A well-solved combination returns residuals near zero.
func (o *Solver) CheckStatics(combo string) (residual []float64, err error) {
	c := o.Mdl.Combos.Get(combo)
	if c == nil {
		return nil, defErr("unknown combination %q", combo)
	}
	rv := o.Mdl.Res.Reac(combo)
	if rv == nil {
		return nil, chk.Err("combination %q has no results", combo)
	}
	r, err := o.prepare()
	if err != nil {
		return nil, err
	}
	fb := r.assembleRhs(c.Factors)
	residual = make([]float64, 6)
	for _, n := range o.Mdl.Nodes {
		f := make([]float64, 6)
		for i := 0; i < 6; i++ {
			f[i] = fb[n.Eqs[i]] + rv[n.Eqs[i]]
		}
		x, y, z := n.X[0], n.X[1], n.X[2]
		for i := 0; i < 3; i++ {
			residual[i] += f[i]
		}
		residual[3] += f[3] + y*f[2] - z*f[1]
		residual[4] += f[4] + z*f[0] - x*f[2]
		residual[5] += f[5] + x*f[1] - y*f[0]
	}
	return
}
