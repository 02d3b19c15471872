// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "sort"

// Results stores the outcome of one analysis batch in fixed-shape tables
// indexed by combination. Only combinations that completed successfully get
// a slot; a failed combination stores nothing.
type Results struct {
	combos map[string]int // combo name -> row

	// tables, one row per solved combination
	D      [][]float64 // full displacement vectors [ncombo][ndof]
	R      [][]float64 // reaction vectors [ncombo][ndof] (nonzero at restrained DOFs)
	MemAct [][]bool    // member activity [ncombo][nmembers]
	SprAct [][]bool    // spring activity [ncombo][nsprings]
}

// NewResults creates an empty results store
func NewResults() *Results {
	return &Results{combos: make(map[string]int)}
}

// store saves one solved combination. Called by the solver only.
func (o *Results) store(combo string, d, r []float64, memAct, sprAct []bool) {
	row, ok := o.combos[combo]
	if !ok {
		row = len(o.D)
		o.combos[combo] = row
		o.D = append(o.D, nil)
		o.R = append(o.R, nil)
		o.MemAct = append(o.MemAct, nil)
		o.SprAct = append(o.SprAct, nil)
	}
	o.D[row] = d
	o.R[row] = r
	o.MemAct[row] = memAct
	o.SprAct[row] = sprAct
}

// Has tells whether a combination has stored results
func (o *Results) Has(combo string) bool {
	_, ok := o.combos[combo]
	return ok
}

// Combos returns the names of all solved combinations, sorted by name.
// Row order is not meaningful: concurrent workers store combinations as
// they finish. Use Model.SolvedCombos for the definition order.
func (o *Results) Combos() (names []string) {
	names = make([]string, 0, len(o.combos))
	for name := range o.combos {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Disp returns the full displacement vector of a solved combination, or
// nil if the combination was not solved
func (o *Results) Disp(combo string) []float64 {
	row, ok := o.combos[combo]
	if !ok {
		return nil
	}
	return o.D[row]
}

// Reac returns the full reaction vector of a solved combination
func (o *Results) Reac(combo string) []float64 {
	row, ok := o.combos[combo]
	if !ok {
		return nil
	}
	return o.R[row]
}

// MemberActive tells whether member id was active in a solved combination.
// Members without nonlinearity are always active.
func (o *Results) MemberActive(combo string, id int) bool {
	row, ok := o.combos[combo]
	if !ok {
		return false
	}
	return o.MemAct[row][id]
}

// clear drops everything. Called when the model is edited.
func (o *Results) clear() {
	o.combos = make(map[string]int)
	o.D, o.R, o.MemAct, o.SprAct = nil, nil, nil, nil
}
