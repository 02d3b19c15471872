// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// Combo is one load combination: scale factors keyed by load case tag.
// Cases absent from the map do not participate.
type Combo struct {
	Name    string
	Factors map[string]float64
}

// Combos is the load combination registry, preserving definition order
type Combos struct {
	All   []*Combo
	index map[string]int
}

// Add appends a combination. Redefining a name is a caller error caught by
// the model validation.
func (o *Combos) Add(name string, factors map[string]float64) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if _, ok := o.index[name]; ok {
		return
	}
	o.index[name] = len(o.All)
	f := make(map[string]float64, len(factors))
	for k, v := range factors {
		f[k] = v
	}
	o.All = append(o.All, &Combo{Name: name, Factors: f})
}

// Get returns a combination by name
func (o *Combos) Get(name string) *Combo {
	i, ok := o.index[name]
	if !ok {
		return nil
	}
	return o.All[i]
}

// Names returns the combination names in definition order
func (o *Combos) Names() (names []string) {
	names = make([]string, len(o.All))
	for i, c := range o.All {
		names[i] = c.Name
	}
	return
}
