// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/io"
)

// ModelDefinitionError reports invalid input found during the build phase:
// duplicate names, dangling references, zero-length members and degenerate
// plates. It is never produced during analysis.
type ModelDefinitionError struct {
	Msg string
}

func (e *ModelDefinitionError) Error() string {
	return io.Sf("model definition error: %s", e.Msg)
}

// UnstableDof identifies one unrestrained degree of freedom
type UnstableDof struct {
	Node string // node name
	Dof  int    // 0..5: ux, uy, uz, rx, ry, rz
}

// InstabilityError reports degrees of freedom with no stiffness
// contribution from any element, spring or support. The solve is not
// attempted; all implicated node/DOF pairs are listed.
type InstabilityError struct {
	Dofs []UnstableDof
}

var dofNames = []string{"ux", "uy", "uz", "rx", "ry", "rz"}

func (e *InstabilityError) Error() string {
	msg := "unstable model; unrestrained DOFs:"
	for _, d := range e.Dofs {
		msg += io.Sf(" %s:%s", d.Node, dofNames[d.Dof])
	}
	return msg
}

// ConvergenceError reports that the tension/compression-only activity
// iteration of one combination did not stabilize. Active holds the last
// iteration's state keyed by member (and spring) name.
type ConvergenceError struct {
	Combo   string
	MaxIt   int
	Members []string        // members still switching state
	Active  map[string]bool // last activity state
}

func (e *ConvergenceError) Error() string {
	return io.Sf("combination %q did not converge after %d iterations; switching members: %v",
		e.Combo, e.MaxIt, e.Members)
}

// NumericalError reports a failed factorization or non-finite results for
// one combination
type NumericalError struct {
	Combo string
	Msg   string
}

func (e *NumericalError) Error() string {
	if e.Combo == "" {
		return io.Sf("numerical failure: %s", e.Msg)
	}
	return io.Sf("numerical failure in combination %q: %s", e.Combo, e.Msg)
}
