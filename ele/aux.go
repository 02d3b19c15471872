// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
)

// geometry errors raised by element computations. the model build layer
// wraps these into its definition-error type
func errZeroLength(name string) error {
	return chk.Err("member %q has (nearly) zero length: end nodes coincide", name)
}

func errReleaseMechanism(name string) error {
	return chk.Err("member %q releases form a mechanism: released block is singular", name)
}

func errDegenerate(name string) error {
	return chk.Err("plate %q has fewer than 3 distinct corners", name)
}
