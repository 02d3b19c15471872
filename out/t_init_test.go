// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/gofea/gofea/mdl"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func testMaterial() *mdl.Material {
	return mdl.NewMaterial("steel", 200000, 0.3, 7.85e-9)
}

func testSection() *mdl.CrossSection {
	return mdl.NewSection("sec", 4000, 8.0e6, 8.0e6, 1.0e6)
}
