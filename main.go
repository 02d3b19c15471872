// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "github.com/gofea/gofea/cmd"

func main() {
	cmd.Execute()
}
