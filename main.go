// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/mgirard/annuaire/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
