/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import (
	"github.com/mchmarny/sysgrab/pkg/cli"
)

func main() {
	cli.Execute()
}
