// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/codegrab/codegrab/cmd/codegrab"

func main() {
	cmd.Execute()
}
