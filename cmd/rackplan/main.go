// RackPlan — warehouse tote placement planner
//
// Plans the placement of totes on shelf stacks: heavy stock low,
// priority totes within reach, empties on the reserved top shelf.
//
// Build:
//   go build -o rackplan ./cmd/rackplan

package main

import (
	"os"

	"github.com/piwi3910/RackPlan/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
