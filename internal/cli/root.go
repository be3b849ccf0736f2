// Package cli implements the command-line interface for RackPlan.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/piwi3910/RackPlan/internal/model"
)

var rootCmd = &cobra.Command{
	Use:   "rackplan",
	Short: "Warehouse tote placement planner",
	Long: `RackPlan plans the placement of totes on shelf stacks: heavy stock on
the lower shelves, priority totes within easy reach, empties on the
reserved top shelf. It imports container lists from CSV or Excel,
distributes them across a warehouse, and exports layout reports.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(distributeCmd)
	rootCmd.AddCommand(postsCmd)
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

// printPlacementReport renders an engine report with one colored line
// per attempted container.
func printPlacementReport(report model.PlacementReport) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	for _, e := range report.Entries {
		if e.Status == model.StatusPlaced {
			where := fmt.Sprintf("level %d", e.Level)
			if e.Stack != "" {
				where = fmt.Sprintf("%s, level %d", e.Stack, e.Level)
			}
			green.Printf("  ✓ %s (%.1f kg, %s) -> %s\n", e.ContainerID, e.Weight, e.Class, where)
			continue
		}
		line := fmt.Sprintf("  ✗ %s (%.1f kg, %s) not placed", e.ContainerID, e.Weight, e.Class)
		if e.Reason != "" {
			line += ": " + e.Reason
		}
		red.Println(line)
	}

	fmt.Printf("\nPlaced %d of %d", report.Placed, report.Total)
	if report.NotPlaced > 0 {
		fmt.Printf(" (%d unplaced)", report.NotPlaced)
	}
	fmt.Println()
	for _, class := range []model.ContainerClass{model.ClassRegular, model.ClassPriority, model.ClassEmpty} {
		if n := report.ByClass[class]; n > 0 {
			fmt.Printf("  %s: %d\n", class, n)
		}
	}
}

// printStackLayout renders each shelf of a stack with the replayed
// container coordinates.
func printStackLayout(set *model.ContainerSet, st *model.Stack) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	bold.Printf("\nStack %s (%.0f x %.0f cm)\n", st.Name, st.BaseLength, st.BaseWidth)
	for i := len(st.Shelves) - 1; i >= 0; i-- {
		sh := st.Shelves[i]
		tag := ""
		if sh.ReservedForEmpty {
			tag = " [reserved for empties]"
		}
		cyan.Printf("  Level %d%s  %.0f/%.0f kg, %.1f%% used\n",
			sh.Level, tag, sh.CurrentWeight(set), sh.MaxWeight, sh.UtilizationPercent(set))
		for _, placed := range sh.Layout(set) {
			c, ok := set.Get(placed.ID)
			if !ok {
				continue
			}
			fmt.Printf("    %-10s %-22s at (%.0f, %.0f)  %.0fx%.0f cm, %.1f kg\n",
				c.ID, c.Name, placed.X, placed.Y, c.Length, c.Width, c.Weight)
		}
	}
}

func printWarehouseStats(set *model.ContainerSet, w *model.Warehouse) {
	stats := w.Stats(set)
	bold := color.New(color.Bold)

	bold.Println("\nWarehouse statistics")
	fmt.Printf("  Stacks: %d  Shelves: %d  Containers: %d\n",
		stats.TotalStacks, stats.TotalShelves, stats.TotalContainers)
	fmt.Printf("  Weight: %.1f kg  Utilization: %.1f%%  Unplaced: %d\n",
		stats.TotalWeight, stats.UtilizationPercent, stats.Unplaced)
	for _, ss := range stats.Stacks {
		fmt.Printf("    %-24s %d containers, %.1f kg, %.1f%%\n",
			ss.Name, ss.TotalContainers, ss.TotalWeight, ss.UtilizationPercent)
	}
}
