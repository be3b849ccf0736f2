package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/model"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the built-in placement example",
	Long: `Organize eleven sample totes onto a single five-shelf stack and print
the placement log, the resulting layout and the stack statistics.`,
	Run: runDemo,
}

func demoContainer(id, name string, weight, length, width, height float64) *model.Container {
	c := model.NewContainer(name, weight, length, width, height)
	c.ID = id
	return c
}

func runDemo(cmd *cobra.Command, args []string) {
	set := model.NewContainerSet()

	stack := model.NewStack("A1", 200, 120)
	stack.AddShelf(500, 50, false)
	stack.AddShelf(300, 50, false)
	stack.AddShelf(300, 50, false)
	stack.AddShelf(200, 50, false)
	stack.AddShelf(100, 50, true)

	containers := []*model.Container{
		demoContainer("T001", "Large tote 1", 80, 60, 40, 45),
		demoContainer("T002", "Large tote 2", 75, 60, 40, 45),
		demoContainer("T003", "Medium tote 1", 50, 50, 40, 40),
		demoContainer("T004", "Urgent tote 1", 30, 40, 30, 35),
		demoContainer("T005", "Urgent tote 2", 25, 40, 30, 35),
		demoContainer("T006", "Small tote 1", 20, 40, 30, 30),
		demoContainer("T007", "Small tote 2", 18, 40, 30, 30),
		demoContainer("T008", "Medium tote 2", 45, 50, 35, 40),
		demoContainer("T009", "Empty tote 1", 5, 40, 30, 30),
		demoContainer("T010", "Empty tote 2", 6, 50, 35, 35),
		demoContainer("T011", "Empty tote 3", 4, 40, 30, 30),
	}
	containers[0].Content = "Engine housings"
	containers[1].Content = "Metal parts"
	containers[2].Content = "Spare parts"
	containers[3].Priority = true
	containers[3].Content = "Rush order A"
	containers[4].Priority = true
	containers[4].Content = "Rush order B"
	containers[5].Content = "Small parts"
	containers[6].Content = "Electronics"
	containers[7].Content = "Tools"
	containers[8].IsEmpty = true
	containers[9].IsEmpty = true
	containers[10].IsEmpty = true

	fmt.Printf("Placing %d totes onto stack %s\n\n", len(containers), stack.Name)

	report, err := engine.Organize(set, stack, containers)
	if err != nil {
		exitError("%v", err)
	}

	printPlacementReport(report)
	printStackLayout(set, stack)

	stats := stack.Stats(set)
	fmt.Printf("\nStack totals: %d containers, %.1f kg, %.1f%% of %.0f cm² used\n",
		stats.TotalContainers, stats.TotalWeight, stats.UtilizationPercent, stats.TotalArea)
}
