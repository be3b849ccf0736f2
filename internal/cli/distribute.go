package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/export"
	"github.com/piwi3910/RackPlan/internal/importer"
	"github.com/piwi3910/RackPlan/internal/model"
	"github.com/piwi3910/RackPlan/internal/project"
)

var distributeOpts struct {
	input       string
	stacks      int
	shelves     int
	baseLength  float64
	baseWidth   float64
	shelfHeight float64
	maxWeight   float64
	reserveTop  bool
	saveProject string
	xlsxOut     string
	pdfOut      string
	labelsOut   string
}

var distributeCmd = &cobra.Command{
	Use:   "distribute",
	Short: "Distribute imported containers across a warehouse",
	Long: `Import a container list from CSV or Excel, build the stack topology
from the flags, run the cross-stack distribution and print the result.
The final state can be saved as a project file and exported to Excel,
PDF and QR label documents.`,
	Run: runDistribute,
}

func init() {
	f := distributeCmd.Flags()
	f.StringVarP(&distributeOpts.input, "input", "i", "", "container list (.csv or .xlsx)")
	f.IntVar(&distributeOpts.stacks, "stacks", 1, "number of stacks")
	f.IntVar(&distributeOpts.shelves, "shelves", 5, "shelves per stack")
	f.Float64Var(&distributeOpts.baseLength, "length", 200, "stack base length (cm)")
	f.Float64Var(&distributeOpts.baseWidth, "width", 120, "stack base width (cm)")
	f.Float64Var(&distributeOpts.shelfHeight, "shelf-height", 50, "shelf height (cm)")
	f.Float64Var(&distributeOpts.maxWeight, "max-weight", 500, "shelf weight capacity (kg)")
	f.BoolVar(&distributeOpts.reserveTop, "reserve-top", true, "reserve the top shelf for empties")
	f.StringVar(&distributeOpts.saveProject, "save", "", "write the resulting state to a project JSON file")
	f.StringVar(&distributeOpts.xlsxOut, "xlsx", "", "export placements to an Excel workbook")
	f.StringVar(&distributeOpts.pdfOut, "pdf", "", "export the layout to a PDF report")
	f.StringVar(&distributeOpts.labelsOut, "labels", "", "export QR container labels to a PDF")
	distributeCmd.MarkFlagRequired("input")
}

// importContainers dispatches on the input file extension and reports
// per-row problems without aborting the run.
func importContainers(path string) importer.ImportResult {
	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		result = importer.ImportExcel(path)
	default:
		result = importer.ImportCSV(path)
	}

	yellow := color.New(color.FgYellow)
	for _, warn := range result.Warnings {
		yellow.Printf("warning: %s\n", warn)
	}
	red := color.New(color.FgRed)
	for _, e := range result.Errors {
		red.Printf("skipped: %s\n", e)
	}
	return result
}

func runDistribute(cmd *cobra.Command, args []string) {
	result := importContainers(distributeOpts.input)
	if len(result.Containers) == 0 {
		exitError("no valid containers in %s", distributeOpts.input)
	}
	fmt.Printf("Imported %d containers\n\n", len(result.Containers))

	set := model.NewContainerSet()
	w := model.NewWarehouse("Warehouse")
	for i := 0; i < distributeOpts.stacks; i++ {
		st := model.NewStack(fmt.Sprintf("Stack_%d", i+1), distributeOpts.baseLength, distributeOpts.baseWidth)
		for level := 0; level < distributeOpts.shelves; level++ {
			reserved := distributeOpts.reserveTop &&
				distributeOpts.shelves > 1 && level == distributeOpts.shelves-1
			st.AddShelf(distributeOpts.maxWeight, distributeOpts.shelfHeight, reserved)
		}
		w.AddStack(st)
	}

	report, err := engine.Distribute(set, w, result.Containers)
	if err != nil {
		exitError("%v", err)
	}

	printPlacementReport(report)
	if len(report.ByStack) > 0 {
		fmt.Println("\nBy stack:")
		for _, st := range w.Stacks {
			if n := report.ByStack[st.Name]; n > 0 {
				fmt.Printf("  %s: %d\n", st.Name, n)
			}
		}
	}
	printWarehouseStats(set, w)

	if distributeOpts.saveProject != "" {
		name := strings.TrimSuffix(filepath.Base(distributeOpts.saveProject), ".json")
		if err := project.Save(distributeOpts.saveProject, project.Snapshot(name, set, w)); err != nil {
			exitError("%v", err)
		}
		fmt.Printf("\nSaved project to %s\n", distributeOpts.saveProject)
	}
	if distributeOpts.xlsxOut != "" {
		if err := export.ExportExcel(distributeOpts.xlsxOut, set, w); err != nil {
			exitError("%v", err)
		}
		fmt.Printf("Wrote %s\n", distributeOpts.xlsxOut)
	}
	if distributeOpts.pdfOut != "" {
		if err := export.ExportPDF(distributeOpts.pdfOut, set, w); err != nil {
			exitError("%v", err)
		}
		fmt.Printf("Wrote %s\n", distributeOpts.pdfOut)
	}
	if distributeOpts.labelsOut != "" {
		if err := export.ExportLabels(distributeOpts.labelsOut, set, w); err != nil {
			exitError("%v", err)
		}
		fmt.Printf("Wrote %s\n", distributeOpts.labelsOut)
	}
}
