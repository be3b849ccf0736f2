// Package export renders warehouse placement results to Excel, PDF and
// QR-coded label documents.
package export

import (
	"fmt"

	"github.com/piwi3910/RackPlan/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExportExcel writes the warehouse state to an .xlsx workbook with three
// sheets: Summary (per-stack statistics), Placements (every held
// container with its replayed coordinates) and Unplaced.
func ExportExcel(path string, set *model.ContainerSet, w *model.Warehouse) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	f.SetSheetName(f.GetSheetName(0), summary)
	if err := writeSummarySheet(f, summary, set, w); err != nil {
		return err
	}
	if err := writePlacementsSheet(f, set, w); err != nil {
		return err
	}
	if err := writeUnplacedSheet(f, set, w); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, set *model.ContainerSet, w *model.Warehouse) error {
	stats := w.Stats(set)

	rows := [][]interface{}{
		{"Warehouse", stats.Name},
		{"Stacks", stats.TotalStacks},
		{"Shelves", stats.TotalShelves},
		{"Containers", stats.TotalContainers},
		{"Total weight (kg)", stats.TotalWeight},
		{"Utilization (%)", stats.UtilizationPercent},
		{"Unplaced", stats.Unplaced},
		{},
		{"Stack", "Shelves", "Containers", "Weight (kg)", "Utilization (%)", "Buffered empties"},
	}
	for _, ss := range stats.Stacks {
		rows = append(rows, []interface{}{
			ss.Name, ss.TotalShelves, ss.TotalContainers,
			ss.TotalWeight, ss.UtilizationPercent, ss.EmptyBufferCount,
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writePlacementsSheet(f *excelize.File, set *model.ContainerSet, w *model.Warehouse) error {
	const sheet = "Placements"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Container", "Name", "Stack", "Level", "X (cm)", "Y (cm)",
			"Length", "Width", "Height", "Weight (kg)", "Type", "Material"},
	}
	for _, st := range w.Stacks {
		for _, sh := range st.Shelves {
			for _, placed := range sh.Layout(set) {
				c, ok := set.Get(placed.ID)
				if !ok {
					return fmt.Errorf("shelf references unknown container %q", placed.ID)
				}
				rows = append(rows, []interface{}{
					c.ID, c.Name, st.Name, sh.Level, placed.X, placed.Y,
					c.Length, c.Width, c.Height, c.Weight,
					string(c.Classify()), c.Material,
				})
			}
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeUnplacedSheet(f *excelize.File, set *model.ContainerSet, w *model.Warehouse) error {
	const sheet = "Unplaced"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Container", "Name", "Length", "Width", "Height", "Weight (kg)", "Type"},
	}
	for _, id := range w.UnplacedIDs {
		c, ok := set.Get(id)
		if !ok {
			return fmt.Errorf("unplaced list references unknown container %q", id)
		}
		rows = append(rows, []interface{}{
			c.ID, c.Name, c.Length, c.Width, c.Height, c.Weight, string(c.Classify()),
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
