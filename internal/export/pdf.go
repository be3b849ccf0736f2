package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/RackPlan/internal/model"
)

// containerColor represents an RGB fill for a drawn container.
type containerColor struct {
	R, G, B int
}

// classColors keys the fill on the placement tier so the diagram reads
// at a glance: regular green, priority orange, empty grey.
var classColors = map[model.ContainerClass]containerColor{
	model.ClassRegular:  {R: 76, G: 175, B: 80},
	model.ClassPriority: {R: 255, G: 152, B: 0},
	model.ClassEmpty:    {R: 158, G: 158, B: 158},
}

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	shelfSpacing = 8.0
	drawAreaTop  = marginTop + headerHeight + 8.0
)

// ExportPDF renders the warehouse layout: one page per stack showing
// every shelf as a top-down band with its containers at the replayed
// row-packing coordinates, then a summary page.
func ExportPDF(path string, set *model.ContainerSet, w *model.Warehouse) error {
	if len(w.Stacks) == 0 {
		return fmt.Errorf("no stacks to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, st := range w.Stacks {
		pdf.AddPage()
		renderStackPage(pdf, set, st)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, set, w)

	return pdf.OutputFileAndClose(path)
}

// renderStackPage draws one stack: shelf bands from the top level down,
// each a scaled top-down view of the shelf footprint.
func renderStackPage(pdf *fpdf.Fpdf, set *model.ContainerSet, st *model.Stack) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Stack %s (%.0f x %.0f cm)", st.Name, st.BaseLength, st.BaseWidth)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	stats := st.Stats(set)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	line := fmt.Sprintf("Shelves: %d | Containers: %d | Weight: %.1f kg | Utilization: %.1f%%",
		stats.TotalShelves, stats.TotalContainers, stats.TotalWeight, stats.UtilizationPercent)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")

	if len(st.Shelves) == 0 {
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom
	bandHeight := (drawHeight - shelfSpacing*float64(len(st.Shelves)-1)) / float64(len(st.Shelves))

	scale := drawWidth / st.BaseLength
	if st.BaseWidth > 0 {
		scale = math.Min(scale, bandHeight/st.BaseWidth)
	}

	// Top level first so the page mirrors the physical stack.
	y := drawAreaTop
	for i := len(st.Shelves) - 1; i >= 0; i-- {
		renderShelfBand(pdf, set, st.Shelves[i], marginLeft, y, scale)
		y += bandHeight + shelfSpacing
	}
}

// renderShelfBand draws a single shelf footprint with its containers.
func renderShelfBand(pdf *fpdf.Fpdf, set *model.ContainerSet, sh *model.Shelf, x, y, scale float64) {
	bandW := sh.Length * scale
	bandH := sh.Width * scale

	if sh.ReservedForEmpty {
		pdf.SetFillColor(235, 235, 245)
	} else {
		pdf.SetFillColor(245, 240, 225)
	}
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(x, y, bandW, bandH, "FD")

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(60, 60, 60)
	label := fmt.Sprintf("Level %d  (%.0f/%.0f kg, %.0f%%)",
		sh.Level, sh.CurrentWeight(set), sh.MaxWeight, sh.UtilizationPercent(set))
	if sh.ReservedForEmpty {
		label += "  [reserved for empties]"
	}
	pdf.SetXY(x, y-4)
	pdf.CellFormat(bandW, 3.5, label, "", 0, "L", false, 0, "")

	for _, placed := range sh.Layout(set) {
		c, ok := set.Get(placed.ID)
		if !ok {
			continue
		}
		col, known := classColors[c.Classify()]
		if !known {
			col = containerColor{R: 120, G: 120, B: 120}
		}

		cw := c.Length * scale
		ch := c.Width * scale
		cx := x + placed.X*scale
		cy := y + placed.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(cx, cy, cw, ch, "FD")

		if cw > 12 && ch > 5 {
			pdf.SetFont("Helvetica", "", labelFontSize(cw, ch))
			pdf.SetTextColor(0, 0, 0)
			name := c.Name
			if pdf.GetStringWidth(name) > cw-1 {
				name = c.ID
			}
			if pdf.GetStringWidth(name) < cw-1 {
				pdf.SetXY(cx+(cw-pdf.GetStringWidth(name))/2, cy+ch/2-2)
				pdf.CellFormat(pdf.GetStringWidth(name), 4, name, "", 0, "C", false, 0, "")
			}
		}
	}
	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the closing statistics page.
func renderSummaryPage(pdf *fpdf.Fpdf, set *model.ContainerSet, w *model.Warehouse) {
	stats := w.Stats(set)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Warehouse Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	summaryItems := []struct {
		label string
		value string
	}{
		{"Stacks", fmt.Sprintf("%d", stats.TotalStacks)},
		{"Shelves", fmt.Sprintf("%d", stats.TotalShelves)},
		{"Containers placed", fmt.Sprintf("%d", stats.TotalContainers)},
		{"Total weight", fmt.Sprintf("%.1f kg", stats.TotalWeight)},
		{"Utilization", fmt.Sprintf("%.1f%%", stats.UtilizationPercent)},
		{"Unplaced containers", fmt.Sprintf("%d", stats.Unplaced)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Stack Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{55, 25, 30, 30, 40}
	headers := []string{"Stack", "Shelves", "Containers", "Weight", "Utilization"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, ss := range stats.Stacks {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		row := []string{
			ss.Name,
			fmt.Sprintf("%d", ss.TotalShelves),
			fmt.Sprintf("%d", ss.TotalContainers),
			fmt.Sprintf("%.1f kg", ss.TotalWeight),
			fmt.Sprintf("%.1f%%", ss.UtilizationPercent),
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(w.UnplacedIDs) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(170, 7, "WARNING: Unplaced Containers", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, id := range w.UnplacedIDs {
			text := "- " + id
			if c, ok := set.Get(id); ok {
				text = fmt.Sprintf("- %s: %.0f x %.0f x %.0f cm, %.1f kg",
					c.ID, c.Length, c.Width, c.Height, c.Weight)
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(170, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by RackPlan", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size for a rectangle.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
