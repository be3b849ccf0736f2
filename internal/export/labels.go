package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/RackPlan/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each container label's QR code.
type LabelInfo struct {
	ContainerID string  `json:"container"`
	Name        string  `json:"name"`
	Stack       string  `json:"stack"`
	Level       int     `json:"level"`
	X           float64 `json:"x_cm"`
	Y           float64 `json:"y_cm"`
	Weight      float64 `json:"weight_kg"`
	Material    string  `json:"material,omitempty"`
	Empty       bool    `json:"empty,omitempty"`
}

// Label layout constants for Avery 5160-compatible sheets (3 columns,
// 10 rows per US Letter page).
const (
	labelPageWidth  = 215.9
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// CollectLabelInfos walks every shelf and returns one label per placed
// container, with coordinates from the row-packing replay.
func CollectLabelInfos(set *model.ContainerSet, w *model.Warehouse) []LabelInfo {
	var labels []LabelInfo
	for _, st := range w.Stacks {
		for _, sh := range st.Shelves {
			for _, placed := range sh.Layout(set) {
				c, ok := set.Get(placed.ID)
				if !ok {
					continue
				}
				labels = append(labels, LabelInfo{
					ContainerID: c.ID,
					Name:        c.Name,
					Stack:       st.Name,
					Level:       sh.Level,
					X:           placed.X,
					Y:           placed.Y,
					Weight:      c.Weight,
					Material:    c.Material,
					Empty:       c.IsEmpty,
				})
			}
		}
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded labels for every placed
// container. Each label carries the container name, its slot, and a QR
// code encoding the label data as JSON.
func ExportLabels(path string, set *model.ContainerSet, w *model.Warehouse) error {
	labels := CollectLabelInfos(set, w)
	if len(labels) == 0 {
		return fmt.Errorf("no placed containers to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight
		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.ContainerID, err)
		}
	}
	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%s_%d", info.ContainerID, info.Stack, info.Level)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	name := info.Name
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	slot := fmt.Sprintf("%s / level %d @ (%.0f, %.0f)", info.Stack, info.Level, info.X, info.Y)
	pdf.CellFormat(textW, 3.5, slot, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	detail := fmt.Sprintf("%s  %.1f kg", info.ContainerID, info.Weight)
	if info.Material != "" {
		detail += "  " + info.Material
	}
	pdf.CellFormat(textW, 3, detail, "", 1, "L", false, 0, "")

	if info.Empty {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "EMPTY", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
