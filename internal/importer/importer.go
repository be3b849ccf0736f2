// Package importer provides CSV and Excel import of container lists.
// It supports automatic delimiter detection, flexible column mapping,
// case-insensitive header recognition and optional mm-to-cm conversion.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/piwi3910/RackPlan/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the outcome of an import operation. Containers
// collects every valid row; rows carrying a post number are additionally
// grouped into Posts. Per-row problems land in Errors and Warnings with
// the offending row reference, and valid rows still import.
type ImportResult struct {
	Containers []*model.Container
	Posts      []*model.Post
	Errors     []string
	Warnings   []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A value of -1 means the column is absent.
type ColumnMapping struct {
	Post     int
	Article  int
	Name     int
	Length   int
	Width    int
	Height   int
	Weight   int
	Material int
	Empty    int
	Priority int
	Content  int

	// DimScale converts imported dimensions to cm: 0.1 when the header
	// announces mm, 1 otherwise.
	DimScale float64
}

// headerAliases maps canonical column roles to their accepted aliases
// (all lowercase, unit suffixes stripped before matching).
var headerAliases = map[string][]string{
	"post":     {"post", "post number", "postnumber", "order", "order number"},
	"article":  {"article", "article number", "articlenumber", "sku", "part"},
	"name":     {"name", "label", "description", "desc", "container"},
	"length":   {"length", "len", "l", "x"},
	"width":    {"width", "w", "depth", "y"},
	"height":   {"height", "h", "z"},
	"weight":   {"weight", "mass", "kg"},
	"material": {"material", "mat"},
	"empty":    {"empty", "is empty", "isempty"},
	"priority": {"priority", "prio", "urgent"},
	"content":  {"content", "contents", "items"},
}

// DetectCSVDelimiter determines the most likely delimiter by trying
// comma, semicolon, tab and pipe: the one producing the most consistent
// multi-column row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	best := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}
	return best
}

// normalizeHeader lowercases a header cell and strips a trailing unit
// annotation such as "(mm)" or "(cm)".
func normalizeHeader(cell string) (name string, mm bool) {
	normalized := strings.ToLower(strings.TrimSpace(cell))
	if i := strings.Index(normalized, "("); i >= 0 {
		unit := strings.Trim(normalized[i:], "() ")
		mm = unit == "mm"
		normalized = strings.TrimSpace(normalized[:i])
	}
	return normalized, mm
}

// DetectColumns examines a header row and returns a ColumnMapping plus
// whether a recognizable header was found. Without a header the mapping
// falls back to the positional layout
// article, name, length, width, height, weight, material.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Post: -1, Article: -1, Name: -1,
		Length: -1, Width: -1, Height: -1, Weight: -1,
		Material: -1, Empty: -1, Priority: -1, Content: -1,
		DimScale: 1,
	}

	slots := map[string]*int{
		"post":     &mapping.Post,
		"article":  &mapping.Article,
		"name":     &mapping.Name,
		"length":   &mapping.Length,
		"width":    &mapping.Width,
		"height":   &mapping.Height,
		"weight":   &mapping.Weight,
		"material": &mapping.Material,
		"empty":    &mapping.Empty,
		"priority": &mapping.Priority,
		"content":  &mapping.Content,
	}

	isHeader := false
	for i, cell := range row {
		normalized, mm := normalizeHeader(cell)
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
				if mm && (role == "length" || role == "width" || role == "height") {
					mapping.DimScale = 0.1
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Post: -1, Article: 0, Name: 1,
			Length: 2, Width: 3, Height: 4, Weight: 5,
			Material: 6, Empty: -1, Priority: -1, Content: -1,
			DimScale: 1,
		}, false
	}
	return mapping, true
}

// getCell safely retrieves a trimmed cell value by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "x":
		return true
	}
	return false
}

// parseRow extracts one container from a row. The returned error message
// is empty on success.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (*model.Container, string) {
	article := getCell(row, mapping.Article)
	if article == "" {
		return nil, fmt.Sprintf("%s: missing article", rowLabel)
	}

	dims := make(map[string]float64, 3)
	for _, d := range []struct {
		name string
		idx  int
	}{
		{"length", mapping.Length},
		{"width", mapping.Width},
		{"height", mapping.Height},
	} {
		raw := getCell(row, d.idx)
		if raw == "" {
			return nil, fmt.Sprintf("%s: missing %s value", rowLabel, d.name)
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil {
			return nil, fmt.Sprintf("%s: invalid %s %q", rowLabel, d.name, raw)
		}
		dims[d.name] = v * mapping.DimScale
	}

	weightStr := getCell(row, mapping.Weight)
	if weightStr == "" {
		return nil, fmt.Sprintf("%s: missing weight value", rowLabel)
	}
	weight, err := strconv.ParseFloat(strings.ReplaceAll(weightStr, ",", "."), 64)
	if err != nil {
		return nil, fmt.Sprintf("%s: invalid weight %q", rowLabel, weightStr)
	}

	if dims["length"] <= 0 || dims["width"] <= 0 || dims["height"] <= 0 || weight < 0 {
		return nil, fmt.Sprintf("%s: dimensions must be positive and weight non-negative", rowLabel)
	}

	name := getCell(row, mapping.Name)
	if name == "" {
		name = article
	}

	c := model.NewContainer(name, weight, dims["length"], dims["width"], dims["height"])
	c.Material = getCell(row, mapping.Material)
	c.Content = getCell(row, mapping.Content)
	c.PostNumber = getCell(row, mapping.Post)
	c.IsEmpty = parseFlag(getCell(row, mapping.Empty))
	c.Priority = parseFlag(getCell(row, mapping.Priority))
	return c, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports containers from a CSV file with automatic delimiter
// detection.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "file is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		name := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("detected %s delimiter", name))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read CSV: %v", err))
		return result
	}
	return importFromRows(records, "line", result.Warnings)
}

// ImportCSVFromReader imports containers from a CSV reader with a known
// delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "line", nil)
}

// ImportExcel imports containers from the first sheet of an .xlsx file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read Excel data: %v", err))
		return result
	}
	return importFromRows(rows, "row", nil)
}

// importFromRows is the shared import path for CSV and Excel data: header
// detection, per-row parsing, article-sequence ID assignment and post
// grouping.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "no data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		missing := []string{}
		if mapping.Article == -1 {
			missing = append(missing, "article")
		}
		if mapping.Length == -1 {
			missing = append(missing, "length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "height")
		}
		if mapping.Weight == -1 {
			missing = append(missing, "weight")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
		if mapping.DimScale != 1 {
			result.Warnings = append(result.Warnings, "dimensions given in mm, converting to cm")
		}
	}

	articleSeq := make(map[string]int)
	postIndex := make(map[string]*model.Post)

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		c, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}

		article := getCell(row, mapping.Article)
		articleSeq[article]++
		c.ID = fmt.Sprintf("%s_%03d", article, articleSeq[article])

		result.Containers = append(result.Containers, c)
		if c.PostNumber != "" {
			p, ok := postIndex[c.PostNumber]
			if !ok {
				p = model.NewPost(c.PostNumber)
				postIndex[c.PostNumber] = p
				result.Posts = append(result.Posts, p)
			}
			p.Containers = append(p.Containers, c)
		}
	}

	sort.SliceStable(result.Posts, func(i, j int) bool {
		return result.Posts[i].Number < result.Posts[j].Number
	})
	return result
}
