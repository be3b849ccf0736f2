package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "article,length,width\nA,60,40\n", ','},
		{"semicolon", "article;length;width\nA;60;40\n", ';'},
		{"tab", "article\tlength\twidth\nA\t60\t40\n", '\t'},
		{"pipe", "article|length|width\nA|60|40\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCSVDelimiter([]byte(tt.data)))
		})
	}
}

func TestDetectColumns_HeaderAliases(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{
		"Post", "SKU", "Description", "Length", "Width", "Height", "Weight", "Material",
	})
	require.True(t, hasHeader)
	assert.Equal(t, 0, mapping.Post)
	assert.Equal(t, 1, mapping.Article)
	assert.Equal(t, 2, mapping.Name)
	assert.Equal(t, 3, mapping.Length)
	assert.Equal(t, 7, mapping.Material)
	assert.Equal(t, 1.0, mapping.DimScale)
}

func TestDetectColumns_MillimeterHeaders(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{
		"Article", "Length (mm)", "Width (mm)", "Height (mm)", "Weight",
	})
	require.True(t, hasHeader)
	assert.Equal(t, 0.1, mapping.DimScale)
}

func TestDetectColumns_NoHeaderFallsBackToPositional(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"A123", "tote", "60", "40", "45", "12"})
	assert.False(t, hasHeader)
	assert.Equal(t, 0, mapping.Article)
	assert.Equal(t, 2, mapping.Length)
	assert.Equal(t, 5, mapping.Weight)
}

func TestImportCSVFromReader(t *testing.T) {
	csv := strings.Join([]string{
		"post,article,name,length,width,height,weight,material,empty,priority",
		"P1,A,steel tote,60,40,45,12,steel,,",
		"P1,A,steel tote,60,40,45,11,steel,,",
		"P1,B,bin,40,30,30,5,plastic,,yes",
		",C,spare,40,30,30,0,,true,",
	}, "\n")

	result := ImportCSVFromReader(strings.NewReader(csv), ',')
	require.Empty(t, result.Errors)
	require.Len(t, result.Containers, 4)

	// Article-sequence IDs.
	assert.Equal(t, "A_001", result.Containers[0].ID)
	assert.Equal(t, "A_002", result.Containers[1].ID)
	assert.Equal(t, "B_001", result.Containers[2].ID)
	assert.Equal(t, "C_001", result.Containers[3].ID)

	assert.Equal(t, "steel", result.Containers[0].Material)
	assert.True(t, result.Containers[2].Priority)
	assert.True(t, result.Containers[3].IsEmpty)
	assert.Empty(t, result.Containers[3].PostNumber)

	// Only rows with a post number group into posts.
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "P1", result.Posts[0].Number)
	assert.Len(t, result.Posts[0].Containers, 3)
}

func TestImportCSVFromReader_MillimeterConversion(t *testing.T) {
	csv := "article,length (mm),width (mm),height (mm),weight\nA,600,400,450,12\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')
	require.Empty(t, result.Errors)
	require.Len(t, result.Containers, 1)

	c := result.Containers[0]
	assert.Equal(t, 60.0, c.Length)
	assert.Equal(t, 40.0, c.Width)
	assert.Equal(t, 45.0, c.Height)
	assert.Contains(t, strings.Join(result.Warnings, "; "), "mm")
}

func TestImportCSVFromReader_BadRowsAreReportedButDoNotAbort(t *testing.T) {
	csv := strings.Join([]string{
		"article,length,width,height,weight",
		"A,60,40,45,12",
		"B,sixty,40,45,12",
		"C,60,40,45,",
		",60,40,45,12",
		"D,60,40,45,9",
	}, "\n")

	result := ImportCSVFromReader(strings.NewReader(csv), ',')
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "line 3")
	assert.Contains(t, result.Errors[0], "invalid length")
	assert.Contains(t, result.Errors[1], "missing weight")
	assert.Contains(t, result.Errors[2], "missing article")

	require.Len(t, result.Containers, 2)
	assert.Equal(t, "A_001", result.Containers[0].ID)
	assert.Equal(t, "D_001", result.Containers[1].ID)
}

func TestImportCSVFromReader_MissingRequiredColumns(t *testing.T) {
	csv := "article,name\nA,tote\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "required columns not found")
	assert.Empty(t, result.Containers)
}

func TestImportCSVFromReader_DecimalComma(t *testing.T) {
	csv := "article;length;width;height;weight\nA;60,5;40;45;12,25\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ';')
	require.Empty(t, result.Errors)
	require.Len(t, result.Containers, 1)
	assert.Equal(t, 60.5, result.Containers[0].Length)
	assert.Equal(t, 12.25, result.Containers[0].Weight)
}
