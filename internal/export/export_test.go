package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RackPlan/internal/model"
)

func exportFixture(t *testing.T) (*model.ContainerSet, *model.Warehouse) {
	t.Helper()
	set := model.NewContainerSet()
	w := model.NewWarehouse("main")
	st := model.NewStack("S1", 200, 120)
	st.AddShelf(500, 50, false)
	st.AddShelf(500, 50, true)
	w.AddStack(st)

	a := model.NewContainer("tote A", 40, 60, 40, 45)
	a.ID = "A_001"
	a.Material = "steel"
	b := model.NewContainer("tote B", 30, 60, 40, 45)
	b.ID = "B_001"
	for _, c := range []*model.Container{a, b} {
		require.NoError(t, set.Register(c))
		require.True(t, st.Shelves[0].Add(set, c))
	}

	ghost := model.NewContainer("too big", 90, 300, 200, 45)
	ghost.ID = "C_001"
	require.NoError(t, set.Register(ghost))
	w.UnplacedIDs = []string{ghost.ID}
	return set, w
}

func TestExportExcel(t *testing.T) {
	set, w := exportFixture(t)
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, ExportExcel(path, set, w))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Placements", "Unplaced"}, f.GetSheetList())

	rows, err := f.GetRows("Placements")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two placed containers")
	assert.Equal(t, "A_001", rows[1][0])
	assert.Equal(t, "S1", rows[1][2])
	assert.Equal(t, "5", rows[1][4], "x from the row-packing replay")
	assert.Equal(t, "68", rows[2][4])

	unplaced, err := f.GetRows("Unplaced")
	require.NoError(t, err)
	require.Len(t, unplaced, 2)
	assert.Equal(t, "C_001", unplaced[1][0])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, "Warehouse", summary[0][0])
	assert.Equal(t, "main", summary[0][1])
}

func TestExportPDF(t *testing.T) {
	set, w := exportFixture(t)
	path := filepath.Join(t.TempDir(), "layout.pdf")
	require.NoError(t, ExportPDF(path, set, w))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500))
}

func TestExportPDF_NoStacks(t *testing.T) {
	set := model.NewContainerSet()
	w := model.NewWarehouse("empty")
	err := ExportPDF(filepath.Join(t.TempDir(), "layout.pdf"), set, w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no stacks")
}

func TestCollectLabelInfos(t *testing.T) {
	set, w := exportFixture(t)
	labels := CollectLabelInfos(set, w)
	require.Len(t, labels, 2, "only placed containers get labels")

	assert.Equal(t, "A_001", labels[0].ContainerID)
	assert.Equal(t, "S1", labels[0].Stack)
	assert.Equal(t, 0, labels[0].Level)
	assert.Equal(t, 5.0, labels[0].X)
	assert.Equal(t, 5.0, labels[0].Y)
	assert.Equal(t, "steel", labels[0].Material)
	assert.Equal(t, 68.0, labels[1].X)
}

func TestExportLabels(t *testing.T) {
	set, w := exportFixture(t)
	path := filepath.Join(t.TempDir(), "labels.pdf")
	require.NoError(t, ExportLabels(path, set, w))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500))
}

func TestExportLabels_NothingPlaced(t *testing.T) {
	set := model.NewContainerSet()
	w := model.NewWarehouse("empty")
	w.AddStack(model.NewStack("S1", 200, 120))

	err := ExportLabels(filepath.Join(t.TempDir(), "labels.pdf"), set, w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no placed containers")
}
