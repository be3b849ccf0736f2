package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RackPlan/internal/model"
)

func postContainer(id, material string, weight, length, width, height float64) *model.Container {
	c := model.NewContainer(id, weight, length, width, height)
	c.ID = id
	c.Material = material
	return c
}

func TestGroupByArticleMaterial(t *testing.T) {
	containers := []*model.Container{
		postContainer("B_001", "plastic", 10, 20, 20, 20),
		postContainer("A_001", "steel", 30, 80, 40, 30),
		postContainer("A_002", "wood", 50, 80, 40, 30),
		postContainer("A_003", "steel", 10, 80, 40, 30),
		postContainer("C_001", "", 5, 20, 20, 20),
	}

	groups := groupByArticleMaterial(containers)
	require.Len(t, groups, 4)

	// Articles ascending; within article A the heavier group (wood, 50)
	// precedes steel (40).
	assert.Equal(t, "A|wood", groups[0].key())
	assert.Equal(t, "A|steel", groups[1].key())
	assert.Equal(t, "B|plastic", groups[2].key())
	assert.Equal(t, "C|unknown", groups[3].key(), "blank material falls back to unknown")

	assert.Len(t, groups[1].members, 2)
	assert.Equal(t, 40.0, groups[1].totalWeight())
}

func TestDistributePost_GroupsStayContiguousAcrossShelves(t *testing.T) {
	// One stack, two 200x50 shelves. Each shelf fits two 80x40 group-A
	// containers in a single row; the third A overflows to shelf 1. The
	// small group-B containers would still fit on shelf 0, but the
	// monotonic cursor never goes back, so they follow A on shelf 1.
	set := model.NewContainerSet()
	post := model.NewPost("P1")
	post.OptimalShelfHeight = 47.5
	post.Containers = []*model.Container{
		postContainer("A_001", "steel", 30, 80, 40, 30),
		postContainer("A_002", "steel", 20, 80, 40, 30),
		postContainer("A_003", "steel", 10, 80, 40, 30),
		postContainer("B_001", "plastic", 8, 20, 20, 20),
		postContainer("B_002", "plastic", 6, 20, 20, 20),
	}

	st := model.NewStack("PS1", 200, 50)
	st.AddShelf(500, 47.5, false)
	st.AddShelf(500, 47.5, false)

	report, err := DistributePost(set, post, []*model.Stack{st})
	require.NoError(t, err)

	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 5, report.Placed)
	assert.Zero(t, report.NotPlaced)
	assert.Equal(t, model.GroupCount{Placed: 3}, report.ByGroup["A|steel"])
	assert.Equal(t, model.GroupCount{Placed: 2}, report.ByGroup["B|plastic"])
	assert.Equal(t, 3, report.ByArticle["A"])
	assert.Equal(t, 2, report.ByArticle["B"])
	assert.Equal(t, 5, report.ByStack["PS1"])

	levels := make(map[string]int)
	for _, e := range report.Log {
		levels[e.ContainerID] = e.Level
	}
	assert.Equal(t, 0, levels["A_001"])
	assert.Equal(t, 0, levels["A_002"])
	assert.Equal(t, 1, levels["A_003"])
	assert.Equal(t, 1, levels["B_001"], "group B starts where the cursor stands")
	assert.Equal(t, 1, levels["B_002"])

	// Heaviest member of a group goes first.
	assert.Equal(t, "A_001", report.Log[0].ContainerID)
	assert.Equal(t, 0.0, report.Log[0].X)
	assert.Equal(t, 47.5, levelY(report.Log, "A_003"))
}

func levelY(log []model.PostPlacement, id string) float64 {
	for _, e := range log {
		if e.ContainerID == id {
			return e.Y
		}
	}
	return -1
}

func TestDistributePost_AdvancesToNextStack(t *testing.T) {
	// Each single-shelf stack fits exactly one 100x40 container per row
	// and has no second row, so the group spills stack by stack; the
	// third member exhausts the attempt window and stays unplaced.
	set := model.NewContainerSet()
	post := model.NewPost("P2")
	post.OptimalShelfHeight = 47.5
	for i := 1; i <= 3; i++ {
		post.Containers = append(post.Containers,
			postContainer(fmt.Sprintf("A_%03d", i), "steel", float64(40-i), 100, 40, 30))
	}

	var stacks []*model.Stack
	for i := 1; i <= 2; i++ {
		st := model.NewStack(fmt.Sprintf("PS%d", i), 200, 50)
		st.AddShelf(500, 47.5, false)
		stacks = append(stacks, st)
	}

	report, err := DistributePost(set, post, stacks)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Placed)
	assert.Equal(t, 1, report.NotPlaced)
	assert.Equal(t, 1, report.ByStack["PS1"])
	assert.Equal(t, 1, report.ByStack["PS2"])
	assert.Equal(t, model.GroupCount{Placed: 2, NotPlaced: 1}, report.ByGroup["A|steel"])

	last := report.Log[len(report.Log)-1]
	assert.Equal(t, model.StatusNotPlaced, last.Status)
	assert.Equal(t, "A_003", last.ContainerID)
	assert.Empty(t, last.Stack)
}

func TestDistributePost_SkipsReservedShelves(t *testing.T) {
	set := model.NewContainerSet()
	post := model.NewPost("P3")
	post.OptimalShelfHeight = 47.5
	post.Containers = []*model.Container{
		postContainer("A_001", "steel", 10, 80, 40, 30),
	}

	st := model.NewStack("PS1", 200, 50)
	st.AddShelf(500, 47.5, true)
	st.AddShelf(500, 47.5, false)

	report, err := DistributePost(set, post, []*model.Stack{st})
	require.NoError(t, err)
	require.Equal(t, 1, report.Placed)
	assert.Equal(t, 1, report.Log[0].Level, "the reserved shelf is never a fill target")
}

func TestDistributePost_NoStacksIsAnError(t *testing.T) {
	set := model.NewContainerSet()
	post := model.NewPost("P4")
	post.Containers = []*model.Container{
		postContainer("A_001", "steel", 10, 80, 40, 30),
	}

	_, err := DistributePost(set, post, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no stacks to fill")
}

func TestDistributePost_Deterministic(t *testing.T) {
	build := func() (*model.ContainerSet, *model.Post, []*model.Stack) {
		set := model.NewContainerSet()
		post := model.NewPost("P5")
		post.OptimalShelfHeight = 47.5
		post.Containers = []*model.Container{
			postContainer("B_001", "plastic", 10, 20, 20, 20),
			postContainer("A_001", "steel", 10, 80, 40, 30),
			postContainer("A_002", "steel", 10, 80, 40, 30),
		}
		st := model.NewStack("PS1", 200, 50)
		st.AddShelf(500, 47.5, false)
		st.AddShelf(500, 47.5, false)
		return set, post, []*model.Stack{st}
	}

	s1, p1, k1 := build()
	r1, err := DistributePost(s1, p1, k1)
	require.NoError(t, err)
	s2, p2, k2 := build()
	r2, err := DistributePost(s2, p2, k2)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
}
