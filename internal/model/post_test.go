package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postContainer(id, material string, weight, length, width, height float64) *Container {
	c := NewContainer(id, weight, length, width, height)
	c.ID = id
	c.Material = material
	return c
}

func TestPost_CalculateRequirementsSingleMaterial(t *testing.T) {
	p := NewPost("P1")
	for i, id := range []string{"A_001", "A_002", "A_003"} {
		p.Containers = append(p.Containers,
			postContainer(id, "steel", float64(10+i), 60, 40, 45))
	}

	p.CalculateRequirements(200, 120)

	assert.Equal(t, 62.5, p.OptimalShelfHeight, "tallest container plus clearance")
	// Three 60-long containers fit one 200 row: 189 linear + 10 group gap.
	assert.Equal(t, 1, p.RequiredStacks)
}

func TestPost_CalculateRequirementsMultipleMaterials(t *testing.T) {
	p := NewPost("P2")
	for _, id := range []string{"A_001", "A_002", "A_003"} {
		p.Containers = append(p.Containers, postContainer(id, "steel", 10, 60, 40, 30))
	}
	for _, id := range []string{"B_001", "B_002", "B_003"} {
		p.Containers = append(p.Containers, postContainer(id, "plastic", 10, 60, 40, 30))
	}

	p.CalculateRequirements(200, 120)
	// Each material group needs its own 199 of linear length.
	assert.Equal(t, 2, p.RequiredStacks)
}

func TestPost_CalculateRequirementsEmptyMaterialFallsBackToUnknown(t *testing.T) {
	p := NewPost("P3")
	p.Containers = append(p.Containers, postContainer("A_001", "", 10, 60, 40, 30))
	p.CalculateRequirements(200, 120)
	assert.Equal(t, 1, p.RequiredStacks)
	assert.Equal(t, 47.5, p.OptimalShelfHeight)
}

func TestPost_CalculateRequirementsNoContainers(t *testing.T) {
	p := NewPost("P4")
	p.CalculateRequirements(200, 120)
	assert.Zero(t, p.RequiredStacks)
	assert.Zero(t, p.OptimalShelfHeight)
}

func TestPost_BuildStacks(t *testing.T) {
	p := NewPost("P5")
	p.RequiredStacks = 2
	p.OptimalShelfHeight = 62.5

	stacks := p.BuildStacks(200, 120, 3, 500)
	require.Len(t, stacks, 2)
	assert.Equal(t, "Post_P5_Stack_1", stacks[0].Name)
	assert.Equal(t, "Post_P5_Stack_2", stacks[1].Name)

	for _, st := range stacks {
		require.Len(t, st.Shelves, 3)
		for level, sh := range st.Shelves {
			assert.Equal(t, 62.5, sh.Height)
			assert.Equal(t, 500.0, sh.MaxWeight)
			assert.Equal(t, level == 2, sh.ReservedForEmpty, "only the top shelf is reserved")
		}
	}
}

func TestPost_BuildStacksSingleShelfNotReserved(t *testing.T) {
	p := NewPost("P6")
	p.RequiredStacks = 1
	p.OptimalShelfHeight = 50

	stacks := p.BuildStacks(200, 120, 1, 500)
	require.Len(t, stacks, 1)
	require.Len(t, stacks[0].Shelves, 1)
	assert.False(t, stacks[0].Shelves[0].ReservedForEmpty)
}
