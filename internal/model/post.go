package model

import (
	"fmt"
	"math"
	"sort"
)

// Sizing constants for the stack-count estimate, matching the row-packing
// layout plus the clearance rules used on the shop floor.
const (
	shelfHeightClearance = 17.5 // headroom above the tallest container
	sizingEdgeAllowance  = 6.0  // both edge margins of one row
	sizingGap            = 3.0  // spacing between containers in a row
	materialGroupGap     = 10.0 // linear gap between material groups
)

// Post is a logical order whose containers must be stored together,
// grouped by article and material. It is a transient input record: the
// engine does not persist posts.
type Post struct {
	Number             string       `json:"post_number"`
	Containers         []*Container `json:"containers"`
	RequiredStacks     int          `json:"required_stacks"`
	OptimalShelfHeight float64      `json:"optimal_shelf_height"`
}

func NewPost(number string) *Post {
	return &Post{Number: number}
}

// CalculateRequirements sizes the stack topology for this post: the
// optimal shelf height is the tallest container plus clearance, and the
// stack count comes from estimating the linear length each material group
// needs when packed into rows of the stack footprint, keeping groups
// contiguous.
func (p *Post) CalculateRequirements(baseLength, baseWidth float64) {
	if len(p.Containers) == 0 {
		return
	}

	maxHeight := 0.0
	for _, c := range p.Containers {
		if c.Height > maxHeight {
			maxHeight = c.Height
		}
	}
	p.OptimalShelfHeight = maxHeight + shelfHeightClearance

	byMaterial := make(map[string][]*Container)
	for _, c := range p.Containers {
		material := c.Material
		if material == "" {
			material = "unknown"
		}
		byMaterial[material] = append(byMaterial[material], c)
	}

	materials := make([]string, 0, len(byMaterial))
	for m := range byMaterial {
		materials = append(materials, m)
	}
	sort.Strings(materials)

	totalLength := 0.0
	for _, m := range materials {
		group := append([]*Container(nil), byMaterial[m]...)
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Weight > group[j].Weight
		})

		materialLength := 0.0
		rowLength := 0.0
		for _, c := range group {
			if rowLength+c.Length+sizingEdgeAllowance > baseLength {
				if rowLength > materialLength {
					materialLength = rowLength
				}
				rowLength = c.Length
			} else {
				rowLength += c.Length + sizingGap
			}
		}
		if rowLength > materialLength {
			materialLength = rowLength
		}
		totalLength += materialLength + materialGroupGap
	}

	p.RequiredStacks = int(math.Ceil(totalLength / baseLength))
	if p.RequiredStacks < 1 {
		p.RequiredStacks = 1
	}
}

// BuildStacks constructs the pre-sized topology for the post:
// RequiredStacks stacks of numShelves shelves at the optimal height, the
// top shelf of each reserved for empty containers when there is more than
// one level. CalculateRequirements must have run first.
func (p *Post) BuildStacks(baseLength, baseWidth float64, numShelves int, shelfMaxWeight float64) []*Stack {
	stacks := make([]*Stack, 0, p.RequiredStacks)
	for i := 0; i < p.RequiredStacks; i++ {
		st := NewStack(fmt.Sprintf("Post_%s_Stack_%d", p.Number, i+1), baseLength, baseWidth)
		for level := 0; level < numShelves; level++ {
			reserved := numShelves > 1 && level == numShelves-1
			st.AddShelf(shelfMaxWeight, p.OptimalShelfHeight, reserved)
		}
		stacks = append(stacks, st)
	}
	return stacks
}
