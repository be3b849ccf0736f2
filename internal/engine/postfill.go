package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/RackPlan/internal/model"
)

// articleGroup is the transient grouping record of a post fill: one
// article+material key with its member containers.
type articleGroup struct {
	article  string
	material string
	members  []*model.Container
}

func (g articleGroup) key() string {
	return g.article + "|" + g.material
}

func (g articleGroup) totalWeight() float64 {
	var total float64
	for _, c := range g.members {
		total += c.Weight
	}
	return total
}

// groupByArticleMaterial partitions the post's containers by the
// article|material composite key. The article comes from the container ID
// prefix. Groups are ordered by article ascending, ties broken by total
// group weight descending.
func groupByArticleMaterial(containers []*model.Container) []articleGroup {
	index := make(map[string]int)
	var groups []articleGroup
	for _, c := range containers {
		material := c.Material
		if material == "" {
			material = "unknown"
		}
		key := c.Article() + "|" + material
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, articleGroup{article: c.Article(), material: material})
		}
		groups[i].members = append(groups[i].members, c)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].article != groups[j].article {
			return groups[i].article < groups[j].article
		}
		return groups[i].totalWeight() > groups[j].totalWeight()
	})
	return groups
}

// DistributePost fills the pre-sized stacks with one post's containers,
// keeping article|material groups contiguous. The tier policy does not
// apply here: a post fill handles non-empty regular stock only, and
// reserved shelves are skipped entirely.
//
// Placement uses a monotonic cursor: a current stack and, within it, a
// current shelf. Each container is tried on the cursor shelf, then once on
// the next shelf of the same stack, then once on the first shelf of the
// next stack. The cursor commits only when a placement succeeds, and never
// moves backward, so a group can overflow forward but later groups never
// scatter back across shelves already passed — at the cost of leaving gaps
// no backfill pass reclaims.
func DistributePost(set *model.ContainerSet, post *model.Post, stacks []*model.Stack) (model.PostFillReport, error) {
	if len(stacks) == 0 {
		return model.PostFillReport{}, fmt.Errorf("post %s: no stacks to fill", post.Number)
	}
	if err := register(set, post.Containers); err != nil {
		return model.PostFillReport{}, err
	}

	// Non-reserved shelves per stack, in level order.
	available := make([][]*model.Shelf, len(stacks))
	for i, st := range stacks {
		for _, sh := range st.Shelves {
			if !sh.ReservedForEmpty {
				available[i] = append(available[i], sh)
			}
		}
	}

	report := model.PostFillReport{
		Total:     len(post.Containers),
		ByGroup:   make(map[string]model.GroupCount),
		ByArticle: make(map[string]int),
		ByStack:   make(map[string]int),
	}

	stackIdx := 0
	shelfCursor := make([]int, len(stacks))

	tryPlace := func(c *model.Container) (int, int, bool) {
		attempts := [][2]int{
			{stackIdx, shelfCursor[stackIdx]},
			{stackIdx, shelfCursor[stackIdx] + 1},
			{stackIdx + 1, 0},
		}
		for _, at := range attempts {
			si, fi := at[0], at[1]
			if si >= len(stacks) || fi >= len(available[si]) {
				continue
			}
			if available[si][fi].Add(set, c) {
				stackIdx = si
				shelfCursor[si] = fi
				return si, fi, true
			}
		}
		return 0, 0, false
	}

	for _, g := range groupByArticleMaterial(post.Containers) {
		members := append([]*model.Container(nil), g.members...)
		sortByWeightDesc(members)

		count := model.GroupCount{}
		for _, c := range members {
			si, fi, ok := tryPlace(c)
			if !ok {
				count.NotPlaced++
				report.NotPlaced++
				report.Log = append(report.Log, model.PostPlacement{
					ContainerID: c.ID,
					Article:     g.article,
					Material:    g.material,
					Status:      model.StatusNotPlaced,
					Weight:      c.Weight,
				})
				continue
			}

			sh := available[si][fi]
			count.Placed++
			report.Placed++
			report.ByStack[stacks[si].Name]++
			report.ByArticle[g.article]++
			report.Log = append(report.Log, model.PostPlacement{
				ContainerID: c.ID,
				Article:     g.article,
				Material:    g.material,
				Status:      model.StatusPlaced,
				Stack:       stacks[si].Name,
				Level:       sh.Level,
				Weight:      c.Weight,
				X:           0,
				Y:           float64(sh.Level) * post.OptimalShelfHeight,
			})
		}
		report.ByGroup[g.key()] = count
		// The next group continues on the cursor stack; no stack advance
		// between groups.
	}

	return report, nil
}
