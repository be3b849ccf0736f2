// Package engine implements the placement policies: the tiered
// single-stack organizer, the cross-stack distributor, and the
// post-material sequential fill. All policies are greedy first fit and
// fully deterministic: sorts are stable, so equal weights keep input
// order.
package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/RackPlan/internal/model"
)

// register adds a batch to the arena, rejecting duplicate IDs up front.
// Duplicates are a precondition violation, not a capacity outcome.
func register(set *model.ContainerSet, containers []*model.Container) error {
	seen := make(map[string]bool, len(containers))
	for _, c := range containers {
		if seen[c.ID] {
			return fmt.Errorf("duplicate container id %q in batch", c.ID)
		}
		seen[c.ID] = true
		if err := set.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// splitByClass partitions a batch into the three tiers, preserving input
// order within each tier.
func splitByClass(containers []*model.Container) (regular, priority, empty []*model.Container) {
	for _, c := range containers {
		switch c.Classify() {
		case model.ClassEmpty:
			empty = append(empty, c)
		case model.ClassPriority:
			priority = append(priority, c)
		default:
			regular = append(regular, c)
		}
	}
	return regular, priority, empty
}

// sortByWeightDesc orders heaviest first; ties keep input order.
func sortByWeightDesc(containers []*model.Container) {
	sort.SliceStable(containers, func(i, j int) bool {
		return containers[i].Weight > containers[j].Weight
	})
}

// priorityFloorReason explains a failed priority placement: priority
// containers are confined to level 2 and above so they stay reachable
// without squatting and never mix with bulk stock on the lowest levels.
const priorityFloorReason = "no capacity on non-reserved shelves at level 2 or above"

// Organize applies the three placement tiers to a single stack: regular
// containers heaviest-first onto the lowest non-reserved shelf that fits,
// priority containers heaviest-first onto non-reserved shelves at level 2
// or above, and empties onto reserved shelves in list order. Placed
// empties are also tracked in the stack's empty buffer. The ordered
// report covers every attempted container.
func Organize(set *model.ContainerSet, stack *model.Stack, containers []*model.Container) (model.PlacementReport, error) {
	if err := register(set, containers); err != nil {
		return model.PlacementReport{}, err
	}

	regular, priority, empty := splitByClass(containers)
	sortByWeightDesc(regular)
	sortByWeightDesc(priority)

	report := model.PlacementReport{
		Total:   len(containers),
		ByClass: make(map[model.ContainerClass]int),
	}

	for _, c := range regular {
		placed := false
		for _, sh := range stack.Shelves {
			if sh.ReservedForEmpty {
				continue
			}
			if sh.Add(set, c) {
				report.Record(model.PlacementEntry{
					ContainerID: c.ID,
					Status:      model.StatusPlaced,
					Stack:       stack.Name,
					Level:       sh.Level,
					Class:       model.ClassRegular,
					Weight:      c.Weight,
				})
				placed = true
				break
			}
		}
		if !placed {
			report.Record(model.PlacementEntry{
				ContainerID: c.ID,
				Status:      model.StatusNotPlaced,
				Class:       model.ClassRegular,
				Weight:      c.Weight,
			})
		}
	}

	for _, c := range priority {
		placed := false
		for _, sh := range stack.Shelves {
			if sh.Level < 2 || sh.ReservedForEmpty {
				continue
			}
			if sh.Add(set, c) {
				report.Record(model.PlacementEntry{
					ContainerID: c.ID,
					Status:      model.StatusPlaced,
					Stack:       stack.Name,
					Level:       sh.Level,
					Class:       model.ClassPriority,
					Weight:      c.Weight,
				})
				placed = true
				break
			}
		}
		if !placed {
			report.Record(model.PlacementEntry{
				ContainerID: c.ID,
				Status:      model.StatusNotPlaced,
				Class:       model.ClassPriority,
				Weight:      c.Weight,
				Reason:      priorityFloorReason,
			})
		}
	}

	for _, c := range empty {
		placed := false
		for _, sh := range stack.Shelves {
			if !sh.ReservedForEmpty {
				continue
			}
			if sh.Add(set, c) {
				stack.EmptyBuffer = append(stack.EmptyBuffer, c.ID)
				report.Record(model.PlacementEntry{
					ContainerID: c.ID,
					Status:      model.StatusPlaced,
					Stack:       stack.Name,
					Level:       sh.Level,
					Class:       model.ClassEmpty,
					Weight:      c.Weight,
				})
				placed = true
				break
			}
		}
		if !placed {
			report.Record(model.PlacementEntry{
				ContainerID: c.ID,
				Status:      model.StatusNotPlaced,
				Class:       model.ClassEmpty,
				Weight:      c.Weight,
			})
		}
	}

	return report, nil
}
