package engine

import (
	"github.com/piwi3910/RackPlan/internal/model"
)

// Distribute spreads a batch across the warehouse using the same three
// tiers as Organize, but over (stack, shelf) pairs: stacks are visited in
// add order and shelves bottom-up within each stack, so early stacks fill
// before later ones are touched. The warehouse's unplaced list is reset at
// the start — every call is a fresh distribution of the input batch over
// whatever the shelves currently hold; clearing shelves between passes is
// the caller's responsibility.
func Distribute(set *model.ContainerSet, w *model.Warehouse, containers []*model.Container) (model.PlacementReport, error) {
	if err := register(set, containers); err != nil {
		return model.PlacementReport{}, err
	}

	regular, priority, empty := splitByClass(containers)
	sortByWeightDesc(regular)
	sortByWeightDesc(priority)

	report := model.PlacementReport{
		Total:   len(containers),
		ByClass: make(map[model.ContainerClass]int),
		ByStack: make(map[string]int),
	}
	w.UnplacedIDs = nil

	place := func(c *model.Container, class model.ContainerClass, eligible func(*model.Shelf) bool, reason string) {
		for _, st := range w.Stacks {
			for _, sh := range st.Shelves {
				if !eligible(sh) {
					continue
				}
				if sh.Add(set, c) {
					report.Record(model.PlacementEntry{
						ContainerID: c.ID,
						Status:      model.StatusPlaced,
						Stack:       st.Name,
						Level:       sh.Level,
						Class:       class,
						Weight:      c.Weight,
					})
					return
				}
			}
		}
		w.UnplacedIDs = append(w.UnplacedIDs, c.ID)
		report.Record(model.PlacementEntry{
			ContainerID: c.ID,
			Status:      model.StatusNotPlaced,
			Class:       class,
			Weight:      c.Weight,
			Reason:      reason,
		})
	}

	for _, c := range regular {
		place(c, model.ClassRegular, func(sh *model.Shelf) bool {
			return !sh.ReservedForEmpty
		}, "")
	}
	for _, c := range priority {
		place(c, model.ClassPriority, func(sh *model.Shelf) bool {
			return sh.Level >= 2 && !sh.ReservedForEmpty
		}, priorityFloorReason)
	}
	for _, c := range empty {
		place(c, model.ClassEmpty, func(sh *model.Shelf) bool {
			return sh.ReservedForEmpty
		}, "")
	}

	return report, nil
}
