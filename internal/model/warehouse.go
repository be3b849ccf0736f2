package model

// Warehouse is a collection of stacks. UnplacedIDs is the residual of the
// most recent distribution pass: every call overwrites it, and a container
// is either on exactly one shelf or listed here, never both.
type Warehouse struct {
	Name        string   `json:"name"`
	Stacks      []*Stack `json:"stacks"`
	UnplacedIDs []string `json:"unplaced_containers"`
}

func NewWarehouse(name string) *Warehouse {
	return &Warehouse{Name: name}
}

// AddStack appends a stack; distribution visits stacks in add order.
func (w *Warehouse) AddStack(st *Stack) {
	w.Stacks = append(w.Stacks, st)
}

// StackByName returns the named stack, or nil.
func (w *Warehouse) StackByName(name string) *Stack {
	for _, st := range w.Stacks {
		if st.Name == name {
			return st
		}
	}
	return nil
}

// Stats aggregates every stack's statistics.
func (w *Warehouse) Stats(set *ContainerSet) WarehouseStats {
	stats := WarehouseStats{
		Name:        w.Name,
		TotalStacks: len(w.Stacks),
		Unplaced:    len(w.UnplacedIDs),
	}
	for _, st := range w.Stacks {
		ss := st.Stats(set)
		stats.TotalShelves += ss.TotalShelves
		stats.TotalArea += ss.TotalArea
		stats.OccupiedArea += ss.OccupiedArea
		stats.TotalContainers += ss.TotalContainers
		stats.TotalWeight += ss.TotalWeight
		stats.Stacks = append(stats.Stacks, ss)
	}
	if stats.TotalArea > 0 {
		stats.UtilizationPercent = stats.OccupiedArea / stats.TotalArea * 100.0
	}
	return stats
}
