package model

// Placement reports are plain values returned by each engine call; the
// engine keeps no object-owned logs, so callers decide what to retain.

// PlacementStatus is the outcome of one placement attempt.
type PlacementStatus string

const (
	StatusPlaced    PlacementStatus = "placed"
	StatusNotPlaced PlacementStatus = "not_placed"
)

// PlacementEntry is one line of the ordered placement log.
type PlacementEntry struct {
	ContainerID string          `json:"container"`
	Status      PlacementStatus `json:"status"`
	Stack       string          `json:"stack,omitempty"`
	Level       int             `json:"level"`
	Class       ContainerClass  `json:"type"`
	Weight      float64         `json:"weight"`
	Reason      string          `json:"reason,omitempty"`
}

// PlacementReport summarizes one organize/distribute pass. ByClass counts
// successful placements per tier; ByStack is filled by cross-stack
// distribution only.
type PlacementReport struct {
	Total     int                    `json:"total_containers"`
	Placed    int                    `json:"placed"`
	NotPlaced int                    `json:"not_placed"`
	ByClass   map[ContainerClass]int `json:"by_type"`
	ByStack   map[string]int         `json:"by_stack,omitempty"`
	Entries   []PlacementEntry       `json:"placement_log"`
}

// Record appends an entry and updates the counters.
func (r *PlacementReport) Record(e PlacementEntry) {
	r.Entries = append(r.Entries, e)
	if e.Status == StatusPlaced {
		r.Placed++
		if r.ByClass != nil {
			r.ByClass[e.Class]++
		}
		if r.ByStack != nil && e.Stack != "" {
			r.ByStack[e.Stack]++
		}
		return
	}
	r.NotPlaced++
}

// GroupCount tallies one article|material group of a post fill.
type GroupCount struct {
	Placed    int `json:"placed"`
	NotPlaced int `json:"not_placed"`
}

// PostPlacement is one line of a post-fill log. X and Y are the logical
// placement note: Y is level times the post's optimal shelf height, X is
// always 0 — exact lateral offsets come from replaying Shelf.Layout.
type PostPlacement struct {
	ContainerID string          `json:"container"`
	Article     string          `json:"article"`
	Material    string          `json:"material"`
	Status      PlacementStatus `json:"status"`
	Stack       string          `json:"stack,omitempty"`
	Level       int             `json:"shelf"`
	Weight      float64         `json:"weight"`
	X           float64         `json:"x"`
	Y           float64         `json:"y"`
}

// PostFillReport summarizes one grouped sequential fill.
type PostFillReport struct {
	Total     int                   `json:"total_containers"`
	Placed    int                   `json:"placed_containers"`
	NotPlaced int                   `json:"unplaced_containers"`
	ByGroup   map[string]GroupCount `json:"by_material"`
	ByArticle map[string]int        `json:"by_article"`
	ByStack   map[string]int        `json:"by_stack"`
	Log       []PostPlacement       `json:"placement_log"`
}

// StackStats is the per-stack utilization summary.
type StackStats struct {
	Name               string  `json:"name"`
	TotalShelves       int     `json:"total_shelves"`
	TotalArea          float64 `json:"total_area"`
	OccupiedArea       float64 `json:"occupied_area"`
	FreeArea           float64 `json:"free_area"`
	UtilizationPercent float64 `json:"utilization_percent"`
	TotalContainers    int     `json:"total_containers"`
	TotalWeight        float64 `json:"total_weight"`
	EmptyBufferCount   int     `json:"empty_buffer_count"`
}

// WarehouseStats aggregates every stack plus the unplaced residual.
type WarehouseStats struct {
	Name               string       `json:"warehouse_name"`
	TotalStacks        int          `json:"total_stacks"`
	TotalShelves       int          `json:"total_shelves"`
	TotalArea          float64      `json:"total_area"`
	OccupiedArea       float64      `json:"occupied_area"`
	UtilizationPercent float64      `json:"utilization_percent"`
	TotalContainers    int          `json:"total_containers"`
	TotalWeight        float64      `json:"total_weight"`
	Unplaced           int          `json:"unplaced_containers"`
	Stacks             []StackStats `json:"stacks_stats"`
}
