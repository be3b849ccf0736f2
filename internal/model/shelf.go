package model

// Row-packing layout constants, in the same unit as container dimensions.
const (
	ShelfMargin  = 5.0 // clear border kept along every shelf edge
	ContainerGap = 3.0 // spacing between neighbouring containers
)

// Shelf is one level of a stack: a bounded 2-D surface with a weight cap
// and a height clearance. The ContainerIDs list is ordered by placement;
// that order is what makes the row-packing replay deterministic.
type Shelf struct {
	Level            int      `json:"level"`
	MaxWeight        float64  `json:"max_weight"`
	Length           float64  `json:"length"`
	Width            float64  `json:"width"`
	Height           float64  `json:"height"`
	ReservedForEmpty bool     `json:"reserved_for_empty"`
	ContainerIDs     []string `json:"container_ids"`
}

// rowCursor tracks the first-fit row walk across the shelf surface:
// x runs along the shelf length, rowTop is the depth consumed by finished
// rows, rowDepth is the widest container in the current row.
type rowCursor struct {
	x        float64
	rowTop   float64
	rowDepth float64
}

// walk replays the row-packing layout over the currently placed containers
// in placement order, calling visit (when non-nil) with each container's
// position, and returns the cursor state after the last container. This is
// the single packing function shared by feasibility testing and coordinate
// derivation.
func (sh *Shelf) walk(set *ContainerSet, visit func(c *Container, x, y float64)) rowCursor {
	cur := rowCursor{x: ShelfMargin, rowTop: ShelfMargin}
	for _, id := range sh.ContainerIDs {
		c, ok := set.Get(id)
		if !ok {
			continue
		}
		if cur.x+c.Length > sh.Length-ShelfMargin {
			cur.x = ShelfMargin
			cur.rowTop += cur.rowDepth + ContainerGap
			cur.rowDepth = 0
		}
		if visit != nil {
			visit(c, cur.x, cur.rowTop)
		}
		cur.x += c.Length + ContainerGap
		if c.Width > cur.rowDepth {
			cur.rowDepth = c.Width
		}
	}
	return cur
}

// CanAdd reports whether the container fits on the shelf. It is pure: no
// state changes. The checks run in order — reservation gate, weight gate,
// height gate, then the row-packing simulation. The simulation is first
// fit: placed containers are replayed strictly in placement order, never
// reordered to backfill earlier rows, so a rejection here does not mean a
// smarter packer could not fit the container.
func (sh *Shelf) CanAdd(set *ContainerSet, c *Container) bool {
	if sh.ReservedForEmpty != c.IsEmpty {
		return false
	}
	if sh.CurrentWeight(set)+c.Weight > sh.MaxWeight {
		return false
	}
	if c.Height > sh.Height {
		return false
	}

	cur := sh.walk(set, nil)

	// Wrap at most once for the candidate before the final bounds test.
	if cur.x+c.Length > sh.Length-ShelfMargin {
		cur.x = ShelfMargin
		cur.rowTop += cur.rowDepth + ContainerGap
	}
	if cur.rowTop+c.Width > sh.Width-ShelfMargin {
		return false
	}
	if cur.x+c.Length > sh.Length-ShelfMargin {
		return false
	}
	return true
}

// Add places the container on the shelf if CanAdd allows it, appending it
// to the placement order and setting its shelf back-reference.
func (sh *Shelf) Add(set *ContainerSet, c *Container) bool {
	if !sh.CanAdd(set, c) {
		return false
	}
	sh.ContainerIDs = append(sh.ContainerIDs, c.ID)
	level := sh.Level
	c.ShelfLevel = &level
	return true
}

// Remove takes the container off the shelf and clears its back-reference.
// Returns false if the container is not on this shelf.
func (sh *Shelf) Remove(c *Container) bool {
	for i, id := range sh.ContainerIDs {
		if id == c.ID {
			sh.ContainerIDs = append(sh.ContainerIDs[:i], sh.ContainerIDs[i+1:]...)
			c.ShelfLevel = nil
			return true
		}
	}
	return false
}

// Contains reports membership by container ID.
func (sh *Shelf) Contains(id string) bool {
	for _, existing := range sh.ContainerIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// PlacedContainer is one container with its replayed on-shelf coordinates.
type PlacedContainer struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Layout replays the identical row-packing walk used by CanAdd and returns
// the exact position of every placed container, for rendering and export.
func (sh *Shelf) Layout(set *ContainerSet) []PlacedContainer {
	var out []PlacedContainer
	sh.walk(set, func(c *Container, x, y float64) {
		out = append(out, PlacedContainer{ID: c.ID, X: x, Y: y})
	})
	return out
}

// TotalArea returns the full shelf surface area.
func (sh *Shelf) TotalArea() float64 {
	return sh.Length * sh.Width
}

// OccupiedArea sums the footprint areas of the placed containers. This is
// a capacity proxy independent of the packed geometry: it can report free
// area that the row layout cannot actually use.
func (sh *Shelf) OccupiedArea(set *ContainerSet) float64 {
	var total float64
	for _, id := range sh.ContainerIDs {
		if c, ok := set.Get(id); ok {
			total += c.FootprintArea()
		}
	}
	return total
}

func (sh *Shelf) FreeArea(set *ContainerSet) float64 {
	return sh.TotalArea() - sh.OccupiedArea(set)
}

// CurrentWeight sums the weights of the placed containers.
func (sh *Shelf) CurrentWeight(set *ContainerSet) float64 {
	var total float64
	for _, id := range sh.ContainerIDs {
		if c, ok := set.Get(id); ok {
			total += c.Weight
		}
	}
	return total
}

// UtilizationPercent is occupied over total area; 0 for a zero-area shelf.
func (sh *Shelf) UtilizationPercent(set *ContainerSet) float64 {
	ta := sh.TotalArea()
	if ta == 0 {
		return 0
	}
	return sh.OccupiedArea(set) / ta * 100.0
}
