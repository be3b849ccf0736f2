package model

import "time"

// Stack is a vertical column of shelves sharing one footprint. Shelf
// levels are contiguous from 0 in the order shelves were added. The
// EmptyBuffer tracks containers flipped to empty that no reserved shelf
// has accepted yet.
type Stack struct {
	Name        string   `json:"name"`
	BaseLength  float64  `json:"base_length"`
	BaseWidth   float64  `json:"base_width"`
	Shelves     []*Shelf `json:"shelves"`
	EmptyBuffer []string `json:"empty_buffer,omitempty"`
}

func NewStack(name string, baseLength, baseWidth float64) *Stack {
	return &Stack{
		Name:       name,
		BaseLength: baseLength,
		BaseWidth:  baseWidth,
	}
}

// AddShelf appends a shelf at the next level, inheriting the stack footprint.
func (st *Stack) AddShelf(maxWeight, height float64, reservedForEmpty bool) *Shelf {
	sh := &Shelf{
		Level:            len(st.Shelves),
		MaxWeight:        maxWeight,
		Length:           st.BaseLength,
		Width:            st.BaseWidth,
		Height:           height,
		ReservedForEmpty: reservedForEmpty,
	}
	st.Shelves = append(st.Shelves, sh)
	return sh
}

// EmptyShelf returns the highest-level shelf reserved for empty
// containers, or nil when the stack has none.
func (st *Stack) EmptyShelf() *Shelf {
	for i := len(st.Shelves) - 1; i >= 0; i-- {
		if st.Shelves[i].ReservedForEmpty {
			return st.Shelves[i]
		}
	}
	return nil
}

// ShelfOf locates the shelf currently holding the container, or nil.
func (st *Stack) ShelfOf(c *Container) *Shelf {
	for _, sh := range st.Shelves {
		if sh.Contains(c.ID) {
			return sh
		}
	}
	return nil
}

// ActionMoveToBuffer labels the move recorded when an emptied container is
// relocated to a reserved shelf.
const ActionMoveToBuffer = "move_to_buffer"

// MoveRecord describes one buffer move. It is returned to the caller
// rather than accumulated on the stack, so callers control retention.
type MoveRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	Action      string    `json:"action"`
	ContainerID string    `json:"container"`
	FromLevel   int       `json:"from_level"`
	ToLevel     int       `json:"to_level"`
}

// MarkContainerEmpty flips a held container to empty and moves it toward
// the reserved shelf. It is idempotent: already-empty containers are left
// alone. The container is removed from its current shelf, its priority
// flag and content cleared, and parked in the EmptyBuffer; if the reserved
// shelf accepts it the buffer entry is dropped and the move is returned
// with ok=true. Otherwise it stays parked until a later call succeeds.
func (st *Stack) MarkContainerEmpty(set *ContainerSet, c *Container) (MoveRecord, bool) {
	if c.IsEmpty {
		return MoveRecord{}, false
	}

	current := st.ShelfOf(c)
	if current == nil {
		return MoveRecord{}, false
	}
	current.Remove(c)

	c.IsEmpty = true
	c.Content = ""
	c.Priority = false
	st.EmptyBuffer = append(st.EmptyBuffer, c.ID)

	target := st.EmptyShelf()
	if target == nil || !target.Add(set, c) {
		return MoveRecord{}, false
	}

	st.removeFromBuffer(c.ID)
	return MoveRecord{
		Timestamp:   time.Now(),
		Action:      ActionMoveToBuffer,
		ContainerID: c.ID,
		FromLevel:   current.Level,
		ToLevel:     target.Level,
	}, true
}

// PlaceBuffered retries placement of every parked container onto the
// reserved shelf, draining the buffer entries that fit.
func (st *Stack) PlaceBuffered(set *ContainerSet) int {
	target := st.EmptyShelf()
	if target == nil {
		return 0
	}
	placed := 0
	remaining := st.EmptyBuffer[:0]
	for _, id := range st.EmptyBuffer {
		c, ok := set.Get(id)
		if ok && target.Add(set, c) {
			placed++
			continue
		}
		remaining = append(remaining, id)
	}
	st.EmptyBuffer = remaining
	return placed
}

func (st *Stack) removeFromBuffer(id string) {
	for i, buffered := range st.EmptyBuffer {
		if buffered == id {
			st.EmptyBuffer = append(st.EmptyBuffer[:i], st.EmptyBuffer[i+1:]...)
			return
		}
	}
}

// Stats aggregates the per-shelf figures for reporting.
func (st *Stack) Stats(set *ContainerSet) StackStats {
	stats := StackStats{
		Name:             st.Name,
		TotalShelves:     len(st.Shelves),
		EmptyBufferCount: len(st.EmptyBuffer),
	}
	for _, sh := range st.Shelves {
		stats.TotalArea += sh.TotalArea()
		stats.OccupiedArea += sh.OccupiedArea(set)
		stats.TotalContainers += len(sh.ContainerIDs)
		stats.TotalWeight += sh.CurrentWeight(set)
	}
	stats.FreeArea = stats.TotalArea - stats.OccupiedArea
	if stats.TotalArea > 0 {
		stats.UtilizationPercent = stats.OccupiedArea / stats.TotalArea * 100.0
	}
	return stats
}
