package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ContainerClass is the closed classification that drives the placement
// tiers. It is derived once from the container flags instead of re-testing
// flag combinations at every decision point.
type ContainerClass string

const (
	ClassRegular  ContainerClass = "regular"
	ClassPriority ContainerClass = "priority"
	ClassEmpty    ContainerClass = "empty"
)

// Container represents one tote: an immutable physical descriptor plus
// mutable placement state. Dimensions share one unit (cm in practice);
// weight is kg.
type Container struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
	Length     float64 `json:"length"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	IsEmpty    bool    `json:"is_empty"`
	Priority   bool    `json:"priority"`
	Content    string  `json:"content,omitempty"`
	Material   string  `json:"material,omitempty"`
	PostNumber string  `json:"post_number,omitempty"`

	// ShelfLevel is set while the container sits on a shelf and nil
	// otherwise. It always mirrors membership in exactly one shelf's
	// ContainerIDs list.
	ShelfLevel *int `json:"shelf_level,omitempty"`
}

func NewContainer(name string, weight, length, width, height float64) *Container {
	return &Container{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Weight: weight,
		Length: length,
		Width:  width,
		Height: height,
	}
}

// FootprintArea returns length x width, the shelf area the container claims.
func (c *Container) FootprintArea() float64 {
	return c.Length * c.Width
}

// Volume returns length x width x height.
func (c *Container) Volume() float64 {
	return c.Length * c.Width * c.Height
}

// Classify maps the container flags onto the closed tier classification.
// Empty wins over priority: empty containers never carry priority.
func (c *Container) Classify() ContainerClass {
	switch {
	case c.IsEmpty:
		return ClassEmpty
	case c.Priority:
		return ClassPriority
	default:
		return ClassRegular
	}
}

// Article returns the article key encoded in the container ID: the prefix
// before the first underscore (IDs are formed as "ARTICLE_NNN" on import).
func (c *Container) Article() string {
	if i := strings.Index(c.ID, "_"); i >= 0 {
		return c.ID[:i]
	}
	return c.ID
}

// ContainerSet is the arena of containers addressed by ID. Shelves store
// IDs, not object references; the set resolves them back to descriptors.
type ContainerSet struct {
	byID map[string]*Container
}

func NewContainerSet() *ContainerSet {
	return &ContainerSet{byID: make(map[string]*Container)}
}

// Register adds a container to the arena. Registering the same container
// twice is a no-op; a different container under an already-used ID is a
// hard error.
func (s *ContainerSet) Register(c *Container) error {
	if existing, ok := s.byID[c.ID]; ok {
		if existing == c {
			return nil
		}
		return fmt.Errorf("duplicate container id %q", c.ID)
	}
	s.byID[c.ID] = c
	return nil
}

// Get resolves an ID to its container.
func (s *ContainerSet) Get(id string) (*Container, bool) {
	c, ok := s.byID[id]
	return c, ok
}

func (s *ContainerSet) Len() int {
	return len(s.byID)
}

// All returns every registered container ordered by ID, so callers that
// serialize the arena get a stable layout.
func (s *ContainerSet) All() []*Container {
	out := make([]*Container, 0, len(s.byID))
	for _, c := range s.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
