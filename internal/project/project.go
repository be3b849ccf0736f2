// Package project persists warehouse state as a JSON snapshot and
// restores it. The snapshot stores, per shelf, the ordered contained
// container IDs: the order drives the row-packing replay on reload, so
// a restored warehouse renders and packs exactly as it did when saved.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/RackPlan/internal/model"
)

const snapshotVersion = "1.0.0"

// Project is the versioned top-level snapshot document.
type Project struct {
	Version    string             `json:"version"`
	Name       string             `json:"name"`
	SavedAt    string             `json:"saved_at"`
	Containers []*model.Container `json:"containers"`
	Warehouse  *model.Warehouse   `json:"warehouse"`
}

// Snapshot captures the current warehouse and arena into a Project.
// Containers are listed in ID order.
func Snapshot(name string, set *model.ContainerSet, w *model.Warehouse) Project {
	return Project{
		Version:    snapshotVersion,
		Name:       name,
		SavedAt:    time.Now().UTC().Format(time.RFC3339),
		Containers: set.All(),
		Warehouse:  w,
	}
}

// DefaultProjectDir returns ~/.rackplan/projects.
func DefaultProjectDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rackplan", "projects"), nil
}

// Save writes the project to the given JSON file, creating parent
// directories as needed.
func Save(path string, p Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// Load reads and validates a project file, returning the restored
// warehouse together with the rebuilt container arena.
func Load(path string) (Project, *model.ContainerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, nil, fmt.Errorf("failed to read project file: %w", err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return Project{}, nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	if p.Version == "" {
		return Project{}, nil, fmt.Errorf("invalid project file: missing version field")
	}

	set, err := Restore(p)
	if err != nil {
		return Project{}, nil, err
	}
	return p, set, nil
}

// Restore rebuilds the container arena from a snapshot and re-links the
// warehouse to it. It fails with the offending record on duplicate
// container IDs, on shelf references to unknown containers, and on a
// container held by more than one shelf. Back-references are recomputed
// from shelf membership, not trusted from the file.
func Restore(p Project) (*model.ContainerSet, error) {
	set := model.NewContainerSet()
	for _, c := range p.Containers {
		if c.ID == "" {
			return nil, fmt.Errorf("invalid container record %q: empty id", c.Name)
		}
		c.ShelfLevel = nil
		if err := set.Register(c); err != nil {
			return nil, err
		}
	}

	if p.Warehouse == nil {
		return set, nil
	}

	held := make(map[string]string)
	for _, st := range p.Warehouse.Stacks {
		for _, sh := range st.Shelves {
			for _, id := range sh.ContainerIDs {
				c, ok := set.Get(id)
				if !ok {
					return nil, fmt.Errorf("stack %s level %d references unknown container %q",
						st.Name, sh.Level, id)
				}
				if prev, dup := held[id]; dup {
					return nil, fmt.Errorf("container %q held by both %s and stack %s level %d",
						id, prev, st.Name, sh.Level)
				}
				held[id] = fmt.Sprintf("stack %s level %d", st.Name, sh.Level)
				level := sh.Level
				c.ShelfLevel = &level
			}
		}
		for _, id := range st.EmptyBuffer {
			if _, ok := set.Get(id); !ok {
				return nil, fmt.Errorf("stack %s buffer references unknown container %q", st.Name, id)
			}
		}
	}
	return set, nil
}
