package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_Classify(t *testing.T) {
	tests := []struct {
		name     string
		isEmpty  bool
		priority bool
		want     ContainerClass
	}{
		{"regular", false, false, ClassRegular},
		{"priority", false, true, ClassPriority},
		{"empty", true, false, ClassEmpty},
		{"empty wins over priority", true, true, ClassEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContainer("c", 10, 40, 30, 30)
			c.IsEmpty = tt.isEmpty
			c.Priority = tt.priority
			assert.Equal(t, tt.want, c.Classify())
		})
	}
}

func TestContainer_Article(t *testing.T) {
	c := NewContainer("c", 10, 40, 30, 30)
	c.ID = "A123_001"
	assert.Equal(t, "A123", c.Article())

	c.ID = "A123_001_dup"
	assert.Equal(t, "A123", c.Article(), "only the first underscore splits")

	c.ID = "loose"
	assert.Equal(t, "loose", c.Article(), "no underscore: whole ID is the article")
}

func TestContainer_Measures(t *testing.T) {
	c := NewContainer("c", 10, 60, 40, 45)
	assert.Equal(t, 2400.0, c.FootprintArea())
	assert.Equal(t, 108000.0, c.Volume())
}

func TestNewContainer_GeneratesShortUniqueIDs(t *testing.T) {
	a := NewContainer("a", 1, 1, 1, 1)
	b := NewContainer("b", 1, 1, 1, 1)
	assert.Len(t, a.ID, 8)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Nil(t, a.ShelfLevel)
}

func TestContainerSet_Register(t *testing.T) {
	set := NewContainerSet()
	c := NewContainer("c", 10, 40, 30, 30)

	require.NoError(t, set.Register(c))
	require.NoError(t, set.Register(c), "re-registering the same container is a no-op")
	assert.Equal(t, 1, set.Len())

	clash := NewContainer("clash", 5, 20, 20, 20)
	clash.ID = c.ID
	err := set.Register(clash)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate container id")

	got, ok := set.Get(c.ID)
	require.True(t, ok)
	assert.Same(t, c, got)

	_, ok = set.Get("missing")
	assert.False(t, ok)
}
