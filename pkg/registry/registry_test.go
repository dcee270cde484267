package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestRegistry_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "farmers.json")

	reg := NewRegistry(now)
	require.NoError(t, reg.Add(Farmer{Name: " Maria Garcia ", Email: "maria@example.com", Product: "tomato"}, now))
	require.NoError(t, SaveRegistry(reg, path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, loaded.Farmers, 1)
	assert.Equal(t, "Maria Garcia", loaded.Farmers[0].Name)
	assert.NoError(t, loaded.Validate())
}

func TestRegistry_AddRejectsDuplicatesAndInvalid(t *testing.T) {
	reg := NewRegistry(now)
	require.NoError(t, reg.Add(Farmer{Name: "John", Email: "john@example.com", Product: "potato"}, now))

	assert.Error(t, reg.Add(Farmer{Name: "John", Email: "JOHN@example.com", Product: "Potato"}, now))
	assert.Error(t, reg.Add(Farmer{Name: "", Email: "x@example.com", Product: "rice"}, now))
	assert.Error(t, reg.Add(Farmer{Name: "X", Email: "x@example.com", Product: "  "}, now))
	assert.Error(t, reg.Add(Farmer{Name: "X", Email: "not-an-email", Product: "rice"}, now))

	require.NoError(t, reg.Add(Farmer{Name: "John", Email: "john@example.com", Product: "onion"}, now))
	assert.Len(t, reg.Farmers, 2)
}

func TestRegistry_Remove(t *testing.T) {
	reg := NewRegistry(now)
	require.NoError(t, reg.Add(Farmer{Name: "John", Email: "john@example.com", Product: "potato"}, now))

	later := now.Add(time.Hour)
	assert.False(t, reg.Remove("john@example.com", "onion", later))
	assert.True(t, reg.Remove("john@example.com", "POTATO", later))
	assert.Empty(t, reg.Farmers)
	assert.Equal(t, later.Format(time.RFC3339), reg.LastUpdated)
}

func TestRegistry_ValidateEmpty(t *testing.T) {
	assert.Error(t, NewRegistry(now).Validate())
}

func TestLoadRegistry_Missing(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
