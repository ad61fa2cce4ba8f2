package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

func TestHierarchyAddCmd(t *testing.T) {
	t.Run("builds a path", func(t *testing.T) {
		env := setupTestServices(t)

		_, err := execute(t, "hierarchy", "add", "room", "1", "Kitchen", "--room-type", "kitchen")
		require.NoError(t, err)
		resetFlags(rootCmd)
		_, err = execute(t, "hierarchy", "add", "location", "10", "North wall", "--parent", "1")
		require.NoError(t, err)
		resetFlags(rootCmd)
		_, err = execute(t, "hierarchy", "add", "cabinet_run", "100", "Uppers", "--parent", "10")
		require.NoError(t, err)
		resetFlags(rootCmd)
		_, err = execute(t, "hierarchy", "add", "cabinet", "1000", "W3030", "--parent", "100")
		require.NoError(t, err)

		h, err := env.projects.Hierarchy(context.Background(), env.project.ID)
		require.NoError(t, err)
		assert.Equal(t, "Kitchen", h.Rooms[1].Name)
		assert.Equal(t, int64(1), h.Locations[10].RoomID)
		assert.Equal(t, int64(10), h.Runs[100].RoomLocationID)
		assert.Equal(t, int64(100), h.Cabinets[1000].CabinetRunID)

		resetFlags(rootCmd)
		out, err := execute(t, "hierarchy", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "Room 1  Kitchen [kitchen]")
		assert.Contains(t, out, "  Location 10  North wall")
		assert.Contains(t, out, "    Run 100  Uppers")
		assert.Contains(t, out, "      Cabinet 1000  W3030")
	})

	t.Run("missing parent", func(t *testing.T) {
		setupTestServices(t)
		_, err := execute(t, "hierarchy", "add", "location", "10", "North wall", "--parent", "5")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("duplicate id", func(t *testing.T) {
		setupTestServices(t)
		_, err := execute(t, "hierarchy", "add", "room", "1", "Kitchen")
		require.NoError(t, err)
		resetFlags(rootCmd)
		_, err = execute(t, "hierarchy", "add", "room", "1", "Laundry")
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
		assert.Equal(t, 2, ExitCode(err))
	})

	t.Run("bad level", func(t *testing.T) {
		setupTestServices(t)
		_, err := execute(t, "hierarchy", "add", "floor", "1", "Ground")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("bad id", func(t *testing.T) {
		setupTestServices(t)
		_, err := execute(t, "hierarchy", "add", "room", "one", "Kitchen")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestHierarchyListCmd_Empty(t *testing.T) {
	setupTestServices(t)
	out, err := execute(t, "hierarchy", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No hierarchy records.")
}

func TestSortedChildren(t *testing.T) {
	locations := map[int64]domain.RoomLocation{
		3: {ID: 3, RoomID: 1},
		1: {ID: 1, RoomID: 1},
		2: {ID: 2, RoomID: 2},
	}
	got := sortedChildren(locations, locationKey, 1)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}
