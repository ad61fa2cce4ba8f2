package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store with one project.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	err = store.ProjectStore().Save(context.Background(), domain.Project{
		ID:            "p1",
		Name:          "Smith Kitchen",
		ProjectNumber: "P-100",
		RoomCodes:     map[string]string{"kitchen": "KIT"},
		RoomColors:    map[string]string{"kitchen": "#112233"},
	})
	require.NoError(t, err)
	return store
}

func testAnnotation(id string) domain.Annotation {
	return domain.Annotation{
		ID: id, PageNumber: 2, Type: domain.AnnotationCabinet,
		X: 0.1, Y: 0.2, Width: 0.3, Height: 0.4,
		Color: "#EF4444", Text: "C1",
		RoomID: domain.Ref(1), RoomLocationID: domain.Ref(10), CabinetID: domain.Ref(1000),
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.FileExists(t, store.Path())
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.ProjectStore().Save(context.Background(), domain.Project{ID: "p1", Name: "A"}))
	require.NoError(t, store.Close())

	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	p, err := store.ProjectStore().Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "A", p.Name)
}

func TestProjectStore_SaveGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	p, err := store.ProjectStore().Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Smith Kitchen", p.Name)
	assert.Equal(t, "P-100", p.ProjectNumber)
	assert.Equal(t, "KIT", p.RoomCodes["kitchen"])
	assert.Equal(t, "#112233", p.RoomColors["kitchen"])
	assert.False(t, p.CreatedAt.IsZero())

	p.Name = "Renamed"
	p.RoomCodes["bath"] = "BTH"
	require.NoError(t, store.ProjectStore().Save(ctx, *p))

	got, err := store.ProjectStore().Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Len(t, got.RoomCodes, 2)
}

func TestProjectStore_GetMissing(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.ProjectStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectStore_List(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.ProjectStore().Save(ctx, domain.Project{ID: "p0", Name: "Alpha"}))

	projects, err := store.ProjectStore().List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Alpha", projects[0].Name)
	assert.NotNil(t, projects[0].RoomCodes)
}

func TestProjectStore_DeleteCascades(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.AnnotationStore().Save(ctx, "p1", testAnnotation("a1")))
	require.NoError(t, store.ViewStateStore().SaveViewState(ctx, "p1", domain.DefaultViewState()))
	require.NoError(t, store.HierarchyStore().SaveRoom(ctx, domain.Room{ID: 1, ProjectID: "p1", Name: "Kitchen"}))

	require.NoError(t, store.ProjectStore().Delete(ctx, "p1"))

	list, err := store.AnnotationStore().List(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, list)
	_, err = store.ViewStateStore().GetViewState(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	h, err := store.HierarchyStore().Load(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, h.Rooms)

	assert.ErrorIs(t, store.ProjectStore().Delete(ctx, "p1"), domain.ErrNotFound)
}

func TestViewStateStore(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	views := store.ViewStateStore()

	_, err := views.GetViewState(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, views.SaveViewState(ctx, "p1", domain.ViewState{Zoom: 1.5, Rotation: 90, Page: 3}))
	require.NoError(t, views.SaveViewState(ctx, "p1", domain.ViewState{Zoom: 2, Rotation: 180, Page: 4}))

	got, err := views.GetViewState(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewState{Zoom: 2, Rotation: 180, Page: 4}, *got)
}

func TestAnnotationStore_ReplaceAllKeepsOrder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	annotations := store.AnnotationStore()

	list, err := annotations.List(ctx, "p1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	b := testAnnotation("b")
	b.RoomID, b.RoomLocationID, b.CabinetID = nil, nil, nil
	b.Type = domain.AnnotationGeneric
	require.NoError(t, annotations.ReplaceAll(ctx, "p1", []domain.Annotation{testAnnotation("z"), b, testAnnotation("a")}))

	list, err = annotations.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"z", "b", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, testAnnotation("z"), list[0])
	assert.Nil(t, list[1].RoomID)
	assert.Equal(t, domain.AnnotationGeneric, list[1].Type)

	require.NoError(t, annotations.ReplaceAll(ctx, "p1", nil))
	list, err = annotations.List(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAnnotationStore_SaveAppendsAndUpdates(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	annotations := store.AnnotationStore()

	require.NoError(t, annotations.Save(ctx, "p1", testAnnotation("a")))
	require.NoError(t, annotations.Save(ctx, "p1", testAnnotation("b")))

	updated := testAnnotation("a")
	updated.Text = "moved"
	require.NoError(t, annotations.Save(ctx, "p1", updated))

	list, err := annotations.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID, "update keeps position")
	assert.Equal(t, "moved", list[0].Text)
}

func TestAnnotationStore_Delete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	annotations := store.AnnotationStore()
	require.NoError(t, annotations.Save(ctx, "p1", testAnnotation("a")))

	require.NoError(t, annotations.Delete(ctx, "p1", "a"))
	assert.ErrorIs(t, annotations.Delete(ctx, "p1", "a"), domain.ErrNotFound)
}

func TestAnnotationStore_UnknownProject(t *testing.T) {
	store := setupTestStore(t)

	err := store.AnnotationStore().Save(context.Background(), "missing", testAnnotation("a"))
	assert.Error(t, err, "foreign key rejects annotations without a project")
}

func TestHierarchyStore_SaveLoad(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	h := store.HierarchyStore()

	require.NoError(t, h.SaveRoom(ctx, domain.Room{ID: 1, ProjectID: "p1", Name: "Kitchen", RoomType: "kitchen"}))
	require.NoError(t, h.SaveLocation(ctx, "p1", domain.RoomLocation{ID: 10, RoomID: 1, Name: "North wall"}))
	require.NoError(t, h.SaveRun(ctx, "p1", domain.CabinetRun{ID: 100, RoomLocationID: 10, Name: "Uppers"}))
	require.NoError(t, h.SaveCabinet(ctx, "p1", domain.Cabinet{ID: 1000, CabinetRunID: 100, Name: "U1"}))
	require.NoError(t, h.SaveCabinet(ctx, "p1", domain.Cabinet{ID: 1000, CabinetRunID: 100, Name: "U1-renamed"}))

	got, err := h.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.Room{ID: 1, ProjectID: "p1", Name: "Kitchen", RoomType: "kitchen"}, got.Rooms[1])
	assert.Equal(t, domain.RoomLocation{ID: 10, RoomID: 1, Name: "North wall"}, got.Locations[10])
	assert.Equal(t, domain.CabinetRun{ID: 100, RoomLocationID: 10, Name: "Uppers"}, got.Runs[100])
	assert.Equal(t, "U1-renamed", got.Cabinets[1000].Name)
	assert.Len(t, got.Cabinets, 1)

	other, err := h.Load(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, other.Rooms)
	assert.NotNil(t, other.Cabinets)
}

func TestHierarchyStore_IDsArePerProject(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.ProjectStore().Save(ctx, domain.Project{ID: "p2", Name: "Jones Laundry"}))
	h := store.HierarchyStore()

	require.NoError(t, h.SaveRoom(ctx, domain.Room{ID: 1, ProjectID: "p1", Name: "Kitchen", RoomType: "kitchen"}))
	require.NoError(t, h.SaveLocation(ctx, "p1", domain.RoomLocation{ID: 10, RoomID: 1, Name: "North wall"}))
	require.NoError(t, h.SaveRoom(ctx, domain.Room{ID: 1, ProjectID: "p2", Name: "Laundry", RoomType: "laundry"}))
	require.NoError(t, h.SaveLocation(ctx, "p2", domain.RoomLocation{ID: 10, RoomID: 1, Name: "Tub wall"}))

	first, err := h.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.Room{ID: 1, ProjectID: "p1", Name: "Kitchen", RoomType: "kitchen"}, first.Rooms[1])
	assert.Equal(t, "North wall", first.Locations[10].Name)

	second, err := h.Load(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "Laundry", second.Rooms[1].Name)
	assert.Equal(t, "Tub wall", second.Locations[10].Name)

	require.NoError(t, store.ProjectStore().Delete(ctx, "p2"))
	first, err = h.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, first.Rooms, 1, "deleting one project leaves the other's records")
}
