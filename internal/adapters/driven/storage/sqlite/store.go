package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/plancanvas/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.plancanvas/data/plancanvas.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".plancanvas", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "plancanvas.db")

	// Pragmas in the DSN apply to every pooled connection.
	db, err := sql.Open("sqlite", dbPath+
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ProjectStore returns a ProjectStore backed by this store.
func (s *Store) ProjectStore() driven.ProjectStore {
	return &projectStore{store: s}
}

// ViewStateStore returns a ViewStateStore backed by this store.
func (s *Store) ViewStateStore() driven.ViewStateStore {
	return &projectStore{store: s}
}

// AnnotationStore returns an AnnotationStore backed by this store.
func (s *Store) AnnotationStore() driven.AnnotationStore {
	return &annotationStore{store: s}
}

// HierarchyStore returns a HierarchyStore backed by this store.
func (s *Store) HierarchyStore() driven.HierarchyStore {
	return &hierarchyStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Project Store ====================

// projectStore implements driven.ProjectStore and driven.ViewStateStore.
type projectStore struct {
	store *Store
}

var (
	_ driven.ProjectStore   = (*projectStore)(nil)
	_ driven.ViewStateStore = (*projectStore)(nil)
)

const projectColumns = `id, name, project_number, room_codes, room_colors, default_color,
	document_path, created_at, updated_at`

// Save stores or updates a project.
func (s *projectStore) Save(ctx context.Context, project domain.Project) error {
	codes, err := marshalMap(project.RoomCodes)
	if err != nil {
		return fmt.Errorf("marshalling room codes: %w", err)
	}
	colors, err := marshalMap(project.RoomColors)
	if err != nil {
		return fmt.Errorf("marshalling room colors: %w", err)
	}

	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	if project.UpdatedAt.IsZero() {
		project.UpdatedAt = now
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			project_number = excluded.project_number,
			room_codes = excluded.room_codes,
			room_colors = excluded.room_colors,
			default_color = excluded.default_color,
			document_path = excluded.document_path,
			updated_at = excluded.updated_at
	`, project.ID, project.Name, project.ProjectNumber, codes, colors, project.DefaultColor,
		project.DocumentPath, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	return nil
}

// Get retrieves a project by ID.
func (s *projectStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

// List returns all projects ordered by name.
func (s *projectStore) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// Delete removes a project and everything it owns.
func (s *projectStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveViewState stores the view for a project.
func (s *projectStore) SaveViewState(ctx context.Context, projectID string, view domain.ViewState) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO view_states (project_id, zoom, rotation, page)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			zoom = excluded.zoom,
			rotation = excluded.rotation,
			page = excluded.page
	`, projectID, view.Zoom, view.Rotation, view.Page)
	if err != nil {
		return fmt.Errorf("saving view state: %w", err)
	}
	return nil
}

// GetViewState returns the stored view for a project.
func (s *projectStore) GetViewState(ctx context.Context, projectID string) (*domain.ViewState, error) {
	var view domain.ViewState
	err := s.store.db.QueryRowContext(ctx,
		"SELECT zoom, rotation, page FROM view_states WHERE project_id = ?", projectID,
	).Scan(&view.Zoom, &view.Rotation, &view.Page)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning view state: %w", err)
	}
	return &view, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var codes, colors string
	if err := row.Scan(&p.ID, &p.Name, &p.ProjectNumber, &codes, &colors, &p.DefaultColor,
		&p.DocumentPath, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	if err := json.Unmarshal([]byte(codes), &p.RoomCodes); err != nil {
		return nil, fmt.Errorf("unmarshalling room codes: %w", err)
	}
	if err := json.Unmarshal([]byte(colors), &p.RoomColors); err != nil {
		return nil, fmt.Errorf("unmarshalling room colors: %w", err)
	}
	return &p, nil
}

func marshalMap(m map[string]string) (string, error) {
	if m == nil {
		m = map[string]string{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ==================== Annotation Store ====================

// annotationStore implements driven.AnnotationStore.
type annotationStore struct {
	store *Store
}

var _ driven.AnnotationStore = (*annotationStore)(nil)

const annotationColumns = `id, page_number, annotation_type, x, y, width, height, color, text,
	room_type, room_id, room_location_id, cabinet_run_id, cabinet_id`

// List returns a project's annotations in insertion order.
func (s *annotationStore) List(ctx context.Context, projectID string) ([]domain.Annotation, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+annotationColumns+`
		FROM annotations WHERE project_id = ?
		ORDER BY position
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	list := []domain.Annotation{}
	for rows.Next() {
		a, err := scanAnnotation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating annotations: %w", err)
	}
	return list, nil
}

// ReplaceAll overwrites a project's annotations in one transaction.
func (s *annotationStore) ReplaceAll(ctx context.Context, projectID string, list []domain.Annotation) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM annotations WHERE project_id = ?", projectID); err != nil {
		return fmt.Errorf("clearing annotations: %w", err)
	}
	for i, a := range list {
		if err := insertAnnotation(ctx, tx, projectID, i, a); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing annotations: %w", err)
	}
	return nil
}

// Save creates or updates one annotation, appending new ones at the end.
func (s *annotationStore) Save(ctx context.Context, projectID string, a domain.Annotation) error {
	var position int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT position FROM annotations WHERE project_id = ? AND id = ?", projectID, a.ID,
	).Scan(&position)
	if errors.Is(err, sql.ErrNoRows) {
		err = s.store.db.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(position), -1) + 1 FROM annotations WHERE project_id = ?", projectID,
		).Scan(&position)
	}
	if err != nil {
		return fmt.Errorf("finding annotation position: %w", err)
	}
	return insertAnnotation(ctx, s.store.db, projectID, position, a)
}

// Delete removes one annotation.
func (s *annotationStore) Delete(ctx context.Context, projectID, id string) error {
	res, err := s.store.db.ExecContext(ctx,
		"DELETE FROM annotations WHERE project_id = ? AND id = ?", projectID, id)
	if err != nil {
		return fmt.Errorf("deleting annotation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertAnnotation(ctx context.Context, db execer, projectID string, position int, a domain.Annotation) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO annotations (project_id, position, `+annotationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id, id) DO UPDATE SET
			page_number = excluded.page_number,
			annotation_type = excluded.annotation_type,
			x = excluded.x,
			y = excluded.y,
			width = excluded.width,
			height = excluded.height,
			color = excluded.color,
			text = excluded.text,
			room_type = excluded.room_type,
			room_id = excluded.room_id,
			room_location_id = excluded.room_location_id,
			cabinet_run_id = excluded.cabinet_run_id,
			cabinet_id = excluded.cabinet_id
	`, projectID, position, a.ID, a.PageNumber, string(a.Type), a.X, a.Y, a.Width, a.Height,
		a.Color, a.Text, a.RoomType,
		nullInt(a.RoomID), nullInt(a.RoomLocationID), nullInt(a.CabinetRunID), nullInt(a.CabinetID))
	if err != nil {
		return fmt.Errorf("saving annotation %s: %w", a.ID, err)
	}
	return nil
}

func scanAnnotation(row rowScanner) (domain.Annotation, error) {
	var a domain.Annotation
	var typ string
	var room, location, run, cabinet sql.NullInt64
	if err := row.Scan(&a.ID, &a.PageNumber, &typ, &a.X, &a.Y, &a.Width, &a.Height,
		&a.Color, &a.Text, &a.RoomType, &room, &location, &run, &cabinet); err != nil {
		return a, fmt.Errorf("scanning annotation: %w", err)
	}
	a.Type = domain.AnnotationType(typ)
	a.RoomID = refFromNull(room)
	a.RoomLocationID = refFromNull(location)
	a.CabinetRunID = refFromNull(run)
	a.CabinetID = refFromNull(cabinet)
	return a, nil
}

func nullInt(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func refFromNull(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	return domain.Ref(n.Int64)
}

// ==================== Hierarchy Store ====================

// hierarchyStore implements driven.HierarchyStore.
type hierarchyStore struct {
	store *Store
}

var _ driven.HierarchyStore = (*hierarchyStore)(nil)

// SaveRoom creates or updates a room.
func (s *hierarchyStore) SaveRoom(ctx context.Context, room domain.Room) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO rooms (id, project_id, name, room_type) VALUES (?, ?, ?, ?)
		ON CONFLICT(project_id, id) DO UPDATE SET
			name = excluded.name,
			room_type = excluded.room_type
	`, room.ID, room.ProjectID, room.Name, room.RoomType)
	if err != nil {
		return fmt.Errorf("saving room: %w", err)
	}
	return nil
}

// SaveLocation creates or updates a room location.
func (s *hierarchyStore) SaveLocation(ctx context.Context, projectID string, location domain.RoomLocation) error {
	return s.saveChild(ctx, "room_locations", "room_id", projectID, location.ID, location.RoomID, location.Name)
}

// SaveRun creates or updates a cabinet run.
func (s *hierarchyStore) SaveRun(ctx context.Context, projectID string, run domain.CabinetRun) error {
	return s.saveChild(ctx, "cabinet_runs", "room_location_id", projectID, run.ID, run.RoomLocationID, run.Name)
}

// SaveCabinet creates or updates a cabinet.
func (s *hierarchyStore) SaveCabinet(ctx context.Context, projectID string, cabinet domain.Cabinet) error {
	return s.saveChild(ctx, "cabinets", "cabinet_run_id", projectID, cabinet.ID, cabinet.CabinetRunID, cabinet.Name)
}

// saveChild upserts a non-root hierarchy record keyed by (project, id).
// table and parentColumn are constants from this file, never user input.
func (s *hierarchyStore) saveChild(
	ctx context.Context,
	table, parentColumn, projectID string,
	id, parentID int64,
	name string,
) error {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (id, project_id, %[2]s, name) VALUES (?, ?, ?, ?)
		ON CONFLICT(project_id, id) DO UPDATE SET
			%[2]s = excluded.%[2]s,
			name = excluded.name
	`, table, parentColumn)
	if _, err := s.store.db.ExecContext(ctx, query, id, projectID, parentID, name); err != nil {
		return fmt.Errorf("saving %s: %w", table, err)
	}
	return nil
}

// Load returns every hierarchy record of a project.
func (s *hierarchyStore) Load(ctx context.Context, projectID string) (domain.Hierarchy, error) {
	h := domain.NewHierarchy(nil, nil, nil, nil)

	rows, err := s.store.db.QueryContext(ctx,
		"SELECT id, project_id, name, room_type FROM rooms WHERE project_id = ?", projectID)
	if err != nil {
		return h, fmt.Errorf("querying rooms: %w", err)
	}
	for rows.Next() {
		var r domain.Room
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.Name, &r.RoomType); err != nil {
			rows.Close()
			return h, fmt.Errorf("scanning room: %w", err)
		}
		h.Rooms[r.ID] = r
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return h, fmt.Errorf("iterating rooms: %w", err)
	}

	if err := s.loadChildren(ctx, "room_locations", "room_id", projectID, func(id, parent int64, name string) {
		h.Locations[id] = domain.RoomLocation{ID: id, RoomID: parent, Name: name}
	}); err != nil {
		return h, err
	}
	if err := s.loadChildren(ctx, "cabinet_runs", "room_location_id", projectID, func(id, parent int64, name string) {
		h.Runs[id] = domain.CabinetRun{ID: id, RoomLocationID: parent, Name: name}
	}); err != nil {
		return h, err
	}
	if err := s.loadChildren(ctx, "cabinets", "cabinet_run_id", projectID, func(id, parent int64, name string) {
		h.Cabinets[id] = domain.Cabinet{ID: id, CabinetRunID: parent, Name: name}
	}); err != nil {
		return h, err
	}
	return h, nil
}

func (s *hierarchyStore) loadChildren(
	ctx context.Context,
	table, parentColumn, projectID string,
	add func(id, parent int64, name string),
) error {
	query := fmt.Sprintf("SELECT id, %s, name FROM %s WHERE project_id = ?", parentColumn, table)
	rows, err := s.store.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, parent int64
		var name string
		if err := rows.Scan(&id, &parent, &name); err != nil {
			return fmt.Errorf("scanning %s: %w", table, err)
		}
		add(id, parent, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating %s: %w", table, err)
	}
	return nil
}
