package domain

import (
	"fmt"
	"sort"
)

// HierarchyLevel is one tier of the room → location → run → cabinet breakdown.
type HierarchyLevel string

// Hierarchy levels from the top down.
const (
	LevelRoom       HierarchyLevel = "room"
	LevelLocation   HierarchyLevel = "location"
	LevelCabinetRun HierarchyLevel = "cabinet_run"
	LevelCabinet    HierarchyLevel = "cabinet"
)

// HierarchyLevels returns the levels from room down to cabinet.
func HierarchyLevels() []HierarchyLevel {
	return []HierarchyLevel{LevelRoom, LevelLocation, LevelCabinetRun, LevelCabinet}
}

// IsValid returns true if the level is recognised.
func (l HierarchyLevel) IsValid() bool {
	switch l {
	case LevelRoom, LevelLocation, LevelCabinetRun, LevelCabinet:
		return true
	default:
		return false
	}
}

// Depth returns 0 for room through 3 for cabinet, or -1 if unknown.
func (l HierarchyLevel) Depth() int {
	for i, lvl := range HierarchyLevels() {
		if lvl == l {
			return i
		}
	}
	return -1
}

// String returns the string representation.
func (l HierarchyLevel) String() string {
	return string(l)
}

// Label returns a human-readable name for the level.
func (l HierarchyLevel) Label() string {
	switch l {
	case LevelRoom:
		return "Room"
	case LevelLocation:
		return "Location"
	case LevelCabinetRun:
		return "Run"
	case LevelCabinet:
		return "Cabinet"
	default:
		return "Node"
	}
}

// ParseHierarchyLevel converts user input into a HierarchyLevel.
func ParseHierarchyLevel(s string) (HierarchyLevel, error) {
	l := HierarchyLevel(s)
	if !l.IsValid() {
		return "", fmt.Errorf("%w: unknown hierarchy level %q", ErrInvalidInput, s)
	}
	return l, nil
}

// IsolationLevels returns the levels a subtree can be isolated at.
// Cabinets are leaves and are isolated through their run.
func IsolationLevels() []HierarchyLevel {
	return []HierarchyLevel{LevelRoom, LevelLocation, LevelCabinetRun}
}

// CanIsolate reports whether l is one of IsolationLevels.
func (l HierarchyLevel) CanIsolate() bool {
	return l == LevelRoom || l == LevelLocation || l == LevelCabinetRun
}

// ParseIsolationLevel converts user input into a level that can be isolated.
func ParseIsolationLevel(s string) (HierarchyLevel, error) {
	l, err := ParseHierarchyLevel(s)
	if err != nil {
		return "", err
	}
	if !l.CanIsolate() {
		return "", fmt.Errorf("%w: cannot isolate at level %q", ErrInvalidInput, s)
	}
	return l, nil
}

// Room is a physical room in a project.
type Room struct {
	ID        int64
	ProjectID string
	Name      string
	RoomType  string
}

// RoomLocation is a wall or area inside a room.
type RoomLocation struct {
	ID     int64
	RoomID int64
	Name   string
}

// CabinetRun is a continuous line of cabinets at a location.
type CabinetRun struct {
	ID             int64
	RoomLocationID int64
	Name           string
}

// Cabinet is a single unit in a cabinet run.
type Cabinet struct {
	ID           int64
	CabinetRunID int64
	Name         string
}

// Hierarchy indexes the business records behind annotation references.
// A zero Hierarchy is valid; names fall back to "<Level> <id>".
type Hierarchy struct {
	Rooms     map[int64]Room
	Locations map[int64]RoomLocation
	Runs      map[int64]CabinetRun
	Cabinets  map[int64]Cabinet
}

// NewHierarchy indexes the given records by id.
func NewHierarchy(rooms []Room, locations []RoomLocation, runs []CabinetRun, cabinets []Cabinet) Hierarchy {
	h := Hierarchy{
		Rooms:     make(map[int64]Room, len(rooms)),
		Locations: make(map[int64]RoomLocation, len(locations)),
		Runs:      make(map[int64]CabinetRun, len(runs)),
		Cabinets:  make(map[int64]Cabinet, len(cabinets)),
	}
	for _, r := range rooms {
		h.Rooms[r.ID] = r
	}
	for _, l := range locations {
		h.Locations[l.ID] = l
	}
	for _, r := range runs {
		h.Runs[r.ID] = r
	}
	for _, c := range cabinets {
		h.Cabinets[c.ID] = c
	}
	return h
}

// Name returns the display name of a node, falling back to "<Level> <id>".
func (h Hierarchy) Name(level HierarchyLevel, id int64) string {
	var name string
	switch level {
	case LevelRoom:
		name = h.Rooms[id].Name
	case LevelLocation:
		name = h.Locations[id].Name
	case LevelCabinetRun:
		name = h.Runs[id].Name
	case LevelCabinet:
		name = h.Cabinets[id].Name
	}
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s %d", level.Label(), id)
}

// Has reports whether a node with id is recorded at level.
func (h Hierarchy) Has(level HierarchyLevel, id int64) bool {
	var ok bool
	switch level {
	case LevelRoom:
		_, ok = h.Rooms[id]
	case LevelLocation:
		_, ok = h.Locations[id]
	case LevelCabinetRun:
		_, ok = h.Runs[id]
	case LevelCabinet:
		_, ok = h.Cabinets[id]
	}
	return ok
}

// Parent returns the id of the node directly above (level, id), if recorded.
func (h Hierarchy) Parent(level HierarchyLevel, id int64) (int64, bool) {
	switch level {
	case LevelLocation:
		l, ok := h.Locations[id]
		return l.RoomID, ok
	case LevelCabinetRun:
		r, ok := h.Runs[id]
		return r.RoomLocationID, ok
	case LevelCabinet:
		c, ok := h.Cabinets[id]
		return c.CabinetRunID, ok
	default:
		return 0, false
	}
}

// SortedRooms returns rooms ordered by id.
func (h Hierarchy) SortedRooms() []Room {
	out := make([]Room, 0, len(h.Rooms))
	for _, r := range h.Rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NodeType identifies what a tree node groups.
type NodeType string

// Tree node types. Hierarchy node types share their level's name.
const (
	NodeRoom       NodeType = NodeType(LevelRoom)
	NodeLocation   NodeType = NodeType(LevelLocation)
	NodeCabinetRun NodeType = NodeType(LevelCabinetRun)
	NodeCabinet    NodeType = NodeType(LevelCabinet)
	NodePage       NodeType = "page"
	NodeUnassigned NodeType = "unassigned"
)

// TreeNode is one entry of the room or page tree.
type TreeNode struct {
	ID              int64      `json:"id"`
	Type            NodeType   `json:"type"`
	Name            string     `json:"name"`
	Children        []TreeNode `json:"children"`
	AnnotationCount int        `json:"annotation_count"`
}

// Level returns the hierarchy level of the node, if it has one.
func (n TreeNode) Level() (HierarchyLevel, bool) {
	l := HierarchyLevel(n.Type)
	return l, l.IsValid()
}

// NodeRef addresses a single hierarchy node.
type NodeRef struct {
	Level HierarchyLevel `json:"level"`
	ID    int64          `json:"id"`
}

// String renders the reference as "level:id".
func (r NodeRef) String() string {
	return fmt.Sprintf("%s:%d", r.Level, r.ID)
}
