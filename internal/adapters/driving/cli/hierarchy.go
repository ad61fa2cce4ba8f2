package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy",
	Short: "Manage rooms, locations, cabinet runs and cabinets",
	Long: `Record the names of hierarchy nodes. Annotations reference nodes by ID;
nodes without a record are shown as "<Level> <id>".`,
}

var hierarchyAddCmd = &cobra.Command{
	Use:   "add [level] [id] [name]",
	Short: "Add or rename a hierarchy node",
	Long: `Add or rename a node. Level is one of room, location, cabinet_run, cabinet.
Every level below room needs --parent naming an existing node one level up.`,
	Args: cobra.ExactArgs(3),
	RunE: runHierarchyAdd,
}

var hierarchyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List hierarchy records",
	RunE:  runHierarchyList,
}

var (
	hierarchyParentFlag   int64
	hierarchyRoomTypeFlag string
)

func init() {
	hierarchyAddCmd.Flags().Int64Var(&hierarchyParentFlag, "parent", 0, "parent node ID")
	hierarchyAddCmd.Flags().StringVar(&hierarchyRoomTypeFlag, "room-type", "", "room type, for rooms")

	hierarchyCmd.AddCommand(hierarchyAddCmd)
	hierarchyCmd.AddCommand(hierarchyListCmd)
	rootCmd.AddCommand(hierarchyCmd)
}

func runHierarchyAdd(cmd *cobra.Command, args []string) error {
	level, err := domain.ParseHierarchyLevel(args[0])
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: node id %q", domain.ErrInvalidInput, args[1])
	}

	ctx := commandContext(cmd)
	p, err := resolveProject(ctx)
	if err != nil {
		return err
	}

	node := driving.HierarchyNode{
		Level:    level,
		ID:       id,
		ParentID: hierarchyParentFlag,
		Name:     args[2],
		RoomType: hierarchyRoomTypeFlag,
	}
	if err := projectService.AddNode(ctx, p.ID, node); err != nil {
		return fmt.Errorf("failed to add %s: %w", level.Label(), err)
	}

	cmd.Printf("Saved %s %d %q\n", level.Label(), id, args[2])
	return nil
}

func runHierarchyList(cmd *cobra.Command, _ []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}
	ctx := commandContext(cmd)
	p, err := resolveProject(ctx)
	if err != nil {
		return err
	}
	h, err := projectService.Hierarchy(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("failed to load hierarchy: %w", err)
	}

	total := len(h.Rooms) + len(h.Locations) + len(h.Runs) + len(h.Cabinets)
	if total == 0 {
		cmd.Println("No hierarchy records.")
		return nil
	}

	for _, room := range h.SortedRooms() {
		cmd.Printf("Room %d  %s", room.ID, room.Name)
		if room.RoomType != "" {
			cmd.Printf(" [%s]", room.RoomType)
		}
		cmd.Println()
		for _, loc := range sortedChildren(h.Locations, locationKey, room.ID) {
			cmd.Printf("  Location %d  %s\n", loc.ID, loc.Name)
			for _, run := range sortedChildren(h.Runs, runKey, loc.ID) {
				cmd.Printf("    Run %d  %s\n", run.ID, run.Name)
				for _, c := range sortedChildren(h.Cabinets, cabinetKey, run.ID) {
					cmd.Printf("      Cabinet %d  %s\n", c.ID, c.Name)
				}
			}
		}
	}
	return nil
}

func locationKey(l domain.RoomLocation) (id, parent int64) {
	return l.ID, l.RoomID
}

func runKey(r domain.CabinetRun) (id, parent int64) {
	return r.ID, r.RoomLocationID
}

func cabinetKey(c domain.Cabinet) (id, parent int64) {
	return c.ID, c.CabinetRunID
}

// sortedChildren returns the records whose parent is parentID, by ID.
func sortedChildren[T any](records map[int64]T, key func(T) (id, parent int64), parentID int64) []T {
	var out []T
	for _, r := range records {
		if _, parent := key(r); parent == parentID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := key(out[i])
		b, _ := key(out[j])
		return a < b
	})
	return out
}
