package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/plancanvas/internal/adapters/driven/viewport"
	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw a rectangle annotation",
	Long: `Draw a rectangle annotation as if dragged on screen from --from to --to.

Points are "x,y" fractions of the page as currently displayed, so the current
rotation applies. Drags shorter than canvas.min_drag_pixels on either axis
are rejected.

Example:
  plancanvas draw --type room --room-type kitchen --room 1 --from 0.1,0.1 --to 0.4,0.3`,
	RunE: runDraw,
}

var (
	drawTypeFlag     string
	drawRoomTypeFlag string
	drawPageFlag     int
	drawFromFlag     string
	drawToFlag       string
	drawRoomFlag     int64
	drawLocationFlag int64
	drawRunFlag      int64
	drawCabinetFlag  int64
)

func init() {
	drawCmd.Flags().StringVar(&drawTypeFlag, "type", string(domain.AnnotationGeneric), "annotation type")
	drawCmd.Flags().StringVar(&drawRoomTypeFlag, "room-type", "", "room type, for room annotations")
	drawCmd.Flags().IntVar(&drawPageFlag, "page", 0, "page to draw on (default current page)")
	drawCmd.Flags().StringVar(&drawFromFlag, "from", "", "start point x,y")
	drawCmd.Flags().StringVar(&drawToFlag, "to", "", "end point x,y")
	drawCmd.Flags().Int64Var(&drawRoomFlag, "room", 0, "room ID")
	drawCmd.Flags().Int64Var(&drawLocationFlag, "location", 0, "room location ID")
	drawCmd.Flags().Int64Var(&drawRunFlag, "run", 0, "cabinet run ID")
	drawCmd.Flags().Int64Var(&drawCabinetFlag, "cabinet", 0, "cabinet ID")
	_ = drawCmd.MarkFlagRequired("from")
	_ = drawCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(drawCmd)
}

func runDraw(cmd *cobra.Command, _ []string) error {
	t, err := domain.ParseAnnotationType(drawTypeFlag)
	if err != nil {
		return err
	}
	fx, fy, err := parsePoint(drawFromFlag)
	if err != nil {
		return err
	}
	tx, ty, err := parsePoint(drawToFlag)
	if err != nil {
		return err
	}

	surface := viewport.New(0, 0, 0, 0)
	return withSession(cmd, surface, surface, func(session driving.Session) error {
		ctx := commandContext(cmd)
		if drawPageFlag > 0 {
			ok, err := session.GoToPage(ctx, drawPageFlag)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: page %d", domain.ErrPageOutOfRange, drawPageFlag)
			}
		}

		snap := session.Snapshot()
		if snap.Page == nil {
			return domain.ErrNoDocument
		}
		shown := snap.Page.Size().Rotated(snap.View.Rotation + snap.Page.Rotation)
		surface.Resize(shown.Width*snap.View.Zoom, shown.Height*snap.View.Zoom)
		b := surface.Bounds()

		session.SetTool(domain.ToolRectangle)
		session.SetTemplate(domain.AnnotationTemplate{
			Type:           t,
			RoomType:       drawRoomTypeFlag,
			RoomID:         optionalRef(drawRoomFlag),
			RoomLocationID: optionalRef(drawLocationFlag),
			CabinetRunID:   optionalRef(drawRunFlag),
			CabinetID:      optionalRef(drawCabinetFlag),
		})
		session.PointerDown(domain.PointerEvent{ClientX: fx * b.Width, ClientY: fy * b.Height})
		a := session.PointerUp(domain.PointerEvent{ClientX: tx * b.Width, ClientY: ty * b.Height})
		if a == nil {
			return fmt.Errorf("%w: rectangle is too small", domain.ErrInvalidInput)
		}

		cmd.Printf("Added %s %q on page %d\n", a.Type, a.Text, a.PageNumber)
		cmd.Printf("  ID: %s\n", a.ID)
		cmd.Printf("  Bounds: %s\n", formatRect(a.Rect()))
		return nil
	})
}

// parsePoint parses "x,y" with both parts in [0, 1].
func parsePoint(s string) (x, y float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: point %q must be x,y", domain.ErrInvalidInput, s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil || x < 0 || x > 1 || y < 0 || y > 1 {
		return 0, 0, fmt.Errorf("%w: point %q must be two numbers between 0 and 1", domain.ErrInvalidInput, s)
	}
	return x, y, nil
}

func optionalRef(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return domain.Ref(id)
}
