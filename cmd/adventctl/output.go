package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/adventcalendar/internal/service"
	"github.com/gookit/color"
)

var (
	colorLocked   = color.Style{color.FgGray}
	colorUnlocked = color.Style{color.FgGreen, color.OpBold}
	colorOpened   = color.Style{color.FgYellow}
	colorTitle    = color.Style{color.FgRed, color.OpBold}
	colorError    = color.Style{color.FgRed, color.OpBold}
)

const gridColumns = 6

func doorCell(door service.DoorView) string {
	label := fmt.Sprintf("%2d", door.Day)
	switch door.State {
	case service.DoorUnlockedOpen:
		return colorOpened.Sprintf("[%s✓]", label)
	case service.DoorUnlockedClosed:
		return colorUnlocked.Sprintf("[%s ]", label)
	default:
		return colorLocked.Sprintf("[%s#]", label)
	}
}

// renderGrid 以 6 列网格输出 24 扇门
func renderGrid(w io.Writer, heading string, doors []service.DoorView) {
	fmt.Fprintln(w, colorTitle.Sprint(heading))
	for i := 0; i < len(doors); i += gridColumns {
		end := min(i+gridColumns, len(doors))
		cells := make([]string, 0, gridColumns)
		for _, door := range doors[i:end] {
			cells = append(cells, doorCell(door))
		}
		fmt.Fprintln(w, "  "+strings.Join(cells, " "))
	}
	fmt.Fprintf(w, "  %s unlocked  %s opened  %s locked\n",
		colorUnlocked.Sprint("[  ]"), colorOpened.Sprint("[ ✓]"), colorLocked.Sprint("[ #]"))
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
