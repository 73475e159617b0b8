package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adventcalendar/internal/db"
	"github.com/adventcalendar/internal/service"
	"github.com/spf13/cobra"
)

var doorsVisitor string

// visitorStore 打开某个访客的 sqlite 记录
func visitorStore() (*service.SQLiteStorage, error) {
	visitor := strings.TrimSpace(doorsVisitor)
	if visitor == "" {
		return nil, fmt.Errorf("--visitor is required")
	}
	if err := openDB(); err != nil {
		return nil, err
	}
	return service.NewSQLiteStorage(db.DB, visitor), nil
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <day>",
	Short: "Flip the opened flag of a door for one visitor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || !service.ValidDay(day) {
			return fmt.Errorf("invalid day %q, expected 1..%d", args[0], service.DoorCount)
		}
		storage, err := visitorStore()
		if err != nil {
			return err
		}

		doors := service.NewOpenedDoorStore(storage)
		doors.Toggle(day)
		opened := doors.IsOpened(day)

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"visitor": storage.Namespace(),
				"day":     day,
				"opened":  opened,
				"days":    doors.Days(),
			})
		}
		state := "closed"
		if opened {
			state = "opened"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "door %d %s for %s\n", day, state, storage.Namespace())
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget every opened door of one visitor",
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, err := visitorStore()
		if err != nil {
			return err
		}
		if err := storage.RemoveItem(service.OpenedDoorsStorageKey); err != nil {
			return fmt.Errorf("failed to reset %s: %w", storage.Namespace(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "opened doors cleared for %s\n", storage.Namespace())
		return nil
	},
}

func init() {
	toggleCmd.Flags().StringVar(&doorsVisitor, "visitor", "", "visitor id (advent_visitor_id cookie)")
	resetCmd.Flags().StringVar(&doorsVisitor, "visitor", "", "visitor id (advent_visitor_id cookie)")
}
