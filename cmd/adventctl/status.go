package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/adventcalendar/internal/db"
	"github.com/adventcalendar/internal/service"
	"github.com/spf13/cobra"
)

var (
	statusDate    string
	statusPreview bool
	statusVisitor string
)

type statusReport struct {
	Date     string             `json:"date"`
	Timezone string             `json:"timezone"`
	Preview  bool               `json:"preview"`
	Visitor  string             `json:"visitor,omitempty"`
	Unlocked int                `json:"unlocked"`
	Opened   int                `json:"opened"`
	Doors    []service.DoorView `json:"doors"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which doors are unlocked on a given date",
	Long: `Show the 24 doors as they would appear on a given date.

Examples:
  adventctl status
  adventctl status --date 2025-12-10
  adventctl status --visitor 6f1c... --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := buildPolicy(statusDate)
		if err != nil {
			return err
		}

		var storage service.KeyValueStorage
		if strings.TrimSpace(statusVisitor) != "" {
			if err := openDB(); err != nil {
				return err
			}
			storage = service.NewSQLiteStorage(db.DB, statusVisitor)
		}

		session := service.NewAdventSession(policy, service.NewOpenedDoorStore(storage), service.SessionOptions{Preview: statusPreview})
		report := buildStatusReport(policy, session, statusVisitor)

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), report)
		}
		writeStatus(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusDate, "date", "", "evaluate on this date (YYYY-MM-DD), default today")
	statusCmd.Flags().BoolVar(&statusPreview, "preview", false, "unlock every door like ?preview=true")
	statusCmd.Flags().StringVar(&statusVisitor, "visitor", "", "visitor id whose opened doors are read from the database")
}

// buildPolicy 按参考时区解析 --date，未指定时使用当前时间
func buildPolicy(date string) (*service.UnlockPolicy, error) {
	loc := service.LoadReferenceLocation(timezone)
	date = strings.TrimSpace(date)
	if date == "" {
		return service.NewUnlockPolicy(service.WithLocation(loc)), nil
	}
	at, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD: %w", date, err)
	}
	// 取当天中午，避免夏令时边界
	at = at.Add(12 * time.Hour)
	return service.NewUnlockPolicy(
		service.WithLocation(loc),
		service.WithClock(func() time.Time { return at }),
	), nil
}

func buildStatusReport(policy *service.UnlockPolicy, session *service.AdventSession, visitor string) statusReport {
	report := statusReport{
		Date:     policy.FormatDate(policy.CurrentDate()),
		Timezone: policy.Location().String(),
		Preview:  session.PreviewMode(),
		Visitor:  strings.TrimSpace(visitor),
		Doors:    session.Doors(),
	}
	for _, door := range report.Doors {
		if door.Unlocked {
			report.Unlocked++
		}
		if door.Opened {
			report.Opened++
		}
	}
	return report
}

func writeStatus(w io.Writer, report statusReport) {
	heading := fmt.Sprintf("Advent calendar on %s (%s)", report.Date, report.Timezone)
	if report.Preview {
		heading += " [preview]"
	}
	renderGrid(w, heading, report.Doors)
	fmt.Fprintf(w, "\n%d/%d unlocked, %d opened\n", report.Unlocked, service.DoorCount, report.Opened)
}
