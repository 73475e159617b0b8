package main

import (
	"context"
	"fmt"

	"github.com/adventcalendar/internal/service"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the calendar data has exactly 24 valid entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := service.NewContentLoader().Load(context.Background(), dataPath)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), colorError.Sprintf("✗ %s", dataPath))
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"source":  dataPath,
				"valid":   true,
				"entries": len(content.Entries()),
			})
		}

		counts := make(map[service.ContentType]int)
		for _, entry := range content.Entries() {
			counts[entry.Type]++
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, colorUnlocked.Sprintf("✓ %s: %d entries", dataPath, len(content.Entries())))
		for _, t := range []service.ContentType{
			service.ContentText,
			service.ContentImage,
			service.ContentVoucher,
			service.ContentLink,
			service.ContentGallery,
		} {
			if counts[t] > 0 {
				fmt.Fprintf(out, "  %-8s %d\n", t, counts[t])
			}
		}
		return nil
	},
}
