package main

import (
	"fmt"
	"os"

	"github.com/adventcalendar/internal/config"
	"github.com/adventcalendar/internal/db"
	"github.com/spf13/cobra"
)

var (
	dataPath   string
	dbPath     string
	timezone   string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:           "adventctl",
	Short:         "Inspect and maintain the advent calendar",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cfg := config.Load()

	rootCmd.PersistentFlags().StringVar(&dataPath, "data", cfg.CalendarDataPath, "calendar data file or URL")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DatabasePath, "sqlite db path")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", cfg.Timezone, "reference timezone for unlocking")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(resetCmd)
}

// openDB 只在需要访客记录的子命令里初始化数据库
func openDB() error {
	if db.DB != nil {
		return nil
	}
	if err := db.Init(dbPath); err != nil {
		return fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
