package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"repo-sweep/internal/history"

	"github.com/spf13/cobra"
)

var (
	flagDB       string
	flagRecent   int
	flagStats    bool
	flagAction   string
	flagCategory string
	flagPath     string
	flagDays     int
	flagJSON     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query the removal-history database",
	Example: `  repo-sweep history --db sweep.db --recent 10
  repo-sweep history --db sweep.db --stats --days 7
  repo-sweep history --db sweep.db --action ERROR
  repo-sweep history --db sweep.db --path '%.json' --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagDB == "" {
			return fmt.Errorf("%w: --db is required", errInvalidConfig)
		}

		db, err := history.Open(flagDB)
		if err != nil {
			return fmt.Errorf("open history database %s: %w", flagDB, err)
		}
		defer db.Close()

		switch {
		case flagStats:
			return showStats(db)
		case flagRecent > 0:
			records, err := db.GetRecent(flagRecent)
			return showRecords(records, err)
		case flagAction != "":
			records, err := db.GetByAction(flagAction)
			return showRecords(records, err)
		case flagCategory != "":
			records, err := db.GetByCategory(flagCategory)
			return showRecords(records, err)
		case flagPath != "":
			records, err := db.GetByPath(flagPath)
			return showRecords(records, err)
		default:
			return errors.New("specify one of --recent, --stats, --action, --category or --path")
		}
	},
}

func init() {
	historyCmd.Flags().StringVar(&flagDB, "db", "", "Path to the removal-history database")
	historyCmd.Flags().IntVar(&flagRecent, "recent", 0, "Show N most recent removals")
	historyCmd.Flags().BoolVar(&flagStats, "stats", false, "Show removal statistics")
	historyCmd.Flags().StringVar(&flagAction, "action", "", "Filter by action (REMOVE, DRY_RUN, SKIP, ERROR)")
	historyCmd.Flags().StringVar(&flagCategory, "category", "", "Filter by plan category")
	historyCmd.Flags().StringVar(&flagPath, "path", "", "Filter by path pattern (SQL LIKE syntax)")
	historyCmd.Flags().IntVar(&flagDays, "days", 30, "Number of days for statistics")
	historyCmd.Flags().BoolVar(&flagJSON, "json", false, "Output in JSON format")
}

func showStats(db *history.DB) error {
	stats, err := db.GetStats(flagDays)
	if err != nil {
		return fmt.Errorf("get statistics: %w", err)
	}

	if flagJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Removal statistics (last %d days)\n", flagDays)
	fmt.Printf("Period: %s to %s\n\n",
		stats.StartDate.Format("2006-01-02"), stats.EndDate.Format("2006-01-02"))
	fmt.Printf("Removals: %d\n", stats.TotalRemovals)
	fmt.Printf("Errors:   %d\n", stats.TotalErrors)
	fmt.Printf("Skipped:  %d\n", stats.TotalSkipped)
	fmt.Printf("Freed:    %d bytes\n", stats.BytesFreed)
	return nil
}

func showRecords(records []history.Record, err error) error {
	if err != nil {
		return fmt.Errorf("query history: %w", err)
	}

	if flagJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tACTION\tKIND\tSIZE\tCATEGORY\tPATH")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Action, r.Kind, r.Size, r.Category, r.Path)
	}
	return w.Flush()
}
