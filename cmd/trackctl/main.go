// trackctl reads the time-entry log trackboard persists and turns it into
// simple reports. It works against the same postgres store the daemon uses,
// or against a JSON export of the entry log.
package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"sort"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/nittiva/trackboard/pkg/storage"
	"github.com/nittiva/trackboard/pkg/timer"
)

const dayFormat = "2006-01-02"

var (
	// Used for flags.
	dbConnString string
	filePath     string
	startDate    string
	endDate      string

	rootCmd = &cobra.Command{
		Use:   "trackctl",
		Short: "Report on trackboard's tracked time.",
		Long:  `trackctl reads the completed time entries trackboard has persisted and calculates hours worked, per-task totals and raw entry listings.`,
	}

	hoursCmd = &cobra.Command{
		Use:   "hours",
		Short: "Calculate total hours worked.",
		RunE:  runHours,
	}

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Break tracked time down per task.",
		RunE:  runReport,
	}

	entriesCmd = &cobra.Command{
		Use:   "entries",
		Short: "List completed time entries.",
		RunE:  runEntries,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dbConnString, "db", "", "Postgres connection string of the trackboard store.")
	rootCmd.PersistentFlags().StringVar(&filePath, "file", "", "Path to a JSON export of the entry log (instead of --db).")

	for _, c := range []*cobra.Command{hoursCmd, reportCmd, entriesCmd} {
		c.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD).")
		c.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD).")
		rootCmd.AddCommand(c)
	}
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runHours(cmd *cobra.Command, args []string) error {
	entries, err := loadEntries()
	if err != nil {
		return err
	}
	entries, from, to, err := filterRange(entries)
	if err != nil {
		return err
	}

	var total int64
	perDay := map[string]int64{}
	for _, e := range entries {
		total += e.Duration
		perDay[e.StartTime.Format(dayFormat)] += e.Duration
	}

	days := make([]string, 0, len(perDay))
	for d := range perDay {
		days = append(days, d)
	}
	sort.Strings(days)

	for _, d := range days {
		cmd.Printf("%s  %s\n", d, timer.FormatMilliseconds(perDay[d]))
	}
	cmd.Printf("Total hours worked from %s to %s: %s\n", from, to, timer.FormatMilliseconds(total))
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	entries, err := loadEntries()
	if err != nil {
		return err
	}
	entries, from, to, err := filterRange(entries)
	if err != nil {
		return err
	}

	perTask := map[string]int64{}
	descriptions := map[string]string{}
	for _, e := range entries {
		perTask[e.TaskID] += e.Duration
		if e.Description != "" {
			descriptions[e.TaskID] = e.Description
		}
	}

	tasks := make([]string, 0, len(perTask))
	for id := range perTask {
		tasks = append(tasks, id)
	}
	sort.Slice(tasks, func(i, j int) bool { return perTask[tasks[i]] > perTask[tasks[j]] })

	cmd.Printf("Tracked time per task (%s to %s)\n", from, to)
	for _, id := range tasks {
		label := id
		if id == timer.GeneralTaskID {
			label = "general (no task)"
		}
		if desc, ok := descriptions[id]; ok {
			label = fmt.Sprintf("%s (%s)", label, desc)
		}
		cmd.Printf("  %-40s %s\n", label, timer.FormatMilliseconds(perTask[id]))
	}
	return nil
}

func runEntries(cmd *cobra.Command, args []string) error {
	entries, err := loadEntries()
	if err != nil {
		return err
	}
	entries, _, _, err = filterRange(entries)
	if err != nil {
		return err
	}

	for _, e := range entries {
		end := "running"
		if e.EndTime != nil {
			end = e.EndTime.Format("15:04:05")
		}
		cmd.Printf("%s  %s - %s  %s  %s  %s\n",
			e.StartTime.Format(dayFormat), e.StartTime.Format("15:04:05"), end,
			timer.FormatClock(time.Duration(e.Duration)*time.Millisecond), e.TaskID, e.Description)
	}
	cmd.Printf("%d entries\n", len(entries))
	return nil
}

func loadEntries() ([]timer.TimeEntry, error) {
	raw, err := loadRaw()
	if err != nil {
		return nil, err
	}
	var entries []timer.TimeEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("could not parse entry log: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].StartTime.Before(entries[j].StartTime) })
	return entries, nil
}

func loadRaw() ([]byte, error) {
	if filePath != "" {
		b, err := ioutil.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("could not read '%s': %w", filePath, err)
		}
		return b, nil
	}
	if dbConnString == "" {
		return nil, fmt.Errorf("either --db or --file is required")
	}

	db, err := sql.Open("postgres", dbConnString)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	store := storage.NewPostgres(db)
	raw, ok, err := store.Get(timer.EntriesKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []byte("[]"), nil
	}
	return []byte(raw), nil
}

// filterRange narrows entries to [start-date, end-date] and reports the
// effective bounds. An open flag falls back to the matching log extreme; a
// single given date means that one day.
func filterRange(entries []timer.TimeEntry) ([]timer.TimeEntry, string, string, error) {
	startStr, endStr := startDate, endDate
	if startStr != "" && endStr == "" {
		endStr = startStr
	}
	if endStr != "" && startStr == "" {
		startStr = endStr
	}

	if startStr == "" {
		if len(entries) == 0 {
			return nil, "", "", fmt.Errorf("no entries in the log")
		}
		from := entries[0].StartTime.Format(dayFormat)
		to := entries[len(entries)-1].StartTime.Format(dayFormat)
		return entries, from, to, nil
	}

	start, err := time.Parse(dayFormat, startStr)
	if err != nil {
		return nil, "", "", fmt.Errorf("invalid start date, use YYYY-MM-DD: %w", err)
	}
	end, err := time.Parse(dayFormat, endStr)
	if err != nil {
		return nil, "", "", fmt.Errorf("invalid end date, use YYYY-MM-DD: %w", err)
	}
	if end.Before(start) {
		return nil, "", "", fmt.Errorf("end date cannot be before start date")
	}

	var kept []timer.TimeEntry
	for _, e := range entries {
		day := e.StartTime.Format(dayFormat)
		if day >= startStr && day <= endStr {
			kept = append(kept, e)
		}
	}
	return kept, startStr, endStr, nil
}
