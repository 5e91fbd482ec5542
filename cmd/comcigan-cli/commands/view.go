package commands

import (
	"comcigan/internal/timetable"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	viewGrade *int
	viewClass *int
	viewDay   *int
	viewAll   *bool
)

func init() {
	viewGrade = viewCmd.Flags().Int("grade", 1, "The grade to print, starting at 1.")
	viewClass = viewCmd.Flags().Int("class", 1, "The class to print, starting at 1.")
	viewDay = viewCmd.Flags().Int("day", 0, "The day to print, starting at 1 (monday), 0 prints the whole week.")
	viewAll = viewCmd.Flags().Bool("all", false, "Include periods with nothing scheduled.")
	rootCmd.AddCommand(viewCmd)
}

var viewCmd = &cobra.Command{
	Use:   "view <school name> [--grade <n>] [--class <n>] [--day <n>] [--all]",
	Short: "Prints the timetable of a class.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		keys, err := client.Init(ctx)
		if err != nil {
			return err
		}
		entry, err := client.FindSchool(ctx, args[0], keys)
		if err != nil {
			return err
		}
		slog.Info("found school", "name", entry.Name, "region", entry.Region)

		school, err := client.View(ctx, entry, keys)
		if err != nil {
			return err
		}

		grade, ok := school.Grade(*viewGrade)
		if !ok {
			return fmt.Errorf("%s has no grade %d", school.Name, *viewGrade)
		}
		class, ok := grade.Class(*viewClass)
		if !ok {
			return fmt.Errorf("%s has no class %d-%d", school.Name, *viewGrade, *viewClass)
		}

		return renderClass(os.Stdout, class, *viewDay, *viewAll)
	},
}

// renderClass writes the periods of a class as a table, day is 1-based and
// 0 renders every day.
func renderClass(out io.Writer, class timetable.Class, day int, all bool) error {
	days := class.Days
	if day != 0 {
		d, ok := class.Day(day)
		if !ok {
			return fmt.Errorf("class has no day %d", day)
		}
		days = []timetable.Day{d}
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Day", "Period", "Subject", "Teacher"})
	for _, d := range days {
		periods := d.ListPeriods()
		if all {
			periods = d.Periods
		}
		for _, p := range periods {
			t.AppendRow(table.Row{d.Weekday().String(), p.Number + 1, p.Subject, p.Teacher})
		}
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}
