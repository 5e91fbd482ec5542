package commands

import (
	"comcigan/internal/scrapers/comcigan"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(keysCmd)
}

var keysCmd = &cobra.Command{
	Use:   "keys [school name]",
	Short: "Prints the field names resolved from the bootstrap script, and the urls of a school if one is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		keys, err := client.Init(ctx)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Field", "Value"})
		t.AppendRows([]table.Row{
			{"timetable", keys.Timetable},
			{"subjects", keys.Subjects},
			{"teachers", keys.Teachers},
			{"id header", keys.IdHeader},
			{"search path", keys.SearchPath},
		})

		if len(args) == 1 {
			searchUrl, err := comcigan.SearchURL(keys, args[0])
			if err != nil {
				return err
			}
			entry, err := client.FindSchool(ctx, args[0], keys)
			if err != nil {
				return err
			}
			t.AppendSeparator()
			t.AppendRows([]table.Row{
				{"search url", searchUrl},
				{"school", entry.Name},
				{"timetable url", client.TimetableURL(keys, entry)},
			})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
