package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <school name>",
	Short: "Lists the schools matching a name.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := client.Init(cmd.Context())
		if err != nil {
			return err
		}
		entries, err := client.Search(cmd.Context(), args[0], keys)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Id", "Region", "Name", "Internal Id"})
		for _, e := range entries {
			t.AppendRow(table.Row{e.Id, e.Region, e.Name, e.InternalId})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
