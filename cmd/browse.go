package cmd

import (
	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/yourusername/bucket-browser/query"
	"github.com/yourusername/bucket-browser/tui"
)

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively search and sort a listing in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := query.ParseSortDirection(opts.settings.Sort)
			if err != nil {
				return err
			}

			parsed, err := opts.loadListing(cmd.Context())
			if err != nil {
				return err
			}

			p := tea.NewProgram(tui.NewModel(parsed, dir))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().String("sort", "", "Initial sort by last-modified: asc or desc (default desc)")

	return cmd
}
