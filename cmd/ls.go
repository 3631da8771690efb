package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yourusername/bucket-browser/output"
	"github.com/yourusername/bucket-browser/query"
)

func newLsCmd(opts *rootOptions) *cobra.Command {
	var (
		search  string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List objects matching a search, sorted by last-modified time",
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

			objects := query.Query(parsed, search, dir)
			if jsonOut {
				return output.WriteJSON(cmd.OutOrStdout(), parsed, objects)
			}
			return output.RenderTable(cmd.OutOrStdout(), parsed, objects)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive substring to match against keys")
	cmd.Flags().String("sort", "", "Sort by last-modified: asc or desc (default desc)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print JSON instead of a table")

	return cmd
}
