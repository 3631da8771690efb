package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/bucket-browser/profiler"
)

func newProfileCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Analyze a listing and write report files",
		Long: `profile analyzes one listing and writes three report files:
  - <bucket>-summary.txt: totals, storage class breakdown and estimated cost
  - <bucket>-metadata.txt: file types, size distribution and date range
  - <bucket>-partitions.txt: detected partition patterns`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir := opts.settings.OutputDir
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			f, closeFn, err := opts.newFetcher(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			p := profiler.NewProfiler(outputDir)
			report, err := p.Profile(cmd.Context(), f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Profiled %s: %d objects\n", report.Listing.Name, report.Listing.TotalCount)
			for _, path := range report.Files {
				fmt.Fprintf(out, "  %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringP("output-dir", "o", "", "Directory for output files (default .)")

	return cmd
}
