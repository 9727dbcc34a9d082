package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bankcsv/bankcsv/internal/importlog"
)

func newLogCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the import log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := a.v.GetString(keyDir)
			if dir == "" {
				dir = a.cfg.Import.Dir
			}
			entries, err := importlog.Read(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No imports yet")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tFILE\tBANK\tPROFILE\tRECORDS\tBALANCE\tOUTPUT")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
					e.Timestamp.Format("2006-01-02 15:04"), e.File, e.Bank, e.Profile, e.Records, e.EndBalance.StringFixed(2), e.Output)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().String(keyDir, "", "import directory (default from config, else ./import)")

	return cmd
}
