package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newBanksCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List supported banks and their export formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "BANK\tBANK ID\tCHARSET\tPROFILES\tACCOUNT")
			for _, name := range a.registry.Names() {
				b := a.registry.Get(name)
				profiles := make([]string, len(b.Profiles))
				for i, p := range b.Profiles {
					profiles[i] = p.Name
				}
				account := "from export"
				switch {
				case b.AccountRequired:
					account = "required"
				case b.DefaultAccount != "":
					account = "default " + b.DefaultAccount
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", b.Name, b.BankID, b.Charset(), strings.Join(profiles, ", "), account)
			}
			return tw.Flush()
		},
	}
}
