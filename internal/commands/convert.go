package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bankcsv/bankcsv/internal/export"
	"github.com/bankcsv/bankcsv/internal/importer"
	"github.com/bankcsv/bankcsv/internal/logger"
)

func newConvertCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <bank> <file>",
		Short: "Convert one bank export into a normalized statement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.bank(args[0])
			if err != nil {
				return err
			}
			log := logger.FromContext(cmd.Context())

			p := importer.New(log)
			p.AllowEmpty = a.v.GetBool(keyAllowEmpty)
			res, err := p.ParseFile(args[1], b, a.settings(b.Name))
			if err != nil {
				return err
			}
			log.Info().
				Str("file", args[1]).
				Str("profile", res.Profile.Name).
				Int("records", len(res.Statement.Records)).
				Msg("converted")

			var w io.Writer = cmd.OutOrStdout()
			if out := a.v.GetString(keyOutput); out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating output: %w", err)
				}
				defer f.Close()
				w = f
			}
			return export.Write(w, res.Statement, a.format())
		},
	}

	addSettingsFlags(cmd)
	cmd.Flags().StringP(keyOutput, "o", "", "write to file instead of stdout")
	cmd.Flags().Bool(keyAllowEmpty, false, "accept exports without transactions")

	return cmd
}
