package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/bankcsv/bankcsv/internal/export"
	"github.com/bankcsv/bankcsv/internal/importer"
	"github.com/bankcsv/bankcsv/internal/importlog"
	"github.com/bankcsv/bankcsv/internal/logger"
	"github.com/bankcsv/bankcsv/internal/model"
)

// ExportDir is the subdirectory of the import directory converted statements
// are written to.
const ExportDir = "exported"

type parsed struct {
	res *importer.Result
	err error
}

func newImportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <bank>",
		Short: "Convert every export waiting in the import directory",
		Long: "Converts each *.csv file in the import directory, writes the statement to\n" +
			"<dir>/" + ExportDir + "/, moves the export to <dir>/" + importer.ProcessedDir + "/ and records it in\n" +
			"<dir>/" + importlog.FileName + ". Exports that fail to parse stay where they are.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.bank(args[0])
			if err != nil {
				return err
			}
			format := a.format()
			if err := export.CheckFormat(format); err != nil {
				return err
			}
			dir := a.v.GetString(keyDir)
			if dir == "" {
				dir = a.cfg.Import.Dir
			}
			log := logger.FromContext(cmd.Context())
			out := cmd.OutOrStdout()

			files, err := scanExports(dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintf(out, "No exports in %s\n", dir)
				return nil
			}

			p := importer.New(log)
			s := a.settings(b.Name)
			results := iter.Map(files, func(f *importer.FileInfo) parsed {
				res, err := p.ParseFile(f.Path, b, s)
				return parsed{res: res, err: err}
			})

			var errs error
			var entries []importlog.Entry
			now := time.Now().UTC().Truncate(time.Second)
			for i, f := range files {
				r := results[i]
				if r.err != nil {
					log.Error().Err(r.err).Str("file", f.Name).Msg("import failed")
					errs = multierr.Append(errs, r.err)
					continue
				}

				dst, err := writeExport(dir, f.Name, r.res.Statement, format)
				if err != nil {
					errs = multierr.Append(errs, err)
					continue
				}
				if err := importer.MarkProcessed(dir, f.Name); err != nil {
					errs = multierr.Append(errs, err)
					continue
				}

				stmt := r.res.Statement
				entries = append(entries, importlog.Entry{
					Timestamp:  now,
					File:       f.Name,
					Bank:       b.Name,
					Profile:    r.res.Profile.Name,
					Records:    len(stmt.Records),
					EndBalance: stmt.EndBalance,
					Output:     dst,
				})
				log.Info().Str("file", f.Name).Str("profile", r.res.Profile.Name).Int("records", len(stmt.Records)).Msg("imported")
				fmt.Fprintf(out, "%s: %d records, balance %s -> %s\n", f.Name, len(stmt.Records), stmt.EndBalance.StringFixed(2), dst)
			}

			if len(entries) > 0 {
				if err := importlog.Append(dir, entries); err != nil {
					return err
				}
			}
			if errs != nil {
				return fmt.Errorf("%d of %d exports failed: %w", len(multierr.Errors(errs)), len(files), errs)
			}
			return nil
		},
	}

	addSettingsFlags(cmd)
	cmd.Flags().String(keyDir, "", "import directory (default from config, else ./import)")

	return cmd
}

// scanExports lists the exports in dir, leaving out the import log.
func scanExports(dir string) ([]importer.FileInfo, error) {
	all, err := importer.Scan(dir)
	if err != nil {
		return nil, err
	}
	var files []importer.FileInfo
	for _, f := range all {
		if strings.EqualFold(f.Name, importlog.FileName) {
			continue
		}
		files = append(files, f)
	}
	return files, nil
}

// writeExport writes stmt to <dir>/exported/ under the export's base name and
// returns the path relative to dir.
func writeExport(dir, name string, stmt *model.Statement, format string) (string, error) {
	if err := os.MkdirAll(filepath.Join(dir, ExportDir), 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	rel := filepath.Join(ExportDir, strings.TrimSuffix(name, filepath.Ext(name))+export.Extension(format))
	f, err := os.Create(filepath.Join(dir, rel))
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", rel, err)
	}
	defer f.Close()

	if err := export.Write(f, stmt, format); err != nil {
		return "", fmt.Errorf("writing %s: %w", rel, err)
	}
	return rel, nil
}
