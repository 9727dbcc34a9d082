package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bankcsv/bankcsv/internal/buildinfo"
	"github.com/bankcsv/bankcsv/internal/config"
	"github.com/bankcsv/bankcsv/internal/logger"
	"github.com/bankcsv/bankcsv/internal/profile"
)

// DefaultConfigFile is read when --config is not given. It may be absent.
const DefaultConfigFile = "bankcsv.yaml"

// Flag and viper keys shared by the subcommands.
const (
	keyConfig     = "config"
	keyVerbose    = "verbose"
	keyAccount    = "account"
	keyBankID     = "bank-id"
	keyCharset    = "charset"
	keyFormat     = "format"
	keyOutput     = "output"
	keyDir        = "dir"
	keyAllowEmpty = "allow-empty"
)

// app is the state shared by the commands of one root command.
type app struct {
	v        *viper.Viper
	registry *profile.Registry
	cfg      *config.Config
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(profile.DefaultRegistry())
}

func newRootCommand(registry *profile.Registry) *cobra.Command {
	a := &app{v: viper.New(), registry: registry}
	a.v.SetEnvPrefix("BANKCSV")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:     "bankcsv",
		Short:   "Convert bank CSV exports into normalized statements",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("binding flags: %w", err)
			}
			log := logger.New(cmd.ErrOrStderr(), a.v.GetBool(keyVerbose))
			cmd.SetContext(logger.WithContext(cmd.Context(), log))
			return a.loadConfig()
		},
	}

	rootCmd.PersistentFlags().String(keyConfig, "", "config file (default is ./"+DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolP(keyVerbose, "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newConvertCommand(a),
		newImportCommand(a),
		newBanksCommand(a),
		newLogCommand(a),
	)

	return rootCmd
}

func (a *app) loadConfig() error {
	path := a.v.GetString(keyConfig)
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			a.cfg = config.Default()
			return nil
		}
		return err
	}
	a.cfg = cfg
	return nil
}

// bank looks up a registered bank by name.
func (a *app) bank(name string) (*profile.Bank, error) {
	b := a.registry.Get(name)
	if b == nil {
		return nil, fmt.Errorf("unknown bank %q (available: %s)", name, strings.Join(a.registry.Names(), ", "))
	}
	return b, nil
}

// settings resolves the settings for bank: flags and BANKCSV_* variables win
// over the config file.
func (a *app) settings(bank string) config.Settings {
	return a.cfg.Settings(bank).Merge(config.Settings{
		config.KeyAccount: a.v.GetString(keyAccount),
		config.KeyBank:    a.v.GetString(keyBankID),
		config.KeyCharset: a.v.GetString(keyCharset),
	})
}

// format returns the output format from flags or env, else the config file.
func (a *app) format() string {
	if f := a.v.GetString(keyFormat); f != "" {
		return f
	}
	return a.cfg.Import.Format
}

// addSettingsFlags registers the flags that override bank settings.
func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().String(keyAccount, "", "account id for the statement")
	cmd.Flags().String(keyBankID, "", "bank id for the statement")
	cmd.Flags().String(keyCharset, "", "charset of the export (default depends on the bank)")
	cmd.Flags().String(keyFormat, "", "output format: csv or json")
}
