// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/config"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/logger"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/reconcile"
)

// options are shared by all commands.
type options struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "pdns-rrset",
		Short: "pdns-rrset changes RRsets of PowerDNS zones",
		Long: `pdns-rrset adds, replaces and removes RRsets of PowerDNS zones
through the PowerDNS HTTP API, for the legacy flat record format as well as for API v1.
Every change can be planned with --dry-run and is written to a change journal.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.load()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "./etc/", "directory holding main.toml")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override Log.LogLevel (trace, debug, info, warn, error)")

	rootCmd.AddCommand(
		newChangeCmd(opts, reconcile.VerbAdd),
		newChangeCmd(opts, reconcile.VerbUpdate),
		newChangeCmd(opts, reconcile.VerbRemove),
		newZonesCmd(opts),
		newShowCmd(opts),
		newNotifyCmd(opts),
		newAXFRRetrieveCmd(opts),
		newHistoryCmd(opts),
		newStartCmd(opts),
		newConfigCmd(opts),
	)

	return rootCmd
}

func (o *options) load() error {
	var err error

	if o.cfg, err = config.ReadConfig(o.configPath); err != nil {
		return err
	}

	if o.logLevel != "" {
		o.cfg.Log.LogLevel = o.logLevel
	}

	return logger.Init(o.cfg.Log)
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
