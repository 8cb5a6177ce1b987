package app

import (
	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/daemon"
)

func newStartCmd(opts *options) *cobra.Command {
	var devMode bool

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Start the JSON API web service",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if devMode {
				opts.cfg.DevMode = true
			}

			d, err := daemon.New(cmd.Context(), &opts.cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}

	cmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode (no graceful shutdown delay)")

	return cmd
}
