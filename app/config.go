package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	var (
		asJSON   bool
		withKeys bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg
			if !withKeys {
				cfg.PowerDNS.APIKey = redacted(cfg.PowerDNS.APIKey)
				cfg.DB.Password = redacted(cfg.DB.Password)
			}

			dump := config.DumpConfig
			if asJSON {
				dump = config.DumpConfigJSON
			}

			out, err := dump(&cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of TOML")
	cmd.Flags().BoolVar(&withKeys, "show-secrets", false, "do not redact the API key and database password")

	return cmd
}

func redacted(s string) string {
	if s == "" {
		return ""
	}

	return "********"
}
