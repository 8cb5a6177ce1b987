package app

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/db"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/db/controller/change"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/powerdns"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/reconcile"
)

func newZonesCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List the zones of the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := powerdns.Open(opts.cfg.PowerDNS).ZoneNames(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd, names)
			}

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ZONE",
		Short: "Show the records of a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := powerdns.Open(opts.cfg.PowerDNS).Entries(cmd.Context(), reconcile.NormalizeZoneName(args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd, entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tTTL\tCONTENT\tDISABLED")
			fmt.Fprintln(w, "----\t----\t---\t-------\t--------")

			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%t\n", e.Name, e.Type, e.TTL, e.Content, e.Disabled)
			}

			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func newNotifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "notify ZONE",
		Short: "Send a DNS NOTIFY to the slaves of a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := reconcile.Open(cmd.Context(), opts.cfg.PowerDNS, nil)
			if err != nil {
				return err
			}

			res, err := svc.Notify(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Result)

			return nil
		},
	}
}

func newAXFRRetrieveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "axfr-retrieve ZONE",
		Short: "Retrieve a slave zone from its master",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := reconcile.Open(cmd.Context(), opts.cfg.PowerDNS, nil)
			if err != nil {
				return err
			}

			res, err := svc.AXFRRetrieve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Result)

			return nil
		},
	}
}

func newHistoryCmd(opts *options) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history ZONE",
		Short: "Show the change journal of a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, err := db.Open(opts.cfg.DB)
			if err != nil {
				return err
			}

			changes, err := change.List(journal, reconcile.NormalizeZoneName(args[0]), limit)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd, changes)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tVERB\tDRY RUN\tAPI\tERROR")
			fmt.Fprintln(w, "--\t-------\t----\t-------\t---\t-----")

			for _, c := range changes {
				fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%d\t%s\n",
					c.ID,
					c.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
					c.Verb,
					c.DryRun,
					c.APIVersion,
					c.Error,
				)
			}

			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "number of entries") //nolint:mnd
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}
