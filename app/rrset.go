package app

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/db"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/pdns/rrset"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/reconcile"
)

var changeShort = map[reconcile.Verb]string{ //nolint:gochecknoglobals
	reconcile.VerbAdd:    "Add records to an RRset, keeping the published ones",
	reconcile.VerbUpdate: "Replace an RRset with the given records",
	reconcile.VerbRemove: "Remove an RRset",
}

// changeFlags are the flags of add, update and remove.
type changeFlags struct {
	zone      string
	name      string
	typ       string
	ttl       uint32
	records   []string
	disabled  bool
	setPTR    bool
	file      string
	dryRun    bool
	noJournal bool
}

// inputs returns the RRsets of --file, or the single RRset described by the flags.
func (f *changeFlags) inputs() ([]rrset.RRsetInput, error) {
	if f.file != "" {
		return readRRsetFile(f.file)
	}

	in := rrset.RRsetInput{
		Name:     f.name,
		Type:     f.typ,
		TTL:      f.ttl,
		Disabled: f.disabled,
	}

	for _, content := range f.records {
		if f.setPTR {
			in.Records = append(in.Records, rrset.RecordFields{Content: content, SetPTR: true})
			continue
		}

		in.Records = append(in.Records, rrset.RawContent(content))
	}

	return []rrset.RRsetInput{in}, nil
}

// readRRsetFile accepts a list of RRsets or an object with an rrsets list.
func readRRsetFile(path string) ([]rrset.RRsetInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read rrset file")
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var list []rrset.RRsetInput
		if err = json.Unmarshal(trimmed, &list); err != nil {
			return nil, errors.Wrapf(err, "failed to decode rrset file %s", path)
		}

		return list, nil
	}

	var doc struct {
		RRsets []rrset.RRsetInput `json:"rrsets"`
	}

	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to decode rrset file %s", path)
	}

	return doc.RRsets, nil
}

func newChangeCmd(opts *options, verb reconcile.Verb) *cobra.Command {
	f := &changeFlags{}

	cmd := &cobra.Command{
		Use:   string(verb),
		Short: changeShort[verb],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inputs, err := f.inputs()
			if err != nil {
				return err
			}

			var journal *gorm.DB

			if !f.noJournal {
				if journal, err = db.Open(opts.cfg.DB); err != nil {
					return err
				}
			}

			svc, err := reconcile.Open(cmd.Context(), opts.cfg.PowerDNS, journal)
			if err != nil {
				return err
			}

			out, err := svc.Apply(cmd.Context(), f.zone, verb, inputs, f.dryRun)
			if out != nil && out.Payload != nil {
				if perr := printJSON(cmd, out); perr != nil && err == nil {
					err = perr
				}
			}

			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.zone, "zone", "z", "", "zone id, e.g. example.com.")
	flags.StringVarP(&f.name, "name", "n", "", "owner name of the RRset, e.g. www.example.com.")
	flags.StringVarP(&f.typ, "type", "t", "", "RR type, e.g. A")
	flags.StringVarP(&f.file, "file", "f", "", "JSON file with a list of RRsets, instead of --name/--type/--record")
	flags.BoolVar(&f.dryRun, "dry-run", false, "print the payload without sending it")
	flags.BoolVar(&f.noJournal, "no-journal", false, "do not write the change journal")

	if verb != reconcile.VerbRemove {
		flags.Uint32Var(&f.ttl, "ttl", 3600, "TTL of the RRset") //nolint:mnd
		flags.StringArrayVarP(&f.records, "record", "r", nil, "record content, repeatable")
		flags.BoolVar(&f.disabled, "disabled", false, "disable all records of the RRset")
		flags.BoolVar(&f.setPTR, "set-ptr", false, "ask PowerDNS to create matching PTR records")
	}

	_ = cmd.MarkFlagRequired("zone")

	return cmd
}
