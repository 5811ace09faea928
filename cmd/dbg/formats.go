package main

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/dbg"
)

type formatRow struct {
	Name     string   `json:"name" yaml:"name"`
	Keys     []string `json:"keys" yaml:"keys"`
	Escaped  bool     `json:"escape_context" yaml:"escape_context"`
	Selected bool     `json:"selected" yaml:"selected"`
}

func (r formatRow) Row() []string {
	mark := ""
	if r.Selected {
		mark = "*"
	}
	return []string{mark + r.Name, strings.Join(r.Keys, ", "), strconv.FormatBool(r.Escaped)}
}

func (formatRow) Header() []string {
	return []string{"Format", "Templates", "Escape context"}
}

func newFormatsCmd(a *app) *cobra.Command {
	var encoding string
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the output formats and their templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc, err := dbg.ParseEncoding(encoding)
			if err != nil {
				return err
			}
			current := a.debugger.OutputFormat()
			var rows []formatRow
			for _, f := range a.debugger.Templates().Formats() {
				set, _ := a.debugger.Templates().Set(f)
				rows = append(rows, formatRow{
					Name:     f.String(),
					Keys:     slices.Sorted(maps.Keys(set.Templates)),
					Escaped:  set.EscapeContext,
					Selected: f == current,
				})
			}
			for _, f := range []dbg.Format{dbg.FormatArray, dbg.FormatPoints} {
				rows = append(rows, formatRow{Name: f.String(), Keys: []string{}, Selected: f == current})
			}
			return dbg.Encode(cmd.OutOrStdout(), enc, rows...)
		},
	}
	cmd.Flags().StringVarP(&encoding, "encoding", "e", string(dbg.EncodingTable), "output encoding")
	return cmd
}
