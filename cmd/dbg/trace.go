package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/dbg"
)

func newTraceCmd(a *app) *cobra.Command {
	var (
		format   string
		encoding string
		depth    int
		start    int
		args     bool
		exclude  []string
	)
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print the command's own call stack",
		Long: `Print the stack of the trace command itself. Template formats print one
line per frame; formats without templates use the base set. The array and
points formats print records in --encoding, which defaults to a table on a
terminal and JSON lines otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []dbg.TraceOption{dbg.WithDepth(depth), dbg.WithStart(start)}
			f := a.debugger.OutputFormat()
			if format != "" {
				f = dbg.Format(strings.ToLower(format))
			}
			opts = append(opts, dbg.WithFormat(f))
			if args {
				opts = append(opts, dbg.WithArgs())
			}
			if cmd.Flags().Changed("exclude") {
				opts = append(opts, dbg.WithExclude(exclude...))
			}

			w := cmd.OutOrStdout()
			if !f.Structured() {
				_, err := fmt.Fprintln(w, a.debugger.RenderTrace(opts...))
				return err
			}

			enc := dbg.EncodingJSONL
			if isTerminal(w) {
				enc = dbg.EncodingTable
			}
			if encoding != "" {
				var err error
				if enc, err = dbg.ParseEncoding(encoding); err != nil {
					return err
				}
			}
			if f == dbg.FormatPoints {
				return dbg.Encode(w, enc, a.debugger.Points(opts...)...)
			}
			return a.debugger.EncodeFrames(w, enc, opts...)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (default from config)")
	cmd.Flags().StringVarP(&encoding, "encoding", "e", "", "record encoding for the array and points formats")
	cmd.Flags().IntVar(&depth, "depth", dbg.DefaultTraceDepth, "maximum number of frames")
	cmd.Flags().IntVar(&start, "start", 0, "number of frames to skip")
	cmd.Flags().BoolVar(&args, "args", false, "include call arguments when available")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "signatures to skip (replaces the configured list)")
	return cmd
}
