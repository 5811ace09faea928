package main

import (
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bjaus/dbg"
	"github.com/bjaus/dbg/internal/logging"
)

type app struct {
	verbosity  int
	configPath string
	debugger   *dbg.Debugger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "dbg",
		Short: "Dump values and call stacks as readable text",
		Long: `dbg renders decoded documents with the value exporter and prints its
own call stack with the trace formatter. Settings come from --config and
DBG_ environment variables.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLoggerTo(cmd.ErrOrStderr(), a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.setup()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (.toml, .yaml or .json)")

	cmd.AddCommand(newDumpCmd(a))
	cmd.AddCommand(newTraceCmd(a))
	cmd.AddCommand(newFormatsCmd(a))
	return cmd
}

func (a *app) setup() error {
	cfg, err := dbg.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	opts := append(cfg.Options(), dbg.WithLogger(logging.GetLogger("dbg")))
	a.debugger = dbg.New(opts...)
	log.Debug().
		Str("config", a.configPath).
		Str("format", a.debugger.OutputFormat().String()).
		Msg("Debugger configured")
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && logging.IsTerminal(f)
}
