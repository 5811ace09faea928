package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDumpCmd(a *app) *cobra.Command {
	var (
		depth   int
		context bool
	)
	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Export a JSON, YAML or TOML document",
		Long: `Decode a document and print it with the value exporter. The decoder is
picked by file extension; standard input is read as YAML, which also
accepts JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, data, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			v, err := decode(name, data)
			if err != nil {
				return err
			}

			var out string
			switch {
			case context:
				out = a.debugger.RenderContext("", v)
			case cmd.Flags().Changed("depth"):
				out = a.debugger.ExportDepth(v, depth)
			default:
				out = a.debugger.Export(v)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "maximum nesting depth (default from config)")
	cmd.Flags().BoolVar(&context, "context", false, "wrap the output in the format's context template")
	return cmd
}

func readInput(stdin io.Reader, args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return "", data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return args[0], data, nil
}

func decode(name string, data []byte) (any, error) {
	var v any
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
		v = m
	default:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	}
	return v, nil
}
