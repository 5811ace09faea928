package dbg

import (
	"io"

	"gopkg.in/yaml.v3"
)

func writeYAML[T any](w io.Writer, records []T) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if records == nil {
		records = []T{}
	}
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}
