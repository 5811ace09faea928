package dbg

import (
	"encoding/json"
	"io"
)

func writeJSON[T any](w io.Writer, records []T) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if records == nil {
		records = []T{}
	}
	return enc.Encode(records)
}
