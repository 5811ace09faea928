package dbg

import (
	"fmt"
	"io"
	"strings"
)

func writeTSV[T any](w io.Writer, records []T) error {
	if len(records) == 0 {
		return nil
	}
	if err := requireRower(EncodingTSV, records); err != nil {
		return err
	}
	if h := headerOf(records); h != nil {
		if err := writeTSVRow(w, h); err != nil {
			return err
		}
	}
	for _, row := range rowsOf(records) {
		if err := writeTSVRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeTSVRow(w io.Writer, row []string) error {
	_, err := fmt.Fprintln(w, strings.Join(row, "\t"))
	return err
}
