package dbg

import (
	"encoding/csv"
	"io"
)

func writeCSV[T any](w io.Writer, records []T) error {
	if len(records) == 0 {
		return nil
	}
	if err := requireRower(EncodingCSV, records); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if h := headerOf(records); h != nil {
		if err := cw.Write(h); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(rowsOf(records)); err != nil {
		return err
	}
	return cw.Error()
}

func writeCSVRow(w io.Writer, row []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
