package dbg

import (
	"fmt"
	"io"
)

func writePlain[T any](w io.Writer, records []T) error {
	for _, r := range records {
		if err := writePlainRecord(w, r); err != nil {
			return err
		}
	}
	return nil
}

func writePlainRecord(w io.Writer, r any) error {
	var s string
	if str, ok := r.(fmt.Stringer); ok {
		s = str.String()
	} else {
		s = fmt.Sprintf("%v", r)
	}
	_, err := fmt.Fprintln(w, s)
	return err
}
