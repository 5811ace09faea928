package dbg

import (
	"fmt"
	"html"
	"io"
)

func writeHTML[T any](w io.Writer, records []T) error {
	if len(records) == 0 {
		return nil
	}
	if err := requireRower(EncodingHTML, records); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, `<table class="dbg-trace">`); err != nil {
		return err
	}
	if header := headerOf(records); header != nil {
		if _, err := fmt.Fprintln(w, "  <thead>"); err != nil {
			return err
		}
		if err := writeHTMLRow(w, "th", header); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "  </thead>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for _, row := range rowsOf(records) {
		if err := writeHTMLRow(w, "td", row); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tbody>"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "</table>")
	return err
}

func writeHTMLRow(w io.Writer, tag string, cells []string) error {
	if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
		return err
	}
	for _, cell := range cells {
		if _, err := fmt.Fprintf(w, "      <%s>%s</%s>\n", tag, html.EscapeString(cell), tag); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "    </tr>")
	return err
}
