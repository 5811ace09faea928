package dbg

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

func writeMarkdown[T any](w io.Writer, records []T) error {
	if len(records) == 0 {
		return nil
	}
	if err := requireRower(EncodingMarkdown, records); err != nil {
		return err
	}
	header := headerOf(records)
	if header == nil {
		return fmt.Errorf("%w: encoding %q requires Headed, not implemented by %T", ErrMissingInterface, EncodingMarkdown, records[0])
	}
	rows := rowsOf(records)

	// Minimum 3 so the separator row stays valid.
	widths := columnWidths(header, rows)
	for i := range widths {
		widths[i] = max(widths[i], 3)
	}

	if err := writeMarkdownRow(w, header, widths); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeMarkdownRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = strings.ReplaceAll(cells[i], "|", `\|`)
		}
		padded[i] = padCell(cell, width)
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}

// columnWidths returns the display width of the widest cell per column.
func columnWidths(header []string, rows [][]string) []int {
	n := len(header)
	for _, row := range rows {
		n = max(n, len(row))
	}
	widths := make([]int, n)
	for i, h := range header {
		widths[i] = max(widths[i], runewidth.StringWidth(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

func padCell(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}
