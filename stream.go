package dbg

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// EncodeIter writes records from seq to w as they arrive. Line oriented
// encodings (JSONL, CSV, TSV, plain and Go templates) write each record
// immediately. The rest need the whole set for layout and collect first.
func EncodeIter[T any](w io.Writer, e Encoding, seq iter.Seq[T]) error {
	switch e {
	case EncodingJSON, EncodingYAML, EncodingTable, EncodingMarkdown, EncodingHTML:
		return streamCollect(w, e, seq)
	case EncodingJSONL:
		return streamEach(w, seq, func(r T) error { return writeJSONL(w, []T{r}) })
	case EncodingCSV:
		return streamRows(w, e, seq, writeCSVRow)
	case EncodingTSV:
		return streamRows(w, e, seq, writeTSVRow)
	case EncodingPlain:
		return streamEach(w, seq, func(r T) error { return writePlainRecord(w, r) })
	default:
		tmplStr, ok := strings.CutPrefix(string(e), goTemplatePrefix)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnsupportedEncoding, e)
		}
		tmpl, err := parseGoTemplate(tmplStr)
		if err != nil {
			return err
		}
		return streamEach(w, seq, func(r T) error { return executeRecord(w, tmpl, r) })
	}
}

// EncodeFrames captures the caller's stack with d and streams the selected
// frames to w.
func (d *Debugger) EncodeFrames(w io.Writer, e Encoding, opts ...TraceOption) error {
	raw := d.stack(0)
	o := d.traceOptions(opts)
	o.format = FormatArray
	return EncodeIter(w, e, func(yield func(Frame) bool) {
		for item := range d.walk(raw, o) {
			if !yield(item.frame) {
				return
			}
		}
	})
}

func streamCollect[T any](w io.Writer, e Encoding, seq iter.Seq[T]) error {
	var records []T
	for r := range seq {
		records = append(records, r)
	}
	if len(records) == 0 {
		return nil
	}
	return Encode(w, e, records...)
}

func streamEach[T any](w io.Writer, seq iter.Seq[T], write func(T) error) error {
	for r := range seq {
		if err := write(r); err != nil {
			return err
		}
	}
	return nil
}

func streamRows[T any](w io.Writer, e Encoding, seq iter.Seq[T], writeRow func(io.Writer, []string) error) error {
	first := true
	for r := range seq {
		rower, ok := any(r).(Rower)
		if !ok {
			return fmt.Errorf("%w: encoding %q requires Rower, not implemented by %T", ErrMissingInterface, e, r)
		}
		if first {
			first = false
			if h, ok := any(r).(Headed); ok {
				if err := writeRow(w, h.Header()); err != nil {
					return err
				}
			}
		}
		if err := writeRow(w, rower.Row()); err != nil {
			return err
		}
	}
	return nil
}
