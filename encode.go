package dbg

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Encoding selects how frame and point records are written by [Encode].
type Encoding string

const (
	EncodingJSON     Encoding = "json"
	EncodingJSONL    Encoding = "jsonl"
	EncodingYAML     Encoding = "yaml"
	EncodingCSV      Encoding = "csv"
	EncodingTSV      Encoding = "tsv"
	EncodingTable    Encoding = "table"
	EncodingMarkdown Encoding = "markdown"
	EncodingHTML     Encoding = "html"
	EncodingPlain    Encoding = "plain"
)

const goTemplatePrefix = "go-template="

var encodings = []Encoding{
	EncodingJSON, EncodingJSONL, EncodingYAML, EncodingCSV, EncodingTSV,
	EncodingTable, EncodingMarkdown, EncodingHTML, EncodingPlain,
}

// String returns the encoding name.
func (e Encoding) String() string { return string(e) }

// Encodings returns all static encoding names.
// GoTemplate is not included because it is parameterized.
func Encodings() []Encoding {
	out := make([]Encoding, len(encodings))
	copy(out, encodings)
	return out
}

// GoTemplate returns an Encoding that renders each record with a Go
// text/template, one record per line.
func GoTemplate(tmpl string) Encoding {
	return Encoding(goTemplatePrefix + tmpl)
}

// ParseEncoding parses an encoding name. Recognizes all static encodings and
// go-template=<tmpl> strings.
func ParseEncoding(s string) (Encoding, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Encoding(s), nil
	}
	for _, e := range encodings {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, s)
}

// Rower provides row data. Required for CSV, TSV, table, markdown and HTML.
// [Frame] and [Point] implement it.
type Rower interface {
	Row() []string
}

// Headed provides column headers. Required for markdown.
type Headed interface {
	Header() []string
}

// Encode writes records to w in encoding e.
func Encode[T any](w io.Writer, e Encoding, records ...T) error {
	switch e {
	case EncodingJSON:
		return writeJSON(w, records)
	case EncodingJSONL:
		return writeJSONL(w, records)
	case EncodingYAML:
		return writeYAML(w, records)
	case EncodingCSV:
		return writeCSV(w, records)
	case EncodingTSV:
		return writeTSV(w, records)
	case EncodingTable:
		return writeTable(w, records)
	case EncodingMarkdown:
		return writeMarkdown(w, records)
	case EncodingHTML:
		return writeHTML(w, records)
	case EncodingPlain:
		return writePlain(w, records)
	default:
		if tmpl, ok := strings.CutPrefix(string(e), goTemplatePrefix); ok {
			return writeGoTemplate(w, tmpl, records)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedEncoding, e)
	}
}

// Marshal encodes records and returns the bytes.
func Marshal[T any](e Encoding, records ...T) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, e, records...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func requireRower[T any](e Encoding, records []T) error {
	if _, ok := any(records[0]).(Rower); !ok {
		return fmt.Errorf("%w: encoding %q requires Rower, not implemented by %T", ErrMissingInterface, e, records[0])
	}
	return nil
}

func rowsOf[T any](records []T) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = any(r).(Rower).Row()
	}
	return rows
}

func headerOf[T any](records []T) []string {
	if h, ok := any(records[0]).(Headed); ok {
		return h.Header()
	}
	return nil
}
