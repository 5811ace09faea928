package dbg

import (
	"fmt"
	"io"
	"text/template"
)

func parseGoTemplate(tmplStr string) (*template.Template, error) {
	tmpl, err := template.New("record").Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	return tmpl, nil
}

func writeGoTemplate[T any](w io.Writer, tmplStr string, records []T) error {
	tmpl, err := parseGoTemplate(tmplStr)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := executeRecord(w, tmpl, r); err != nil {
			return err
		}
	}
	return nil
}

func executeRecord(w io.Writer, tmpl *template.Template, r any) error {
	if err := tmpl.Execute(w, r); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
