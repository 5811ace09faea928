package dbg

import (
	"html"
	"strconv"
	"strings"
)

// ErrorReport describes an error to be rendered with a format's error template.
type ErrorReport struct {
	Level       string
	Code        int
	Description string
	File        string
	Line        int
	Info        string
	Context     any
}

// RenderTrace renders the caller's stack wrapped in the format's trace template.
func (d *Debugger) RenderTrace(opts ...TraceOption) string {
	raw := d.stack(0)
	o := d.traceOptions(opts)
	tpl := d.template(o.format, KeyTrace, "{:trace}")
	return Insert(tpl, map[string]string{"trace": strings.Join(d.lines(raw, o), "\n")})
}

// RenderContext exports v into the context template of f. Formats that
// escape their context get HTML-escaped output.
func (d *Debugger) RenderContext(f Format, v any) string {
	if f == "" {
		f = d.OutputFormat()
	}
	tpl := d.template(f, KeyContext, "{:context}")
	return Insert(tpl, map[string]string{"context": d.context(f, v)})
}

// RenderError renders r with the error template of the trace format selected
// by opts. The caller's stack is available to the template as {:trace}.
func (d *Debugger) RenderError(r ErrorReport, opts ...TraceOption) string {
	raw := d.stack(0)
	o := d.traceOptions(opts)
	tpl := d.template(o.format, KeyError, defaultErrorTemplate)

	line := UnknownLine
	if r.Line > 0 {
		line = strconv.Itoa(r.Line)
	}
	file := r.File
	if file == "" {
		file = InternalFile
	}
	values := map[string]string{
		"error":       r.Level,
		"code":        strconv.Itoa(r.Code),
		"description": r.Description,
		"file":        file,
		"path":        d.TrimPath(file),
		"line":        line,
		"info":        r.Info,
		"trace":       strings.Join(d.lines(raw, o), "\n"),
		"context":     "",
	}
	if r.Context != nil {
		values["context"] = d.context(o.format, r.Context)
	}
	return Insert(tpl, values)
}

func (d *Debugger) context(f Format, v any) string {
	out := d.Export(v)
	if set, ok := d.templates.Set(f); ok && set.EscapeContext {
		out = html.EscapeString(out)
	}
	return out
}

func (d *Debugger) template(f Format, key, fallback string) string {
	if tpl, ok := d.templates.Lookup(f, key); ok {
		return tpl
	}
	d.logger.Debug().Str("format", string(f)).Str("key", key).Msg("No template, using default")
	return fallback
}
