package dbg

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Placeholders for frame fields the stack source could not provide.
const (
	InternalFile = "[internal]"
	UnknownLine  = "??"
	MainFunction = "[main]"
)

// Frame is a snapshot of one call: the called function and the call site.
type Frame struct {
	Function string `json:"function" yaml:"function"`
	Class    string `json:"class,omitempty" yaml:"class,omitempty"`
	File     string `json:"file" yaml:"file"`
	Line     int    `json:"line" yaml:"line"`
	Args     []any  `json:"-" yaml:"-"`
}

// LineString returns the line number, or [UnknownLine] when it is not known.
func (f Frame) LineString() string {
	if f.Line <= 0 {
		return UnknownLine
	}
	return strconv.Itoa(f.Line)
}

// Signature returns Class::Function, or Function when there is no class.
func (f Frame) Signature() string {
	if f.Class != "" {
		return f.Class + "::" + f.Function
	}
	return f.Function
}

func (f Frame) String() string {
	return f.File + ":" + f.LineString() + " " + f.Signature()
}

// Row implements [Rower].
func (f Frame) Row() []string {
	return []string{f.Signature(), f.File, f.LineString()}
}

// Header implements [Headed].
func (Frame) Header() []string {
	return []string{"Function", "File", "Line"}
}

func (f Frame) withDefaults() Frame {
	if f.File == "" {
		f.File = InternalFile
	}
	return f
}

// Point is the file and line of a call site.
type Point struct {
	File string `json:"file" yaml:"file"`
	Line int    `json:"line" yaml:"line"`
}

// LineString returns the line number, or [UnknownLine] when it is not known.
func (p Point) LineString() string {
	if p.Line <= 0 {
		return UnknownLine
	}
	return strconv.Itoa(p.Line)
}

func (p Point) String() string {
	return p.File + ":" + p.LineString()
}

// Row implements [Rower].
func (p Point) Row() []string {
	return []string{p.File, p.LineString()}
}

// Header implements [Headed].
func (Point) Header() []string {
	return []string{"File", "Line"}
}

type traceOptions struct {
	depth   int
	format  Format
	args    bool
	start   int
	exclude []string
}

// TraceOption configures a single trace.
type TraceOption func(*traceOptions)

// WithDepth bounds the frame index, counted from the top of the stack with
// excluded frames left out. Default [DefaultTraceDepth].
func WithDepth(n int) TraceOption {
	return func(o *traceOptions) {
		o.depth = n
	}
}

// WithFormat selects the rendering format. Default is the Debugger's
// output format.
func WithFormat(f Format) TraceOption {
	return func(o *traceOptions) {
		o.format = f
	}
}

// WithArgs renders the arguments of method calls when the stack source
// provides them.
func WithArgs() TraceOption {
	return func(o *traceOptions) {
		o.args = true
	}
}

// WithStart skips the first n frames.
func WithStart(n int) TraceOption {
	return func(o *traceOptions) {
		o.start = max(n, 0)
	}
}

// WithExclude replaces the skipped signatures. Signatures have the form
// "pkg.Function" or "pkg.Type::Method".
func WithExclude(signatures ...string) TraceOption {
	return func(o *traceOptions) {
		o.exclude = signatures
	}
}

func (d *Debugger) traceOptions(opts []TraceOption) traceOptions {
	o := traceOptions{
		depth:   DefaultTraceDepth,
		format:  d.OutputFormat(),
		exclude: d.exclude,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type traceEntry struct {
	frame     Frame
	reference string
}

// walk yields the frames of raw selected by o. The reference of frame i is
// built from frame i+1, the function whose body holds frame i's call site.
// Iteration stops once i, less the excluded frames, reaches o.depth.
func (d *Debugger) walk(raw []Frame, o traceOptions) iter.Seq[traceEntry] {
	return func(yield func(traceEntry) bool) {
		skipped := 0
		for i := o.start; i < len(raw) && i-skipped < o.depth; i++ {
			frame := raw[i].withDefaults()
			signature, reference := MainFunction, MainFunction
			if i+1 < len(raw) {
				signature, reference = d.describe(raw[i+1], o.args)
			}
			if slices.Contains(o.exclude, signature) {
				skipped++
				continue
			}
			if o.format == FormatPoints && frame.File == InternalFile {
				continue
			}
			if !yield(traceEntry{frame: frame, reference: reference}) {
				return
			}
		}
	}
}

func (d *Debugger) describe(caller Frame, withArgs bool) (signature, reference string) {
	fn := caller.Function
	if fn == "" {
		fn = MainFunction
	}
	if caller.Class == "" {
		return fn, fn
	}
	signature = caller.Class + "::" + fn
	var b strings.Builder
	b.WriteString(signature + "(")
	if withArgs {
		for i, arg := range caller.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.Export(arg))
		}
	}
	b.WriteString(")")
	return signature, b.String()
}

func (d *Debugger) traceLine(f Format, e traceEntry) string {
	tpl, ok := d.templates.Lookup(f, KeyTraceLine)
	if !ok {
		d.logger.Debug().Str("format", string(f)).Msg("No traceLine template, using default")
		tpl = builtinTemplates()[FormatBase].Templates[KeyTraceLine]
	}
	return Insert(tpl, map[string]string{
		"reference": e.reference,
		"path":      d.TrimPath(e.frame.File),
		"file":      e.frame.File,
		"line":      e.frame.LineString(),
		"function":  e.frame.Function,
		"class":     e.frame.Class,
	})
}

func (d *Debugger) lines(raw []Frame, o traceOptions) []string {
	var out []string
	for e := range d.walk(raw, o) {
		switch o.format {
		case FormatPoints:
			out = append(out, Point{File: e.frame.File, Line: e.frame.Line}.String())
		case FormatArray:
			out = append(out, e.frame.String())
		default:
			out = append(out, d.traceLine(o.format, e))
		}
	}
	return out
}

// Trace renders the caller's stack, one line per frame. Template formats use
// their traceLine template; array and points formats write each record's
// String form.
func (d *Debugger) Trace(opts ...TraceOption) string {
	raw := d.stack(0)
	return strings.Join(d.lines(raw, d.traceOptions(opts)), "\n")
}

// Frames returns the caller's stack as frame records.
func (d *Debugger) Frames(opts ...TraceOption) []Frame {
	raw := d.stack(0)
	o := d.traceOptions(opts)
	o.format = FormatArray
	var out []Frame
	for e := range d.walk(raw, o) {
		out = append(out, e.frame)
	}
	return out
}

// Points returns the file and line of each call on the caller's stack,
// omitting internal frames.
func (d *Debugger) Points(opts ...TraceOption) []Point {
	raw := d.stack(0)
	o := d.traceOptions(opts)
	o.format = FormatPoints
	var out []Point
	for e := range d.walk(raw, o) {
		out = append(out, Point{File: e.frame.File, Line: e.frame.Line})
	}
	return out
}

// Walk captures the caller's stack and returns an iterator over its frames.
// The stack is captured when Walk is called, not when iteration starts.
func (d *Debugger) Walk(opts ...TraceOption) iter.Seq[Frame] {
	raw := d.stack(0)
	o := d.traceOptions(opts)
	return func(yield func(Frame) bool) {
		for e := range d.walk(raw, o) {
			if !yield(e.frame) {
				return
			}
		}
	}
}
