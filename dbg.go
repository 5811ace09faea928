package dbg

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/bjaus/dbg/internal/logging"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat   = errors.New("unsupported format")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrMissingInterface    = errors.New("missing required interface")
	ErrInvalidTemplate     = errors.New("invalid template")
	ErrUnknownKind         = errors.New("unknown debugger kind")
	ErrInvalidKind         = errors.New("invalid debugger kind")
	ErrDuplicateKind       = errors.New("debugger kind already registered")
	ErrInvalidConfig       = errors.New("invalid config")
)

// Format names a rendering mode for traces and reports.
type Format string

const (
	FormatLog    Format = "log"
	FormatJS     Format = "js"
	FormatHTML   Format = "html"
	FormatText   Format = "txt"
	FormatBase   Format = "base"
	FormatArray  Format = "array"
	FormatPoints Format = "points"
)

var formats = []Format{FormatLog, FormatJS, FormatHTML, FormatText, FormatBase, FormatArray, FormatPoints}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Structured reports whether f yields frame records instead of template lines.
func (f Format) Structured() bool { return f == FormatArray || f == FormatPoints }

// Formats returns the built-in format names.
// Formats added through [Templates.Register] are not included.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a built-in format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if strings.EqualFold(string(f), s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Defaults used by [New].
const (
	DefaultDepth      = 3
	DefaultTraceDepth = 999
	DefaultIndent     = "\t"
	DefaultMask       = "*****"
)

// DefaultRedactedKeys are masked in exported containers and objects unless
// redaction is reconfigured.
var DefaultRedactedKeys = []string{"password", "login", "host", "database", "port", "prefix", "schema"}

// DefaultExclude lists the trace signatures skipped when no exclusion is given.
var DefaultExclude = []string{"dbg.Trace", "dbg.Frames", "dbg.Points", "reflect.Value::call", "runtime.gopanic"}

// Debugger renders values and call stacks. It is safe for concurrent use;
// construct one with [New] or use the process-wide [Instance].
type Debugger struct {
	kind      string
	format    atomic.Value
	depth     int
	indent    string
	redact    map[string]struct{}
	mask      string
	roots     []Root
	trimmer   func(string) string
	stack     StackFunc
	exclude   []string
	templates *Templates
	logger    zerolog.Logger
}

// Option configures a [Debugger].
type Option func(*Debugger)

// WithOutputFormat sets the format used when a trace or report names none.
func WithOutputFormat(f Format) Option {
	return func(d *Debugger) {
		d.format.Store(f)
	}
}

// WithMaxDepth sets the default export depth. Negative values are ignored.
func WithMaxDepth(depth int) Option {
	return func(d *Debugger) {
		if depth >= 0 {
			d.depth = depth
		}
	}
}

// WithIndent sets the indent unit written once per nesting level.
func WithIndent(unit string) Option {
	return func(d *Debugger) {
		d.indent = unit
	}
}

// WithRedactedKeys replaces the set of keys whose values are masked.
func WithRedactedKeys(keys ...string) Option {
	return func(d *Debugger) {
		d.redact = keySet(keys)
	}
}

// WithMask sets the token written in place of redacted values.
func WithMask(mask string) Option {
	return func(d *Debugger) {
		d.mask = mask
	}
}

// WithoutRedaction exports every key verbatim.
func WithoutRedaction() Option {
	return func(d *Debugger) {
		d.redact = nil
	}
}

// WithTrimRoot adds a directory that trace paths are shortened against.
// A path under dir is displayed as name followed by the relative path.
func WithTrimRoot(name, dir string) Option {
	return func(d *Debugger) {
		d.roots = append(d.roots, Root{Name: name, Dir: dir})
	}
}

// WithPathTrimmer replaces root based trimming with fn.
func WithPathTrimmer(fn func(string) string) Option {
	return func(d *Debugger) {
		d.trimmer = fn
	}
}

// WithStack replaces the runtime stack source. Mostly useful in tests.
func WithStack(fn StackFunc) Option {
	return func(d *Debugger) {
		if fn != nil {
			d.stack = fn
		}
	}
}

// WithDefaultExclude replaces the signatures skipped by traces that do not
// pass [WithExclude].
func WithDefaultExclude(signatures ...string) Option {
	return func(d *Debugger) {
		d.exclude = append([]string(nil), signatures...)
	}
}

// WithTemplates uses t as the template registry instead of a fresh copy of
// the built-in sets. The registry is shared, not copied.
func WithTemplates(t *Templates) Option {
	return func(d *Debugger) {
		if t != nil {
			d.templates = t
		}
	}
}

// WithTemplateSet merges set into the registry entry for f.
func WithTemplateSet(f Format, set TemplateSet) Option {
	return func(d *Debugger) {
		if err := d.templates.Merge(f, set); err != nil {
			d.logger.Warn().Err(err).Str("format", string(f)).Msg("Ignoring template set")
		}
	}
}

// WithLogger sets the logger used for diagnostics about the debugger itself.
// The default logger only reports warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Debugger) {
		d.logger = logger
	}
}

// New returns a Debugger configured by opts.
func New(opts ...Option) *Debugger {
	d := &Debugger{
		kind:      DefaultKind,
		depth:     DefaultDepth,
		indent:    DefaultIndent,
		redact:    keySet(DefaultRedactedKeys),
		mask:      DefaultMask,
		roots:     defaultRoots(),
		stack:     callers,
		exclude:   append([]string(nil), DefaultExclude...),
		templates: NewTemplates(),
		logger:    logging.GetLogger("dbg").Level(zerolog.WarnLevel),
	}
	d.format.Store(FormatLog)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Kind returns the registered kind the Debugger was built as.
func (d *Debugger) Kind() string { return d.kind }

// Templates returns the registry consulted by d.
func (d *Debugger) Templates() *Templates { return d.templates }

// OutputFormat returns the current default format.
func (d *Debugger) OutputFormat() Format {
	return d.format.Load().(Format)
}

// SetOutputFormat changes the default format. Formats without a template set
// are rejected, except the structured array and points formats.
func (d *Debugger) SetOutputFormat(f Format) error {
	if !f.Structured() && !d.templates.Has(f) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	d.format.Store(f)
	d.logger.Debug().Str("format", string(f)).Msg("Output format changed")
	return nil
}
