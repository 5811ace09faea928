package dbg

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/valyala/fasttemplate"
)

// Template keys understood by the renderers.
const (
	KeyTrace     = "trace"
	KeyTraceLine = "traceLine"
	KeyError     = "error"
	KeyContext   = "context"
	KeyInfo      = "info"
	KeyCode      = "code"
)

// Placeholder delimiters used by [Insert].
const (
	placeholderOpen  = "{:"
	placeholderClose = "}"
)

const defaultErrorTemplate = "{:error} ({:code}): {:description} in [{:file}, line {:line}]"

// TemplateSet holds the templates of one format.
type TemplateSet struct {
	Templates map[string]string `koanf:"templates" json:"templates" yaml:"templates"`

	// EscapeContext HTML-escapes exported values before they are inserted
	// into the context template.
	EscapeContext bool `koanf:"escape_context" json:"escape_context" yaml:"escape_context"`
}

func (s TemplateSet) clone() TemplateSet {
	return TemplateSet{Templates: maps.Clone(s.Templates), EscapeContext: s.EscapeContext}
}

func builtinTemplates() map[Format]TemplateSet {
	return map[Format]TemplateSet{
		FormatLog: {Templates: map[string]string{
			KeyTraceLine: "{:reference} - {:path}, line {:line}",
			KeyError:     defaultErrorTemplate,
		}},
		FormatJS: {EscapeContext: true, Templates: map[string]string{
			KeyError:   "",
			KeyInfo:    "",
			KeyTrace:   `<pre class="stack-trace">{:trace}</pre>`,
			KeyCode:    "",
			KeyContext: "",
		}},
		FormatHTML: {EscapeContext: true, Templates: map[string]string{
			KeyTrace:   `<pre class="dbg-error trace"><b>Trace</b> <p>{:trace}</p></pre>`,
			KeyContext: `<pre class="dbg-error context"><b>Context</b> <p>{:context}</p></pre>`,
		}},
		FormatText: {Templates: map[string]string{
			KeyError: "{:error}: {:code} :: {:description} on line {:line} of {:path}\n{:info}",
			KeyCode:  "",
			KeyInfo:  "",
		}},
		FormatBase: {Templates: map[string]string{
			KeyTraceLine: "{:reference} - {:path}, line {:line}",
			KeyTrace:     "Trace:\n{:trace}\n",
			KeyContext:   "Context:\n{:context}\n",
		}},
	}
}

// Templates maps format names to template sets. Lookups read an immutable
// snapshot and never block; writers copy the table and publish a new one.
type Templates struct {
	mu   sync.Mutex
	sets atomic.Pointer[map[Format]TemplateSet]
}

// NewTemplates returns a registry seeded with the built-in sets.
func NewTemplates() *Templates {
	t := &Templates{}
	sets := builtinTemplates()
	t.sets.Store(&sets)
	return t
}

func (t *Templates) snapshot() map[Format]TemplateSet {
	return *t.sets.Load()
}

func (t *Templates) update(f Format, fn func(TemplateSet, bool) TemplateSet) error {
	if f == "" {
		return fmt.Errorf("%w: empty format name", ErrUnsupportedFormat)
	}
	if f.Structured() {
		return fmt.Errorf("%w: %q does not use templates", ErrUnsupportedFormat, f)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	next := maps.Clone(t.snapshot())
	cur, ok := next[f]
	next[f] = fn(cur, ok)
	t.sets.Store(&next)
	return nil
}

// Register installs set for f, replacing any existing set.
func (t *Templates) Register(f Format, set TemplateSet) error {
	return t.update(f, func(TemplateSet, bool) TemplateSet {
		return set.clone()
	})
}

// Merge adds the templates of set to those already registered for f.
// Keys present in both take the value from set.
func (t *Templates) Merge(f Format, set TemplateSet) error {
	return t.update(f, func(cur TemplateSet, ok bool) TemplateSet {
		if !ok {
			return set.clone()
		}
		merged := cur.clone()
		if merged.Templates == nil {
			merged.Templates = make(map[string]string, len(set.Templates))
		}
		maps.Copy(merged.Templates, set.Templates)
		merged.EscapeContext = merged.EscapeContext || set.EscapeContext
		return merged
	})
}

// Has reports whether a set is registered for f.
func (t *Templates) Has(f Format) bool {
	_, ok := t.snapshot()[f]
	return ok
}

// Set returns a copy of the set registered for f.
func (t *Templates) Set(f Format) (TemplateSet, bool) {
	set, ok := t.snapshot()[f]
	if !ok {
		return TemplateSet{}, false
	}
	return set.clone(), true
}

// Lookup returns the template stored under key for f, falling back to the
// base set when f is unknown or lacks the key.
func (t *Templates) Lookup(f Format, key string) (string, bool) {
	sets := t.snapshot()
	if tpl, ok := sets[f].Templates[key]; ok {
		return tpl, true
	}
	tpl, ok := sets[FormatBase].Templates[key]
	return tpl, ok
}

// Formats returns the registered format names in sorted order.
func (t *Templates) Formats() []Format {
	return slices.Sorted(maps.Keys(t.snapshot()))
}

// Clone returns an independent registry holding the same sets.
func (t *Templates) Clone() *Templates {
	sets := t.snapshot()
	next := make(map[Format]TemplateSet, len(sets))
	for f, set := range sets {
		next[f] = set.clone()
	}
	c := &Templates{}
	c.sets.Store(&next)
	return c
}

// Insert replaces each {:key} placeholder in tpl with values[key].
// Placeholders without a value are left in place.
func Insert(tpl string, values map[string]string) string {
	m := make(map[string]any, len(values))
	for k, v := range values {
		m[k] = v
	}
	return fasttemplate.ExecuteStringStd(tpl, placeholderOpen, placeholderClose, m)
}
