package dbg

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Markers written in place of values the exporter does not descend into.
const (
	MaxDepthMarker  = "[maximum depth reached]"
	RecursionMarker = "[recursion]"
	UnableMarker    = "(unable to export object)"
)

// Export renders v as indented text, descending at most the configured
// default depth.
func (d *Debugger) Export(v any) string {
	return d.ExportDepth(v, d.depth)
}

// ExportDepth renders v, crossing at most depth container or object
// boundaries before writing [MaxDepthMarker].
func (d *Debugger) ExportDepth(v any, depth int) string {
	return d.export(reflect.ValueOf(v), depth, 0)
}

func (d *Debugger) export(v reflect.Value, depth, indent int) string {
	kind, v := classify(v)
	switch kind {
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindInt:
		return "(int) " + formatInt(v)
	case KindFloat:
		return "(float) " + strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits())
	case KindString:
		s := v.String()
		if strings.TrimSpace(s) == "" {
			return "''"
		}
		return "'" + s + "'"
	case KindSequence, KindMap:
		return d.container(v, depth-1, indent+1)
	case KindResource:
		return "resource(" + v.Type().String() + ")"
	case KindNull:
		return "null"
	case KindObject:
		return d.object(v, depth-1, indent+1)
	default:
		return "unknown"
	}
}

func formatInt(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	default:
		return strconv.FormatInt(v.Int(), 10)
	}
}

type entry struct {
	key   reflect.Value
	value reflect.Value
}

func (d *Debugger) container(v reflect.Value, depth, indent int) string {
	var brk, end string
	if v.Len() > 0 {
		brk = "\n" + strings.Repeat(d.indent, indent)
		end = "\n" + strings.Repeat(d.indent, indent-1)
	}
	var b strings.Builder
	b.WriteString("[")
	if depth >= 0 {
		for i, e := range entries(v) {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(brk)
			b.WriteString(d.export(e.key, d.depth, 0))
			b.WriteString(" => ")
			switch {
			case d.redactedKey(e.key):
				b.WriteString(d.masked())
			case sameContainer(v, e.value):
				b.WriteString(RecursionMarker)
			default:
				b.WriteString(d.export(e.value, depth, indent))
			}
		}
	} else {
		b.WriteString(brk + MaxDepthMarker)
	}
	b.WriteString(end + "]")
	return b.String()
}

func (d *Debugger) object(v reflect.Value, depth, indent int) string {
	name := typeName(v)
	brk := "\n" + strings.Repeat(d.indent, indent)
	end := "\n" + strings.Repeat(d.indent, indent-1)

	var b strings.Builder
	b.WriteString("object(" + name + ") {")
	if depth < 0 {
		b.WriteString(brk + MaxDepthMarker + end + "}")
		return b.String()
	}

	if info, ok := debugInfoer(v); ok {
		m, err := callDebugInfo(info)
		if err != nil {
			d.logger.Debug().Err(err).Str("type", name).Msg("Debug view failed")
			b.WriteString(brk + UnableMarker + end + "}")
			return b.String()
		}
		if len(m) == 0 {
			return b.String() + "}"
		}
		for i, e := range entries(reflect.ValueOf(m)) {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(brk)
			b.WriteString(d.export(e.key, d.depth, 0))
			b.WriteString(" => ")
			if d.redactedKey(e.key) {
				b.WriteString(d.masked())
			} else {
				b.WriteString(d.export(e.value, depth, indent))
			}
		}
		b.WriteString(end + "}")
		return b.String()
	}

	fields, err := objectFields(v)
	if err != nil {
		d.logger.Debug().Err(err).Str("type", name).Msg("Debug fields failed")
		b.WriteString(brk + UnableMarker + end + "}")
		return b.String()
	}
	if len(fields) == 0 {
		return b.String() + "}"
	}
	for _, f := range fields {
		b.WriteString(brk)
		if f.vis != Public {
			b.WriteString("[" + f.vis.String() + "] ")
		}
		b.WriteString(f.name + " => ")
		if d.Redacted(f.name) {
			b.WriteString(d.masked())
		} else {
			b.WriteString(d.export(f.value, depth, indent))
		}
	}
	b.WriteString(end + "}")
	return b.String()
}

func debugInfoer(v reflect.Value) (DebugInfoer, bool) {
	if !v.CanInterface() {
		return nil, false
	}
	info, ok := v.Interface().(DebugInfoer)
	return info, ok
}

func callDebugInfo(info DebugInfoer) (m map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("debug info: %v", r)
		}
	}()
	return info.DebugInfo()
}

// entries lists a sequence by index or a map by sorted key.
func entries(v reflect.Value) []entry {
	out := make([]entry, 0, v.Len())
	if v.Kind() != reflect.Map {
		for i := range v.Len() {
			out = append(out, entry{key: reflect.ValueOf(i), value: v.Index(i)})
		}
		return out
	}
	iter := v.MapRange()
	for iter.Next() {
		out = append(out, entry{key: iter.Key(), value: iter.Value()})
	}
	slices.SortFunc(out, func(a, b entry) int {
		return compareKeys(a.key, b.key)
	})
	return out
}

func compareKeys(a, b reflect.Value) int {
	a, b = unwrap(a), unwrap(b)
	if !a.IsValid() || !b.IsValid() {
		return cmp.Compare(boolInt(a.IsValid()), boolInt(b.IsValid()))
	}
	if a.Kind() != b.Kind() {
		return cmp.Compare(a.Kind(), b.Kind())
	}
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return strings.Compare(a.String(), b.String())
	case reflect.Bool:
		return cmp.Compare(boolInt(a.Bool()), boolInt(b.Bool()))
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// sameContainer reports whether value refers to container itself.
func sameContainer(container, value reflect.Value) bool {
	value = unwrap(value)
	if !value.IsValid() || value.Kind() != container.Kind() {
		return false
	}
	switch container.Kind() {
	case reflect.Map:
		return value.UnsafePointer() == container.UnsafePointer()
	case reflect.Slice:
		return container.Len() > 0 && value.Len() == container.Len() &&
			value.UnsafePointer() == container.UnsafePointer()
	}
	return false
}
