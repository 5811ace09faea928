package dbg

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// Visibility is the access tier a field is reported under.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

// String returns the tier name.
func (v Visibility) String() string {
	switch v {
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "public"
	}
}

// Field is one named value reported by [DebugFielder].
type Field struct {
	Name       string
	Visibility Visibility
	Value      any
}

// DebugFielder lists the fields of a value for the exporter, replacing
// reflection based enumeration.
type DebugFielder interface {
	DebugFields() []Field
}

// DebugInfoer returns a summary of a value's state. The exporter renders the
// returned map in place of the value's fields. A returned error or a panic
// is reported as "(unable to export object)".
type DebugInfoer interface {
	DebugInfo() (map[string]any, error)
}

type field struct {
	name  string
	vis   Visibility
	value reflect.Value
}

// objectFields enumerates v's fields, public first, then protected, then private.
func objectFields(v reflect.Value) (fields []field, err error) {
	if v.CanInterface() {
		if f, ok := v.Interface().(DebugFielder); ok {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("debug fields: %v", r)
				}
			}()
			for _, df := range f.DebugFields() {
				fields = append(fields, field{name: df.Name, vis: df.Visibility, value: reflect.ValueOf(df.Value)})
			}
			sortFields(fields)
			return fields, nil
		}
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil
	}
	collectFields(v, false, map[uintptr]bool{}, &fields)
	sortFields(fields)
	return fields, nil
}

// collectFields flattens embedded structs. Unexported fields reached through
// an embedded struct are protected; the type's own unexported fields are private.
func collectFields(v reflect.Value, embedded bool, seen map[uintptr]bool, out *[]field) {
	t := v.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		fv := v.Field(i)
		if sf.Anonymous {
			if inner, ok := embeddedStruct(fv, seen); ok {
				collectFields(inner, true, seen, out)
				continue
			}
		}
		vis := Public
		if !sf.IsExported() {
			vis = Private
			if embedded {
				vis = Protected
			}
		}
		*out = append(*out, field{name: sf.Name, vis: vis, value: fv})
	}
}

func embeddedStruct(v reflect.Value, seen map[uintptr]bool) (reflect.Value, bool) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() || seen[v.Pointer()] {
			return v, false
		}
		seen[v.Pointer()] = true
		v = v.Elem()
	}
	return v, v.Kind() == reflect.Struct
}

func sortFields(fields []field) {
	slices.SortStableFunc(fields, func(a, b field) int {
		return cmp.Compare(a.vis, b.vis)
	})
}
