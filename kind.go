package dbg

import "reflect"

// Kind is the type tag the exporter assigns to a value.
type Kind int

const (
	KindUnknown Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMap
	KindResource
	KindObject
)

var kindNames = [...]string{
	KindUnknown:  "unknown",
	KindNull:     "null",
	KindBool:     "boolean",
	KindInt:      "integer",
	KindFloat:    "float",
	KindString:   "string",
	KindSequence: "array",
	KindMap:      "map",
	KindResource: "resource",
	KindObject:   "object",
}

// String returns the tag name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// KindOf classifies v.
func KindOf(v any) Kind {
	k, _ := classify(reflect.ValueOf(v))
	return k
}

// TypeOf returns the tag name of v, or the type name when v is an object.
func TypeOf(v any) string {
	k, rv := classify(reflect.ValueOf(v))
	if k == KindObject {
		return typeName(rv)
	}
	return k.String()
}

var (
	debugInfoerType  = reflect.TypeFor[DebugInfoer]()
	debugFielderType = reflect.TypeFor[DebugFielder]()
)

// classify tags v and returns the value the tag applies to. Interfaces and
// pointers to non-objects are looked through; objects are checked first so
// a map or slice type with a debug capability is still an object.
func classify(v reflect.Value) (Kind, reflect.Value) {
	for {
		if !v.IsValid() {
			return KindNull, v
		}
		if isObject(v) {
			return KindObject, v
		}
		switch v.Kind() {
		case reflect.Interface, reflect.Pointer:
			if v.IsNil() {
				return KindNull, v
			}
			v = v.Elem()
			continue
		case reflect.Func, reflect.Chan, reflect.UnsafePointer:
			if v.IsNil() {
				return KindNull, v
			}
			return KindResource, v
		case reflect.String:
			return KindString, v
		case reflect.Slice, reflect.Array:
			return KindSequence, v
		case reflect.Map:
			return KindMap, v
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return KindInt, v
		case reflect.Bool:
			return KindBool, v
		case reflect.Float32, reflect.Float64:
			return KindFloat, v
		}
		return KindUnknown, v
	}
}

func isObject(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface:
		return false
	case reflect.Pointer:
		if v.IsNil() {
			return false
		}
		if v.Elem().Kind() == reflect.Struct {
			return true
		}
	case reflect.Struct:
		return true
	}
	if !v.CanInterface() {
		return false
	}
	if isNilable(v) && v.IsNil() {
		return false
	}
	t := v.Type()
	return t.Implements(debugInfoerType) || t.Implements(debugFielderType)
}

func isNilable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return true
	}
	return false
}

// typeName names an object by its concrete type, without pointer markers.
func typeName(v reflect.Value) string {
	t := v.Type()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}
