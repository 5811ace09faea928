package dbg

import (
	"reflect"
	"strings"
)

func keySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[strings.ToLower(k)] = struct{}{}
	}
	return set
}

// Redacted reports whether values stored under name are masked.
func (d *Debugger) Redacted(name string) bool {
	if len(d.redact) == 0 {
		return false
	}
	_, ok := d.redact[strings.ToLower(name)]
	return ok
}

func (d *Debugger) redactedKey(key reflect.Value) bool {
	for key.IsValid() && key.Kind() == reflect.Interface {
		if key.IsNil() {
			return false
		}
		key = key.Elem()
	}
	return key.IsValid() && key.Kind() == reflect.String && d.Redacted(key.String())
}

func (d *Debugger) masked() string {
	return "'" + d.mask + "'"
}
