package dbg

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// DefaultKind is the kind built by [Instance] when nothing else was requested.
const DefaultKind = "default"

// Factory builds a Debugger for a registered kind.
type Factory func() *Debugger

var (
	factoryMu sync.RWMutex
	factories = map[string]kindFactory{
		DefaultKind: {name: DefaultKind, build: func() *Debugger { return New() }},
	}

	instanceMu sync.Mutex
	instance   *Debugger
)

type kindFactory struct {
	name  string
	build Factory
}

// RegisterKind makes a Debugger kind available to [InstanceOf]. Names are
// matched case-insensitively.
func RegisterKind(name string, factory Factory) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidKind)
	}
	if factory == nil {
		return fmt.Errorf("%w: %q has no factory", ErrInvalidKind, name)
	}
	key := strings.ToLower(name)

	factoryMu.Lock()
	defer factoryMu.Unlock()
	if _, exists := factories[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKind, name)
	}
	factories[key] = kindFactory{name: name, build: factory}
	return nil
}

// Kinds returns the registered kind names in sorted order.
func Kinds() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	out := make([]string, 0, len(factories))
	for _, f := range factories {
		out = append(out, f.name)
	}
	slices.Sort(out)
	return out
}

func buildKind(kind string) (*Debugger, error) {
	factoryMu.RLock()
	f, ok := factories[strings.ToLower(kind)]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	d := f.build()
	if d == nil {
		d = New()
	}
	d.kind = f.name
	return d, nil
}

// Instance returns the process-wide Debugger, building the default kind on
// first use.
func Instance() *Debugger {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance == nil {
		instance, _ = buildKind(DefaultKind)
	}
	return instance
}

// InstanceOf returns the process-wide Debugger after making sure it is of
// the given kind. A different kind replaces the held instance. An empty kind
// behaves like [Instance]. The factory runs without the instance lock held,
// so it may use [Instance] and the package-level helpers.
func InstanceOf(kind string) (*Debugger, error) {
	if kind == "" {
		return Instance(), nil
	}
	if d := heldOf(kind); d != nil {
		return d, nil
	}
	d, err := buildKind(kind)
	if err != nil {
		return nil, err
	}

	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance != nil && strings.EqualFold(instance.kind, kind) {
		return instance, nil
	}
	if instance != nil {
		d.logger.Debug().
			Str("from", instance.kind).
			Str("to", d.kind).
			Msg("Replacing debugger instance")
	}
	instance = d
	return d, nil
}

func heldOf(kind string) *Debugger {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance != nil && strings.EqualFold(instance.kind, kind) {
		return instance
	}
	return nil
}

func resetInstance() {
	instanceMu.Lock()
	instance = nil
	instanceMu.Unlock()
}

// Export renders v with the process-wide Debugger.
func Export(v any) string {
	return Instance().Export(v)
}

// ExportDepth renders v to depth with the process-wide Debugger.
func ExportDepth(v any, depth int) string {
	return Instance().ExportDepth(v, depth)
}

// Trace renders the caller's stack with the process-wide Debugger.
func Trace(opts ...TraceOption) string {
	return Instance().Trace(opts...)
}

// Frames returns the caller's stack with the process-wide Debugger.
func Frames(opts ...TraceOption) []Frame {
	return Instance().Frames(opts...)
}

// Points returns the caller's call sites with the process-wide Debugger.
func Points(opts ...TraceOption) []Point {
	return Instance().Points(opts...)
}
