package dbg

import (
	"runtime"
	"strings"
)

// StackFunc captures the calling goroutine's stack, most recent call first.
// Frame 0 is the function that called the StackFunc, skip frames further up
// when skip is positive. Each frame names the called function and carries
// the file and line of the call site inside its caller.
type StackFunc func(skip int) []Frame

const initialStackDepth = 64

// callers is the runtime backed StackFunc. The Go runtime does not expose
// call arguments, so Args is always empty.
func callers(skip int) []Frame {
	pcs := make([]uintptr, initialStackDepth)
	for {
		n := runtime.Callers(skip+2, pcs)
		if n < len(pcs) {
			pcs = pcs[:n]
			break
		}
		pcs = make([]uintptr, len(pcs)*2)
	}
	if len(pcs) == 0 {
		return nil
	}

	var rf []runtime.Frame
	it := runtime.CallersFrames(pcs)
	for {
		f, more := it.Next()
		rf = append(rf, f)
		if !more {
			break
		}
	}

	frames := make([]Frame, len(rf))
	for i, f := range rf {
		class, fn := splitFunction(f.Function)
		frames[i] = Frame{Function: fn, Class: class}
		if i+1 < len(rf) {
			frames[i].File = rf[i+1].File
			frames[i].Line = rf[i+1].Line
		}
	}
	return frames
}

// splitFunction turns a runtime symbol such as
// "github.com/x/pkg.(*Type).Method" into ("pkg.Type", "Method"). Plain
// functions and closures return an empty class and a package qualified name.
func splitFunction(symbol string) (class, fn string) {
	if symbol == "" {
		return "", ""
	}
	name := symbol
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	pkg, sym, ok := cutDot(name)
	if !ok {
		return "", name
	}

	if strings.HasPrefix(sym, "(") {
		end := strings.Index(sym, ")")
		if end < 0 || end+2 > len(sym) {
			return "", name
		}
		recv := strings.TrimPrefix(sym[1:end], "*")
		return pkg + "." + recv, sym[end+2:]
	}

	recv, method, ok := cutDot(sym)
	if !ok || isClosure(method) {
		return "", pkg + "." + sym
	}
	return pkg + "." + recv, method
}

// cutDot splits s around the first dot that is not inside type brackets.
func cutDot(s string) (before, after string, found bool) {
	depth := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case '.':
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return s, "", false
}

// isClosure reports whether a symbol suffix names a function literal, as in
// "Run.func1" or "Run.func1.2" or "Run.gowrap1".
func isClosure(s string) bool {
	head, _, _ := strings.Cut(s, ".")
	for _, prefix := range []string{"func", "gowrap", "deferwrap"} {
		if rest, ok := strings.CutPrefix(head, prefix); ok && rest != "" && isDigits(rest) {
			return true
		}
	}
	return isDigits(head)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
