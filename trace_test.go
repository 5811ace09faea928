package dbg_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/dbg"
)

// stackFixture is a captured stack for a Server.Handle request: Handle was
// called from app.serve, which was called from main.main.
func stackFixture() []dbg.Frame {
	return []dbg.Frame{
		{Function: "Trace", Class: "dbg.Debugger", File: "/app/handler.go", Line: 10},
		{Function: "Handle", Class: "app.Server", File: "/app/server.go", Line: 20, Args: []any{"req", 1}},
		{Function: "app.serve", File: "/app/main.go", Line: 30},
		{Function: "main.main"},
	}
}

func fixtureDebugger(opts ...dbg.Option) *dbg.Debugger {
	base := []dbg.Option{
		dbg.WithStack(func(int) []dbg.Frame { return stackFixture() }),
		dbg.WithPathTrimmer(func(p string) string { return strings.Replace(p, "/app", "APP", 1) }),
	}
	return dbg.New(append(base, opts...)...)
}

func TestTraceLog(t *testing.T) {
	t.Parallel()
	want := "app.Server::Handle() - APP/handler.go, line 10\n" +
		"app.serve - APP/server.go, line 20\n" +
		"main.main - APP/main.go, line 30\n" +
		"[main] - [internal], line ??"
	assert.Equal(t, want, fixtureDebugger().Trace())
}

func TestTraceOptions(t *testing.T) {
	t.Parallel()
	d := fixtureDebugger()
	tests := []struct {
		name string
		opts []dbg.TraceOption
		want []string
	}{
		{
			name: "depth",
			opts: []dbg.TraceOption{dbg.WithDepth(1)},
			want: []string{"app.Server::Handle() - APP/handler.go, line 10"},
		},
		{
			name: "zero depth",
			opts: []dbg.TraceOption{dbg.WithDepth(0)},
			want: nil,
		},
		{
			name: "start",
			opts: []dbg.TraceOption{dbg.WithStart(2)},
			want: []string{"main.main - APP/main.go, line 30", "[main] - [internal], line ??"},
		},
		{
			name: "start lowers the frame bound",
			opts: []dbg.TraceOption{dbg.WithStart(2), dbg.WithDepth(3)},
			want: []string{"main.main - APP/main.go, line 30"},
		},
		{
			name: "start at depth",
			opts: []dbg.TraceOption{dbg.WithStart(2), dbg.WithDepth(2)},
			want: nil,
		},
		{
			name: "start past end",
			opts: []dbg.TraceOption{dbg.WithStart(10)},
			want: nil,
		},
		{
			name: "args",
			opts: []dbg.TraceOption{dbg.WithArgs(), dbg.WithDepth(1)},
			want: []string{"app.Server::Handle('req', (int) 1) - APP/handler.go, line 10"},
		},
		{
			name: "excluded frames do not count against depth",
			opts: []dbg.TraceOption{dbg.WithExclude("app.serve"), dbg.WithDepth(2)},
			want: []string{"app.Server::Handle() - APP/handler.go, line 10", "main.main - APP/main.go, line 30"},
		},
		{
			name: "exclude method",
			opts: []dbg.TraceOption{dbg.WithExclude("app.Server::Handle"), dbg.WithDepth(1)},
			want: []string{"app.serve - APP/server.go, line 20"},
		},
		{
			name: "base format",
			opts: []dbg.TraceOption{dbg.WithFormat(dbg.FormatBase), dbg.WithStart(3)},
			want: []string{"[main] - [internal], line ??"},
		},
		{
			name: "points",
			opts: []dbg.TraceOption{dbg.WithFormat(dbg.FormatPoints)},
			want: []string{"/app/handler.go:10", "/app/server.go:20", "/app/main.go:30"},
		},
		{
			name: "array",
			opts: []dbg.TraceOption{dbg.WithFormat(dbg.FormatArray), dbg.WithDepth(2)},
			want: []string{"/app/handler.go:10 dbg.Debugger::Trace", "/app/server.go:20 app.Server::Handle"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := d.Trace(tt.opts...)
			var got []string
			if out != "" {
				got = strings.Split(out, "\n")
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTraceUnknownFormatUsesBase(t *testing.T) {
	t.Parallel()
	d := fixtureDebugger()
	assert.Equal(t, d.Trace(dbg.WithFormat(dbg.FormatBase)), d.Trace(dbg.WithFormat("nope")))
}

func TestTraceCustomTraceLine(t *testing.T) {
	t.Parallel()
	d := fixtureDebugger(dbg.WithTemplateSet("short", dbg.TemplateSet{
		Templates: map[string]string{dbg.KeyTraceLine: "{:file}#{:line} {:class}.{:function}"},
	}))
	out := d.Trace(dbg.WithFormat("short"), dbg.WithDepth(1))
	assert.Equal(t, "/app/handler.go#10 dbg.Debugger.Trace", out)
}

func TestDefaultExclude(t *testing.T) {
	t.Parallel()
	raw := []dbg.Frame{
		{Function: "Trace", Class: "dbg.Debugger", File: "/dbg/instance.go", Line: 133},
		{Function: "dbg.Trace", File: "/app/x.go", Line: 5},
		{Function: "app.run", File: "/app/main.go", Line: 9},
	}
	d := dbg.New(dbg.WithStack(func(int) []dbg.Frame { return raw }))
	assert.Equal(t, "app.run - /app/x.go, line 5\n[main] - /app/main.go, line 9", d.Trace())

	d = dbg.New(dbg.WithStack(func(int) []dbg.Frame { return raw }), dbg.WithDefaultExclude())
	assert.Len(t, strings.Split(d.Trace(), "\n"), 3)
}

func TestFrames(t *testing.T) {
	t.Parallel()
	d := fixtureDebugger()
	want := []dbg.Frame{
		{Function: "app.serve", File: "/app/main.go", Line: 30},
		{Function: "main.main", File: dbg.InternalFile},
	}
	if diff := cmp.Diff(want, d.Frames(dbg.WithStart(2))); diff != "" {
		t.Errorf("Frames mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, d.Frames(dbg.WithDepth(3)), 3)
	assert.Equal(t, []string{"app.serve"}, functions(d.Frames(dbg.WithStart(2), dbg.WithDepth(3))))
	assert.Equal(t, []string{"Trace", "app.serve"},
		functions(d.Frames(dbg.WithExclude("app.serve"), dbg.WithDepth(2))))
	assert.Empty(t, d.Frames(dbg.WithDepth(0)))
}

func functions(frames []dbg.Frame) []string {
	var out []string
	for _, f := range frames {
		out = append(out, f.Function)
	}
	return out
}

func TestPoints(t *testing.T) {
	t.Parallel()
	d := fixtureDebugger()
	want := []dbg.Point{
		{File: "/app/handler.go", Line: 10},
		{File: "/app/server.go", Line: 20},
		{File: "/app/main.go", Line: 30},
	}
	assert.Equal(t, want, d.Points())
	assert.Equal(t, "/app/x.go:??", dbg.Point{File: "/app/x.go"}.String())
	assert.Equal(t, []string{"/app/x.go", "??"}, dbg.Point{File: "/app/x.go"}.Row())
	assert.Equal(t, []string{"/app/x.go", "4"}, dbg.Point{File: "/app/x.go", Line: 4}.Row())
}

func TestWalk(t *testing.T) {
	t.Parallel()
	d := fixtureDebugger()
	var got []string
	for f := range d.Walk() {
		got = append(got, f.Function)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"Trace", "Handle"}, got)
}

func TestFrameRecord(t *testing.T) {
	t.Parallel()
	f := dbg.Frame{Function: "Handle", Class: "app.Server", File: "/app/server.go"}
	assert.Equal(t, "app.Server::Handle", f.Signature())
	assert.Equal(t, dbg.UnknownLine, f.LineString())
	assert.Equal(t, []string{"app.Server::Handle", "/app/server.go", "??"}, f.Row())
	assert.Equal(t, []string{"Function", "File", "Line"}, f.Header())
}

func TestTraceRuntime(t *testing.T) {
	t.Parallel()
	d := dbg.New()
	lines := strings.Split(d.Trace(), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "dbg_test.TestTraceRuntime - "), lines[0])
	assert.Contains(t, lines[0], "trace_test.go, line ")

	for _, p := range d.Points() {
		assert.NotEqual(t, dbg.InternalFile, p.File)
		assert.Positive(t, p.Line)
	}

	frames := d.Frames(dbg.WithDepth(2))
	require.Len(t, frames, 2)
	assert.Equal(t, "dbg.Debugger", frames[0].Class)
	assert.Equal(t, "Frames", frames[0].Function)
}

func helperTrace(d *dbg.Debugger) []dbg.Frame {
	return d.Frames(dbg.WithExclude("dbg_test.helperTrace"), dbg.WithDepth(1))
}

func TestTraceRuntimeExclude(t *testing.T) {
	t.Parallel()
	frames := helperTrace(dbg.New())
	require.Len(t, frames, 1)
	assert.Equal(t, "helperTrace", frames[0].Function[strings.LastIndex(frames[0].Function, ".")+1:])
}
