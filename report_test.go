package dbg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/dbg"
)

func TestRenderError(t *testing.T) {
	t.Parallel()
	d := fixtureDebugger()
	r := dbg.ErrorReport{Level: "Warning", Code: 2, Description: "bad input", File: "/app/x.go", Line: 7, Info: "see logs"}

	assert.Equal(t, "Warning (2): bad input in [/app/x.go, line 7]", d.RenderError(r))
	assert.Equal(t,
		"Warning: 2 :: bad input on line 7 of APP/x.go\nsee logs",
		d.RenderError(r, dbg.WithFormat(dbg.FormatText)),
	)
	assert.Empty(t, d.RenderError(r, dbg.WithFormat(dbg.FormatJS)))
	assert.Equal(t,
		"Notice (0): gone in [[internal], line ??]",
		d.RenderError(dbg.ErrorReport{Level: "Notice", Description: "gone"}),
	)
}

func TestRenderErrorWithTraceAndContext(t *testing.T) {
	t.Parallel()
	d := fixtureDebugger(dbg.WithTemplateSet("custom", dbg.TemplateSet{
		Templates: map[string]string{dbg.KeyError: "{:description}\n{:trace}\n{:context}"},
	}))
	r := dbg.ErrorReport{Description: "bad", Context: map[string]any{"a": 1}}
	want := "bad\n" +
		"app.Server::Handle() - APP/handler.go, line 10\n" +
		"[\n\t'a' => (int) 1\n]"
	assert.Equal(t, want, d.RenderError(r, dbg.WithFormat("custom"), dbg.WithDepth(1)))
}

func TestRenderErrorFallback(t *testing.T) {
	t.Parallel()
	d := fixtureDebugger()
	require.NoError(t, d.Templates().Register("bare", dbg.TemplateSet{}))
	r := dbg.ErrorReport{Level: "Fatal", Code: 1, Description: "x", File: "/f.go", Line: 3}
	assert.Equal(t, "Fatal (1): x in [/f.go, line 3]", d.RenderError(r, dbg.WithFormat("bare")))
}

func TestRenderContext(t *testing.T) {
	t.Parallel()
	d := dbg.New()
	assert.Equal(t,
		`<pre class="dbg-error context"><b>Context</b> <p>&#39;&lt;b&gt;&#39;</p></pre>`,
		d.RenderContext(dbg.FormatHTML, "<b>"),
	)
	assert.Equal(t, "Context:\n(int) 1\n", d.RenderContext(dbg.FormatText, 1))
	assert.Equal(t, "Context:\n'<b>'\n", d.RenderContext("", "<b>"))
	assert.Empty(t, d.RenderContext(dbg.FormatJS, "x"))
}

func TestRenderTrace(t *testing.T) {
	t.Parallel()
	d := fixtureDebugger()
	assert.Equal(t,
		`<pre class="stack-trace">app.Server::Handle() - APP/handler.go, line 10</pre>`,
		d.RenderTrace(dbg.WithFormat(dbg.FormatJS), dbg.WithDepth(1)),
	)
	assert.Equal(t,
		"Trace:\napp.Server::Handle() - APP/handler.go, line 10\n",
		d.RenderTrace(dbg.WithDepth(1)),
	)
	assert.Equal(t,
		"Trace:\n/app/handler.go:10\n",
		d.RenderTrace(dbg.WithFormat(dbg.FormatPoints), dbg.WithDepth(1)),
	)
}
