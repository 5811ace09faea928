package dbg_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/bjaus/dbg"
)

func TestBuiltinTemplates(t *testing.T) {
	t.Parallel()
	tpl := dbg.NewTemplates()
	assert.Equal(t,
		[]dbg.Format{dbg.FormatBase, dbg.FormatHTML, dbg.FormatJS, dbg.FormatLog, dbg.FormatText},
		tpl.Formats(),
	)

	line, ok := tpl.Lookup(dbg.FormatText, dbg.KeyTraceLine)
	require.True(t, ok)
	assert.Equal(t, "{:reference} - {:path}, line {:line}", line)

	trace, ok := tpl.Lookup(dbg.Format("unregistered"), dbg.KeyTrace)
	require.True(t, ok)
	assert.Equal(t, "Trace:\n{:trace}\n", trace)

	_, ok = tpl.Lookup(dbg.FormatLog, dbg.KeyInfo)
	assert.False(t, ok)

	html, ok := tpl.Set(dbg.FormatHTML)
	require.True(t, ok)
	assert.True(t, html.EscapeContext)
}

func TestTemplatesRegister(t *testing.T) {
	t.Parallel()
	tpl := dbg.NewTemplates()
	require.NoError(t, tpl.Register("slack", dbg.TemplateSet{
		Templates: map[string]string{dbg.KeyTraceLine: "`{:path}:{:line}`"},
	}))
	assert.True(t, tpl.Has("slack"))

	got, ok := tpl.Lookup("slack", dbg.KeyTraceLine)
	require.True(t, ok)
	assert.Equal(t, "`{:path}:{:line}`", got)

	require.ErrorIs(t, tpl.Register("", dbg.TemplateSet{}), dbg.ErrUnsupportedFormat)
	require.ErrorIs(t, tpl.Register(dbg.FormatPoints, dbg.TemplateSet{}), dbg.ErrUnsupportedFormat)
}

func TestTemplatesMerge(t *testing.T) {
	t.Parallel()
	tpl := dbg.NewTemplates()
	require.NoError(t, tpl.Merge(dbg.FormatLog, dbg.TemplateSet{
		Templates:     map[string]string{dbg.KeyTrace: "== {:trace} =="},
		EscapeContext: true,
	}))

	set, ok := tpl.Set(dbg.FormatLog)
	require.True(t, ok)
	assert.Equal(t, "== {:trace} ==", set.Templates[dbg.KeyTrace])
	assert.Equal(t, "{:reference} - {:path}, line {:line}", set.Templates[dbg.KeyTraceLine])
	assert.True(t, set.EscapeContext)

	require.NoError(t, tpl.Merge("fresh", dbg.TemplateSet{Templates: map[string]string{dbg.KeyCode: "{:code}"}}))
	assert.True(t, tpl.Has("fresh"))
}

func TestTemplatesCopies(t *testing.T) {
	t.Parallel()
	tpl := dbg.NewTemplates()

	set, _ := tpl.Set(dbg.FormatBase)
	set.Templates[dbg.KeyTrace] = "changed"
	got, _ := tpl.Lookup(dbg.FormatBase, dbg.KeyTrace)
	assert.Equal(t, "Trace:\n{:trace}\n", got)

	clone := tpl.Clone()
	require.NoError(t, clone.Register("only-in-clone", dbg.TemplateSet{}))
	assert.False(t, tpl.Has("only-in-clone"))

	src := map[string]string{dbg.KeyTrace: "a"}
	require.NoError(t, tpl.Register("owned", dbg.TemplateSet{Templates: src}))
	src[dbg.KeyTrace] = "b"
	got, _ = tpl.Lookup("owned", dbg.KeyTrace)
	assert.Equal(t, "a", got)
}

func TestTemplatesConcurrent(t *testing.T) {
	t.Parallel()
	tpl := dbg.NewTemplates()
	var g errgroup.Group
	for i := range 8 {
		g.Go(func() error {
			return tpl.Register(dbg.Format(fmt.Sprintf("f%d", i)), dbg.TemplateSet{
				Templates: map[string]string{dbg.KeyTrace: "x"},
			})
		})
		g.Go(func() error {
			if _, ok := tpl.Lookup(dbg.FormatLog, dbg.KeyTraceLine); !ok {
				return fmt.Errorf("lookup %d failed", i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Len(t, tpl.Formats(), 13)
}

func TestInsert(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		tpl    string
		values map[string]string
		want   string
	}{
		{"all known", "{:a}-{:b}", map[string]string{"a": "1", "b": "2"}, "1-2"},
		{"repeated", "{:a}{:a}", map[string]string{"a": "x"}, "xx"},
		{"unknown kept", "{:a} {:missing}", map[string]string{"a": "1"}, "1 {:missing}"},
		{"no placeholders", "plain", nil, "plain"},
		{"braces alone", "{a}", map[string]string{"a": "1"}, "{a}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, dbg.Insert(tt.tpl, tt.values))
		})
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()
	assert.Len(t, dbg.Formats(), 7)

	f, err := dbg.ParseFormat("HTML")
	require.NoError(t, err)
	assert.Equal(t, dbg.FormatHTML, f)

	_, err = dbg.ParseFormat("xml")
	require.ErrorIs(t, err, dbg.ErrUnsupportedFormat)

	assert.True(t, dbg.FormatPoints.Structured())
	assert.False(t, dbg.FormatLog.Structured())
}

func TestSetOutputFormat(t *testing.T) {
	t.Parallel()
	d := dbg.New()
	assert.Equal(t, dbg.FormatLog, d.OutputFormat())

	require.NoError(t, d.SetOutputFormat(dbg.FormatArray))
	assert.Equal(t, dbg.FormatArray, d.OutputFormat())

	require.ErrorIs(t, d.SetOutputFormat("xml"), dbg.ErrUnsupportedFormat)
	assert.Equal(t, dbg.FormatArray, d.OutputFormat())

	require.NoError(t, d.Templates().Register("custom", dbg.TemplateSet{}))
	require.NoError(t, d.SetOutputFormat("custom"))
}
