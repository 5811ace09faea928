// Package dbg renders values and call stacks as bounded, human-readable text
// for error pages, logs and plain-text diagnostics.
//
// The central type is [Debugger]. Build one with [New] and functional
// options, or use the process-wide instance through [Instance], [InstanceOf]
// and the package-level helpers [Export], [Trace], [Frames] and [Points].
//
// # Exporting values
//
// [Debugger.Export] walks a value of any shape and returns an indented tree:
//
//	d := dbg.New()
//	fmt.Println(d.Export(map[string]any{"id": 7, "tags": []string{"a"}}))
//
// Every value gets one [Kind]. Scalars render inline (true, (int) 7,
// (float) 1.5, 'text', null). Slices, arrays and maps render as bracketed
// key => value entries with map keys sorted. Structs render as
// object(pkg.Type) { ... } with exported fields first, then unexported fields
// promoted from embedded structs as [protected], then the type's own
// unexported fields as [private].
//
// Descent is bounded: each container or object boundary uses one unit of the
// depth budget (default [DefaultDepth]), and an exhausted budget writes
// [MaxDepthMarker]. An entry holding its own container writes
// [RecursionMarker].
//
// Types control their own rendering by implementing:
//
//   - [DebugInfoer]: a map rendered in place of the fields
//   - [DebugFielder]: an explicit field list
//
// Values stored under sensitive keys (see [DefaultRedactedKeys]) are masked.
// Use [WithRedactedKeys], [WithMask] or [WithoutRedaction] to change that.
//
// # Tracing
//
// [Debugger.Trace] renders the caller's stack, one line per frame, with the
// traceLine template of the selected [Format]. [Debugger.Frames] and
// [Debugger.Points] return records instead of text:
//
//	fmt.Println(d.Trace(dbg.WithDepth(5), dbg.WithFormat(dbg.FormatBase)))
//
// Frames whose caller signature is excluded (see [DefaultExclude] and
// [WithExclude]) are skipped without counting against the depth.
//
// # Templates
//
// Each format owns a [TemplateSet] of {:placeholder} strings kept in a
// [Templates] registry. Formats without a key fall back to the base set.
// [Debugger.RenderTrace], [Debugger.RenderContext] and [Debugger.RenderError]
// wrap their output in the format's trace, context and error templates.
//
// # Encoding records
//
// [Encode] and [EncodeIter] write [Frame] and [Point] records, or any type
// implementing [Rower], as JSON, JSONL, YAML, CSV, TSV, a table, Markdown,
// HTML, plain text or a Go template ([GoTemplate]). Use [ParseEncoding] to
// turn a flag value into an [Encoding].
//
// # Configuration
//
// [LoadConfig] reads a TOML or YAML file plus DBG_ environment variables into
// a [Config]; [Config.Options] turns it into Debugger options.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnsupportedFormat]: unknown format name
//   - [ErrUnsupportedEncoding]: unknown encoding name
//   - [ErrMissingInterface]: records don't implement the required interface
//   - [ErrInvalidTemplate]: invalid go-template syntax
//   - [ErrUnknownKind], [ErrInvalidKind], [ErrDuplicateKind]: instance kinds
//   - [ErrInvalidConfig]: settings that cannot be applied
//
// Exporting and tracing never fail; problems degrade to placeholder text.
package dbg
