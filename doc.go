// Package md2html converts Markdown documents to HTML that can be pasted
// into rich-text editors or saved as standalone pages.
//
// # Quick Start
//
// For a bare fragment, call Render. It never fails:
//
//	fragment := md2html.Render("# Hello\n\n**World**")
//
// For a complete document, create a Converter:
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.html", result.HTML, 0644)
//
// # Conversion Pipeline
//
// Convert runs these stages in order, checking the context between them:
//
//  1. Markdown preprocessing (byte order mark, line endings, blank runs)
//  2. Markdown to HTML via the selected engine
//  3. Syntax highlighting of fenced code (builtin engine, when enabled)
//  4. Relative image and link paths resolved against Input.SourceDir
//  5. Paste-friendly compaction (when enabled)
//  6. Document wrapping with the resolved stylesheet
//
// # Engines
//
// EngineBuiltin is the default: a small GitHub-flavored renderer with
// predictable output. EngineGoldmark uses goldmark with the GFM extensions
// and serves as a reference implementation. Both render task items as
// ballot box characters rather than form inputs.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithEngine(md2html.EngineGoldmark),
//	    md2html.WithStyle("github-dark"),
//	    md2html.WithHighlighting("monokai"),
//	    md2html.WithCompact(true),
//	)
//
// A Converter holds no per-call state and is safe for concurrent use.
package md2html
