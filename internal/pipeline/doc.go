// Package pipeline implements the stages around the Markdown renderer.
//
// A conversion runs these stages in order:
//   - Markdown preprocessing (BOM removal, line endings, blank line runs)
//   - Markdown to HTML fragment via an HTMLConverter (builtin or goldmark)
//   - Syntax highlighting of fenced code with inline chroma styles
//   - Relative image and link paths resolved against the source directory
//   - Compaction for pasting into rich text editors
//   - Wrapping the fragment in a standalone document with a stylesheet
//
// Every stage works on strings and keeps no state between calls, so the
// stage values can be shared across goroutines.
package pipeline
