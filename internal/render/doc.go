// Package render converts a constrained subset of GitHub Flavored Markdown
// into an HTML fragment.
//
// # Stages
//
// A conversion runs three stages, each consuming the previous stage's output:
//
//  1. Reference extraction: link reference definitions ([key]: url) are
//     removed from the text and collected into a ReferenceTable.
//  2. Block passes over a node sequence: fenced code, blockquotes, headings,
//     horizontal rules, tables, lists, then paragraphs.
//  3. Inline transforms on each node's text: images, links, reference links,
//     autolinks, bold, italic, strikethrough, inline code.
//
// The fence pass turns code blocks into opaque nodes, so no later pass (block
// or inline) ever rewrites code content.
//
// # Guarantees
//
// Render never fails. Malformed syntax (an unmatched **, an unresolved
// reference, an unterminated fence) is passed through as literal text.
// Render is not idempotent: feeding its output back in may change it.
//
// Nested lists are emitted as siblings of the preceding <li>, not children:
//
//	<ul>
//	<li>parent</li>
//	<ul>
//	<li>child</li>
//	</ul>
//	</ul>
//
// Downstream consumers relying on nesting should be aware of this shape.
//
// All compiled patterns are package-level values built once at init and never
// written afterwards, so Render is safe for concurrent use.
package render
