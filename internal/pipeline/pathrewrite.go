package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// pathAttrs lists the attribute resolved for each element.
var pathAttrs = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

// ResolveRelativePaths turns relative img[src] and a[href] values in a
// fragment into absolute file:// URLs rooted at sourceDir, so the HTML still
// points at the right files once it leaves the source directory.
// If sourceDir is empty, the fragment is returned unchanged.
//
// URLs, anchors, absolute paths and paths escaping sourceDir are left alone.
func ResolveRelativePaths(fragment, sourceDir string) (string, error) {
	if sourceDir == "" || !strings.Contains(fragment, "<") {
		return fragment, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	nodes, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	changed := false
	for _, n := range nodes {
		changed = resolveTree(n, absSourceDir) || changed
	}
	if !changed {
		return fragment, nil
	}
	return renderNodes(nodes)
}

// parseFragment parses HTML in a <body> context, so no <html> or <body>
// wrapper is added.
func parseFragment(content string) ([]*html.Node, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	return html.ParseFragment(strings.NewReader(content), body)
}

func renderNodes(nodes []*html.Node) (string, error) {
	var buf strings.Builder
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// resolveTree rewrites path attributes in n and its descendants and reports
// whether anything changed.
func resolveTree(n *html.Node, sourceDir string) bool {
	changed := false
	if n.Type == html.ElementNode {
		if key, ok := pathAttrs[n.DataAtom]; ok {
			changed = resolveAttr(n, key, sourceDir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		changed = resolveTree(c, sourceDir) || changed
	}
	return changed
}

func resolveAttr(n *html.Node, key, sourceDir string) bool {
	changed := false
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}

		absPath := filepath.Join(sourceDir, attr.Val)
		if !isPathUnderDir(absPath, sourceDir) {
			continue
		}
		n.Attr[i].Val = pathToFileURL(absPath)
		changed = true
	}
	return changed
}

// isRelativePath reports whether path is a relative filesystem path.
func isRelativePath(path string) bool {
	switch {
	case path == "",
		strings.HasPrefix(path, "#"),
		strings.HasPrefix(path, "//"),
		strings.HasPrefix(path, "data:"),
		strings.Contains(path, "://"),
		strings.HasPrefix(path, "mailto:"),
		filepath.IsAbs(path):
		return false
	}
	return true
}

// isPathUnderDir checks that absPath does not escape dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
// filepath.ToSlash handles Windows backslashes.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
