package stringutil

import (
	"bytes"
	"regexp"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	jsdocLinkRegex  = regexp.MustCompile(`\{@link\s+([^}\s|]+)(?:\s*\|\s*|\s+)?([^}]*)\}`)
	htmlAnchorRegex = regexp.MustCompile(`(?is)<a\s[^>]*?href\s*=\s*["']([^"']*)["'][^>]*>(.*?)</a>`)
	urlRegex        = regexp.MustCompile(`https?://[^\s<>()"'\]\[{}|]+`)
)

var markdown = goldmark.New()

type replacement struct {
	start, stop int
	with        []byte
}

// StripLinks replaces every link in s with its label and returns the
// cleaned text along with the link targets. Targets are reported jsdoc
// {@link} tags first, then HTML anchors, then markdown links and autolinks.
func StripLinks(s string) (string, []string) {
	var links []string

	s = jsdocLinkRegex.ReplaceAllStringFunc(s, func(m string) string {
		sub := jsdocLinkRegex.FindStringSubmatch(m)
		links = append(links, sub[1])
		if sub[2] != "" {
			return sub[2]
		}
		return sub[1]
	})
	s = htmlAnchorRegex.ReplaceAllStringFunc(s, func(m string) string {
		sub := htmlAnchorRegex.FindStringSubmatch(m)
		links = append(links, sub[1])
		return sub[2]
	})

	src := []byte(s)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var reps []replacement
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			links = append(links, string(node.Destination))
			if r, ok := linkReplacement(node, src); ok {
				reps = append(reps, r)
			}
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			url := node.URL(src)
			links = append(links, string(url))
			if r, ok := autoLinkReplacement(node, src, url); ok {
				reps = append(reps, r)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	if len(reps) == 0 {
		return s, links
	}
	sort.Slice(reps, func(i, j int) bool { return reps[i].start < reps[j].start })

	var out bytes.Buffer
	last := 0
	for _, r := range reps {
		if r.start < last {
			continue
		}
		out.Write(src[last:r.start])
		out.Write(r.with)
		last = r.stop
	}
	out.Write(src[last:])
	return out.String(), links
}

// linkReplacement locates "[label](dest)" around the label text of n.
func linkReplacement(n *ast.Link, src []byte) (replacement, bool) {
	first, last := textBounds(n)
	if first < 1 || last > len(src) {
		return replacement{}, false
	}
	open := first - 1
	for open > 0 && isInlineDelimiter(src[open]) {
		open--
	}
	closing := last
	for closing < len(src) && isInlineDelimiter(src[closing]) {
		closing++
	}
	if src[open] != '[' || !bytes.HasPrefix(src[closing:], []byte("](")) {
		return replacement{}, false
	}
	depth := 0
	for i := closing + 2; i < len(src); i++ {
		switch src[i] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return replacement{start: open, stop: i + 1, with: src[open+1 : closing]}, true
			}
			depth--
		}
	}
	return replacement{}, false
}

func isInlineDelimiter(c byte) bool {
	return c == '*' || c == '_' || c == '~' || c == '`'
}

func autoLinkReplacement(n *ast.AutoLink, src, url []byte) (replacement, bool) {
	idx := bytes.Index(src, append(append([]byte("<"), url...), '>'))
	if idx < 0 {
		return replacement{}, false
	}
	return replacement{start: idx, stop: idx + len(url) + 2, with: url}, true
}

// textBounds returns the byte range spanned by the text descendants of n.
func textBounds(n ast.Node) (int, int) {
	first, last := -1, -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			if first < 0 || t.Segment.Start < first {
				first = t.Segment.Start
			}
			if t.Segment.Stop > last {
				last = t.Segment.Stop
			}
		}
		return ast.WalkContinue, nil
	})
	return first, last
}

// URLs returns every http or https URL found in s.
func URLs(s string) []string {
	return urlRegex.FindAllString(s, -1)
}
