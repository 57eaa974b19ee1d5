package stringutil

import (
	"regexp"
	"strings"
)

var (
	fencedCodeRegex  = regexp.MustCompile("(?s)```.*?```\\s*")
	preBlockRegex    = regexp.MustCompile(`(?is)<pre>.*?</pre>\s*`)
	exampleLineRegex = regexp.MustCompile(`(?m)^\s*@(?:example|sample)\b.*$\n?`)
	listItemRegex    = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+]|\d+\.)[ \t]+`)

	paragraphRegex = regexp.MustCompile(`\s{2,}`)
	blankLineRegex = regexp.MustCompile(`\n[ \t]*\n\s*`)
	spaceRegex     = regexp.MustCompile(`\s+`)
)

// RemoveExamples drops fenced code blocks, <pre> blocks and @example or
// @sample lines from a description.
func RemoveExamples(s string) string {
	s = fencedCodeRegex.ReplaceAllString(s, "")
	s = preBlockRegex.ReplaceAllString(s, "")
	s = exampleLineRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// TransformLists rewrites markdown list items to "- " bullets and makes
// sure a list is separated from the preceding paragraph by a blank line.
func TransformLists(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	inList := false
	for _, line := range lines {
		loc := listItemRegex.FindStringIndex(line)
		if loc == nil {
			if strings.TrimSpace(line) == "" {
				inList = false
			}
			out = append(out, line)
			continue
		}
		if !inList && len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
			out = append(out, "")
		}
		inList = true
		out = append(out, "- "+line[loc[1]:])
	}
	return strings.Join(out, "\n")
}

// Normalize collapses whitespace runs into single spaces. With
// preserveParagraphs set, runs of two or more whitespace characters
// become paragraph breaks instead.
func Normalize(s string, preserveParagraphs bool) string {
	if !preserveParagraphs {
		return spaceRegex.ReplaceAllString(s, " ")
	}
	parts := paragraphRegex.Split(s, -1)
	for i, p := range parts {
		parts[i] = spaceRegex.ReplaceAllString(p, " ")
	}
	return strings.Join(parts, "\n\n")
}

// Pad wraps s into lines of at most wrap characters, each starting with
// prefix. Blank lines separate paragraphs, which are kept apart by a bare
// prefix line, and "- " list items always start a new line. The result
// ends with a newline.
func Pad(s, prefix string, wrap int) string {
	var b strings.Builder
	blank := strings.TrimRight(prefix, " \t")
	paras := blankLineRegex.Split(strings.TrimSpace(s), -1)
	for i, para := range paras {
		if i > 0 {
			b.WriteString(blank + "\n")
		}
		var group []string
		for _, line := range strings.Split(para, "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "- ") && len(group) > 0 {
				wrapWords(&b, group, prefix, wrap)
				group = nil
			}
			group = append(group, strings.Fields(line)...)
		}
		wrapWords(&b, group, prefix, wrap)
	}
	return b.String()
}

func wrapWords(b *strings.Builder, words []string, prefix string, wrap int) {
	line := prefix
	for i, word := range words {
		if i > 0 && len(line)+len(word)+1 > wrap {
			b.WriteString(strings.TrimRight(line, " \t") + "\n")
			line = prefix + word
			continue
		}
		if i > 0 {
			line += " "
		}
		line += word
	}
	b.WriteString(strings.TrimRight(line, " \t") + "\n")
}
