// Package stringutil cleans documentation text before it is attached to
// declarations: links are stripped and collected, example blocks are
// removed, lists are normalized, and long text is wrapped into comment
// lines.
package stringutil
