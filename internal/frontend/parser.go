package frontend

import "strings"

// Delimiter opens and closes a frontmatter block
const Delimiter = "---"

// Split separates a leading YAML frontmatter block from the Markdown body.
// The block must start on the first line and end with a line holding only the delimiter.
// ok is false when there is no complete block; body is then the whole content.
func Split(content string) (header, body string, ok bool) {
	content = strings.TrimPrefix(content, "\ufeff")

	first, rest, found := strings.Cut(content, "\n")
	if !found || strings.TrimRight(first, "\r") != Delimiter {
		return "", content, false
	}

	var b strings.Builder
	for len(rest) > 0 {
		line, remaining, _ := strings.Cut(rest, "\n")
		if strings.TrimRight(line, "\r") == Delimiter {
			return b.String(), remaining, true
		}
		b.WriteString(line)
		b.WriteString("\n")
		rest = remaining
	}
	return "", content, false
}
