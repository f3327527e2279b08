package render

import "strings"

// Markdown renders content with a pooled renderer for opts.
func Markdown(content string, opts Options) (string, error) {
	key := keyFor(opts)
	r, err := globalPool.get(key)
	if err != nil {
		return "", err
	}
	defer globalPool.put(key, r)

	return r.Render(content)
}

// MarkdownWithWidth renders with default options at width.
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}

// MarkdownOrPlain renders content and falls back to the raw text when the
// renderer fails. Leading and trailing blank lines glamour adds are trimmed.
func MarkdownOrPlain(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
