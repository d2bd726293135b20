package extractor

import (
	"strings"

	"golang.org/x/net/html"
)

// stripHTML reduces markup to plain text: script and style subtrees are
// dropped entirely, every other tag is replaced by a space, and runs of
// whitespace collapse to a single space.
func stripHTML(markup string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(markup))

	var b strings.Builder
	skipDepth := 0

	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			return collapseWhitespace(b.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) {
				skipDepth++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
			}
		}
	}
}

func isSkippedTag(name string) bool {
	return name == "script" || name == "style"
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
