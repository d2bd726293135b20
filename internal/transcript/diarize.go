// Package transcript post-processes raw speech-to-text output.
package transcript

import (
	"fmt"
	"strings"
	"unicode"
)

// Diarize assigns alternating speaker labels to the transcript's sentences.
// This is a textual heuristic, not acoustic diarization: it has no awareness
// of actual speaker turns. Sentences keep their final punctuation; empty
// fragments are dropped.
func Diarize(transcript string) string {
	sentences := SplitSentences(transcript)
	if len(sentences) == 0 {
		return ""
	}

	lines := make([]string, 0, len(sentences))
	for i, sentence := range sentences {
		speaker := 1
		if i%2 == 1 {
			speaker = 2
		}
		lines = append(lines, fmt.Sprintf("Speaker %d: %s", speaker, sentence))
	}

	return strings.Join(lines, "\n")
}

// SplitSentences breaks text after sentence-final punctuation (. ! ?)
// followed by whitespace, retaining the punctuation with the preceding
// sentence. Punctuation inside a token ("3.14") does not split.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	var last rune

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsSpace(r) && sentenceFinal(last) {
			flush()
			last = r
			continue
		}
		current.WriteRune(r)
		last = r
	}
	flush()

	return sentences
}

func sentenceFinal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
