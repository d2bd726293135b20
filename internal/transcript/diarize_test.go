package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiarizeAlternatesSpeakers(t *testing.T) {
	got := Diarize("Hello there. How are you? I am fine.")
	want := "Speaker 1: Hello there.\nSpeaker 2: How are you?\nSpeaker 1: I am fine."
	assert.Equal(t, want, got)
}

func TestDiarizeLineCountMatchesSentenceCount(t *testing.T) {
	transcript := "One. Two! Three? Four. Five."
	diarized := Diarize(transcript)

	lines := strings.Split(diarized, "\n")
	assert.Len(t, lines, 5)
	for i, line := range lines {
		if i%2 == 0 {
			assert.True(t, strings.HasPrefix(line, "Speaker 1: "), "line %d: %q", i, line)
		} else {
			assert.True(t, strings.HasPrefix(line, "Speaker 2: "), "line %d: %q", i, line)
		}
	}
}

func TestDiarizePreservesSentenceText(t *testing.T) {
	diarized := Diarize("First sentence. Second sentence!")
	assert.Contains(t, diarized, "First sentence.")
	assert.Contains(t, diarized, "Second sentence!")
}

func TestDiarizeEmptyTranscript(t *testing.T) {
	assert.Equal(t, "", Diarize(""))
	assert.Equal(t, "", Diarize("   \n  "))
}

func TestDiarizeSingleSentenceWithoutPunctuation(t *testing.T) {
	assert.Equal(t, "Speaker 1: just one fragment", Diarize("just one fragment"))
}

func TestSplitSentencesKeepsPunctuation(t *testing.T) {
	sentences := SplitSentences("Wait! Really? Yes.")
	assert.Equal(t, []string{"Wait!", "Really?", "Yes."}, sentences)
}

func TestSplitSentencesDoesNotSplitInsideTokens(t *testing.T) {
	sentences := SplitSentences("Pi is 3.14 roughly. Next sentence.")
	assert.Equal(t, []string{"Pi is 3.14 roughly.", "Next sentence."}, sentences)
}

func TestSplitSentencesDropsEmptyFragments(t *testing.T) {
	sentences := SplitSentences("One.   Two.   ")
	assert.Equal(t, []string{"One.", "Two."}, sentences)
}
