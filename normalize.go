package dartdoc

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	tagRe       = regexp.MustCompile(`<[^>]+>`)
	blankLineRe = regexp.MustCompile(`\n\s*\n`)
)

// Normalize replaces every markup tag with a space, collapses runs of
// white space into one space and trims the result. Entities are kept as is.
func Normalize(text string) string {
	return strings.Join(strings.Fields(tagRe.ReplaceAllString(text, " ")), " ")
}

// SplitParagraphs splits text on blank lines and each block into sentences.
// Blocks without any sentence are dropped.
func SplitParagraphs(text string) []Paragraph {
	var paragraphs []Paragraph
	for _, block := range blankLineRe.Split(text, -1) {
		sentences := SplitSentences(Normalize(block))
		if len(sentences) == 0 {
			continue
		}
		paragraphs = append(paragraphs, Paragraph(sentences))
	}
	return paragraphs
}

// SplitSentences splits normalized text after '.', '?' or '!' when the
// mark is followed by white space. The mark stays with its sentence.
func SplitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		switch runes[i] {
		case '.', '?', '!':
			if unicode.IsSpace(runes[i+1]) {
				sentences = appendSentence(sentences, string(runes[start:i+1]))
				start = i + 1
			}
		}
	}
	return appendSentence(sentences, string(runes[start:]))
}

func appendSentence(sentences []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return sentences
	}
	return append(sentences, s)
}
