package discourse

import (
	"strings"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// A Segmenter splits raw text into sentences.
type Segmenter interface {
	Segment(text string) []Sentence
}

// punktSentenceTokenizer is an extension of the Go implementation of the Punkt
// sentence tokenizer, with a few minor improvements (see
// https://github.com/neurosnap/sentences/pull/18).
type punktSentenceTokenizer struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSegmenter returns the English Punkt segmenter.
func NewPunktSegmenter() (Segmenter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, err
	}
	return &punktSentenceTokenizer{tokenizer: tokenizer}, nil
}

// Segment splits text into sentences. Blank sentences are dropped, so empty
// or whitespace-only text yields no sentences.
func (p *punktSentenceTokenizer) Segment(text string) []Sentence {
	var sents []Sentence
	for _, s := range p.tokenizer.Tokenize(text) {
		trimmed := strings.TrimSpace(s.Text)
		if trimmed == "" {
			continue
		}
		sents = append(sents, Sentence{Text: trimmed})
	}
	return sents
}

// lineSegmenter treats every non-blank line as a sentence. It is used when
// segmentation is disabled.
type lineSegmenter struct{}

func (lineSegmenter) Segment(text string) []Sentence {
	var sents []Sentence
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			sents = append(sents, Sentence{Text: trimmed, Start: offset, End: offset + len(line)})
		}
		offset += len(line)
	}
	return sents
}
