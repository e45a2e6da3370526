package discourse

// A Sentence represents a segmented portion of text.
type Sentence struct {
	Text  string // The sentence's text.
	Start int    // Start position in original text, when known
	End   int    // End position in original text, when known
}

// String returns the text content of the sentence
func (s Sentence) String() string {
	return s.Text
}

// Language represents supported languages
type Language string

const (
	English  Language = "en"
	Spanish  Language = "es"
	French   Language = "fr"
	German   Language = "de"
	Japanese Language = "ja"
)

// SentenceRecord holds the per-token features of a single sentence. All four
// slices have the same length as the sentence's token count.
type SentenceRecord struct {
	W    []string // Token text.
	F    []int    // Scope-weighted frequency, at least 1.
	Flip []int    // Negation counter, baseline 1.
	Hyp  []int    // 1 for conditional and strong-modal tokens.
}

// Len returns the number of tokens in the record.
func (r SentenceRecord) Len() int {
	return len(r.W)
}

// A DocumentRecord is the position-aligned concatenation of a document's
// sentence records.
type DocumentRecord struct {
	SentenceRecord
	Sentences int // Number of sentences that were scanned.
}

func (doc *DocumentRecord) append(rec SentenceRecord) {
	doc.W = append(doc.W, rec.W...)
	doc.F = append(doc.F, rec.F...)
	doc.Flip = append(doc.Flip, rec.Flip...)
	doc.Hyp = append(doc.Hyp, rec.Hyp...)
	doc.Sentences++
}

// TermStats aggregates every occurrence of one surface word in a document.
type TermStats struct {
	N    int // Occurrence count.
	F    int // Summed F.
	Flip int // Summed Flip.
	Hyp  int // Summed Hyp.
}

// MeanFlip returns Flip averaged over occurrences.
func (ts TermStats) MeanFlip() float64 {
	return float64(ts.Flip) / float64(ts.N)
}

// MeanHyp returns Hyp averaged over occurrences.
func (ts TermStats) MeanHyp() float64 {
	return float64(ts.Hyp) / float64(ts.N)
}
