package discourse

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FeaturesPerTerm is the width of each vocabulary word's column block: summed
// F, mean Flip and mean Hyp.
const FeaturesPerTerm = 3

// A Vocabulary assigns each retained word a column block. It is built fresh
// for every Vectorize call.
type Vocabulary struct {
	words []string
	index map[string]int
}

// newVocabulary indexes words in lexical order.
func newVocabulary(seen map[string]bool) *Vocabulary {
	v := &Vocabulary{
		words: make([]string, 0, len(seen)),
		index: make(map[string]int, len(seen)),
	}
	for w := range seen {
		v.words = append(v.words, w)
	}
	sort.Strings(v.words)
	for i, w := range v.words {
		v.index[w] = i
	}
	return v
}

// Len returns the number of words.
func (v *Vocabulary) Len() int {
	return len(v.words)
}

// Index returns the block index of word.
func (v *Vocabulary) Index(word string) (int, bool) {
	i, ok := v.index[word]
	return i, ok
}

// Word returns the word at block index i.
func (v *Vocabulary) Word(i int) string {
	return v.words[i]
}

// Words returns the words in block order.
func (v *Vocabulary) Words() []string {
	return append([]string(nil), v.words...)
}

// Columns returns the first column of word's block.
func (v *Vocabulary) Columns(word string) (int, bool) {
	i, ok := v.index[word]
	return i * FeaturesPerTerm, ok
}

// A Vectorization is the result of a Vectorize call.
type Vectorization struct {
	Matrix     *SparseMatrix
	Vocabulary *Vocabulary
}

// Features returns the (F, Flip, Hyp) triple of word in document row, and
// false when the word is absent from that document or from the vocabulary.
func (vz *Vectorization) Features(row int, word string) (f, flip, hyp float64, ok bool) {
	col, ok := vz.Vocabulary.Columns(word)
	if !ok {
		return 0, 0, 0, false
	}
	cols, vals := vz.Matrix.Row(row)
	k := sort.SearchInts(cols, col)
	if k+2 >= len(cols) || cols[k] != col {
		return 0, 0, 0, false
	}
	return vals[k], vals[k+1], vals[k+2], true
}

// A Vectorizer turns a document collection into a sparse document-term
// feature matrix. It keeps no state between calls and is safe for concurrent
// use.
type Vectorizer struct {
	parser    *Parser
	stopwords StopwordSet
	workers   int
	progress  func(done, total int)
}

// NewVectorizer creates a Vectorizer according to the user-specified options.
//
// For example,
//
//	v, err := discourse.NewVectorizer(discourse.WithWorkers(4))
func NewVectorizer(opts ...Option) (*Vectorizer, error) {
	base := buildOptions(opts)

	parser, err := newParser(base)
	if err != nil {
		return nil, err
	}

	stops := base.Stopwords
	if stops == nil {
		if base.Language == English {
			stops = EnglishStopwords()
		} else if stops, err = LanguageStopwords(base.Language); err != nil {
			return nil, err
		}
	}

	workers := base.Workers
	if workers < 1 {
		workers = 1
	}

	return &Vectorizer{
		parser:    parser,
		stopwords: stops,
		workers:   workers,
		progress:  base.ProgressCallback,
	}, nil
}

// Parser returns the parser used for each document.
func (v *Vectorizer) Parser() *Parser {
	return v.parser
}

// Vectorize builds the feature matrix of documents. Row d describes
// documents[d]; for vocabulary index i, columns 3i, 3i+1 and 3i+2 hold the
// word's summed F, mean Flip and mean Hyp in that document.
func (v *Vectorizer) Vectorize(documents []string) *Vectorization {
	// Cancellation is the only failure of VectorizeContext.
	vz, _ := v.VectorizeContext(context.Background(), documents)
	return vz
}

// VectorizeContext is Vectorize with cancellation. Documents are parsed by up
// to the configured number of workers; the vocabulary and matrix are built
// once every document has been aggregated.
func (v *Vectorizer) VectorizeContext(ctx context.Context, documents []string) (*Vectorization, error) {
	terms, err := v.aggregateAll(ctx, documents)
	if err != nil {
		return nil, err
	}
	return v.emit(terms), nil
}

// aggregateAll parses every document. Each worker writes only its own slot.
// The progress callback runs on worker goroutines, one call at a time.
func (v *Vectorizer) aggregateAll(ctx context.Context, documents []string) ([]map[string]TermStats, error) {
	terms := make([]map[string]TermStats, len(documents))

	var (
		mu        sync.Mutex
		completed int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for d := range documents {
		d := d
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			terms[d] = Aggregate(v.parser.Parse(documents[d]))
			if v.progress != nil {
				mu.Lock()
				completed++
				v.progress(completed, len(documents))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return terms, nil
}

// emit assigns vocabulary indices and writes one row per document.
func (v *Vectorizer) emit(terms []map[string]TermStats) *Vectorization {
	seen := make(map[string]bool)
	for _, doc := range terms {
		for w := range doc {
			if !v.stopwords.IsStopword(w) {
				seen[w] = true
			}
		}
	}
	vocab := newVocabulary(seen)

	b := NewSparseBuilder(len(terms), FeaturesPerTerm*vocab.Len())
	for d, doc := range terms {
		for w, ts := range doc {
			col, ok := vocab.Columns(w)
			if !ok {
				continue
			}
			b.Add(d, col, float64(ts.F))
			b.Add(d, col+1, ts.MeanFlip())
			b.Add(d, col+2, ts.MeanHyp())
		}
	}

	return &Vectorization{Matrix: b.Build(), Vocabulary: vocab}
}
