package discourse

import (
	"sync"
)

// An Option represents a setting that changes how documents are parsed and
// vectorized.
//
// For example, it might swap in a custom tokenizer:
//
//	v, err := discourse.NewVectorizer(discourse.UsingTokenizer(tok))
type Option func(opts *Options)

// Options controls parsing and vectorization:
type Options struct {
	Segment          bool                   // If true, split text with the Punkt segmenter
	Segmenter        Segmenter              // Segmenter to use; overrides Segment
	Tokenizer        Tokenizer              // Tokenizer to use
	Taxonomy         *Taxonomy              // Cue taxonomy
	Stopwords        StopwordSet            // Words left out of the vocabulary
	Language         Language               // Selects stopwords when Stopwords is nil
	Workers          int                    // Documents parsed concurrently
	ProgressCallback func(done, total int)  // Called after each parsed document
}

// UsingTokenizer specifies the Tokenizer to use.
func UsingTokenizer(include Tokenizer) Option {
	return func(opts *Options) {
		opts.Tokenizer = include
	}
}

// UsingSegmenter specifies the Segmenter to use.
func UsingSegmenter(include Segmenter) Option {
	return func(opts *Options) {
		opts.Segmenter = include
	}
}

// WithSegmentation can enable (the default) or disable sentence segmentation.
// Without segmentation every non-blank line is one sentence.
func WithSegmentation(include bool) Option {
	return func(opts *Options) {
		opts.Segment = include
	}
}

// UsingTaxonomy specifies the cue taxonomy.
func UsingTaxonomy(taxonomy *Taxonomy) Option {
	return func(opts *Options) {
		opts.Taxonomy = taxonomy
	}
}

// UsingStopwords specifies the words left out of the vocabulary.
func UsingStopwords(set StopwordSet) Option {
	return func(opts *Options) {
		opts.Stopwords = set
	}
}

// WithLanguage selects the stopword list for lang.
func WithLanguage(lang Language) Option {
	return func(opts *Options) {
		opts.Language = lang
	}
}

// WithWorkers sets how many documents are parsed concurrently.
func WithWorkers(n int) Option {
	return func(opts *Options) {
		opts.Workers = n
	}
}

// WithProgressCallback sets a progress reporting callback
func WithProgressCallback(callback func(done, total int)) Option {
	return func(opts *Options) {
		opts.ProgressCallback = callback
	}
}

var defaultOpts = Options{
	Segment:  true,
	Language: English,
	Workers:  1,
}

func buildOptions(opts []Option) Options {
	base := defaultOpts
	for _, applyOpt := range opts {
		applyOpt(&base)
	}
	return base
}

var (
	punktOnce sync.Once
	punkt     Segmenter
	punktErr  error
)

// defaultSegmenter loads the Punkt training data once per process.
func defaultSegmenter() (Segmenter, error) {
	punktOnce.Do(func() {
		punkt, punktErr = NewPunktSegmenter()
	})
	return punkt, punktErr
}

// A Parser turns raw text into a DocumentRecord.
type Parser struct {
	segmenter Segmenter
	tokenizer Tokenizer
	scanner   *Scanner
}

// NewParser creates a Parser according to the user-specified options.
func NewParser(opts ...Option) (*Parser, error) {
	return newParser(buildOptions(opts))
}

func newParser(base Options) (*Parser, error) {
	p := &Parser{
		segmenter: base.Segmenter,
		tokenizer: base.Tokenizer,
		scanner:   NewScanner(base.Taxonomy),
	}
	if p.segmenter == nil {
		if base.Segment {
			seg, err := defaultSegmenter()
			if err != nil {
				return nil, err
			}
			p.segmenter = seg
		} else {
			p.segmenter = lineSegmenter{}
		}
	}
	if p.tokenizer == nil {
		p.tokenizer = NewIterTokenizer()
	}
	return p, nil
}

// Parse segments text into sentences, scans each one and concatenates the
// results in sentence order. Text without sentences yields an empty record.
func (p *Parser) Parse(text string) DocumentRecord {
	var doc DocumentRecord
	for _, sent := range p.segmenter.Segment(text) {
		doc.append(p.scanner.Scan(p.tokenizer.Tokenize(sent.Text)))
	}
	return doc
}

// ParseTokens scans already segmented and tokenized sentences.
func (p *Parser) ParseTokens(sentences [][]string) DocumentRecord {
	var doc DocumentRecord
	for _, tokens := range sentences {
		doc.append(p.scanner.Scan(tokens))
	}
	return doc
}

// Aggregate folds a document record into per-word statistics. The first
// occurrence of a word starts its bucket; later occurrences add to it.
func Aggregate(doc DocumentRecord) map[string]TermStats {
	terms := make(map[string]TermStats)
	for i, w := range doc.W {
		ts := terms[w]
		ts.N++
		ts.F += doc.F[i]
		ts.Flip += doc.Flip[i]
		ts.Hyp += doc.Hyp[i]
		terms[w] = ts
	}
	return terms
}
