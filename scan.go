package discourse

// NegationWindow is the number of tokens after a negator whose Flip is
// decremented.
const NegationWindow = 5

// A Scanner computes the per-token features of tokenized sentences.
type Scanner struct {
	taxonomy *Taxonomy
}

// NewScanner returns a Scanner for the given taxonomy. A nil taxonomy selects
// DefaultTaxonomy.
func NewScanner(taxonomy *Taxonomy) *Scanner {
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	return &Scanner{taxonomy: taxonomy}
}

var defaultScanner = NewScanner(nil)

// Scan computes the features of one sentence using the default taxonomy.
func Scan(tokens []string) SentenceRecord {
	return defaultScanner.Scan(tokens)
}

// Taxonomy returns the scanner's taxonomy.
func (s *Scanner) Taxonomy() *Taxonomy {
	return s.taxonomy
}

// Scan computes the features of a single tokenized sentence.
//
// Forward and inferential connectives raise F for every following token up to
// the next cue. Backward connectives raise F for the sentence prefix, scanning
// from the start of the sentence and stopping at its first cue. Negators lower
// Flip for the next NegationWindow tokens. Scopes never leave the sentence.
func (s *Scanner) Scan(tokens []string) SentenceRecord {
	n := len(tokens)
	rec := SentenceRecord{
		W:    make([]string, n),
		F:    make([]int, n),
		Flip: make([]int, n),
		Hyp:  make([]int, n),
	}

	for i, tok := range tokens {
		rec.W[i] = tok
		rec.F[i] = 1
		rec.Flip[i] = 1
		if s.taxonomy.isHypothetical(tok) {
			rec.Hyp[i] = 1
		}
	}

	for i, tok := range tokens {
		switch {
		case s.taxonomy.isForward(tok):
			for j := i + 1; j < n; j++ {
				if s.taxonomy.IsCue(tokens[j]) {
					break
				}
				rec.F[j]++
			}
		case s.taxonomy.Is(BackwardConnective, tok):
			for j := 0; j < i; j++ {
				if s.taxonomy.IsCue(tokens[j]) {
					break
				}
				rec.F[j]++
			}
		case s.taxonomy.Is(Negator, tok):
			s.negate(tokens, i, rec.Flip)
		}
	}

	return rec
}

// negate decrements Flip over the window following the negator at i.
func (s *Scanner) negate(tokens []string, i int, flip []int) {
	for k := 1; k <= NegationWindow; k++ {
		j := i + k
		if j >= len(tokens) {
			return
		}
		// Only reachable with taxonomies whose backward and forward classes
		// overlap; the default taxonomy keeps them disjoint.
		if s.taxonomy.Is(BackwardConnective, tokens[j]) && s.taxonomy.Is(ForwardConnective, tokens[j]) {
			return
		}
		flip[j]--
	}
}
