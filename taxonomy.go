package discourse

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// A Relation names one class of discourse cue.
type Relation string

const (
	ForwardConnective     Relation = "conj_fol"     // "but", "however"
	BackwardConnective    Relation = "conj_prev"    // "until", "although"
	InferentialConnective Relation = "conj_infer"   // "therefore", "thus"
	Conditional           Relation = "conditionals" // "if"
	StrongModal           Relation = "strong_mod"   // "might", "could"
	WeakModal             Relation = "weak_mod"     // "should", "must"
	Negator               Relation = "neg"          // "not", "never"
)

// Relations lists every relation class in a fixed order.
var Relations = []Relation{
	ForwardConnective,
	BackwardConnective,
	InferentialConnective,
	Conditional,
	StrongModal,
	WeakModal,
	Negator,
}

// ErrUnknownRelation is returned when a taxonomy names a relation class that
// does not exist.
var ErrUnknownRelation = errors.New("unknown relation")

func isRelation(rel Relation) bool {
	for _, r := range Relations {
		if r == rel {
			return true
		}
	}
	return false
}

// A Taxonomy classifies trigger words into relation classes. Membership is an
// exact, case-sensitive match on the token text.
//
// A Taxonomy is read-only after construction and safe for concurrent use.
type Taxonomy struct {
	classes map[Relation]map[string]bool
	all     map[string]bool
}

// NewTaxonomy builds a Taxonomy from the given trigger lists. Classes that are
// not present are empty.
func NewTaxonomy(triggers map[Relation][]string) (*Taxonomy, error) {
	t := &Taxonomy{
		classes: make(map[Relation]map[string]bool, len(Relations)),
		all:     make(map[string]bool),
	}
	for _, rel := range Relations {
		t.classes[rel] = make(map[string]bool)
	}
	for rel, words := range triggers {
		if !isRelation(rel) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRelation, rel)
		}
		for _, w := range words {
			t.classes[rel][w] = true
			t.all[w] = true
		}
	}
	return t, nil
}

// DefaultTaxonomy returns the shipped English cue taxonomy.
//
// Multi-word triggers such as "as a result" are kept as written; they only
// match when a tokenizer emits them as a single token.
func DefaultTaxonomy() *Taxonomy {
	t, _ := NewTaxonomy(defaultTriggers)
	return t
}

var defaultTriggers = map[Relation][]string{
	ForwardConnective: {"but", "however", "nevertheless", "otherwise", "yet", "still", "nonetheless"},
	BackwardConnective: {"till", "until", "despite", "in spite", "though", "although"},
	InferentialConnective: {"therefore", "furthermore", "consequently", "thus",
		"as a result", "subsequently", "eventually", "hence"},
	Conditional: {"if"},
	StrongModal: {"might", "could", "can", "would", "may"},
	WeakModal:   {"should", "ought to", "need not", "shall", "will", "must"},
	Negator:     {"not", "neither", "never", "no", "nor"},
}

// TaxonomyFromYAML decodes a taxonomy of the form
//
//	conj_fol: [but, however]
//	neg: [not, never]
//
// Keys must be relation names.
func TaxonomyFromYAML(data []byte) (*Taxonomy, error) {
	var raw map[Relation][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing taxonomy YAML: %w", err)
	}
	return NewTaxonomy(raw)
}

// Is reports whether word is a trigger of rel.
func (t *Taxonomy) Is(rel Relation, word string) bool {
	return t.classes[rel][word]
}

// IsCue reports whether word is a trigger of any relation class. Cues
// terminate connective scopes.
func (t *Taxonomy) IsCue(word string) bool {
	return t.all[word]
}

// Triggers returns the sorted triggers of rel.
func (t *Taxonomy) Triggers(rel Relation) []string {
	words := make([]string, 0, len(t.classes[rel]))
	for w := range t.classes[rel] {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// MarshalYAML encodes the taxonomy in the form read by TaxonomyFromYAML.
func (t *Taxonomy) MarshalYAML() (interface{}, error) {
	out := make(map[Relation][]string, len(Relations))
	for _, rel := range Relations {
		out[rel] = t.Triggers(rel)
	}
	return out, nil
}

func (t *Taxonomy) isForward(word string) bool {
	return t.classes[ForwardConnective][word] || t.classes[InferentialConnective][word]
}

func (t *Taxonomy) isHypothetical(word string) bool {
	return t.classes[Conditional][word] || t.classes[StrongModal][word]
}
