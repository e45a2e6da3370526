package discourse

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/floats"
)

// A Database selects an affect lexicon.
type Database string

const (
	Emotion         Database = "emotion"          // Eight basic emotions
	VAD             Database = "VAD"              // Valence, arousal, dominance
	AffectIntensity Database = "affect intensity" // Four emotion intensities
	All             Database = "all"              // Every database
)

// Databases lists the individual databases in a fixed order.
var Databases = []Database{Emotion, VAD, AffectIntensity}

// ErrUnknownDatabase is returned for a database selector that names none of
// the supported lexicons.
var ErrUnknownDatabase = errors.New("unknown affect database")

// ParseDatabase validates a database selector.
func ParseDatabase(name string) (Database, error) {
	switch db := Database(name); db {
	case Emotion, VAD, AffectIntensity, All:
		return db, nil
	}
	return "", fmt.Errorf("%w %q: database must be one of %s, %s, %s or %s",
		ErrUnknownDatabase, name, VAD, Emotion, AffectIntensity, All)
}

// Dimensions returns the score dimensions of db, in reporting order.
func (db Database) Dimensions() []string {
	switch db {
	case Emotion:
		return []string{"anger", "anticipation", "disgust", "fear", "joy", "sadness", "surprise", "trust"}
	case VAD:
		return []string{"Valence", "Arousal", "Dominance"}
	case AffectIntensity:
		return []string{"anger", "fear", "joy", "sadness"}
	}
	return nil
}

// selected expands All into the individual databases.
func (db Database) selected() ([]Database, error) {
	if db == All {
		return Databases, nil
	}
	if _, err := ParseDatabase(string(db)); err != nil {
		return nil, err
	}
	return []Database{db}, nil
}

// single rejects selectors that do not name exactly one database.
func (db Database) single() error {
	if db == All {
		return fmt.Errorf("%w %q: sentences are scored against one database at a time", ErrUnknownDatabase, db)
	}
	_, err := ParseDatabase(string(db))
	return err
}

// A Lexicon holds per-word affect scores for each database.
type Lexicon struct {
	entries map[Database]map[string]map[string]float64
	mutex   sync.RWMutex
}

// NewLexicon creates an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{entries: make(map[Database]map[string]map[string]float64)}
}

// Add records the score of word on one dimension of db.
func (l *Lexicon) Add(db Database, word, dimension string, score float64) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	words, ok := l.entries[db]
	if !ok {
		words = make(map[string]map[string]float64)
		l.entries[db] = words
	}
	dims, ok := words[word]
	if !ok {
		dims = make(map[string]float64)
		words[word] = dims
	}
	dims[dimension] = score
}

// HasWord checks if a word exists in db.
func (l *Lexicon) HasWord(db Database, word string) bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	_, exists := l.entries[db][word]
	return exists
}

// Score returns the score of word on one dimension of db.
func (l *Lexicon) Score(db Database, word, dimension string) (float64, bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	score, ok := l.entries[db][word][dimension]
	return score, ok
}

// Size returns the number of words in db.
func (l *Lexicon) Size(db Database) int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return len(l.entries[db])
}

// AffectScores maps each dimension of a database to its mean score.
type AffectScores map[string]float64

// AffectScorer averages lexicon scores over the words of a text. An
// AffectScorer is not safe for concurrent use; create one per goroutine.
type AffectScorer struct {
	lexicon   *Lexicon
	tokenizer Tokenizer
	lower     cases.Caser
}

// NewAffectScorer creates a scorer over lexicon. Texts are split with the
// default tokenizer unless tokenizer is given.
func NewAffectScorer(lexicon *Lexicon, tokenizer Tokenizer) *AffectScorer {
	if tokenizer == nil {
		tokenizer = NewIterTokenizer(WithReducedLengthening(false))
	}
	return &AffectScorer{
		lexicon:   lexicon,
		tokenizer: tokenizer,
		lower:     cases.Lower(language.Und),
	}
}

// ClassifySentence scores a text against a single database. When tokenize
// is false the text is split on whitespace. It returns the per-dimension
// means and the number of words found in the lexicon; scores are nil when
// no word was found.
func (as *AffectScorer) ClassifySentence(text string, db Database, tokenize bool) (AffectScores, int, error) {
	var words []string
	if tokenize {
		words = as.tokenizer.Tokenize(text)
	} else {
		words = strings.Fields(text)
	}
	return as.ClassifyTokens(words, db)
}

// ClassifyTokens scores an already tokenized text against a single database.
// Words are lower-cased before lookup; a word missing a dimension contributes
// nothing to it.
func (as *AffectScorer) ClassifyTokens(words []string, db Database) (AffectScores, int, error) {
	if err := db.single(); err != nil {
		return nil, 0, err
	}
	dims := db.Dimensions()

	sums := make([]float64, len(dims))
	factored := 0
	for _, word := range words {
		word = as.lower.String(word)
		if !as.lexicon.HasWord(db, word) {
			continue
		}
		factored++
		for k, dim := range dims {
			if v, ok := as.lexicon.Score(db, word, dim); ok {
				sums[k] += v
			}
		}
	}
	if factored == 0 {
		return nil, 0, nil
	}

	floats.Scale(1/float64(factored), sums)
	return toScores(dims, sums), factored, nil
}

// Classify averages the sentence scores of documents for each database
// selected by db. Only documents with at least one lexicon word take part in
// a database's average; a database no document matched reports zeros.
func (as *AffectScorer) Classify(documents []string, db Database, tokenize bool) (map[Database]AffectScores, error) {
	selected, err := db.selected()
	if err != nil {
		return nil, err
	}

	result := make(map[Database]AffectScores, len(selected))
	for _, d := range selected {
		dims := d.Dimensions()
		sums := make([]float64, len(dims))
		matched := 0
		for _, doc := range documents {
			scores, n, err := as.ClassifySentence(doc, d, tokenize)
			if err != nil {
				return nil, err
			}
			if n == 0 {
				continue
			}
			matched++
			for k, dim := range dims {
				sums[k] += scores[dim]
			}
		}
		if matched > 0 {
			floats.Scale(1/float64(matched), sums)
		}
		result[d] = toScores(dims, sums)
	}
	return result, nil
}

func toScores(dims []string, values []float64) AffectScores {
	scores := make(AffectScores, len(dims))
	for k, dim := range dims {
		scores[dim] = values[k]
	}
	return scores
}
