package discourse

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

func newLineVectorizer(t *testing.T, opts ...Option) *Vectorizer {
	t.Helper()
	v, err := NewVectorizer(append([]Option{WithSegmentation(false)}, opts...)...)
	if err != nil {
		t.Fatalf("Failed to create vectorizer: %v", err)
	}
	return v
}

var corpus = []string{
	"cats but dogs sleep\nnot cats",
	"birds might fly until tomorrow",
	"",
	"the and of",
	"Cats cats cats",
}

func TestVectorizeShape(t *testing.T) {
	v := newLineVectorizer(t)
	vz := v.Vectorize(corpus)

	rows, cols := vz.Matrix.Dims()
	if rows != len(corpus) {
		t.Errorf("Expected %d rows, got %d", len(corpus), rows)
	}
	if cols != FeaturesPerTerm*vz.Vocabulary.Len() {
		t.Errorf("Expected %d columns, got %d", FeaturesPerTerm*vz.Vocabulary.Len(), cols)
	}

	for _, stop := range []string{"the", "and", "of", "but", "not", "until"} {
		if _, ok := vz.Vocabulary.Index(stop); ok {
			t.Errorf("Stopword %q should not be in the vocabulary", stop)
		}
	}
	for _, word := range []string{"cats", "Cats", "dogs", "might", "tomorrow"} {
		i, ok := vz.Vocabulary.Index(word)
		if !ok {
			t.Errorf("Word %q should be in the vocabulary", word)
			continue
		}
		if got := vz.Vocabulary.Word(i); got != word {
			t.Errorf("Index %d: expected %q, got %q", i, word, got)
		}
	}

	for _, row := range []int{2, 3} {
		if cols, _ := vz.Matrix.Row(row); len(cols) != 0 {
			t.Errorf("Row %d should be empty, got columns %v", row, cols)
		}
	}
}

func TestVectorizeValues(t *testing.T) {
	v := newLineVectorizer(t)
	vz := v.Vectorize(corpus)

	tests := []struct {
		row  int
		word string
		f    float64
		flip float64
		hyp  float64
	}{
		// "cats": f=1 in line one, f=1 with flip=0 in line two.
		{0, "cats", 2, 0.5, 0},
		{0, "dogs", 2, 1, 0},
		{0, "sleep", 2, 1, 0},
		// The scope of "until" stops at "might", so only "birds" gains.
		{1, "birds", 2, 1, 0},
		{1, "might", 1, 1, 1},
		{1, "fly", 1, 1, 0},
		{1, "tomorrow", 1, 1, 0},
		{4, "cats", 2, 1, 0},
		{4, "Cats", 1, 1, 0},
	}

	for _, tt := range tests {
		f, flip, hyp, ok := vz.Features(tt.row, tt.word)
		if !ok {
			t.Errorf("Row %d: %q missing", tt.row, tt.word)
			continue
		}
		if f != tt.f || flip != tt.flip || hyp != tt.hyp {
			t.Errorf("Row %d %q: expected (%.2f, %.2f, %.2f), got (%.2f, %.2f, %.2f)",
				tt.row, tt.word, tt.f, tt.flip, tt.hyp, f, flip, hyp)
		}
	}

	if _, _, _, ok := vz.Features(1, "cats"); ok {
		t.Error("\"cats\" does not occur in row 1")
	}
}

func TestVectorizeOnlyStopwords(t *testing.T) {
	v := newLineVectorizer(t)
	vz := v.Vectorize([]string{"the and of", "it is"})

	rows, cols := vz.Matrix.Dims()
	if rows != 2 || cols != 0 {
		t.Errorf("Expected a 2x0 matrix, got %dx%d", rows, cols)
	}
	if vz.Matrix.NNZ() != 0 {
		t.Errorf("Expected no entries, got %d", vz.Matrix.NNZ())
	}
}

func TestVectorizeNoDocuments(t *testing.T) {
	v := newLineVectorizer(t)
	vz := v.Vectorize(nil)

	rows, cols := vz.Matrix.Dims()
	if rows != 0 || cols != 0 {
		t.Errorf("Expected a 0x0 matrix, got %dx%d", rows, cols)
	}
}

func TestVectorizeRoundTrip(t *testing.T) {
	v := newLineVectorizer(t)
	vz := v.Vectorize(corpus)

	rows, cols := vz.Matrix.Dims()
	rebuilt, err := NewSparseMatrix(rows, cols, vz.Matrix.Indptr(), vz.Matrix.Indices(), vz.Matrix.Data())
	if err != nil {
		t.Fatalf("Failed to rebuild matrix: %v", err)
	}

	for row := 0; row < rows; row++ {
		for _, word := range vz.Vocabulary.Words() {
			f, flip, hyp, ok := vz.Features(row, word)
			if !ok {
				continue
			}
			col, _ := vz.Vocabulary.Columns(word)
			if rebuilt.At(row, col) != f || rebuilt.At(row, col+1) != flip || rebuilt.At(row, col+2) != hyp {
				t.Errorf("Row %d %q: round trip changed (%.2f, %.2f, %.2f)", row, word, f, flip, hyp)
			}
		}
	}
}

func TestVectorizeDeterminism(t *testing.T) {
	v := newLineVectorizer(t)
	first := v.Vectorize(corpus)
	second := v.Vectorize(corpus)

	for row := range corpus {
		for _, word := range first.Vocabulary.Words() {
			f1, flip1, hyp1, ok1 := first.Features(row, word)
			f2, flip2, hyp2, ok2 := second.Features(row, word)
			if ok1 != ok2 || f1 != f2 || flip1 != flip2 || hyp1 != hyp2 {
				t.Errorf("Row %d %q: (%.2f, %.2f, %.2f) then (%.2f, %.2f, %.2f)",
					row, word, f1, flip1, hyp1, f2, flip2, hyp2)
			}
		}
	}
}

func TestVectorizeConcurrentMatchesSequential(t *testing.T) {
	docs := make([]string, 0, 40)
	for i := 0; i < 10; i++ {
		docs = append(docs, corpus...)
		docs = append(docs, "however rain will never stop if clouds might gather")
	}
	docs = docs[:40]

	var calls int
	sequential := newLineVectorizer(t).Vectorize(docs)
	concurrent := newLineVectorizer(t,
		WithWorkers(4),
		WithProgressCallback(func(done, total int) {
			calls++
			if total != len(docs) {
				t.Errorf("Expected total %d, got %d", len(docs), total)
			}
		}),
	).Vectorize(docs)

	if calls != len(docs) {
		t.Errorf("Expected %d progress calls, got %d", len(docs), calls)
	}

	a, b := sequential.Matrix, concurrent.Matrix
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		t.Fatalf("Shapes differ: %dx%d and %dx%d", ar, ac, br, bc)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if math.Abs(a.At(i, j)-b.At(i, j)) > 0 {
				t.Fatalf("Entry (%d, %d) differs: %.2f and %.2f", i, j, a.At(i, j), b.At(i, j))
			}
		}
	}
}

func TestVectorizeCancelled(t *testing.T) {
	v := newLineVectorizer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := v.VectorizeContext(ctx, corpus)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestVectorizeCustomStopwords(t *testing.T) {
	v := newLineVectorizer(t, UsingStopwords(NewStopwordSet("cats")))
	vz := v.Vectorize([]string{"the cats sleep"})

	if _, ok := vz.Vocabulary.Index("cats"); ok {
		t.Error("\"cats\" should be filtered")
	}
	if _, ok := vz.Vocabulary.Index("the"); !ok {
		t.Error("\"the\" should be kept with a custom stopword set")
	}
}

func TestVectorizerParser(t *testing.T) {
	v := newLineVectorizer(t)
	doc := v.Parser().Parse("cats but dogs\nnot birds")

	if doc.Sentences != 2 {
		t.Errorf("Expected 2 sentences with segmentation off, got %d", doc.Sentences)
	}
	want := []string{"cats", "but", "dogs", "not", "birds"}
	if !reflect.DeepEqual(doc.W, want) {
		t.Errorf("Expected words %q, got %q", want, doc.W)
	}
}

func TestVectorizeUnsupportedLanguage(t *testing.T) {
	_, err := NewVectorizer(WithSegmentation(false), WithLanguage(Language("xx")))
	if err == nil {
		t.Error("Expected an error for an unsupported language")
	}
}

func BenchmarkVectorize(b *testing.B) {
	v, err := NewVectorizer()
	if err != nil {
		b.Fatalf("Failed to create vectorizer: %v", err)
	}
	docs := []string{
		"This product exceeded my expectations. However, shipping was slow.",
		"I would not buy it again until the price drops.",
		"If it rains, we might stay home. Therefore, bring a book.",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v.Vectorize(docs)
	}
}
