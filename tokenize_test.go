package discourse

import (
	"reflect"
	"regexp"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		text   string
		tokens []string
		desc   string
	}{
		{"cats but dogs", []string{"cats", "but", "dogs"}, "Plain words"},
		{"Well, I don't know.", []string{"Well", ",", "I", "do", "n't", "know", "."}, "Punctuation and contraction"},
		{"(maybe) $100!", []string{"(", "maybe", ")", "$", "100", "!"}, "Prefixes and suffixes"},
		{"U.S.A. rocks :-)", []string{"U.S.A.", "rocks", ":-)"}, "Special tokens"},
		{"“quoted”", []string{`"`, "quoted", `"`}, "Curly quotes"},
		{"", nil, "Empty text"},
	}

	tokenizer := NewIterTokenizer()
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := tokenizer.Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.tokens) {
				t.Errorf("Text %q: expected %q, got %q", tt.text, tt.tokens, got)
			}
		})
	}
}

func TestTokenizerOptions(t *testing.T) {
	tests := []struct {
		opt    TokenizerOptFunc
		text   string
		tokens []string
		desc   string
	}{
		{
			UsingContractions(nil),
			"I don't know.",
			[]string{"I", "don't", "know", "."},
			"No contractions",
		},
		{
			UsingIsUnsplittable(func(s string) bool { return s == "(wow)" }),
			"(wow) (yes)",
			[]string{"(wow)", "(", "yes", ")"},
			"Unsplittable token",
		},
		{
			UsingSpecialRE(regexp.MustCompile(`^v\d+\.$`)),
			"v2. ok.",
			[]string{"v2.", "ok", "."},
			"Special regex",
		},
		{
			UsingSanitizer(strings.NewReplacer("&", " and ")),
			"cats&dogs",
			[]string{"cats", "and", "dogs"},
			"Sanitizer",
		},
		{
			UsingSuffixes(nil),
			"dogs.",
			[]string{"dogs."},
			"No suffixes",
		},
		{
			UsingPrefixes(nil),
			"$100",
			[]string{"$100"},
			"No prefixes",
		},
		{
			UsingEmoticons(map[string]int{"xD!": 1}),
			"xD! xD",
			[]string{"xD!", "xD"},
			"Custom emoticons",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := NewIterTokenizer(tt.opt).Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.tokens) {
				t.Errorf("Text %q: expected %q, got %q", tt.text, tt.tokens, got)
			}
		})
	}
}

func TestTokenizeKeepsCase(t *testing.T) {
	got := NewIterTokenizer().Tokenize("However THIS")
	if !reflect.DeepEqual(got, []string{"However", "THIS"}) {
		t.Errorf("Unexpected tokens %q", got)
	}
}

func TestReduceLengthening(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"sooooo", "sooo"},
		{"sooo", "sooo"},
		{"soo", "soo"},
		{"!!!!!!", "!!!"},
		{"ééééé", "ééé"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := reduceLengthening(tt.in); got != tt.out {
			t.Errorf("%q: expected %q, got %q", tt.in, tt.out, got)
		}
	}

	with := NewIterTokenizer().Tokenize("waaaaay")
	without := NewIterTokenizer(WithReducedLengthening(false)).Tokenize("waaaaay")
	if !reflect.DeepEqual(with, []string{"waaay"}) {
		t.Errorf("Expected lengthening reduced, got %q", with)
	}
	if !reflect.DeepEqual(without, []string{"waaaaay"}) {
		t.Errorf("Expected lengthening kept, got %q", without)
	}
}

func TestTokenizeIsDeterministic(t *testing.T) {
	text := "If it rains, we might not go; however, we could."
	tokenizer := NewIterTokenizer()
	first := tokenizer.Tokenize(text)
	for i := 0; i < 5; i++ {
		if got := tokenizer.Tokenize(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("Run %d: expected %q, got %q", i, first, got)
		}
	}
}
