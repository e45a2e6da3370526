package discourse

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
)

// A StopwordSet decides which surface words are left out of a vocabulary.
type StopwordSet interface {
	IsStopword(word string) bool
}

// wordSet is a StopwordSet backed by an exact-match set.
type wordSet map[string]bool

func (ws wordSet) IsStopword(word string) bool {
	return ws[word]
}

// NewStopwordSet returns an exact-match StopwordSet over words.
func NewStopwordSet(words ...string) StopwordSet {
	ws := make(wordSet, len(words))
	for _, w := range words {
		ws[w] = true
	}
	return ws
}

// EnglishStopwords returns the standard English stopword list. Matching is
// case-sensitive: "the" is a stopword, "The" is not.
func EnglishStopwords() StopwordSet {
	return NewStopwordSet(englishStopwords...)
}

// libraryStopwords asks the stopwords library whether a word is filtered for
// a language.
type libraryStopwords struct {
	langCode string
}

// LanguageStopwords returns the stopword list of lang from
// github.com/bbalet/stopwords. The library folds case, so "The" and "the" are
// both stopwords.
func LanguageStopwords(lang Language) (StopwordSet, error) {
	if !IsStopwordLanguage(lang) {
		return nil, FormatLanguageError(lang)
	}
	return libraryStopwords{langCode: string(lang)}, nil
}

func (ls libraryStopwords) IsStopword(word string) bool {
	// The library strips punctuation as well as stopwords.
	if strings.IndexFunc(word, unicode.IsLetter) < 0 {
		return false
	}
	return strings.TrimSpace(stopwords.CleanString(word, ls.langCode, false)) == ""
}

// IsStopwordLanguage reports whether stopwords are available for lang.
func IsStopwordLanguage(lang Language) bool {
	for _, supported := range GetSupportedLanguages() {
		if lang == supported {
			return true
		}
	}
	return false
}

// GetSupportedLanguages returns all supported languages
func GetSupportedLanguages() []Language {
	return []Language{English, Spanish, French, German, Japanese}
}

// FormatLanguageError creates a formatted error for unsupported languages
func FormatLanguageError(lang Language) error {
	return fmt.Errorf("language %s is not supported. Supported languages: %v",
		string(lang), GetSupportedLanguages())
}

var englishStopwords = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
	"you're", "you've", "you'll", "you'd", "your", "yours", "yourself",
	"yourselves", "he", "him", "his", "himself", "she", "she's", "her", "hers",
	"herself", "it", "it's", "its", "itself", "they", "them", "their", "theirs",
	"themselves", "what", "which", "who", "whom", "this", "that", "that'll",
	"these", "those", "am", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "having", "do", "does", "did", "doing", "a", "an",
	"the", "and", "but", "if", "or", "because", "as", "until", "while", "of",
	"at", "by", "for", "with", "about", "against", "between", "into",
	"through", "during", "before", "after", "above", "below", "to", "from",
	"up", "down", "in", "out", "on", "off", "over", "under", "again",
	"further", "then", "once", "here", "there", "when", "where", "why", "how",
	"all", "any", "both", "each", "few", "more", "most", "other", "some",
	"such", "no", "nor", "not", "only", "own", "same", "so", "than", "too",
	"very", "s", "t", "can", "will", "just", "don", "don't", "should",
	"should've", "now", "d", "ll", "m", "o", "re", "ve", "y", "ain", "aren",
	"aren't", "couldn", "couldn't", "didn", "didn't", "doesn", "doesn't",
	"hadn", "hadn't", "hasn", "hasn't", "haven", "haven't", "isn", "isn't",
	"ma", "mightn", "mightn't", "mustn", "mustn't", "needn", "needn't", "shan",
	"shan't", "shouldn", "shouldn't", "wasn", "wasn't", "weren", "weren't",
	"won", "won't", "wouldn", "wouldn't",
}
