package memory

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

var errLengthMismatch = errors.New("ids, documents and metadatas length mismatch")

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// tfidf vectorizes texts over a fixed corpus vocabulary with smoothed IDF
// weights and L2-normalized output.
type tfidf struct {
	vocabulary map[string]int
	idf        []float64
	dimension  int
	stopwords  map[string]struct{}
}

func newTFIDF(corpus []string) *tfidf {
	t := &tfidf{
		vocabulary: make(map[string]int),
		stopwords:  defaultStopwords(),
	}
	// Document frequencies over the corpus
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range t.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	// Stable vocabulary ordering
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	t.vocabulary = make(map[string]int, len(terms))
	t.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		t.vocabulary[term] = i
		// Smoothed IDF
		t.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	t.dimension = len(terms)
	return t
}

func (t *tfidf) embed(text string) []float64 {
	vec := make([]float64, t.dimension)
	tf := make(map[int]int)
	total := 0
	for _, tok := range t.tokenize(text) {
		if idx, ok := t.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec
	}
	for idx, count := range tf {
		tfv := float64(count) / float64(total)
		vec[idx] = tfv * t.idf[idx]
	}
	// L2 normalize
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func (t *tfidf) tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, isStop := t.stopwords[tok]; isStop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func tokenSet(s string) map[string]struct{} {
	tokens := tokenPattern.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

// overlapOchiai scores text against a query token set with the Ochiai
// coefficient: |A∩B| / sqrt(|A||B|).
func overlapOchiai(qset map[string]struct{}, text string) float64 {
	stoks := tokenPattern.FindAllString(strings.ToLower(text), -1)
	seen := make(map[string]struct{}, len(stoks))
	inter := 0
	for _, t := range stoks {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := qset[t]; ok {
			inter++
		}
	}
	if len(qset) == 0 || len(seen) == 0 {
		return 0
	}
	return float64(inter) / (math.Sqrt(float64(len(qset))) * math.Sqrt(float64(len(seen))))
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
