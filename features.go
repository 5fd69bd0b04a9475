package studyguide

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Feature extraction limits. Concepts come from a TF-IDF weighting over
// 1-3 word n-grams; key terms from frequency counts over noun-class tokens.
const (
	minConceptSentences    = 5
	maxVocabulary          = 100
	minDocumentFrequency   = 2
	conceptWeightThreshold = 0.1
	maxConcepts            = 10
	maxKeyTerms            = 20
	minKeyTermLength       = 4
)

// tokenRe matches word tokens of at least two word characters.
var tokenRe = regexp.MustCompile(`\b\w\w+\b`)

// English stop words, the usual information-retrieval list.
var stopWords = func() map[string]bool {
	words := strings.Fields(`a about above after again against all am an and any
		are aren as at be because been before being below between both but by can
		cannot could couldn did didn do does doesn doing don down during each few
		for from further had hadn has hasn have haven having he her here hers
		herself him himself his how i if in into is isn it its itself just me more
		most mustn my myself no nor not now of off on once only or other our ours
		ourselves out over own same shan she should shouldn so some such than that
		the their theirs them themselves then there these they this those through
		to too under until up very was wasn we were weren what when where which
		while who whom why will with won would wouldn you your yours yourself
		yourselves`)
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()

// SplitSentences splits text into sentences at terminal punctuation followed
// by whitespace or end of input. Trailing text without a terminal mark forms
// a final sentence.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		j := i + 1
		for j < len(text) && (text[j] == '.' || text[j] == '!' || text[j] == '?') {
			j++
		}
		if j < len(text) && text[j] != ' ' && text[j] != '\n' && text[j] != '\t' {
			i = j - 1
			continue
		}
		if s := strings.TrimSpace(text[start:j]); s != "" {
			sentences = append(sentences, s)
		}
		start = j
		i = j - 1
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// contentTokens lowercases and tokenizes a sentence, dropping stop words.
func contentTokens(sentence string) []string {
	tokens := tokenRe.FindAllString(strings.ToLower(sentence), -1)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if stopWords[tok] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// ExtractConcepts returns the top-weighted terms and short phrases in the
// text, highest weight first, capped at ten. Texts with fewer than five
// sentences carry too little signal and yield nil. Each candidate n-gram must
// occur in at least two sentences; weights are smoothed TF-IDF scores summed
// over all sentences, with each sentence vector length-normalized first.
func ExtractConcepts(text string) []string {
	sentences := SplitSentences(text)
	if len(sentences) < minConceptSentences {
		return nil
	}

	type termStat struct {
		df    int
		tf    int
		order int
	}
	stats := make(map[string]*termStat)
	docs := make([]map[string]int, len(sentences))
	order := 0

	for i, sentence := range sentences {
		tokens := contentTokens(sentence)
		counts := make(map[string]int)
		for n := 1; n <= 3; n++ {
			for j := 0; j+n <= len(tokens); j++ {
				counts[strings.Join(tokens[j:j+n], " ")]++
			}
		}
		docs[i] = counts
		for term, c := range counts {
			s := stats[term]
			if s == nil {
				s = &termStat{order: order}
				order++
				stats[term] = s
			}
			s.df++
			s.tf += c
		}
	}

	// Vocabulary: terms appearing in at least two sentences, capped at the
	// most frequent hundred. Ties resolve by first appearance.
	var vocab []string
	for term, s := range stats {
		if s.df >= minDocumentFrequency {
			vocab = append(vocab, term)
		}
	}
	sort.Slice(vocab, func(a, b int) bool {
		sa, sb := stats[vocab[a]], stats[vocab[b]]
		if sa.tf != sb.tf {
			return sa.tf > sb.tf
		}
		return sa.order < sb.order
	})
	if len(vocab) > maxVocabulary {
		vocab = vocab[:maxVocabulary]
	}
	inVocab := make(map[string]bool, len(vocab))
	for _, term := range vocab {
		inVocab[term] = true
	}

	n := float64(len(sentences))
	idf := make(map[string]float64, len(vocab))
	for _, term := range vocab {
		idf[term] = math.Log((1+n)/(1+float64(stats[term].df))) + 1
	}

	weights := make(map[string]float64, len(vocab))
	for _, counts := range docs {
		vals := make(map[string]float64)
		var norm float64
		for term, c := range counts {
			if !inVocab[term] {
				continue
			}
			v := float64(c) * idf[term]
			vals[term] = v
			norm += v * v
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for term, v := range vals {
			weights[term] += v / norm
		}
	}

	var ranked []string
	for _, term := range vocab {
		if weights[term] > conceptWeightThreshold {
			ranked = append(ranked, term)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return weights[ranked[a]] > weights[ranked[b]]
	})
	if len(ranked) > maxConcepts {
		ranked = ranked[:maxConcepts]
	}
	return ranked
}

// ExtractKeyTerms returns the most frequent noun-class tokens longer than
// three characters, lowercased, most frequent first, capped at twenty. Ties
// resolve by first appearance.
func ExtractKeyTerms(text string) []string {
	tokens := tokenRe.FindAllString(text, -1)
	var nouns []string
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < minKeyTermLength {
			continue
		}
		if !likelyNoun(tok) {
			continue
		}
		nouns = append(nouns, strings.ToLower(tok))
	}
	return mostCommon(nouns, maxKeyTerms)
}

// Derivational suffixes that mark a token as a noun even when other rules
// would reject it.
var nounSuffixes = []string{
	"tion", "sion", "ment", "ness", "ity", "ism", "ance", "ence",
	"ship", "hood", "logy", "graphy", "ware", "ture",
}

// Frequent verbs and adjectives that pass the morphology rules but almost
// never read as nouns.
var nonNounWords = map[string]bool{
	"have": true, "does": true, "make": true, "made": true, "take": true,
	"took": true, "come": true, "came": true, "goes": true, "went": true,
	"know": true, "think": true, "want": true, "need": true, "look": true,
	"give": true, "find": true, "tell": true, "become": true, "leave": true,
	"feel": true, "bring": true, "begin": true, "keep": true, "hold": true,
	"write": true, "stand": true, "hear": true, "mean": true, "good": true,
	"great": true, "small": true, "large": true, "long": true, "high": true,
	"many": true, "much": true, "also": true, "well": true, "even": true,
	"still": true, "another": true, "every": true, "several": true,
}

// likelyNoun reports whether a token plausibly reads as a common or proper
// noun. Nouns are the open default class, so the heuristic rejects tokens
// with strong non-noun morphology and accepts the rest, the same fallback a
// statistical tagger applies to unknown words.
func likelyNoun(word string) bool {
	for _, r := range word {
		if unicode.IsDigit(r) || r == '_' {
			return false
		}
	}
	lower := strings.ToLower(word)
	if stopWords[lower] || nonNounWords[lower] {
		return false
	}
	first, _ := utf8.DecodeRuneInString(word)
	if unicode.IsUpper(first) {
		return true
	}
	for _, suf := range nounSuffixes {
		if strings.HasSuffix(lower, suf) {
			return true
		}
	}
	if strings.HasSuffix(lower, "ly") || strings.HasSuffix(lower, "ing") || strings.HasSuffix(lower, "ed") {
		return false
	}
	return true
}

// mostCommon returns the n most frequent values, ties broken by first
// appearance order.
func mostCommon(values []string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}
