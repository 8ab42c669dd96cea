// Package metrics scores plain-language rewrites of medical notes.  Every
// function here is pure and total: any string, including the empty string,
// yields a defined number.
package metrics

import (
	"regexp"
	"strings"
)

var (
	wordPattern       = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	terminatorPattern = regexp.MustCompile(`[.!?]+`)
)

// Words returns the word tokens of text: maximal runs of letters, digits and
// underscores.
func Words(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// CountWords is len(Words(text)).
func CountWords(text string) int {
	return len(Words(text))
}

// CountSentences splits text on runs of '.', '!' and '?' and counts the
// segments that contain something other than whitespace.  Text without any
// terminator has no sentences.
func CountSentences(text string) int {
	if !terminatorPattern.MatchString(text) {
		return 0
	}
	count := 0
	for _, segment := range terminatorPattern.Split(text, -1) {
		if strings.TrimSpace(segment) != "" {
			count++
		}
	}
	return count
}

// CountSyllables estimates syllables as the number of vowel runs (a, e, i, o,
// u, y), never less than one.
func CountSyllables(word string) int {
	runs := 0
	inVowel := false
	for _, r := range strings.ToLower(word) {
		if isVowel(r) {
			if !inVowel {
				runs++
			}
			inVowel = true
			continue
		}
		inVowel = false
	}
	if runs == 0 {
		return 1
	}
	return runs
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// Readability computes the Flesch Reading Ease score of text, clamped to
// [0, 100].  Higher is easier; 70-80 reads comfortably for a general adult
// audience.
func Readability(text string) float64 {
	words := Words(text)
	sentences := CountSentences(text)
	if sentences == 0 || len(words) == 0 {
		return 0
	}
	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}
	wordCount := float64(len(words))
	score := 206.835 - 1.015*(wordCount/float64(sentences)) - 84.6*(float64(syllables)/wordCount)
	return clamp(score, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
