package summarizer

import (
	"math"
	"strings"
	"unicode"
)

// FleschReadingEase scores text with the standard formula
//
//	206.835 - 1.015*(words/sentences) - 84.6*(syllables/words)
//
// using these counting rules:
//   - a word is a whitespace delimited token containing a letter or digit;
//   - a sentence ends at every word whose trailing punctuation contains
//     '.', '!' or '?', and text with words has at least one sentence;
//   - syllables are groups of consecutive vowels (a, e, i, o, u, and y when
//     it is not the first letter); a final silent 'e' is dropped unless the
//     word ends in consonant + "le"; every word has at least one syllable.
//
// The score is rounded to two decimals. Text without words scores 0.
func FleschReadingEase(text string) float64 {
	var words, sentences, syllables int
	for _, token := range strings.Fields(text) {
		core := strings.TrimFunc(token, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if core == "" {
			continue
		}
		words++
		syllables += countSyllables(core)
		if endsSentence(token) {
			sentences++
		}
	}
	if words == 0 {
		return 0
	}
	if sentences == 0 {
		sentences = 1
	}

	score := 206.835 -
		1.015*(float64(words)/float64(sentences)) -
		84.6*(float64(syllables)/float64(words))
	return math.Round(score*100) / 100
}

func endsSentence(token string) bool {
	trailing := strings.TrimRightFunc(token, func(r rune) bool {
		return strings.ContainsRune(`"')]}”’`, r)
	})
	return strings.ContainsAny(lastPunct(trailing), ".!?")
}

func lastPunct(token string) string {
	end := len(token)
	for end > 0 {
		r := rune(token[end-1])
		if r >= 0x80 || unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		end--
	}
	return token[end:]
}

func countSyllables(word string) int {
	letters := make([]rune, 0, len(word))
	for _, r := range strings.ToLower(word) {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return 1
	}

	count := 0
	prevVowel := false
	for i, r := range letters {
		vowel := isVowel(r) || (r == 'y' && i > 0)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	n := len(letters)
	if n > 1 && letters[n-1] == 'e' && count > 1 {
		consonantLE := n > 2 && letters[n-2] == 'l' && !isVowel(letters[n-3])
		if !consonantLE && !isVowel(letters[n-2]) {
			count--
		}
	}
	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
