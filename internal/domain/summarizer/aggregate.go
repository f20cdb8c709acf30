package summarizer

import "strings"

// Aggregate joins chunk summaries in order and computes the result statistics.
func Aggregate(summaries []string, original string) Result {
	final := strings.Join(summaries, " ")
	return Result{
		Summary:           final,
		OriginalWordCount: WordCount(original),
		SummaryWordCount:  WordCount(final),
		ReadabilityScore:  FleschReadingEase(final),
	}
}

// WordCount counts whitespace delimited substrings.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
