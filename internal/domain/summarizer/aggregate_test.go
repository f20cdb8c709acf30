package summarizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregateJoinsInOrder(t *testing.T) {
	got := Aggregate([]string{"A brief summary.", "Another point."}, "the original article text")
	require.Equal(t, "A brief summary. Another point.", got.Summary)
	require.Equal(t, 5, got.SummaryWordCount)
	require.Equal(t, 4, got.OriginalWordCount)
	require.Equal(t, FleschReadingEase(got.Summary), got.ReadabilityScore)
}

func TestAggregatePreservesGivenOrder(t *testing.T) {
	forward := Aggregate([]string{"First.", "Second."}, "")
	reversed := Aggregate([]string{"Second.", "First."}, "")
	require.Equal(t, "First. Second.", forward.Summary)
	require.Equal(t, "Second. First.", reversed.Summary)
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil, "")
	require.Equal(t, "", got.Summary)
	require.Zero(t, got.SummaryWordCount)
	require.Zero(t, got.OriginalWordCount)
	require.Zero(t, got.ReadabilityScore)
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "empty", in: "", want: 0},
		{name: "whitespace only", in: " \t\n ", want: 0},
		{name: "mixed separators", in: "one  two\tthree\nfour", want: 4},
		{name: "punctuation stays attached", in: "Hello, world !", want: 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, WordCount(tt.in))
		})
	}
}
