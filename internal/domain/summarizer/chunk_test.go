package summarizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		tokens    int
		limit     int
		wantSizes []int
	}{
		{name: "empty yields nothing", tokens: 0, limit: 1000, wantSizes: nil},
		{name: "shorter than limit", tokens: 10, limit: 1000, wantSizes: []int{10}},
		{name: "exactly one window", tokens: 1000, limit: 1000, wantSizes: []int{1000}},
		{name: "one and a half windows", tokens: 1500, limit: 1000, wantSizes: []int{1000, 500}},
		{name: "exact multiple", tokens: 3000, limit: 1000, wantSizes: []int{1000, 1000, 1000}},
		{name: "limit of one", tokens: 3, limit: 1, wantSizes: []int{1, 1, 1}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			chunks, err := Split(sequence(tt.tokens), tt.limit)
			require.NoError(t, err)
			var sizes []int
			for _, c := range chunks {
				sizes = append(sizes, len(c))
			}
			require.Equal(t, tt.wantSizes, sizes)
		})
	}
}

func TestSplitRejectsNonPositiveLimit(t *testing.T) {
	_, err := Split(sequence(5), 0)
	require.EqualError(t, err, "max chunk length must be positive, got 0")

	_, err = Split(sequence(5), -3)
	require.Error(t, err)
}

func TestSplitCoversInputInOrder(t *testing.T) {
	for n := 0; n <= 64; n++ {
		for limit := 1; limit <= 17; limit++ {
			tokens := sequence(n)
			chunks, err := Split(tokens, limit)
			require.NoError(t, err)
			require.Len(t, chunks, ChunkCount(n, limit), "n=%d limit=%d", n, limit)

			var joined []int
			for _, c := range chunks {
				require.NotEmpty(t, c)
				require.LessOrEqual(t, len(c), limit)
				joined = append(joined, c...)
			}
			if n == 0 {
				require.Empty(t, joined)
				continue
			}
			require.Equal(t, tokens, joined, "n=%d limit=%d", n, limit)
		}
	}
}

func TestSplitWindowsDoNotAlias(t *testing.T) {
	tokens := sequence(6)
	chunks, err := Split(tokens, 3)
	require.NoError(t, err)

	_ = append(chunks[0], 99)
	require.Equal(t, []int{3, 4, 5}, chunks[1])
}

func TestChunkCount(t *testing.T) {
	require.Equal(t, 0, ChunkCount(0, 1000))
	require.Equal(t, 1, ChunkCount(1, 1000))
	require.Equal(t, 1, ChunkCount(1000, 1000))
	require.Equal(t, 2, ChunkCount(1001, 1000))
	require.Equal(t, 2, ChunkCount(1500, 1000))
	require.Equal(t, 0, ChunkCount(10, 0))
}
