package summarizer

import "fmt"

// Split partitions tokens into consecutive windows of at most maxChunkLength
// ids. Windows share the backing array of tokens and are capped so appending
// to one never overwrites its neighbour. An empty sequence yields no windows.
func Split(tokens []int, maxChunkLength int) ([][]int, error) {
	if maxChunkLength <= 0 {
		return nil, fmt.Errorf("max chunk length must be positive, got %d", maxChunkLength)
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	chunks := make([][]int, 0, ChunkCount(len(tokens), maxChunkLength))
	for start := 0; start < len(tokens); start += maxChunkLength {
		end := start + maxChunkLength
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, tokens[start:end:end])
	}
	return chunks, nil
}

// ChunkCount returns ceil(n/maxChunkLength).
func ChunkCount(n, maxChunkLength int) int {
	if n <= 0 || maxChunkLength <= 0 {
		return 0
	}
	return (n + maxChunkLength - 1) / maxChunkLength
}
