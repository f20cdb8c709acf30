package history

import (
	"time"

	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
)

// DefaultCapacity bounds how many results are kept per process.
const DefaultCapacity = 50

// Entry is one completed summarization shown in the history list.
type Entry struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Result    summarizer.Result `json:"result"`
}
