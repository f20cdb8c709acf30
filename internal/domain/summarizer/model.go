package summarizer

import (
	"time"

	"github.com/yanqian/article-summarizer/pkg/metrics"
)

// Error codes surfaced by the summarizer domain.
const (
	CodeEmptyInput               = "empty_input"
	CodeTokenizationFailed       = "tokenization_failed"
	CodeSummarizationUnavailable = "summarization_unavailable"
	CodeInvalidConfig            = "invalid_config"
)

// Defaults mirror the limits of a 1024 token summarization model.
const (
	DefaultMaxChunkLength = 1000
	DefaultMinLength      = 30
	DefaultMaxLength      = 150
)

// Config configures chunking and generation bounds.
type Config struct {
	MaxChunkLength int
	MinLength      int
	MaxLength      int
	RequestTimeout time.Duration
	// SerializeInvocations guards the invoker with a process-wide lock for
	// capabilities that are not reentrant.
	SerializeInvocations bool
}

// Bounds limits the length of each generated chunk summary.
type Bounds struct {
	MinLength int
	MaxLength int
}

// Request represents the incoming summarization payload.
type Request struct {
	Text string `json:"text"`
}

// Result is the aggregate output of a summarization call.
type Result struct {
	Summary           string         `json:"summary"`
	OriginalWordCount int            `json:"originalWordCount"`
	SummaryWordCount  int            `json:"summaryWordCount"`
	ReadabilityScore  float64        `json:"readabilityScore"`
	Usage             *metrics.Usage `json:"usage,omitempty"`
	DurationMs        int64          `json:"durationMs,omitempty"`
}

// Bounds returns the generation bounds configured for chunk summaries.
func (c Config) Bounds() Bounds {
	return Bounds{MinLength: c.MinLength, MaxLength: c.MaxLength}
}
