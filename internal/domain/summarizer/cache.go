package summarizer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"
)

// Cache stores chunk summaries keyed by a digest of the chunk text.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, summary string, ttl time.Duration) error
}

// CachedInvoker reuses summaries of chunk texts it has already seen and only
// forwards misses to the wrapped invoker. Cache failures degrade to misses.
type CachedInvoker struct {
	next      Invoker
	cache     Cache
	namespace string
	ttl       time.Duration
	logger    *slog.Logger
}

// NewCachedInvoker wraps next with cache. namespace should identify the model
// so summaries from different backends never mix.
func NewCachedInvoker(next Invoker, cache Cache, namespace string, ttl time.Duration, logger *slog.Logger) *CachedInvoker {
	return &CachedInvoker{
		next:      next,
		cache:     cache,
		namespace: namespace,
		ttl:       ttl,
		logger:    logger.With("component", "summarizer.cache"),
	}
}

// SummarizeBatch implements Invoker.
func (c *CachedInvoker) SummarizeBatch(ctx context.Context, texts []string, bounds Bounds) ([]string, error) {
	out := make([]string, len(texts))
	keys := make([]string, len(texts))
	var (
		missIdx   []int
		missTexts []string
	)
	for i, text := range texts {
		keys[i] = c.key(text, bounds)
		summary, ok, err := c.cache.Get(ctx, keys[i])
		if err != nil {
			c.logger.Warn("chunk cache read failed", "error", err)
		}
		if err == nil && ok {
			out[i] = summary
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) == 0 {
		c.logger.Debug("chunk cache served batch", "chunks", len(texts))
		return out, nil
	}

	fresh, err := c.next.SummarizeBatch(ctx, missTexts, bounds)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missTexts) {
		return nil, fmt.Errorf("expected %d chunk summaries, got %d", len(missTexts), len(fresh))
	}

	for j, i := range missIdx {
		out[i] = fresh[j]
		if err := c.cache.Set(ctx, keys[i], fresh[j], c.ttl); err != nil {
			c.logger.Warn("chunk cache write failed", "error", err)
		}
	}
	c.logger.Debug("chunk cache merged batch", "chunks", len(texts), "misses", len(missTexts))
	return out, nil
}

func (c *CachedInvoker) key(text string, bounds Bounds) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%d\x00%d\x00%s", c.namespace, bounds.MinLength, bounds.MaxLength, text)))
	return hex.EncodeToString(sum[:])
}

var _ Invoker = (*CachedInvoker)(nil)
