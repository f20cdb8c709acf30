package summarycache

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
)

// ValkeyStore shares chunk summaries across instances through Valkey.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "summary"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (string, bool, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(s.chunkKey(key)).Build())
	summary, err := resp.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return summary, true, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key, summary string, ttl time.Duration) error {
	builder := s.client.B().Set().Key(s.chunkKey(key)).Value(summary)
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) chunkKey(key string) string {
	return fmt.Sprintf("%s:chunk:%s", s.prefix, key)
}

var _ summarizer.Cache = (*ValkeyStore)(nil)
