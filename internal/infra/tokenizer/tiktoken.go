package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
)

// DefaultEncoding is the BPE vocabulary used when none is configured.
const DefaultEncoding = "cl100k_base"

var specialTokens = []string{
	"<|endoftext|>",
	"<|fim_prefix|>",
	"<|fim_middle|>",
	"<|fim_suffix|>",
	"<|endofprompt|>",
}

var installOfflineLoader sync.Once

// Tiktoken adapts a BPE encoding to summarizer.Tokenizer. The vocabulary is
// loaded once and only read afterwards, so one instance serves all requests.
type Tiktoken struct {
	encoding *tiktoken.Tiktoken
	special  map[int]struct{}
}

// NewTiktoken loads the named encoding, falling back to DefaultEncoding.
// BPE ranks come from the embedded offline loader, so no network is needed.
func NewTiktoken(name string) (*Tiktoken, error) {
	if name == "" {
		name = DefaultEncoding
	}
	installOfflineLoader.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})
	encoding, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %q: %w", name, err)
	}

	special := make(map[int]struct{}, len(specialTokens))
	for _, token := range specialTokens {
		ids := encoding.Encode(token, []string{"all"}, nil)
		// Encodings without this special token split it into ordinary ids.
		if len(ids) == 1 {
			special[ids[0]] = struct{}{}
		}
	}
	return &Tiktoken{encoding: encoding, special: special}, nil
}

// Encode implements summarizer.Tokenizer. Special token markers inside the
// text are encoded as plain text.
func (t *Tiktoken) Encode(text string) (tokens []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			tokens, err = nil, fmt.Errorf("encode text: %v", r)
		}
	}()
	return t.encoding.Encode(text, nil, nil), nil
}

// Decode implements summarizer.Tokenizer, dropping special token ids.
func (t *Tiktoken) Decode(tokens []int) string {
	kept := tokens
	for i, id := range tokens {
		if _, ok := t.special[id]; ok {
			kept = make([]int, 0, len(tokens))
			kept = append(kept, tokens[:i]...)
			for _, rest := range tokens[i+1:] {
				if _, skip := t.special[rest]; !skip {
					kept = append(kept, rest)
				}
			}
			break
		}
	}
	return t.encoding.Decode(kept)
}

var _ summarizer.Tokenizer = (*Tiktoken)(nil)
