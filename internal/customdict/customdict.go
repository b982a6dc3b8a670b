package customdict

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	symspell "kosymspell/pkg"
)

// DefaultKey is the Redis set holding the custom words.
const DefaultKey = "custom_dict"

// CustomDict wraps a Redis client to store custom dictionary words.
type CustomDict struct {
	client *redis.Client
	key    string
}

// New creates a new CustomDict with the provided Redis client.
func New(client *redis.Client) *CustomDict {
	return &CustomDict{client: client, key: DefaultKey}
}

// NewWithKey stores the words under a different set key.
func NewWithKey(client *redis.Client, key string) *CustomDict {
	return &CustomDict{client: client, key: key}
}

// Add inserts a word into the custom dictionary.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	return cd.client.SAdd(ctx, cd.key, word).Err()
}

// Remove deletes a word from the custom dictionary.
func (cd *CustomDict) Remove(ctx context.Context, word string) error {
	return cd.client.SRem(ctx, cd.key, word).Err()
}

// All returns all words stored in the custom dictionary.
func (cd *CustomDict) All(ctx context.Context) ([]string, error) {
	return cd.client.SMembers(ctx, cd.key).Result()
}

// Rows serves words as dictionary rows, each with the given count.
func Rows(words []string, count int64) symspell.RowReader {
	entries := make([]symspell.Entry, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		entries = append(entries, symspell.Entry{Term: strings.ToLower(w), Count: count})
	}
	return symspell.NewSliceRowReader(entries)
}
