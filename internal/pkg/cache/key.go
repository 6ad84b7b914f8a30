package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// KeyBuilder builds stable cache keys from named components.
type KeyBuilder struct {
	components []map[string]any
}

func NewKeyBuilder() *KeyBuilder {
	return &KeyBuilder{components: make([]map[string]any, 0, 4)}
}

func (b *KeyBuilder) Add(name string, value any) *KeyBuilder {
	b.components = append(b.components, map[string]any{name: value})
	return b
}

// Build hashes the components in insertion order.
func (b *KeyBuilder) Build() (string, error) {
	raw, err := json.Marshal(b.components)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cache key components: %w", err)
	}
	sum := md5.Sum(raw)
	return hex.EncodeToString(sum[:]), nil
}
