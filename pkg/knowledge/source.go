package knowledge

import (
	"context"
	"fmt"
)

// ObjectReader fetches a whole object from remote storage.
type ObjectReader interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// LoadRemote reads the knowledge base document stored under key.
func LoadRemote(ctx context.Context, r ObjectReader, key string) (*Base, error) {
	data, err := r.GetObject(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetch knowledge base %s: %w", key, err)
	}
	return Parse(data)
}
