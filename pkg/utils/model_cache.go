package utils

import (
	"context"
	"sync"
)

// ModelCache holds the first successful model listing for the life of the process.
// Failed loads are not remembered, so the next caller tries again.
type ModelCache struct {
	mu     sync.Mutex
	models []string
	loaded bool
}

func NewModelCache() *ModelCache {
	return &ModelCache{}
}

func (m *ModelCache) Get(ctx context.Context, load func(ctx context.Context) ([]string, error)) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		models, err := load(ctx)
		if err != nil {
			return nil, err
		}
		m.models = models
		m.loaded = true
	}

	out := make([]string, len(m.models))
	copy(out, m.models)
	return out, nil
}
