package session

import (
	"context"
	"time"
)

// NoopCache stands in when no Redis is configured or reachable at startup.
// It reports itself unavailable, so callers skip it.
type NoopCache struct{}

func (NoopCache) Put(context.Context, string, string, time.Duration) error { return nil }

func (NoopCache) Get(context.Context, string) (string, error) { return "", nil }

func (NoopCache) Delete(context.Context, string) error { return nil }

func (NoopCache) IsAvailable(context.Context) bool { return false }

func (NoopCache) Close() error { return nil }
