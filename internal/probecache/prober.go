package probecache

import (
	"context"

	"speechset/internal/logging"
)

// DurationProber matches the duration probe used by manifest building.
type DurationProber interface {
	DurationMS(ctx context.Context, path string) (float64, error)
}

// Prober wraps a DurationProber with cache lookups. A nil store disables
// caching entirely.
type Prober struct {
	store *Store
	inner DurationProber
}

// NewProber returns a caching wrapper around inner.
func NewProber(store *Store, inner DurationProber) *Prober {
	return &Prober{store: store, inner: inner}
}

// DurationMS returns the cached duration when the file is unchanged,
// probing and remembering it otherwise.
func (p *Prober) DurationMS(ctx context.Context, path string) (float64, error) {
	if p.store != nil {
		if durationMS, ok := p.store.Lookup(ctx, path); ok {
			return durationMS, nil
		}
	}

	durationMS, err := p.inner.DurationMS(ctx, path)
	if err != nil {
		return 0, err
	}
	if p.store != nil {
		if err := p.store.Remember(ctx, path, durationMS); err != nil {
			p.store.logger.Warn("remember duration failed",
				logging.Args(logging.String("path", path), logging.Error(err))...)
		}
	}
	return durationMS, nil
}
