package probecache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type countingProbe struct {
	calls int
	value float64
	err   error
}

func (c *countingProbe) DurationMS(context.Context, string) (float64, error) {
	c.calls++
	return c.value, c.err
}

func TestProberCachesAcrossCalls(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	audio := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(audio, []byte("samples"), 0o644); err != nil {
		t.Fatal(err)
	}

	inner := &countingProbe{value: 750}
	prober := NewProber(store, inner)

	for i := 0; i < 3; i++ {
		got, err := prober.DurationMS(ctx, audio)
		if err != nil {
			t.Fatalf("DurationMS returned error: %v", err)
		}
		if got != 750 {
			t.Fatalf("unexpected duration: %v", got)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("expected a single probe, got %d", inner.calls)
	}
}

func TestProberNilStorePassesThrough(t *testing.T) {
	inner := &countingProbe{value: 200}
	prober := NewProber(nil, inner)

	for i := 0; i < 2; i++ {
		if _, err := prober.DurationMS(context.Background(), "clip.wav"); err != nil {
			t.Fatal(err)
		}
	}
	if inner.calls != 2 {
		t.Fatalf("expected probe per call without store, got %d", inner.calls)
	}
}

func TestProberPropagatesErrors(t *testing.T) {
	boom := errors.New("probe failed")
	prober := NewProber(openStore(t), &countingProbe{err: boom})

	if _, err := prober.DurationMS(context.Background(), "clip.wav"); !errors.Is(err, boom) {
		t.Fatalf("expected probe error, got %v", err)
	}
}
