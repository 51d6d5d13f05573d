package cache

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryCacheMissThenHit(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if _, err := c.Get(ctx, "indices"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := c.Set(ctx, "indices", []byte(`{"KOSPI":{}}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.Get(ctx, "indices")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"KOSPI":{}}` {
		t.Fatalf("unexpected value %s", got)
	}
}

func TestMemoryCacheOverwritesAndCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	buf := []byte(`[1]`)
	_ = c.Set(ctx, "program-top", buf)
	buf[1] = '9'

	got, _ := c.Get(ctx, "program-top")
	if string(got) != `[1]` {
		t.Fatalf("stored value aliased caller buffer: %s", got)
	}

	_ = c.Set(ctx, "program-top", []byte(`[2]`))
	got, _ = c.Get(ctx, "program-top")
	if string(got) != `[2]` {
		t.Fatalf("expected overwrite, got %s", got)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 key, got %d", c.Len())
	}
}

type failingRemote struct{ *MemoryCache }

func (f *failingRemote) Set(context.Context, string, []byte) error { return errors.New("down") }

func TestLayeredCacheKeepsLocalCopyWhenRemoteFails(t *testing.T) {
	ctx := context.Background()
	lc := NewLayeredCache(&failingRemote{NewMemoryCache()})

	if err := lc.Set(ctx, "stock/005930", []byte(`{"name":"Samsung"}`)); err == nil {
		t.Fatal("expected remote error to surface")
	}
	got, err := lc.Get(ctx, "stock/005930")
	if err != nil {
		t.Fatalf("expected local hit, got %v", err)
	}
	if string(got) != `{"name":"Samsung"}` {
		t.Fatalf("unexpected value %s", got)
	}
}

func TestGetTyped(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	_ = c.Set(ctx, "k", []byte(`{"a":3}`))

	v, err := GetTyped[map[string]int](ctx, c, "k")
	if err != nil {
		t.Fatalf("get typed: %v", err)
	}
	if v["a"] != 3 {
		t.Fatalf("unexpected value %v", v)
	}
}
