package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v, err=%v, want miss", ok, err)
	}

	if err := c.Set(ctx, "k", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = ok=%v, err=%v, want hit", ok, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want %q", data, "payload")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() hit after Delete()")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() of absent key error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, err := c.Get(ctx, "short"); err != nil || ok {
		t.Errorf("Get() after expiry = ok=%v, err=%v, want miss", ok, err)
	}

	// Zero TTL never expires.
	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "forever"); !ok {
		t.Error("Get() missed an entry stored without TTL")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("Get() = ok=%v, err=%v, want permanent miss", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := LayoutKeyOpts{ParentChildMargin: 10, PeerMargin: 5}

	a := k.LayoutKey("treehash", base)
	if !strings.HasPrefix(a, "layout:") {
		t.Errorf("LayoutKey() = %q, want layout: prefix", a)
	}
	if b := k.LayoutKey("treehash", base); b != a {
		t.Error("LayoutKey() is not deterministic")
	}
	if b := k.LayoutKey("otherhash", base); b == a {
		t.Error("LayoutKey() ignores the tree hash")
	}

	variants := []LayoutKeyOpts{
		{Layered: true, ParentChildMargin: 10, PeerMargin: 5},
		{ParentChildMargin: 11, PeerMargin: 5},
		{ParentChildMargin: 10, PeerMargin: 6},
	}
	for i, v := range variants {
		if k.LayoutKey("treehash", v) == a {
			t.Errorf("variant %d produced the same key as the base settings", i)
		}
	}

	art := k.ArtifactKey("layouthash", ArtifactKeyOpts{Format: "svg"})
	if !strings.HasPrefix(art, "artifact:") {
		t.Errorf("ArtifactKey() = %q, want artifact: prefix", art)
	}
	if k.ArtifactKey("layouthash", ArtifactKeyOpts{Format: "png"}) == art {
		t.Error("ArtifactKey() ignores the format")
	}
	if k.ArtifactKey("layouthash", ArtifactKeyOpts{Format: "svg", Detailed: true}) == art {
		t.Error("ArtifactKey() ignores the detailed flag")
	}
	if k.ArtifactKey("otherhash", ArtifactKeyOpts{Format: "svg"}) == art {
		t.Error("ArtifactKey() ignores the layout hash")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "profile:fast:")

	opts := LayoutKeyOpts{PeerMargin: 1}
	got := scoped.LayoutKey("h", opts)
	want := "profile:fast:" + inner.LayoutKey("h", opts)
	if got != want {
		t.Errorf("LayoutKey() = %q, want %q", got, want)
	}

	fallback := NewScopedKeyer(nil, "p:")
	if !strings.HasPrefix(fallback.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"}), "p:artifact:") {
		t.Error("nil inner keyer did not fall back to the default")
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("data"))
	if len(a) != 64 {
		t.Errorf("Hash() returned %d hex chars, want 64", len(a))
	}
	if Hash([]byte("data")) != a {
		t.Error("Hash() is not deterministic")
	}
	if Hash([]byte("other")) == a {
		t.Error("Hash() collides on different inputs")
	}
}
