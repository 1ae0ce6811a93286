package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	layoutStarts int
	layoutNodes  int
}

func (h *recordingPipelineHooks) OnLayoutStart(_ context.Context, nodeCount int) {
	h.layoutStarts++
	h.layoutNodes = nodeCount
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Pipeline().OnLoadStart(ctx, "stdin")
	Pipeline().OnLoadComplete(ctx, "stdin", 10, time.Millisecond, nil)
	Pipeline().OnLayoutStart(ctx, 10)
	Pipeline().OnLayoutComplete(ctx, 10, time.Millisecond, nil)
	Pipeline().OnRenderStart(ctx, "svg")
	Pipeline().OnRenderComplete(ctx, "svg", 1024, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheSet(ctx, "layout", 1024)
}

func TestRegisterAndReset(t *testing.T) {
	t.Cleanup(Reset)
	ctx := context.Background()

	ph := &recordingPipelineHooks{}
	ch := &recordingCacheHooks{}
	SetPipelineHooks(ph)
	SetCacheHooks(ch)

	Pipeline().OnLayoutStart(ctx, 42)
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "artifact")

	if ph.layoutStarts != 1 || ph.layoutNodes != 42 {
		t.Errorf("pipeline hook saw %d starts with %d nodes, want 1 start with 42", ph.layoutStarts, ph.layoutNodes)
	}
	if ch.hits != 1 || ch.misses != 1 {
		t.Errorf("cache hook saw %d hits, %d misses, want 1 and 1", ch.hits, ch.misses)
	}

	Reset()
	Pipeline().OnLayoutStart(ctx, 1)
	if ph.layoutStarts != 1 {
		t.Error("Reset() did not restore the no-op pipeline hooks")
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	ph := &recordingPipelineHooks{}
	SetPipelineHooks(ph)
	SetPipelineHooks(nil)

	Pipeline().OnLayoutStart(context.Background(), 1)
	if ph.layoutStarts != 1 {
		t.Error("SetPipelineHooks(nil) replaced the registered hooks")
	}
}
