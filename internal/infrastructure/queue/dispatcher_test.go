package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ewbmobile/hybrid-shell/internal/core/ports"
)

type stubProvisioner struct {
	mu     sync.Mutex
	tokens []string
	err    error
	done   chan struct{}
}

func (p *stubProvisioner) Provision(_ context.Context, token string) error {
	p.mu.Lock()
	p.tokens = append(p.tokens, token)
	p.mu.Unlock()
	p.done <- struct{}{}
	return p.err
}

type stubRecorder struct {
	mu      sync.Mutex
	results []string
}

func (r *stubRecorder) JobFinished(result string, _ time.Duration) {
	r.mu.Lock()
	r.results = append(r.results, result)
	r.mu.Unlock()
}

func (r *stubRecorder) QueueDepth(string, int) {}

// waitResults polls until n results have been recorded.
func (r *stubRecorder) waitResults(t *testing.T, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		r.mu.Lock()
		got := append([]string(nil), r.results...)
		r.mu.Unlock()
		if len(got) >= n {
			return got
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected %d results, got %v", n, got)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for provisioning")
	}
}

func TestDispatcher_RunsJobs(t *testing.T) {
	p := &stubProvisioner{done: make(chan struct{}, 4)}
	d := NewDispatcher(2, time.Second, p, nil, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.ProvisionRequest{UserID: "1", Token: "abc"})
	d.Enqueue(ports.ProvisionRequest{UserID: "1", Token: "def"})
	waitFor(t, p.done)
	waitFor(t, p.done)

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.tokens) != 2 || p.tokens[0] != "abc" || p.tokens[1] != "def" {
		t.Fatalf("expected jobs for one user in order, got %v", p.tokens)
	}
}

func TestDispatcher_FailureIsSwallowed(t *testing.T) {
	p := &stubProvisioner{done: make(chan struct{}, 2), err: errors.New("503")}
	rec := &stubRecorder{}
	d := NewDispatcher(1, time.Second, p, rec, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.ProvisionRequest{UserID: "1", Token: "abc"})
	waitFor(t, p.done)

	d.Enqueue(ports.ProvisionRequest{UserID: "1", Token: "def"})
	waitFor(t, p.done)

	if got := rec.waitResults(t, 2); got[0] != "failed" || got[1] != "failed" {
		t.Fatalf("expected two failed results, got %v", got)
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	p := &stubProvisioner{done: make(chan struct{}, 1)}
	rec := &stubRecorder{}
	d := NewDispatcher(1, time.Second, p, rec, zerolog.Nop())
	// Not started: the buffer fills up and further jobs are dropped.

	finished := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(ports.ProvisionRequest{UserID: "1", Token: "t"})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatalf("Enqueue blocked on a full queue")
	}

	got := rec.waitResults(t, 10)
	for _, r := range got {
		if r != "dropped" {
			t.Fatalf("expected only dropped results, got %v", got)
		}
	}
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(4, 0, &stubProvisioner{}, nil, zerolog.Nop())
	if d.shardIndex("user-42") != d.shardIndex("user-42") {
		t.Fatalf("shard index must be deterministic")
	}
	if idx := d.shardIndex("anything"); idx < 0 || idx >= 4 {
		t.Fatalf("shard index out of range: %d", idx)
	}
}
