// File: internal/usecase/poller_test.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"image-gateway/internal/domain"
	"image-gateway/internal/domain/ports/adapter"
	"image-gateway/internal/provider"
)

func testTarget() *provider.ResolvedTarget {
	return &provider.ResolvedTarget{
		Provider:       "flux",
		CanonicalModel: "flux",
		Endpoint:       "/submit/flux",
		Variant:        "flux-dev",
	}
}

func TestPoller_DoneOnThirdAttempt(t *testing.T) {
	up := &fakeUpstream{
		polls: []pollStep{
			{res: &adapter.PollResult{Status: adapter.PollPending}},
			{res: &adapter.PollResult{Status: adapter.PollPending}},
			{res: &adapter.PollResult{Status: adapter.PollDone, URL: "https://up.example/img.png"}},
		},
	}
	p := NewJobPoller(up, PollerConfig{MaxAttempts: 10, Interval: time.Millisecond}, nopLogger()).WithSleeper(noSleep)

	url, err := p.Run(context.Background(), testTarget(), "a red fox")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if url != "https://up.example/img.png" {
		t.Errorf("source URL = %q", url)
	}
	if up.pollCalls != 3 {
		t.Errorf("poll calls = %d, want 3", up.pollCalls)
	}
	if up.submitCalls != 1 {
		t.Errorf("submit calls = %d, want 1", up.submitCalls)
	}
}

func TestPoller_TimeoutAfterMaxAttempts(t *testing.T) {
	up := &fakeUpstream{} // every poll answers pending
	p := NewJobPoller(up, PollerConfig{MaxAttempts: 5, Interval: time.Millisecond}, nopLogger()).WithSleeper(noSleep)

	_, err := p.Run(context.Background(), testTarget(), "prompt")
	if !errors.Is(err, domain.ErrGenerationTimeout) {
		t.Fatalf("error = %v, want ErrGenerationTimeout", err)
	}
	if up.pollCalls != 5 {
		t.Errorf("poll calls = %d, want exactly 5", up.pollCalls)
	}
	if !strings.Contains(err.Error(), "5 attempts") {
		t.Errorf("error should carry the attempt count, got %q", err.Error())
	}
}

func TestPoller_ExplicitErrorIsTerminal(t *testing.T) {
	up := &fakeUpstream{
		polls: []pollStep{
			{res: &adapter.PollResult{Status: adapter.PollPending}},
			{res: &adapter.PollResult{Status: adapter.PollError, Message: "nsfw rejected"}},
		},
	}
	p := NewJobPoller(up, PollerConfig{MaxAttempts: 10, Interval: time.Millisecond}, nopLogger()).WithSleeper(noSleep)

	_, err := p.Run(context.Background(), testTarget(), "prompt")
	if !errors.Is(err, domain.ErrUpstreamGenerationFailed) {
		t.Fatalf("error = %v, want ErrUpstreamGenerationFailed", err)
	}
	if up.pollCalls != 2 {
		t.Errorf("poll calls = %d, want 2 (no polling past a terminal error)", up.pollCalls)
	}
}

func TestPoller_TransportErrorsAreTransient(t *testing.T) {
	up := &fakeUpstream{
		polls: []pollStep{
			{err: errBoom},
			{err: errBoom},
			{res: &adapter.PollResult{Status: adapter.PollDone, URL: "https://up.example/ok.png"}},
		},
	}
	p := NewJobPoller(up, PollerConfig{MaxAttempts: 10, Interval: time.Millisecond}, nopLogger()).WithSleeper(noSleep)

	url, err := p.Run(context.Background(), testTarget(), "prompt")
	if err != nil {
		t.Fatalf("Run() error = %v, transport flakiness must not abort the job", err)
	}
	if url != "https://up.example/ok.png" {
		t.Errorf("source URL = %q", url)
	}
}

func TestPoller_RejectedSubmit(t *testing.T) {
	up := &fakeUpstream{submitAck: &adapter.SubmitAck{OK: false, Message: "queue full"}}
	p := NewJobPoller(up, PollerConfig{MaxAttempts: 10, Interval: time.Millisecond}, nopLogger()).WithSleeper(noSleep)

	_, err := p.Run(context.Background(), testTarget(), "prompt")
	if !errors.Is(err, domain.ErrUpstreamRejected) {
		t.Fatalf("error = %v, want ErrUpstreamRejected", err)
	}
	if up.pollCalls != 0 {
		t.Errorf("poll calls = %d, want 0 after a rejected submission", up.pollCalls)
	}
}

func TestPoller_SubmitTransportError(t *testing.T) {
	up := &fakeUpstream{submitErr: errBoom}
	p := NewJobPoller(up, PollerConfig{MaxAttempts: 10, Interval: time.Millisecond}, nopLogger()).WithSleeper(noSleep)

	_, err := p.Run(context.Background(), testTarget(), "prompt")
	if !errors.Is(err, domain.ErrUpstreamRejected) {
		t.Fatalf("error = %v, want ErrUpstreamRejected", err)
	}
}

func TestPoller_VariantForwardedToSubmit(t *testing.T) {
	up := &fakeUpstream{
		polls: []pollStep{{res: &adapter.PollResult{Status: adapter.PollDone, URL: "u"}}},
	}
	p := NewJobPoller(up, PollerConfig{MaxAttempts: 3, Interval: time.Millisecond}, nopLogger()).WithSleeper(noSleep)

	if _, err := p.Run(context.Background(), testTarget(), "a red fox"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if up.lastVariant != "flux-dev" {
		t.Errorf("variant = %q, want flux-dev", up.lastVariant)
	}
	if up.lastPrompt != "a red fox" {
		t.Errorf("prompt = %q", up.lastPrompt)
	}
}

func TestPoller_CanceledContextStopsSleep(t *testing.T) {
	up := &fakeUpstream{}
	p := NewJobPoller(up, PollerConfig{MaxAttempts: 10, Interval: time.Hour}, nopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Run(ctx, testTarget(), "prompt")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if up.pollCalls != 0 {
		t.Errorf("poll calls = %d, want 0", up.pollCalls)
	}
}
