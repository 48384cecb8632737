// File: internal/usecase/poller.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"image-gateway/internal/domain"
	"image-gateway/internal/domain/model"
	"image-gateway/internal/domain/ports/adapter"
	"image-gateway/internal/infra/metrics"
	"image-gateway/internal/provider"
)

// Compile-time check
var _ JobPoller = (*jobPoller)(nil)

// JobPoller drives the submit -> poll -> done/failed/timeout lifecycle of
// one upstream generation task and returns the source artifact URL.
type JobPoller interface {
	Run(ctx context.Context, target *provider.ResolvedTarget, prompt string) (sourceURL string, err error)
}

type PollerConfig struct {
	MaxAttempts int
	Interval    time.Duration
}

// Sleeper waits between poll attempts. Injectable so tests run without
// real timers.
type Sleeper func(ctx context.Context, d time.Duration) error

func realSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type jobPoller struct {
	client adapter.UpstreamClient
	cfg    PollerConfig
	sleep  Sleeper
	log    *zerolog.Logger
}

func NewJobPoller(client adapter.UpstreamClient, cfg PollerConfig, logger *zerolog.Logger) *jobPoller {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 60
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	return &jobPoller{client: client, cfg: cfg, sleep: realSleep, log: logger}
}

// WithSleeper overrides the inter-attempt wait. Test hook.
func (p *jobPoller) WithSleeper(s Sleeper) *jobPoller {
	p.sleep = s
	return p
}

func (p *jobPoller) Run(ctx context.Context, target *provider.ResolvedTarget, prompt string) (string, error) {
	ack, err := p.client.Submit(ctx, target.Endpoint, prompt, target.Variant)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamRejected, err)
	}
	if !ack.OK {
		metrics.IncUpstreamOutcome(target.Provider, "rejected")
		return "", fmt.Errorf("%w: %s", domain.ErrUpstreamRejected, ack.Message)
	}

	job := model.NewGenerationJob(ack.TaskHandle)
	job.State = model.JobPolling
	p.log.Debug().
		Str("provider", target.Provider).
		Str("task", job.TaskHandle).
		Msg("submission accepted, polling")

	// Constant-interval poll, not exponential backoff: upstream completion
	// times are unpredictable but bounded, and a fixed cadence keeps the
	// budget exact.
	for job.Attempts < p.cfg.MaxAttempts {
		if err := p.sleep(ctx, p.cfg.Interval); err != nil {
			return "", err
		}
		job.Attempts++

		res, err := p.client.Poll(ctx, job.TaskHandle)
		if err != nil {
			// Transport-level errors are transient: tolerate upstream
			// flakiness during long-running jobs and keep polling.
			p.log.Warn().Err(err).
				Str("task", job.TaskHandle).
				Int("attempt", job.Attempts).
				Msg("poll attempt failed")
			continue
		}

		switch res.Status {
		case adapter.PollDone:
			job.Complete(res.URL)
			metrics.IncUpstreamOutcome(target.Provider, "done")
			metrics.ObservePollAttempts(target.Provider, job.Attempts)
			return job.SourceURL, nil
		case adapter.PollError:
			// Explicit upstream failure is terminal, not transient.
			job.Fail()
			metrics.IncUpstreamOutcome(target.Provider, "failed")
			return "", fmt.Errorf("%w: %s", domain.ErrUpstreamGenerationFailed, res.Message)
		}
		// pending: next attempt
	}

	job.TimeOut()
	metrics.IncUpstreamOutcome(target.Provider, "timeout")
	return "", fmt.Errorf("%w after %d attempts", domain.ErrGenerationTimeout, job.Attempts)
}
