package adapter

import (
	"context"
	"io"
)

// SubmitAck is the provider's acknowledgement of a generation submission.
type SubmitAck struct {
	OK         bool
	TaskHandle string // opaque: either a task id or an absolute status URL
	Message    string
}

type PollStatus string

const (
	PollPending PollStatus = "pending"
	PollDone    PollStatus = "done"
	PollError   PollStatus = "error"
)

// PollResult is one observation of an upstream task's state.
type PollResult struct {
	Status  PollStatus
	URL     string // result artifact URL, set when Status == PollDone
	Message string
}

// UpstreamClient speaks a provider's submit/poll task protocol.
type UpstreamClient interface {
	// Submit issues the generation request to the given endpoint path.
	// variant is attached only for multi-variant providers (empty otherwise).
	Submit(ctx context.Context, endpoint, prompt, variant string) (*SubmitAck, error)
	Poll(ctx context.Context, taskHandle string) (*PollResult, error)
}

// ArtifactFetcher downloads a finished artifact from its upstream URL.
type ArtifactFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}
