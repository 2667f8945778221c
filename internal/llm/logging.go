package llm

import (
	"context"
	"time"
)

// CallRecord describes one completed (or failed) model request.
type CallRecord struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// CallSink receives call records. The store's LLM call repo satisfies
// this; tests use an in-memory sink.
type CallSink interface {
	RecordCall(ctx context.Context, rec CallRecord) error
}

// LoggingProvider is a decorator that records every model request.
type LoggingProvider struct {
	inner Provider
	sink  CallSink
}

// WithLogging wraps a Provider with call recording.
func WithLogging(p Provider, sink CallSink) Provider {
	return &LoggingProvider{inner: p, sink: sink}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	rec := CallRecord{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// Recording must never fail the request.
	_ = l.sink.RecordCall(ctx, rec)

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
