package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// stallProvider blocks until the context is done, imitating a hung
// upstream call.
type stallProvider struct{}

func (stallProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stallProvider) ModelID() string { return "stall" }

func TestWithTimeout_BoundsHungCall(t *testing.T) {
	p := WithTimeout(stallProvider{}, 20*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("call blocked for %v", elapsed)
	}
}

func TestWithTimeout_BoundsRetries(t *testing.T) {
	// Retry would normally keep going; the outer deadline cuts the whole
	// sequence short.
	retried := WithRetry(stallProvider{}, RetryConfig{
		MaxAttempts: 5,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	})
	p := WithTimeout(retried, 20*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestWithTimeout_NonPositiveIsNoop(t *testing.T) {
	inner := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	if got := WithTimeout(inner, 0); got != Provider(inner) {
		t.Fatalf("zero timeout should return the provider unchanged, got %T", got)
	}
}
