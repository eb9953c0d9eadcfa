package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/studywise/studywise-backend/internal/ai/engine"
)

// Engine is a deterministic stand-in for the local model runtime. Tests use
// Delay plus the concurrency counters to observe gate serialization.
type Engine struct {
	Response string
	Err      error
	Delay    time.Duration

	mu            sync.Mutex
	calls         int
	inFlight      int
	maxConcurrent int
}

func New() *Engine {
	return &Engine{}
}

func (e *Engine) Generate(ctx context.Context, prompt string, opts engine.GenerateOptions) (string, error) {
	e.mu.Lock()
	e.calls++
	e.inFlight++
	if e.inFlight > e.maxConcurrent {
		e.maxConcurrent = e.inFlight
	}
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.inFlight--
		e.mu.Unlock()
	}()

	if e.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(e.Delay):
		}
	}
	if e.Err != nil {
		return "", e.Err
	}
	if e.Response != "" {
		return e.Response, nil
	}
	if strings.TrimSpace(prompt) == "" {
		return "mock: ok", nil
	}
	return fmt.Sprintf("mock: %s", firstLine(prompt)), nil
}

func (e *Engine) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func (e *Engine) MaxConcurrent() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.maxConcurrent
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
