package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/studywise/studywise-backend/internal/ai/engine"
	"github.com/studywise/studywise-backend/internal/logger"
)

const (
	InferenceTimeout      = "timeout"
	InferenceModelFailure = "model_failure"
)

// InferenceError is the only failure type the gate returns. Callers recover
// from it by falling back to templates; it is never surfaced to end users.
type InferenceError struct {
	Kind   string
	Reason string
	Err    error
}

func (e *InferenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("inference %s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("inference %s: %s", e.Kind, e.Reason)
}

func (e *InferenceError) Unwrap() error { return e.Err }

func (e *InferenceError) IsTimeout() bool { return e.Kind == InferenceTimeout }

type GateConfig struct {
	MaxTokens       int
	Temperature     float64
	DefaultWait     time.Duration
	GenerateTimeout time.Duration
}

type inferResult struct {
	text string
	err  error
}

type inferRequest struct {
	prompt string
	reply  chan inferResult
}

// Gate serializes every model call through a single-slot work queue. One
// worker goroutine owns the engine handle; at most one inference runs
// system-wide. A caller that gives up waiting does not preempt the in-flight
// call: the worker finishes (or hits its own GenerateTimeout) and the
// buffered reply channel keeps it from blocking on an absent reader.
type Gate struct {
	log      *logger.Logger
	eng      engine.Engine
	cfg      GateConfig
	requests chan *inferRequest
}

func NewGate(eng engine.Engine, cfg GateConfig, baseLog *logger.Logger) *Gate {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 800
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	if cfg.DefaultWait <= 0 {
		cfg.DefaultWait = 120 * time.Second
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 300 * time.Second
	}
	return &Gate{
		log:      baseLog.With("component", "InferenceGate"),
		eng:      eng,
		cfg:      cfg,
		requests: make(chan *inferRequest, 1),
	}
}

// Start launches the worker that owns the model handle. The gate is inert
// until started; Infer calls made before Start queue up to the slot size and
// then time out.
func (g *Gate) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case req := <-g.requests:
				g.serve(ctx, req)
			}
		}
	}()
}

func (g *Gate) serve(ctx context.Context, req *inferRequest) {
	callCtx, cancel := context.WithTimeout(ctx, g.cfg.GenerateTimeout)
	defer cancel()

	started := time.Now()
	text, err := g.eng.Generate(callCtx, req.prompt, engine.GenerateOptions{
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		g.log.Warn("Model generation failed", "error", err, "elapsed", time.Since(started))
	} else {
		g.log.Debug("Model generation complete", "elapsed", time.Since(started), "chars", len(text))
	}
	// Buffered; never blocks even if the caller stopped waiting.
	req.reply <- inferResult{text: text, err: err}
}

// Infer submits a prompt and waits up to maxWait for queue admission plus
// completion. Non-positive maxWait uses the configured default. The returned
// error is always *InferenceError.
func (g *Gate) Infer(ctx context.Context, prompt string, maxWait time.Duration) (string, error) {
	if maxWait <= 0 {
		maxWait = g.cfg.DefaultWait
	}
	req := &inferRequest{prompt: prompt, reply: make(chan inferResult, 1)}

	timer := time.NewTimer(maxWait)
	defer timer.Stop()

	select {
	case g.requests <- req:
	case <-timer.C:
		return "", &InferenceError{Kind: InferenceTimeout, Reason: "queue wait exceeded"}
	case <-ctx.Done():
		return "", &InferenceError{Kind: InferenceTimeout, Reason: "caller cancelled", Err: ctx.Err()}
	}

	select {
	case res := <-req.reply:
		if res.err != nil {
			return "", &InferenceError{Kind: InferenceModelFailure, Reason: "model call failed", Err: res.err}
		}
		if strings.TrimSpace(res.text) == "" {
			return "", &InferenceError{Kind: InferenceModelFailure, Reason: "model returned empty output"}
		}
		return res.text, nil
	case <-timer.C:
		return "", &InferenceError{Kind: InferenceTimeout, Reason: "generation exceeded max wait"}
	case <-ctx.Done():
		return "", &InferenceError{Kind: InferenceTimeout, Reason: "caller cancelled", Err: ctx.Err()}
	}
}
