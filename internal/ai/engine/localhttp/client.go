package localhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/studywise/studywise-backend/internal/ai/engine"
	"github.com/studywise/studywise-backend/internal/logger"
	"github.com/studywise/studywise-backend/internal/utils"
)

// Client talks to a llama.cpp-style local runtime over its /completion
// endpoint. The runtime handles one request at a time; this client does not
// guard against concurrent use.
type Client struct {
	httpClient *http.Client
	log        *logger.Logger
	baseURL    string
	modelName  string
}

func New(log *logger.Logger) *Client {
	serviceLog := log.With("service", "LocalModelClient")
	baseURL := utils.GetEnv("AI_RUNTIME_URL", "http://localhost:8081", log)
	modelName := utils.GetEnv("AI_MODEL_NAME", "orca-mini-3b", log)
	timeoutSec := utils.GetEnvAsInt("AI_HTTP_TIMEOUT", 300, log)
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		log:        serviceLog,
		baseURL:    baseURL,
		modelName:  modelName,
	}
}

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	NPredict    int     `json:"n_predict"`
	Temperature float64 `json:"temperature"`
	Stream      bool    `json:"stream"`
}

type completionResponse struct {
	Content string `json:"content"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) Generate(ctx context.Context, prompt string, opts engine.GenerateOptions) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       c.modelName,
		Prompt:      prompt,
		NPredict:    opts.MaxTokens,
		Temperature: opts.Temperature,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/completion", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("model runtime request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read model runtime response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("Model runtime returned non-200", "status", resp.StatusCode)
		return "", fmt.Errorf("model runtime returned status %d", resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode model runtime response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("model runtime error: %s", parsed.Error.Message)
	}
	return parsed.Content, nil
}
