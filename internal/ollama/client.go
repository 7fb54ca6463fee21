// Package ollama provides a thin HTTP client for a local Ollama endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"selene/internal/config"
)

// ErrUnavailable indicates the Ollama endpoint could not be reached.
var ErrUnavailable = errors.New("ollama endpoint unavailable")

// ErrTimeout indicates a generation request exceeded the configured timeout.
var ErrTimeout = errors.New("ollama request timed out")

// GenerationError indicates the endpoint was reachable but returned a
// malformed, empty, or error response.
type GenerationError struct {
	Status  int
	Message string
}

func (e *GenerationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ollama generation failed (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("ollama generation failed: %s", e.Message)
}

// Options holds per-request generation parameters. Lower temperature yields
// more deterministic output.
type Options struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	TopK        int     `json:"top_k"`
	NumPredict  int     `json:"num_predict"`
}

// Client is a gateway to the Ollama generate API. It performs no retries;
// retry policy belongs to the caller.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the endpoint described by cfg.
func NewClient(cfg *config.OllamaConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Images  []string `json:"images,omitempty"`
	Stream  bool     `json:"stream"`
	Options Options  `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// CheckConnection probes the endpoint and reports whether the configured model
// is available. A model counts as available on an exact name match or a family
// prefix match (the part before ":").
func (c *Client) CheckConnection(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("ollama connection check failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("ollama tags returned non-OK status", zap.Int("status", resp.StatusCode))
		return false
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		c.logger.Warn("ollama tags response malformed", zap.Error(err))
		return false
	}

	family := strings.SplitN(c.model, ":", 2)[0]
	for _, m := range tags.Models {
		if strings.Contains(m.Name, c.model) || strings.HasPrefix(m.Name, family) {
			return true
		}
	}
	c.logger.Warn("model not found on ollama endpoint", zap.String("model", c.model))
	return false
}

// Generate sends prompt and base64-encoded images to the generate endpoint and
// returns the raw response text. Fails with ErrUnavailable when the endpoint
// cannot be reached, ErrTimeout when the call exceeds the configured timeout,
// and *GenerationError for an error or empty response.
func (c *Client) Generate(ctx context.Context, prompt string, images []string, opts Options) (string, error) {
	payload := generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Images:  images,
		Stream:  false,
		Options: opts,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("ollama generate",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Int("images", len(images)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", fmt.Errorf("%w after %v: %w", ErrTimeout, c.httpClient.Timeout, err)
		}
		var opErr *net.OpError
		if errors.As(err, &opErr) && opErr.Op == "dial" {
			return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		msg := string(raw)
		var errResp generateResponse
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		return "", &GenerationError{Status: resp.StatusCode, Message: msg}
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &GenerationError{Message: fmt.Sprintf("malformed response: %v", err)}
	}
	if result.Error != "" {
		return "", &GenerationError{Message: result.Error}
	}
	if result.Response == "" {
		return "", &GenerationError{Message: "empty response"}
	}
	return result.Response, nil
}
