package insights

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

	"github.com/use-agent/sitegrade/models"
)

// ErrTransient marks failures worth exactly one retry: timeouts,
// rate limits, and 5xx responses.
var ErrTransient = errors.New("transient text-generation failure")

// Client is a lightweight OpenAI-compatible chat client for recommendation
// generation. It uses net/http directly — no third-party SDK needed.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient creates a chat client. Pass nil to use a default http.Client.
func NewClient(httpClient *http.Client, baseURL, apiKey, model string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

// chatRequest is the chat completion request body.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatResponse is the minimal chat completion response we need.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatErrorResponse captures an API error from the provider.
type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends one system+user prompt pair and returns the raw JSON text
// of the model's reply. Failure kinds: timeout, rate-limit, and 5xx are
// wrapped with ErrTransient; everything else is terminal for this call.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    0,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", models.NewAnalysisError(models.ErrCodeLLMTimeout,
				"text-generation call timed out", errors.Join(ErrTransient, err))
		}
		return "", models.NewAnalysisError(models.ErrCodeLLMFailure,
			"text-generation request failed", errors.Join(ErrTransient, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", models.NewAnalysisError(models.ErrCodeLLMFailure,
			"failed to read text-generation response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", models.NewAnalysisError(models.ErrCodeLLMFailure,
			"failed to parse text-generation response", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", models.NewAnalysisError(models.ErrCodeLLMFailure,
			"text-generation returned no choices", nil)
	}

	return chatResp.Choices[0].Message.Content, nil
}

// classifyStatus maps HTTP status codes to the recognized failure kinds.
func classifyStatus(statusCode int, body []byte) *models.AnalysisError {
	var errResp chatErrorResponse
	msg := "text-generation API error"
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		msg = errResp.Error.Message
	}

	switch {
	case statusCode == http.StatusTooManyRequests:
		return models.NewAnalysisError(models.ErrCodeLLMRateLimited, msg, ErrTransient)
	case statusCode >= 500:
		return models.NewAnalysisError(models.ErrCodeLLMFailure,
			fmt.Sprintf("text-generation API returned %d: %s", statusCode, msg), ErrTransient)
	default:
		return models.NewAnalysisError(models.ErrCodeLLMFailure,
			fmt.Sprintf("text-generation API returned %d: %s", statusCode, msg), nil)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
