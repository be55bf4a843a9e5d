package screening

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"civicfix/internal/config"
	"civicfix/internal/domain"
	"civicfix/internal/port"
)

const (
	screenPath  = "/screen-officer"
	analyzePath = "/analyze"
)

// Client calls the external AI screening service. Both operations run under
// the configured timeout; callers decide how to degrade when a call fails.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a screening service client from config.
func NewClient(cfg config.ScreeningConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

var (
	_ port.RelevanceScorer = (*Client)(nil)
	_ port.IssueAnalyzer   = (*Client)(nil)
)

// ScoreDocument submits extracted document text for relevance scoring against
// the claimed department and designation.
func (c *Client) ScoreDocument(ctx context.Context, input port.ScoreInput) (*domain.ScreeningVerdict, error) {
	reqBody := map[string]interface{}{
		"text":         input.Text,
		"department":   input.Department,
		"designation":  input.Designation,
		"document_url": input.DocumentURL,
	}

	var resp struct {
		Score  float64 `json:"score"`
		Result string  `json:"result"`
		Reason string  `json:"reason"`
	}
	if err := c.post(ctx, screenPath, reqBody, &resp); err != nil {
		return nil, err
	}

	return &domain.ScreeningVerdict{
		Score:  resp.Score,
		Result: domain.ParseVerdictResult(resp.Result),
		Reason: resp.Reason,
	}, nil
}

// AnalyzeIssue submits a reported issue's photo and description for
// categorization.
func (c *Client) AnalyzeIssue(ctx context.Context, input port.AnalyzeInput) (*domain.IssueAnalysis, error) {
	reqBody := map[string]interface{}{
		"image": input.ImageBase64,
		"text":  input.Text,
	}

	var resp struct {
		Category   string  `json:"category"`
		Status     string  `json:"ai_status"`
		Confidence float64 `json:"ai_confidence"`
		Reason     string  `json:"ai_reason"`
	}
	if err := c.post(ctx, analyzePath, reqBody, &resp); err != nil {
		return nil, err
	}

	return &domain.IssueAnalysis{
		Category:   resp.Category,
		Status:     resp.Status,
		Confidence: resp.Confidence,
		Reason:     resp.Reason,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, reqBody, out interface{}) error {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling screening service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("screening service error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
