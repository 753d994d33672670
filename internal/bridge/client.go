package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/souravsharma24/onboarding-form-sub000/internal/common/config"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
)

// Client is the compliance provider contract. The real and mocked
// implementations are swapped once at construction, never per call.
type Client interface {
	SubmitApplication(ctx context.Context, app Application) (*SubmissionResult, error)
	GetKYCStatus(ctx context.Context, customerID string) (KYCStatus, error)
}

// NewClient selects the implementation: an API key with the "test-" prefix
// yields the fully mocked client, anything else the real one.
func NewClient(cfg config.BridgeConfig, environment string, log logger.Logger) Client {
	if strings.HasPrefix(cfg.APIKey, "test-") {
		return NewMockClient(log)
	}
	return NewAPIClient(cfg, environment, log)
}

// APIClient talks to the Bridge HTTP API.
type APIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

func NewAPIClient(cfg config.BridgeConfig, environment string, log logger.Logger) *APIClient {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &APIClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL(environment),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log.WithFields(map[string]interface{}{"component": "bridge"}),
	}
}

// SubmitApplication posts the whole application in one call. One bounded
// retry on transport failure; HTTP-level rejections are not retried.
func (c *APIClient) SubmitApplication(ctx context.Context, app Application) (*SubmissionResult, error) {
	body, err := json.Marshal(app)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal application: %w", err)
	}

	var resp *http.Response
	for attempt := 0; attempt < 2; attempt++ {
		resp, err = c.post(ctx, "/customers", body)
		if err == nil {
			break
		}
		c.logger.WithError(err).Warn("submission attempt failed", map[string]interface{}{
			"attempt": attempt + 1,
		})
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reach compliance provider: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var customer Customer
		if err := json.Unmarshal(payload, &customer); err != nil {
			return nil, fmt.Errorf("failed to decode customer: %w", err)
		}
		return &SubmissionResult{
			Success:    true,
			CustomerID: customer.ID,
			KYCStatus:  customer.KYCStatus,
			Message:    "Application submitted for review",
		}, nil
	}

	var apiErr struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	_ = json.Unmarshal(payload, &apiErr)
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("provider returned status %d", resp.StatusCode)
	}
	return &SubmissionResult{
		Success: false,
		Message: apiErr.Message,
		Errors:  apiErr.Errors,
	}, nil
}

// GetKYCStatus polls verification status for a submitted customer.
func (c *APIClient) GetKYCStatus(ctx context.Context, customerID string) (KYCStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/customers/%s/kyc/status", c.baseURL, customerID), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var out struct {
		KYCStatus KYCStatus `json:"kyc_status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode status: %w", err)
	}
	return out.KYCStatus, nil
}

func (c *APIClient) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)
	return c.httpClient.Do(req)
}
