// internal/backend/client.go
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	appErrors "github.com/astronote/campaign-console/internal/errors"
	"github.com/astronote/campaign-console/internal/model"
)

// Client is the campaigns/billing backend collaborator as seen by the send
// orchestration layer. The backend owns campaign status, dispatch and
// subscription truth; this layer only consumes the contract.
type Client interface {
	GetCampaign(ctx context.Context, campaignID string) (*model.Campaign, error)
	// Enqueue submits the campaign for dispatch. The backend deduplicates on
	// the idempotency key: repeated delivery of the same key performs the
	// underlying enqueue at most once.
	Enqueue(ctx context.Context, campaignID, idempotencyKey string) (*model.EnqueueResult, error)
	GetSubscription(ctx context.Context) (*model.Subscription, error)
}

// HTTPClient talks to the backend REST API.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPClient creates a client for the given base URL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) GetCampaign(ctx context.Context, campaignID string) (*model.Campaign, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/campaigns/"+url.PathEscape(campaignID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch campaign %s: %w", campaignID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var camp model.Campaign
	if err := json.NewDecoder(resp.Body).Decode(&camp); err != nil {
		return nil, fmt.Errorf("decode campaign %s: %w", campaignID, err)
	}
	return &camp, nil
}

func (c *HTTPClient) Enqueue(ctx context.Context, campaignID, idempotencyKey string) (*model.EnqueueResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/campaigns/"+url.PathEscape(campaignID)+"/enqueue", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enqueue campaign %s: %w", campaignID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}

	var result model.EnqueueResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode enqueue result for campaign %s: %w", campaignID, err)
	}
	return &result, nil
}

func (c *HTTPClient) GetSubscription(ctx context.Context) (*model.Subscription, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/billing/subscription", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch subscription: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var sub model.Subscription
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}
	return &sub, nil
}

// decodeError turns a non-2xx response into an EnqueueError. Bodies that are
// not the structured {code, message, currentStatus} shape still surface
// whatever text the backend wrote.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var ee appErrors.EnqueueError
	if err := json.Unmarshal(body, &ee); err == nil && (ee.Code != "" || ee.Message != "") {
		ee.HTTPStatus = resp.StatusCode
		return &ee
	}

	return &appErrors.EnqueueError{
		Message:    strings.TrimSpace(string(body)),
		HTTPStatus: resp.StatusCode,
	}
}
