package adzuna

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/maxaizer/job-digest/internal/clients"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.adzuna.com/v1/api/jobs"

type searchResponse struct {
	Count   int   `json:"count"`
	Results []Job `json:"results"`
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	appID       string
	appKey      string
	baseURL     string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient(appID, appKey string) *Client {
	return &Client{
		appID:      appID,
		appKey:     appKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) HasCredentials() bool {
	return c.appID != "" && c.appKey != ""
}

// Search returns the first result page for the given country.
func (c *Client) Search(ctx context.Context, parameters SearchParameters) ([]Job, error) {

	if !c.HasCredentials() {
		return nil, errors.Wrap(clients.ErrMissingCredentials, "adzuna app id and app key are required")
	}

	if err := parameters.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid parameters")
	}

	params := parameters.ToUrlParams()
	params.Add("app_id", c.appID)
	params.Add("app_key", c.appKey)

	apiURL := c.baseURL + "/" + strings.ToLower(parameters.CountryCode) + "/search/1"

	body, err := c.sendRequest(ctx, http.MethodGet, apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var response searchResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&response); err != nil {
		return nil, errors.Wrap(err, "error decoding JSON response")
	}

	return response.Results, nil
}

func (c *Client) sendRequest(ctx context.Context, method string, url string, body io.Reader) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.Wrap(err, "error creating request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "error sending request")
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "error reading response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}
