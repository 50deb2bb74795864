package flightstatus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
)

// AviationstackClient queries the aviationstack flights endpoint. Every
// failure mode collapses into StatusResult.Err so poll loops and chat
// handlers never have to branch on transport vs provider errors.
type AviationstackClient struct {
	logger    logger.Logger
	client    *http.Client
	baseURL   string
	accessKey string
}

// NewAviationstackClient creates a new aviationstack client
func NewAviationstackClient(baseURL, accessKey string, timeout time.Duration, logger logger.Logger) repository.FlightStatusRepository {
	return &AviationstackClient{
		logger:    logger,
		client:    &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		accessKey: accessKey,
	}
}

type flightsResponse struct {
	Data []map[string]interface{} `json:"data"`
}

// Fetch queries live status rows for one flight designator. flightDate
// is optional and forwarded only when non-empty.
func (c *AviationstackClient) Fetch(ctx context.Context, flightIata, flightDate string) repository.StatusResult {
	if c.accessKey == "" {
		return repository.StatusResult{Err: "aviationstack not configured"}
	}

	params := url.Values{}
	params.Set("access_key", c.accessKey)
	params.Set("flight_iata", flightIata)
	if flightDate != "" {
		params.Set("flight_date", flightDate)
	}

	endpoint := fmt.Sprintf("%s/flights?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return repository.StatusResult{Err: err.Error()}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Aviationstack request failed", "flight", flightIata, "error", err)
		return repository.StatusResult{Err: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("Aviationstack returned non-200",
			"flight", flightIata,
			"status", resp.StatusCode)
		return repository.StatusResult{Err: fmt.Sprintf("status %d: %s", resp.StatusCode, string(body))}
	}

	var parsed flightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return repository.StatusResult{Err: fmt.Sprintf("decode response: %v", err)}
	}

	return repository.StatusResult{Data: parsed.Data}
}
