package nationalize

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://api.nationalize.io"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		// Bounded so a slow oracle cannot stall a whole batch.
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

// Lookup fetches the country probability distribution for a name. Single
// attempt: any transport error or non-2xx status is returned to the caller,
// which decides what a failed lookup means.
func (c *Client) Lookup(ctx context.Context, name string) ([]CountryProbability, error) {
	endpoint := fmt.Sprintf("%s/?name=%s", c.baseURL, url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nationalize request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("nationalize returned status %d: %s", resp.StatusCode, string(body))
	}

	var response lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("nationalize decode failed: %w", err)
	}

	return response.Country, nil
}
