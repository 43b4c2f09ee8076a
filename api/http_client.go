// api/http_client.go
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"
)

// BasicAuth carries optional basic-auth credentials for a request.
type BasicAuth struct {
	Username string
	Password string
}

// HTTPClient struct to hold base URL and HTTP client configuration
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPClient creates a new instance of HTTPClient with default settings
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second, // Upstream calls are bounded; a timeout counts as "no data"
		},
	}
}

// Get issues a GET request to the API with the given query parameters,
// decodes the JSON response and returns the HTTP status code. A non-2xx
// status is not an error here: callers decide whether it means "no data".
func (c *HTTPClient) Get(endpoint string, params url.Values, auth *BasicAuth, response interface{}) (int, error) {
	u := c.BaseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	if auth != nil {
		req.SetBasicAuth(auth.Username, auth.Password)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, err
	}

	if response != nil && res.StatusCode == http.StatusOK {
		if err := json.Unmarshal(resBody, response); err != nil {
			return res.StatusCode, err
		}
	}

	return res.StatusCode, nil
}
