// Package matrix implements the event channel on top of the Matrix
// client-server API.
package matrix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
)

const maxResponseBytes = 16 << 20

type ClientConfig struct {
	// HomeserverURL is the base URL, e.g. "https://matrix.example.org".
	HomeserverURL string
	HTTPClient    *http.Client
	Logger        *log.Logger
}

// Client talks to one homeserver. Authenticated calls go through a Session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

func NewClient(config ClientConfig) (*Client, error) {
	if config.HomeserverURL == "" {
		return nil, errors.New("matrix: homeserver url is required")
	}
	parsed, err := url.Parse(config.HomeserverURL)
	if err != nil {
		return nil, fmt.Errorf("matrix: invalid homeserver url %q: %w", config.HomeserverURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("matrix: homeserver url %q must use http or https", config.HomeserverURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.HomeserverURL, "/"),
		httpClient: httpClient,
		logger:     logger.WithPrefix("matrix"),
	}, nil
}

func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

type loginRequest struct {
	Type       string         `json:"type"`
	Identifier map[string]any `json:"identifier"`
	Password   string         `json:"password"`
	DeviceName string         `json:"initial_device_display_name,omitempty"`
}

// LoginResult is the identity and token returned by a password login.
type LoginResult struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
	DeviceID    string `json:"device_id"`
}

func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if username == "" {
		return LoginResult{}, errors.New("matrix: username is required for login")
	}
	if password == "" {
		return LoginResult{}, errors.New("matrix: password is required for login")
	}

	request := loginRequest{
		Type:       "m.login.password",
		Identifier: map[string]any{"type": "m.id.user", "user": username},
		Password:   password,
		DeviceName: "barcamp-grid",
	}
	body, err := c.doRequest(ctx, http.MethodPost, "/_matrix/client/v3/login", "", request, nil)
	if err != nil {
		return LoginResult{}, fmt.Errorf("matrix: login failed: %w", err)
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return LoginResult{}, fmt.Errorf("matrix: parse login response: %w", err)
	}
	if result.AccessToken == "" {
		return LoginResult{}, errors.New("matrix: login response has no access token")
	}

	c.logger.Info("logged in", "user_id", result.UserID, "device_id", result.DeviceID)
	return result, nil
}

// Session returns an authenticated session. The token is not validated.
func (c *Client) Session(userID, accessToken string) *Session {
	return &Session{client: c, userID: userID, accessToken: accessToken}
}

// doRequest returns the body of a 2xx response. Error responses are returned
// as *Error.
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, requestBody any, query url.Values) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		request.Header.Set("Authorization", "Bearer "+accessToken)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return body, nil
	}

	var matrixErr Error
	if jsonErr := json.Unmarshal(body, &matrixErr); jsonErr != nil || matrixErr.Code == "" {
		return nil, fmt.Errorf("unexpected %d response from %s %s: %s", response.StatusCode, method, path, strings.TrimSpace(string(body)))
	}
	matrixErr.StatusCode = response.StatusCode

	return nil, &matrixErr
}
