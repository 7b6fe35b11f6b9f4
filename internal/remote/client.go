package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"libauth/internal/domain"
	"libauth/internal/envelope"
)

// Client is an HTTP implementation of domain.VerifierClient.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a client for the daemon at base. A nil httpClient means
// http.DefaultClient.
func NewClient(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: httpClient}
}

// Verify asks the daemon to check a signature by key name or raw key.
func (c *Client) Verify(
	ctx context.Context,
	request domain.VerifyRequest,
) (domain.VerifyResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return domain.VerifyResponse{}, err
	}
	var out domain.VerifyResponse
	err = c.do(ctx, http.MethodPost, "/v1/verify", "application/json", body, &out)
	return out, err
}

// VerifyEnvelope posts a msgpack envelope for verification.
func (c *Client) VerifyEnvelope(
	ctx context.Context,
	env domain.SignedMessage,
) (domain.VerifyResponse, error) {
	body, err := envelope.Marshal(env)
	if err != nil {
		return domain.VerifyResponse{}, err
	}
	var out domain.VerifyResponse
	err = c.do(ctx, http.MethodPost, "/v1/verify/envelope", envelope.ContentType, body, &out)
	return out, err
}

// Health checks that the daemon is serving.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte, out any) error {
	u := c.Base + path

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{Method: method, URL: u, Status: resp.Status}
		var er domain.ErrorResponse
		if json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&er) == nil {
			apiErr.Code = er.Code
			apiErr.Message = er.Error
		}
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Compile-time assertion that Client implements domain.VerifierClient.
var _ domain.VerifierClient = (*Client)(nil)
