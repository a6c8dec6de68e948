package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// CardResolver fetches agent cards from candidate endpoints.
type CardResolver struct {
	http *http.Client
}

func NewCardResolver(httpClient *http.Client) *CardResolver {
	return &CardResolver{http: httpClient}
}

// Resolve fetches and decodes the agent card served by the endpoint.
// The timeout is whatever the injected http.Client carries.
func (r *CardResolver) Resolve(ctx context.Context, endpoint string) (AgentCard, error) {
	url := strings.TrimRight(endpoint, "/") + WellKnownCardPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return AgentCard{}, fmt.Errorf("build card request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return AgentCard{}, fmt.Errorf("fetch agent card from %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AgentCard{}, fmt.Errorf("fetch agent card from %s: status %d", endpoint, resp.StatusCode)
	}

	var card AgentCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return AgentCard{}, fmt.Errorf("decode agent card from %s: %w", endpoint, err)
	}
	if card.Name == "" || card.URL == "" {
		return AgentCard{}, fmt.Errorf("agent card from %s is missing name or url", endpoint)
	}
	return card, nil
}

// Client sends messages to one participant endpoint.
// One Client per resolved connection, owned by the registry for the
// remainder of the process lifetime.
type Client struct {
	http *http.Client
	url  string
}

func NewClient(httpClient *http.Client, url string) *Client {
	return &Client{http: httpClient, url: strings.TrimRight(url, "/")}
}

func (c *Client) URL() string { return c.url }

// SendMessage performs one request/response round trip. There is no retry:
// participants do not guarantee that repeated identical tasks are idempotent.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (SendMessageResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return SendMessageResponse{}, fmt.Errorf("encode message request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/", bytes.NewReader(body))
	if err != nil {
		return SendMessageResponse{}, fmt.Errorf("build message request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return SendMessageResponse{}, fmt.Errorf("send message to %s: %w", c.url, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return SendMessageResponse{}, fmt.Errorf("send message to %s: status %d", c.url, httpResp.StatusCode)
	}

	var resp SendMessageResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return SendMessageResponse{}, fmt.Errorf("decode message response from %s: %w", c.url, err)
	}
	return resp, nil
}
