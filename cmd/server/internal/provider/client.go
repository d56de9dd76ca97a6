// Package provider is a thin HTTP client for the external video-room
// service (a Daily-style REST API).
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kycbridge/meeting-server/pkg/metrics"
)

// RoomProvider is what the services need from the video-room API.
type RoomProvider interface {
	// CreateRoom provisions a named room with chat and screen sharing
	// enabled.
	CreateRoom(ctx context.Context, name string) error
	// DeleteRoom removes a provisioned room; used to compensate when the
	// meeting record cannot be persisted after room creation.
	DeleteRoom(ctx context.Context, name string) error
	// SendAction relays a fire-and-forget in-room action to one
	// participant. The response body is ignored.
	SendAction(ctx context.Context, roomName, participantID, action string) error
}

// Client talks to the provider's v1 REST API with bearer-token auth.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a provider client. Every outbound call carries both the
// request context and the client timeout.
func NewClient(apiURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type roomProperties struct {
	EnableChat        bool `json:"enable_chat"`
	EnableScreenshare bool `json:"enable_screenshare"`
}

type createRoomRequest struct {
	Name       string         `json:"name"`
	Properties roomProperties `json:"properties"`
}

type actionRequest struct {
	Action string `json:"action"`
}

// CreateRoom implements RoomProvider.
func (c *Client) CreateRoom(ctx context.Context, name string) error {
	body := createRoomRequest{
		Name:       name,
		Properties: roomProperties{EnableChat: true, EnableScreenshare: true},
	}
	return c.do(ctx, "create_room", http.MethodPost, c.apiURL+"/v1/rooms", body)
}

// DeleteRoom implements RoomProvider.
func (c *Client) DeleteRoom(ctx context.Context, name string) error {
	url := fmt.Sprintf("%s/v1/rooms/%s", c.apiURL, name)
	return c.do(ctx, "delete_room", http.MethodDelete, url, nil)
}

// SendAction implements RoomProvider.
func (c *Client) SendAction(ctx context.Context, roomName, participantID, action string) error {
	url := fmt.Sprintf("%s/v1/rooms/%s/participants/%s/actions", c.apiURL, roomName, participantID)
	return c.do(ctx, "send_action", http.MethodPost, url, actionRequest{Action: action})
}

// do sends one JSON request and treats any non-2xx status as an error.
func (c *Client) do(ctx context.Context, operation, method, url string, body any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to serialize %s request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RecordProviderDuration(operation, time.Since(start).Seconds())
	if err != nil {
		metrics.RecordProviderRequest(operation, "error")
		return fmt.Errorf("provider %s call failed: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordProviderRequest(operation, "error")
		// Keep a bounded slice of the body for the log line.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("provider %s returned HTTP %d: %s", operation, resp.StatusCode, string(detail))
	}

	metrics.RecordProviderRequest(operation, "success")
	return nil
}
