package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

var ErrMissingGatewayURL = errors.New("missing WHATSAPP_GATEWAY_URL")

// WhatsAppGateway hands rendered status messages to an external WhatsApp
// bridge over a webhook. The engine only supplies destination and text;
// delivery semantics belong to the bridge.
//
// Env vars:
//   - WHATSAPP_GATEWAY_URL (required unless mock mode)
//   - WHATSAPP_GATEWAY_TOKEN (optional bearer token)
//   - NOTIFICATION_GATEWAY_MOCK (1/true/yes/on enables mock mode)

type WhatsAppGateway struct {
	url      string
	token    string
	client   *http.Client
	mockMode bool
}

func NewWhatsAppGateway(url, token string) (*WhatsAppGateway, error) {
	if isNotificationGatewayMockEnabled() {
		log.Printf("[notify][gateway] mock mode enabled")
		return &WhatsAppGateway{mockMode: true}, nil
	}

	if url == "" {
		log.Printf("[notify][gateway] missing WHATSAPP_GATEWAY_URL")
		return nil, ErrMissingGatewayURL
	}

	return &WhatsAppGateway{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (g *WhatsAppGateway) SendMessage(ctx context.Context, destination, message string) error {
	if g.mockMode {
		log.Printf("[notify][gateway] mock send destination=%s message_len=%d", destination, len(message))
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"to":      destination,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("[notify][gateway] send failed destination=%s err=%v", destination, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		log.Printf("[notify][gateway] send rejected destination=%s status=%d body=%s", destination, resp.StatusCode, string(body))
		return fmt.Errorf("notification gateway returned status %d", resp.StatusCode)
	}

	log.Printf("[notify][gateway] send success destination=%s", destination)
	return nil
}

func isNotificationGatewayMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("NOTIFICATION_GATEWAY_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
