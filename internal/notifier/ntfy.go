package notifier

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"
	"time"
)

// NtfyNotifier pushes messages to an ntfy topic. ntfy is a plain HTTP sink:
// the body is the message text, metadata travels in headers.
type NtfyNotifier struct {
	Server   string
	Topic    string
	Priority string
	Client   *http.Client
}

// NewNtfyNotifier creates a notifier for the given server and topic.
func NewNtfyNotifier(server, topic, priority string) *NtfyNotifier {
	return &NtfyNotifier{
		Server:   server,
		Topic:    topic,
		Priority: priority,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Send publishes one message under the given title.
func (n *NtfyNotifier) Send(title, body string) error {
	url := strings.TrimRight(n.Server, "/") + "/" + n.Topic
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notify request: %w", err)
	}
	if title != "" {
		req.Header.Set("Title", encodeHeader(title))
	}
	if n.Priority != "" {
		req.Header.Set("Priority", n.Priority)
	}
	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ntfy error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (n *NtfyNotifier) SendWithRetry(ctx context.Context, title, body string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := n.Send(title, body); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] ntfy send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// encodeHeader RFC 2047-encodes the value when it is not plain ASCII, which
// HTTP header values must be.
func encodeHeader(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return mime.BEncoding.Encode("utf-8", s)
		}
	}
	return s
}
