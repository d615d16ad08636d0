package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"siteapi/internal/config"
)

const defaultBaseURL = "https://api.resend.com"

// resendMailer implements Mailer against the Resend-style /emails endpoint.
// Safe for concurrent use.
type resendMailer struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// New constructs a Mailer from configuration. The HTTP transport is
// wrapped with otelhttp so sends appear in traces.
func New(cfg config.MailConfig) (Mailer, error) {
	if cfg.APIKey == "" || cfg.To == "" {
		return nil, ErrNotConfigured
	}
	return &resendMailer{
		apiKey:  cfg.APIKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

type sendError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (m *resendMailer) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(sendRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Text:    msg.Text,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var se sendError
		if json.Unmarshal(body, &se) == nil && se.Message != "" {
			return fmt.Errorf("mail: send failed (%d): %s", resp.StatusCode, se.Message)
		}
		return fmt.Errorf("mail: send failed (%d)", resp.StatusCode)
	}
	return nil
}
