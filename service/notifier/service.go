package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/elC0mpa/vm-doctor/model"
)

const DefaultEndpoint = "https://api.sendgrid.com/v3/mail/send"

const (
	maxAttempts  = 3
	retryWaitMin = 500 * time.Millisecond
	retryWaitMax = 5 * time.Second
)

// NewService returns a SendGrid notifier. It is disabled, and Notify is a no-op,
// unless the API key and both addresses are set.
func NewService(endpoint, apiKey, from, to string, logger *zap.Logger) *service {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := retryablehttp.NewClient()
	client.RetryMax = maxAttempts - 1
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.Logger = nil

	return &service{
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
		to:       to,
		client:   client,
		logger:   logger,
	}
}

func (s *service) Enabled() bool {
	return s.apiKey != "" && s.from != "" && s.to != ""
}

// Notify implements service.Notifier by mailing the JSON report to the admin address
func (s *service) Notify(ctx context.Context, report *model.Report) error {
	if !s.Enabled() {
		s.logger.Info("report delivery skipped: SendGrid key or addresses not configured")
		return nil
	}

	payload, err := s.buildMail(report)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create SendGrid request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to send report email (status %d): %s", resp.StatusCode, string(body))
	}

	s.logger.Info("report email sent", zap.String("to", s.to), zap.Int("status", resp.StatusCode))
	return nil
}

func (s *service) buildMail(report *model.Report) ([]byte, error) {
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	payload, err := json.Marshal(mail{
		Personalizations: []personalization{{To: []address{{Email: s.to}}}},
		From:             address{Email: s.from},
		Subject:          subject(report),
		Content:          []content{{Type: "text/plain", Value: string(body)}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode email: %w", err)
	}
	return payload, nil
}

func subject(report *model.Report) string {
	account := report.Summary.AccountName
	if account == "" {
		account = report.Summary.AccountID
	}
	if account == "" {
		account = report.Summary.Provider
	}
	return "Daily Cost Report for " + account
}
