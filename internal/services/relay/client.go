// Package relay submits contact form data to the external email relay service.
package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/mvarma/portfolio-api/internal/models"
	"go.uber.org/zap"
)

var (
	// ErrNotConfigured is returned when no relay endpoint URL is configured
	ErrNotConfigured = errors.New("relay endpoint not configured")
	// ErrUpstream is returned when the relay responds with a non-2xx status
	ErrUpstream = errors.New("relay request failed")
)

const defaultTimeout = 10 * time.Second

// Client forwards contact submissions to the configured relay endpoint.
// Nothing is retained after a successful send.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a relay client. An empty endpoint is allowed; Send then
// fails with ErrNotConfigured instead of attempting an outbound call.
func NewClient(endpoint string, logger *zap.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// Configured reports whether a relay endpoint is set
func (c *Client) Configured() bool {
	return c.endpoint != ""
}

// Send packages the submission as a multipart form and posts it to the relay.
// The subject line is derived from the query type and the visitor's address is
// set as reply-to. Any non-2xx response is reported as ErrUpstream.
func (c *Client) Send(ctx context.Context, sub *models.ContactSubmission) error {
	if c.endpoint == "" {
		return ErrNotConfigured
	}

	var body strings.Builder
	form := multipart.NewWriter(&body)

	fields := map[string]string{
		"name":     sub.Name,
		"email":    sub.Email,
		"query":    string(sub.Query),
		"message":  sub.Message,
		"_subject": fmt.Sprintf("Contact: %s", sub.Query),
		"_replyto": sub.Email,
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body.String()))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach relay: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("relay_rejected_submission",
			zap.Int("status_code", resp.StatusCode),
		)
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	return nil
}
