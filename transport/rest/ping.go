package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const probeTimeout = 5 * time.Second

// HealthClient probes the server's health endpoint before the socket is
// dialed, so a dead server is reported as a connect failure instead of a
// hang.
type HealthClient struct {
	logger *slog.Logger
	url    string
	client *http.Client
}

func NewHealthClient(logger *slog.Logger, url string) *HealthClient {
	return &HealthClient{
		logger: logger.With("component", "health"),
		url:    url,
		client: &http.Client{Timeout: probeTimeout},
	}
}

// Check performs one probe. Any non-2xx status counts as down.
func (that *HealthClient) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, that.url, nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return fmt.Errorf("health probe failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("health probe failed: status %s", resp.Status)
	}

	that.logger.Debug("server healthy", "url", that.url)

	return nil
}
