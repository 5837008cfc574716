package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"redactor/internal/domain/entity"
	"redactor/pkg/utils"
)

// Publisher delivers a ReportResult to the configured callback endpoint as
// a one-shot JSON POST. No retry is attempted here; the intake loop owns
// failure handling.
type Publisher struct {
	url  string
	http *http.Client
}

func NewPublisher(url string, timeout time.Duration) *Publisher {
	return &Publisher{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

func (p *Publisher) Publish(ctx context.Context, result *entity.ReportResult) error {
	body, err := utils.ToRawMessage(result)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("post result: %w", err)
	}
	defer resp.Body.Close()

	// Only the status matters; drain so the connection is reusable.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("callback returned status %s", resp.Status)
	}
	return nil
}
