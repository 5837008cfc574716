package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"redactor/internal/domain/entity"
	"redactor/internal/redaction"
)

// Client talks to the model-serving sidecar over HTTP. Face location, OCR,
// transcription and NER are all remote invocations; this process never
// loads a model itself.
type Client struct {
	endpoint string
	http     *http.Client
}

var _ redaction.FaceLocator = (*Client)(nil)
var _ redaction.TextReader = (*Client)(nil)
var _ redaction.Transcriber = (*Client)(nil)
var _ redaction.EntityRecognizer = (*Client)(nil)

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

func (c *Client) LocateFaces(ctx context.Context, image []byte) ([]redaction.FaceBox, error) {
	payload := map[string]any{
		"image": base64.StdEncoding.EncodeToString(image),
	}

	var resp struct {
		Faces []redaction.FaceBox `json:"faces"`
	}
	if err := c.post(ctx, "/v1/faces", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Faces, nil
}

func (c *Client) ReadText(ctx context.Context, image []byte) (string, error) {
	payload := map[string]any{
		"image": base64.StdEncoding.EncodeToString(image),
	}

	var resp struct {
		Text string `json:"text"`
	}
	if err := c.post(ctx, "/v1/ocr", payload, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (c *Client) Transcribe(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read audio %s: %w", path, err)
	}

	payload := map[string]any{
		"audio": base64.StdEncoding.EncodeToString(data),
	}

	var resp struct {
		Text string `json:"text"`
	}
	if err := c.post(ctx, "/v1/transcribe", payload, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (c *Client) Entities(ctx context.Context, text string) ([]entity.PIIEntity, error) {
	payload := map[string]any{
		"text": text,
	}

	var resp struct {
		Entities []entity.PIIEntity `json:"entities"`
	}
	if err := c.post(ctx, "/v1/ner", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Entities, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference %s: unexpected status %s", path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
