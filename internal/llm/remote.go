package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// maxResponseBytes caps how much of a generation response is read.
const maxResponseBytes = 8 << 20

// RemoteGenerator asks a floorplan generation service over HTTP. Endpoint is
// the API base, such as http://localhost:3000/api.
type RemoteGenerator struct {
	endpoint string
	client   *http.Client
}

func NewRemoteGenerator(endpoint string, timeout time.Duration) *RemoteGenerator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RemoteGenerator{
		endpoint: strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

func (g *RemoteGenerator) FromText(ctx context.Context, description string) ([]byte, error) {
	if err := requireText(description); err != nil {
		return nil, err
	}
	body, err := json.Marshal(map[string]string{"description": description})
	if err != nil {
		return nil, err
	}
	return g.post(ctx, "/retail-layout/generate-from-text", "application/json", bytes.NewReader(body))
}

func (g *RemoteGenerator) FromImage(ctx context.Context, image []byte, mimeType string) ([]byte, error) {
	if err := requireImage(image); err != nil {
		return nil, err
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="layout"`)
	header.Set("Content-Type", mimeType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return g.post(ctx, "/retail-layout/generate-from-image", w.FormDataContentType(), &buf)
}

func (g *RemoteGenerator) post(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("remote: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote: %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyResponse
	}
	return data, nil
}
