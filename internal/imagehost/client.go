// Package imagehost is a narrow client for the external image hosting
// service.  Posts store only the public URL and the host-side public id
// returned by Upload; Destroy is best-effort cleanup when a post's image
// is replaced or its post deleted.
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the image host over HTTP.  All calls carry a request
// timeout; the image host is a remote collaborator and must never be
// able to hang a request forever.
type Client struct {
	httpClient *http.Client
	uploadURL  string
	destroyURL string
	apiKey     string
}

// NewClient builds a client for the given endpoints.
func NewClient(uploadURL, destroyURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		uploadURL:  uploadURL,
		destroyURL: destroyURL,
		apiKey:     apiKey,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Upload sends the image as multipart form data and returns the public
// URL plus the deletable public id.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", "", err
	}
	_ = w.WriteField("folder", "posts")
	_ = w.WriteField("public_id", fmt.Sprintf("image-%d-%d", time.Now().UnixMilli(), rand.IntN(1_000_000_000)))
	if err := w.Close(); err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("image upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", "", fmt.Errorf("image upload: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", fmt.Errorf("image upload: decode response: %w", err)
	}
	if out.SecureURL == "" || out.PublicID == "" {
		return "", "", fmt.Errorf("image upload: incomplete response")
	}
	return out.SecureURL, out.PublicID, nil
}

// Destroy deletes an uploaded image by its public id.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	form := url.Values{"public_id": {publicID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.destroyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("image destroy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image destroy: status %d", resp.StatusCode)
	}
	return nil
}
