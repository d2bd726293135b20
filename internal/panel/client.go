// Package panel implements the per-skill controllers a front end drives:
// conversation, image and document. Each controller owns a small finite
// state machine over one in-flight request to the analysis API.
package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/perceptlab/insight-api/internal/models"
)

// APIError is a non-2xx reply from the analysis API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the analysis API's edge endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

func (c *Client) TranscribeAudio(ctx context.Context, audioB64, mimeType string) (*models.TranscriptionResult, error) {
	var result models.TranscriptionResult
	err := c.postJSON(ctx, "/api/v1/transcribe-audio",
		models.TranscribeAudioRequest{Audio: audioB64, MimeType: mimeType}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DescribeImage(ctx context.Context, imageB64 string) (string, error) {
	var result models.DescribeImageResponse
	err := c.postJSON(ctx, "/api/v1/describe-image",
		models.DescribeImageRequest{Image: imageB64}, &result)
	if err != nil {
		return "", err
	}
	return result.Description, nil
}

func (c *Client) Summarize(ctx context.Context, url, text string) (string, error) {
	var result models.SummarizeResponse
	err := c.postJSON(ctx, "/api/v1/summarize",
		models.SummarizeRequest{URL: url, Text: text}, &result)
	if err != nil {
		return "", err
	}
	return result.Summary, nil
}

func (c *Client) SummarizeUpload(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return "", fmt.Errorf("failed to write file payload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/summarize/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result models.SummarizeResponse
	if err := c.send(req, &result); err != nil {
		return "", err
	}
	return result.Summary, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	return json.Unmarshal(body, out)
}
