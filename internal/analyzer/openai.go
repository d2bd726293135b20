// Package analyzer dispatches normalized payloads to the OpenAI backend:
// speech-to-text, vision description and text summarization. It owns the
// translation of backend failures into the analysis error taxonomy.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/perceptlab/insight-api/internal/analysis"
	"github.com/perceptlab/insight-api/internal/utils"
)

const (
	visionSystemPrompt = "You are a vision assistant. Provide a detailed but concise description of the image and notable details."
	visionUserPrompt   = "Describe this image thoroughly."

	// DocumentSummaryPrompt instructs the chat model for the document skill.
	DocumentSummaryPrompt = "Summarize the given text into clear bullet points. Keep it under 10 bullets."

	// TranscriptSummaryPrompt instructs the chat model for the audio skill.
	TranscriptSummaryPrompt = "Summarize the transcript into 4-6 concise bullet points."

	visionTemperature  = 0.4
	summaryTemperature = 0.2
)

// Dispatcher is the outbound surface the skill services depend on.
// RequireCredential lets callers fail fast before doing local work (URL
// fetches, file decoding) that would be wasted on an unconfigured backend.
type Dispatcher interface {
	RequireCredential() error
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	DescribeImage(ctx context.Context, imageB64 string) (string, error)
	Summarize(ctx context.Context, text, instruction string) (string, error)
}

// Config carries everything the client needs; nothing is read from the
// environment inside this package so tests can point BaseURL at a fake.
type Config struct {
	APIKey          string
	BaseURL         string
	ChatModel       string
	TranscribeModel string
}

type Client struct {
	cfg    Config
	logger *utils.Logger
	client *http.Client
}

func NewClient(cfg Config, httpClient *http.Client, logger *utils.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		cfg:    cfg,
		logger: logger,
		client: httpClient,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

// Content is a plain string for text messages, or a slice of contentPart
// for image-bearing messages.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// backendError mirrors the error body OpenAI returns on non-2xx responses.
type backendError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Transcribe uploads the audio bytes as a multipart form and returns the
// raw transcript text.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if err := c.RequireCredential(); err != nil {
		return "", err
	}

	if mimeType == "" {
		mimeType = "audio/webm"
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", "audio."+audioExtension(mimeType))
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := fw.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write audio payload: %w", err)
	}
	if err := mw.WriteField("model", c.cfg.TranscribeModel); err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := mw.WriteField("response_format", "json"); err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	respBody, err := c.do(req, "speech-to-text")
	if err != nil {
		return "", err
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal transcription response: %w", err)
	}

	return parsed.Text, nil
}

// DescribeImage sends the base64 image inline to the vision-capable chat
// endpoint and returns the description.
func (c *Client) DescribeImage(ctx context.Context, imageB64 string) (string, error) {
	messages := []chatMessage{
		{Role: "system", Content: visionSystemPrompt},
		{Role: "user", Content: []contentPart{
			{Type: "text", Text: visionUserPrompt},
			{Type: "image_url", ImageURL: &imageURL{URL: "data:image/*;base64," + imageB64}},
		}},
	}
	return c.completeChat(ctx, visionTemperature, messages, "vision")
}

// Summarize asks the chat model for a bullet summary of text under the
// given instruction.
func (c *Client) Summarize(ctx context.Context, text, instruction string) (string, error) {
	messages := []chatMessage{
		{Role: "system", Content: instruction},
		{Role: "user", Content: text},
	}
	return c.completeChat(ctx, summaryTemperature, messages, "summarize")
}

func (c *Client) completeChat(ctx context.Context, temperature float64, messages []chatMessage, operation string) (string, error) {
	if err := c.RequireCredential(); err != nil {
		return "", err
	}

	jsonData, err := json.Marshal(chatRequest{
		Model:       c.cfg.ChatModel,
		Temperature: temperature,
		Messages:    messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	respBody, err := c.do(req, operation)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", analysis.NewError(analysis.KindBackendError, "Backend returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

// do issues the request and classifies any non-2xx response. Quota
// exhaustion is kept distinct so the caller can show an actionable message
// instead of a generic failure.
func (c *Client) do(req *http.Request, operation string) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, analysis.NewErrorWithDetail(analysis.KindBackendError,
			fmt.Sprintf("Could not reach the %s backend", operation), err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, analysis.NewErrorWithDetail(analysis.KindBackendError,
			fmt.Sprintf("Could not read the %s response", operation), err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("OpenAI API error",
			"operation", operation,
			"status", resp.StatusCode,
			"body", string(body))

		var parsed backendError
		if json.Unmarshal(body, &parsed) == nil && parsed.Error.Type == "insufficient_quota" {
			return nil, analysis.NewErrorWithDetail(analysis.KindQuotaExceeded,
				"OpenAI quota exceeded. Please add billing or use another provider.",
				string(body))
		}

		return nil, analysis.NewErrorWithDetail(analysis.KindBackendError,
			fmt.Sprintf("OpenAI %s error: status %d", operation, resp.StatusCode),
			string(body))
	}

	return body, nil
}

// RequireCredential reports whether the client can reach the backend at
// all. It never touches the network.
func (c *Client) RequireCredential() error {
	if c.cfg.APIKey == "" {
		return analysis.NewError(analysis.KindMissingCredential, "Missing OPENAI_API_KEY")
	}
	return nil
}

// audioExtension derives the upload filename extension from the MIME type,
// falling back to webm for recordings with no subtype.
func audioExtension(mimeType string) string {
	parts := strings.SplitN(mimeType, "/", 2)
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}
	return "webm"
}
