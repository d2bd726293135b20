package panel

import (
	"context"
	"encoding/base64"

	"github.com/perceptlab/insight-api/internal/models"
)

const audioQuotaMessage = "OpenAI quota exceeded for speech-to-text. Please add billing or switch provider; image/doc still work."

// ConversationController drives the audio skill: pick a recording, run,
// and read back transcript, diarization and summary.
type ConversationController struct {
	fsm
	client *Client

	fileData []byte
	mimeType string

	result *models.TranscriptionResult
}

func NewConversationController(client *Client) *ConversationController {
	return &ConversationController{client: client}
}

// SetFile selects the audio recording for the next run.
func (c *ConversationController) SetFile(data []byte, mimeType string) {
	c.fileData = data
	c.mimeType = mimeType
}

// CanRun reports whether the run trigger should be enabled.
func (c *ConversationController) CanRun() bool {
	return c.state != StateLoading && len(c.fileData) > 0
}

// Result is the payload of the last successful run, nil before any
// success. A later failed run does not clear it.
func (c *ConversationController) Result() *models.TranscriptionResult {
	return c.result
}

func (c *ConversationController) Run(ctx context.Context) error {
	if len(c.fileData) == 0 {
		return ErrNoInput
	}
	if err := c.begin(); err != nil {
		return err
	}

	audioB64 := base64.StdEncoding.EncodeToString(c.fileData)

	result, err := c.client.TranscribeAudio(ctx, audioB64, c.mimeType)
	if err != nil {
		c.fail(userMessage(err, audioQuotaMessage))
		return err
	}

	c.result = result
	c.succeed()
	return nil
}
