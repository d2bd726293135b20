package panel

import (
	"context"
	"encoding/base64"
	"strings"
)

const imageQuotaMessage = "OpenAI quota exceeded. Please add billing or switch provider."

// ImageController drives the image skill.
type ImageController struct {
	fsm
	client *Client

	fileData []byte
	mimeType string

	description string
}

func NewImageController(client *Client) *ImageController {
	return &ImageController{client: client}
}

// SetFile selects the image for the next run. Non-image files are refused
// so the run trigger stays disabled.
func (c *ImageController) SetFile(data []byte, mimeType string) bool {
	if !strings.HasPrefix(mimeType, "image/") {
		return false
	}
	c.fileData = data
	c.mimeType = mimeType
	return true
}

func (c *ImageController) CanRun() bool {
	return c.state != StateLoading && len(c.fileData) > 0
}

// Description is the last successful result; a later failed run keeps it.
func (c *ImageController) Description() string {
	return c.description
}

func (c *ImageController) Run(ctx context.Context) error {
	if len(c.fileData) == 0 {
		return ErrNoInput
	}
	if err := c.begin(); err != nil {
		return err
	}

	imageB64 := base64.StdEncoding.EncodeToString(c.fileData)

	description, err := c.client.DescribeImage(ctx, imageB64)
	if err != nil {
		c.fail(userMessage(err, imageQuotaMessage))
		return err
	}

	c.description = description
	c.succeed()
	return nil
}
