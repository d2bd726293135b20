package panel

import (
	"context"
	"strings"
)

const documentQuotaMessage = "OpenAI quota exceeded. Please add billing or switch provider."

// DocumentController drives the document skill: either an uploaded file or
// a remote URL. A URL, when set, wins over a selected file.
type DocumentController struct {
	fsm
	client *Client

	filename string
	fileData []byte
	url      string

	summary string
}

func NewDocumentController(client *Client) *DocumentController {
	return &DocumentController{client: client}
}

func (c *DocumentController) SetFile(filename string, data []byte) {
	c.filename = filename
	c.fileData = data
}

func (c *DocumentController) SetURL(url string) {
	c.url = strings.TrimSpace(url)
}

func (c *DocumentController) CanRun() bool {
	return c.state != StateLoading && (len(c.fileData) > 0 || c.url != "")
}

// Summary is the last successful result; a later failed run keeps it.
func (c *DocumentController) Summary() string {
	return c.summary
}

func (c *DocumentController) Run(ctx context.Context) error {
	if len(c.fileData) == 0 && c.url == "" {
		return ErrNoInput
	}
	if err := c.begin(); err != nil {
		return err
	}

	var summary string
	var err error
	if c.url != "" {
		summary, err = c.client.Summarize(ctx, c.url, "")
	} else {
		summary, err = c.client.SummarizeUpload(ctx, c.filename, c.fileData)
	}
	if err != nil {
		c.fail(userMessage(err, documentQuotaMessage))
		return err
	}

	c.summary = summary
	c.succeed()
	return nil
}
