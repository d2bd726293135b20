package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/perceptlab/insight-api/internal/analysis"
	"github.com/perceptlab/insight-api/internal/models"
)

// extractURL fetches a remote page and reduces it to plain text.
func (e *Extractor) extractURL(ctx context.Context, url string) (models.ExtractedDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.ExtractedDocument{}, analysis.NewErrorWithDetail(
			analysis.KindFetchFailed, "Invalid URL", err.Error())
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return models.ExtractedDocument{}, analysis.NewErrorWithDetail(
			analysis.KindFetchFailed, "Could not fetch the URL", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.ExtractedDocument{}, analysis.NewErrorWithDetail(
			analysis.KindFetchFailed,
			fmt.Sprintf("URL returned status %d", resp.StatusCode),
			resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ExtractedDocument{}, analysis.NewErrorWithDetail(
			analysis.KindFetchFailed, "Could not read the URL response", err.Error())
	}

	text, truncated := Clip(stripHTML(string(body)), URLCeiling)

	return models.ExtractedDocument{
		SourceKind: models.SourceRemoteURL,
		Text:       text,
		Truncated:  truncated,
	}, nil
}
