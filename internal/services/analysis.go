// Package services orchestrates the three analysis skills: conversation
// (audio), image and document. Each operation validates and normalizes its
// input, makes at most the backend calls it needs, and fails fast on
// anything that can be decided locally.
package services

import (
	"context"
	"net/http"

	"github.com/perceptlab/insight-api/internal/analysis"
	"github.com/perceptlab/insight-api/internal/analyzer"
	"github.com/perceptlab/insight-api/internal/config"
	"github.com/perceptlab/insight-api/internal/extractor"
	"github.com/perceptlab/insight-api/internal/models"
	"github.com/perceptlab/insight-api/internal/payload"
	"github.com/perceptlab/insight-api/internal/transcript"
	"github.com/perceptlab/insight-api/internal/utils"
)

// TranscriptSummaryWindow bounds how much of a transcript is sent for
// summarization, independent of the transcript's own length.
const TranscriptSummaryWindow = 12000

type AnalysisService interface {
	ProcessAudio(ctx context.Context, req models.TranscribeAudioRequest) (*models.TranscriptionResult, error)
	DescribeImage(ctx context.Context, imageB64 string) (string, error)
	SummarizeContent(ctx context.Context, req models.SummarizeRequest) (string, error)
	SummarizeUpload(ctx context.Context, fileBytes []byte, contentType string) (string, error)
}

type analysisService struct {
	dispatcher analyzer.Dispatcher
	extractor  *extractor.Extractor
	logger     *utils.Logger
}

func NewService(cfg *config.Config, logger *utils.Logger) AnalysisService {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	dispatcher := analyzer.NewClient(analyzer.Config{
		APIKey:          cfg.OpenAIAPIKey,
		BaseURL:         cfg.OpenAIBaseURL,
		ChatModel:       cfg.ChatModel,
		TranscribeModel: cfg.TranscribeModel,
	}, httpClient, logger)

	return NewServiceWith(dispatcher, extractor.New(httpClient), logger)
}

// NewServiceWith wires explicit collaborators; tests use it with fakes.
func NewServiceWith(dispatcher analyzer.Dispatcher, ex *extractor.Extractor, logger *utils.Logger) AnalysisService {
	return &analysisService{
		dispatcher: dispatcher,
		extractor:  ex,
		logger:     logger,
	}
}

// ProcessAudio decodes the base64 recording, transcribes it, derives the
// speaker-labeled transcript locally, and requests a bullet summary of the
// transcript. An empty transcript short-circuits: no diarization output and
// no summary call. If the summary call fails after a successful
// transcription the whole request fails; partial results are not returned.
func (s *analysisService) ProcessAudio(ctx context.Context, req models.TranscribeAudioRequest) (*models.TranscriptionResult, error) {
	if err := s.dispatcher.RequireCredential(); err != nil {
		return nil, err
	}

	audio, err := payload.Decode(req.Audio)
	if err != nil {
		s.logger.Error("Failed to decode audio payload", "error", err)
		return nil, analysis.NewErrorWithDetail(analysis.KindMalformedInput,
			"Could not decode the audio payload. Please try again", err.Error())
	}

	rawTranscript, err := s.dispatcher.Transcribe(ctx, audio, req.MimeType)
	if err != nil {
		return nil, err
	}

	result := &models.TranscriptionResult{Transcript: rawTranscript}
	if rawTranscript == "" {
		return result, nil
	}

	result.Diarized = transcript.Diarize(rawTranscript)

	summaryInput, _ := extractor.Clip(rawTranscript, TranscriptSummaryWindow)

	summary, err := s.dispatcher.Summarize(ctx, summaryInput, analyzer.TranscriptSummaryPrompt)
	if err != nil {
		return nil, err
	}
	result.Summary = summary

	s.logger.Info("Audio processed",
		"transcript_length", len(rawTranscript),
		"summary_length", len(summary))

	return result, nil
}

func (s *analysisService) DescribeImage(ctx context.Context, imageB64 string) (string, error) {
	description, err := s.dispatcher.DescribeImage(ctx, imageB64)
	if err != nil {
		return "", err
	}

	s.logger.Info("Image described", "description_length", len(description))
	return description, nil
}

// SummarizeContent handles the JSON document flow: a URL is fetched and
// stripped to text, otherwise the caller-provided text is used, bounded by
// the URL ceiling either way.
func (s *analysisService) SummarizeContent(ctx context.Context, req models.SummarizeRequest) (string, error) {
	// An unconfigured backend fails before the URL fetch; fetching a page
	// we can never summarize helps nobody.
	if err := s.dispatcher.RequireCredential(); err != nil {
		return "", err
	}

	var text string

	if req.URL != "" {
		doc, err := s.extractor.Extract(ctx, models.ExtractInput{URL: req.URL})
		if err != nil {
			s.logger.Error("Failed to fetch URL", "error", err, "url", req.URL)
			return "", err
		}
		text = doc.Text
	} else {
		text, _ = extractor.Clip(req.Text, extractor.URLCeiling)
	}

	if text == "" {
		return "", analysis.NewError(analysis.KindMalformedInput, "No content to summarize")
	}

	return s.summarize(ctx, text)
}

// SummarizeUpload handles the multipart document flow: extract text from
// the uploaded file per its MIME type, then summarize. Unsupported types
// are rejected before any backend call.
func (s *analysisService) SummarizeUpload(ctx context.Context, fileBytes []byte, contentType string) (string, error) {
	if err := s.dispatcher.RequireCredential(); err != nil {
		return "", err
	}

	doc, err := s.extractor.Extract(ctx, models.ExtractInput{
		FileBytes:        fileBytes,
		DeclaredMimeType: contentType,
	})
	if err != nil {
		s.logger.Warn("Extraction failed", "error", err, "content_type", contentType)
		return "", err
	}

	s.logger.Info("Document extracted",
		"source_kind", doc.SourceKind,
		"text_length", len(doc.Text),
		"truncated", doc.Truncated)

	return s.summarize(ctx, doc.Text)
}

func (s *analysisService) summarize(ctx context.Context, text string) (string, error) {
	summary, err := s.dispatcher.Summarize(ctx, text, analyzer.DocumentSummaryPrompt)
	if err != nil {
		return "", err
	}

	s.logger.Info("Content summarized",
		"input_length", len(text),
		"summary_length", len(summary))

	return summary, nil
}
