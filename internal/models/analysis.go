package models

// SourceKind identifies where extracted document text came from.
type SourceKind string

const (
	SourcePlainText SourceKind = "text/plain"
	SourcePDF       SourceKind = "application/pdf"
	SourceDOCX      SourceKind = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	SourceRemoteURL SourceKind = "url"
)

// ExtractedDocument is normalized plain text ready for summarization.
// Text never exceeds the ceiling of the branch that produced it.
type ExtractedDocument struct {
	SourceKind SourceKind `json:"source_kind"`
	Text       string     `json:"text"`
	Truncated  bool       `json:"truncated"`
}

// ExtractInput selects exactly one extraction branch: a remote URL, or
// file bytes with a declared MIME type.
type ExtractInput struct {
	FileBytes        []byte
	DeclaredMimeType string
	URL              string
}

// TranscriptionResult is the full outcome of the audio skill. Diarized is
// derived from Transcript; Summary comes from a separate backend call.
type TranscriptionResult struct {
	Transcript string `json:"transcript"`
	Diarized   string `json:"diarized"`
	Summary    string `json:"summary"`
}

// TranscribeAudioRequest is the edge body for the conversation skill.
type TranscribeAudioRequest struct {
	Audio    string `json:"audio"`
	MimeType string `json:"mimeType"`
}

// DescribeImageRequest is the edge body for the image skill.
type DescribeImageRequest struct {
	Image string `json:"image"`
}

// DescribeImageResponse carries the vision model's description.
type DescribeImageResponse struct {
	Description string `json:"description"`
}

// SummarizeRequest is the edge body for the document skill. URL wins over
// Text when both are set.
type SummarizeRequest struct {
	URL  string `json:"url,omitempty"`
	Text string `json:"text,omitempty"`
}

// SummarizeResponse carries the bullet summary.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}
