package panel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves the edge contract with scripted responses per path.
func fakeAPI(t *testing.T, responses map[string]func(w http.ResponseWriter, r *http.Request)) *Client {
	t.Helper()
	mux := http.NewServeMux()
	for path, handler := range responses {
		mux.HandleFunc(path, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return NewClient(server.URL, server.Client())
}

func jsonResponse(payload any) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(payload)
	}
}

func errorResponse(status int, message string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
	}
}

func TestConversationControllerLifecycle(t *testing.T) {
	client := fakeAPI(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/v1/transcribe-audio": jsonResponse(map[string]string{
			"transcript": "Hello.",
			"diarized":   "Speaker 1: Hello.",
			"summary":    "- hello",
		}),
	})

	c := NewConversationController(client)
	assert.Equal(t, StateIdle, c.State())
	assert.False(t, c.CanRun(), "no file selected yet")

	c.SetFile([]byte("audio"), "audio/webm")
	assert.True(t, c.CanRun())

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, StateSuccess, c.State())
	assert.Equal(t, "Hello.", c.Result().Transcript)
	assert.Equal(t, "Speaker 1: Hello.", c.Result().Diarized)
	assert.Empty(t, c.ErrorMessage())
}

func TestConversationControllerNoInputGuard(t *testing.T) {
	c := NewConversationController(NewClient("http://unused", nil))

	err := c.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoInput)
	assert.Equal(t, StateIdle, c.State(), "a refused run must not leave Idle")
}

func TestConversationControllerQuotaMessage(t *testing.T) {
	client := fakeAPI(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/v1/transcribe-audio": errorResponse(http.StatusPaymentRequired,
			"OpenAI quota exceeded. Please add billing or use another provider."),
	})

	c := NewConversationController(client)
	c.SetFile([]byte("audio"), "audio/webm")

	require.Error(t, c.Run(context.Background()))
	assert.Equal(t, StateError, c.State())
	assert.Equal(t, audioQuotaMessage, c.ErrorMessage())
	assert.Contains(t, c.ErrorMessage(), "image/doc still work")
}

func TestConversationControllerErrorKeepsPriorResult(t *testing.T) {
	failNext := false
	client := fakeAPI(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/v1/transcribe-audio": func(w http.ResponseWriter, r *http.Request) {
			if failNext {
				w.WriteHeader(http.StatusBadGateway)
				json.NewEncoder(w).Encode(map[string]string{"error": "backend down"})
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"transcript": "First run."})
		},
	})

	c := NewConversationController(client)
	c.SetFile([]byte("audio"), "audio/webm")

	require.NoError(t, c.Run(context.Background()))
	require.Equal(t, "First run.", c.Result().Transcript)

	failNext = true
	require.Error(t, c.Run(context.Background()))

	assert.Equal(t, StateError, c.State())
	assert.Equal(t, "First run.", c.Result().Transcript, "failed run must not clear prior output")
	assert.Equal(t, "backend down", c.ErrorMessage())
}

func TestImageControllerRejectsNonImage(t *testing.T) {
	c := NewImageController(NewClient("http://unused", nil))

	assert.False(t, c.SetFile([]byte("%PDF"), "application/pdf"))
	assert.False(t, c.CanRun())

	assert.True(t, c.SetFile([]byte{0xFF, 0xD8}, "image/jpeg"))
	assert.True(t, c.CanRun())
}

func TestImageControllerSuccess(t *testing.T) {
	client := fakeAPI(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/v1/describe-image": jsonResponse(map[string]string{"description": "a garden"}),
	})

	c := NewImageController(client)
	require.True(t, c.SetFile([]byte("img"), "image/png"))

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, StateSuccess, c.State())
	assert.Equal(t, "a garden", c.Description())
}

func TestDocumentControllerRequiresFileOrURL(t *testing.T) {
	c := NewDocumentController(NewClient("http://unused", nil))

	assert.False(t, c.CanRun())
	assert.ErrorIs(t, c.Run(context.Background()), ErrNoInput)
	assert.Equal(t, StateIdle, c.State())

	c.SetURL("https://example.com/article")
	assert.True(t, c.CanRun())
}

func TestDocumentControllerURLWinsOverFile(t *testing.T) {
	var gotPath string
	client := fakeAPI(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/v1/summarize": func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			json.NewEncoder(w).Encode(map[string]string{"summary": "- from url"})
		},
		"/api/v1/summarize/upload": func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			json.NewEncoder(w).Encode(map[string]string{"summary": "- from file"})
		},
	})

	c := NewDocumentController(client)
	c.SetFile("notes.txt", []byte("text"))
	c.SetURL("https://example.com")

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, "/api/v1/summarize", gotPath)
	assert.Equal(t, "- from url", c.Summary())
}

func TestDocumentControllerUploadFlow(t *testing.T) {
	client := fakeAPI(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/v1/summarize/upload": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			_, header, err := r.FormFile("file")
			require.NoError(t, err)
			assert.Equal(t, "notes.txt", header.Filename)
			json.NewEncoder(w).Encode(map[string]string{"summary": "- uploaded"})
		},
	})

	c := NewDocumentController(client)
	c.SetFile("notes.txt", []byte("contents"))

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, "- uploaded", c.Summary())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "error", StateError.String())
}
