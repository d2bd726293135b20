package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/perceptlab/insight-api/internal/panel"
)

var audioCmd = &cobra.Command{
	Use:   "audio [file]",
	Short: "Transcribe, diarize and summarize a recording",
	Args:  cobra.ExactArgs(1),
	RunE:  runAudio,
}

func init() {
	rootCmd.AddCommand(audioCmd)
}

func runAudio(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read audio file: %w", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(args[0]))
	if mimeType == "" {
		mimeType = "audio/webm"
	}

	controller := panel.NewConversationController(apiClient())
	controller.SetFile(data, mimeType)

	if err := controller.Run(context.Background()); err != nil {
		return errors.New(controller.ErrorMessage())
	}

	result := controller.Result()
	cmd.Println("=== Transcript ===")
	cmd.Println(result.Transcript)
	cmd.Println("\n=== Diarization ===")
	cmd.Println(result.Diarized)
	cmd.Println("\n=== Summary ===")
	cmd.Println(result.Summary)

	return nil
}
