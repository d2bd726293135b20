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

var imageCmd = &cobra.Command{
	Use:   "image [file]",
	Short: "Describe an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runImage,
}

func init() {
	rootCmd.AddCommand(imageCmd)
}

func runImage(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(args[0]))

	controller := panel.NewImageController(apiClient())
	if !controller.SetFile(data, mimeType) {
		return fmt.Errorf("not an image file: %s", args[0])
	}

	if err := controller.Run(context.Background()); err != nil {
		return errors.New(controller.ErrorMessage())
	}

	cmd.Println(controller.Description())
	return nil
}
