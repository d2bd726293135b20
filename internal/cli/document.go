package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/perceptlab/insight-api/internal/panel"
)

var documentURL string

var documentCmd = &cobra.Command{
	Use:   "document [file]",
	Short: "Summarize a document or web page",
	Long: `Summarize a .txt, .pdf or .docx file, or a web page with --url.
Provide either a file argument or --url, not both.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocument,
}

func init() {
	documentCmd.Flags().StringVar(&documentURL, "url", "", "summarize a web page instead of a file")
	rootCmd.AddCommand(documentCmd)
}

func runDocument(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && documentURL == "" {
		return errors.New("provide a file or --url")
	}

	controller := panel.NewDocumentController(apiClient())

	if documentURL != "" {
		controller.SetURL(documentURL)
	} else {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}
		controller.SetFile(filepath.Base(args[0]), data)
	}

	if err := controller.Run(context.Background()); err != nil {
		return errors.New(controller.ErrorMessage())
	}

	cmd.Println(controller.Summary())
	return nil
}
