// Package cli is a small front end for the analysis API: one subcommand
// per skill, each driving the matching panel controller.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/perceptlab/insight-api/internal/panel"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "insight",
	Short: "Analyze audio, images and documents",
	Long: `insight submits an audio recording, an image, or a document/URL to a
running insight-api server and prints the derived analysis.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the insight-api server")
}

func apiClient() *panel.Client {
	return panel.NewClient(serverURL, nil)
}

func Execute() error {
	return rootCmd.Execute()
}
