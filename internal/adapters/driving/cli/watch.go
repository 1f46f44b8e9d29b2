package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/localrag/ragchat-cli/internal/adapters/driven/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and upload new files",
	Long: `Watches a directory and uploads files to the RAG server as they
appear or change. Hidden files are ignored. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	cmd.Printf("Watching %s for new documents. Press Ctrl+C to stop.\n", args[0])

	w := watcher.New(args[0], uploadService)
	return w.Run(cmd.Context())
}
