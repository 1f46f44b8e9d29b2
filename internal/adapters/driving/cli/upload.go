package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [path...]",
	Short: "Upload documents for ingestion",
	Long: `Uploads one or more files to the RAG server for chunking and
indexing. Supported formats depend on the server configuration.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	for _, path := range args {
		result, err := uploadService.Upload(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", path, err)
		}
		cmd.Printf("Uploaded %s (%d chunks)\n", result.Filename, result.Chunks)
	}

	return nil
}
