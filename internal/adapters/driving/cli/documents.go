package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/localrag/ragchat-cli/internal/core/domain"
)

var (
	documentsJSON bool
	deleteYes     bool
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage the server document catalog",
	Long:  `List or delete documents indexed on the RAG server.`,
	RunE:  runDocumentsList,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents",
	RunE:  runDocumentsList,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document from the server",
	Long: `Removes a document and all of its chunks from the server index.
Prompts for confirmation on a terminal; non-interactive use requires --yes.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentsDelete,
}

func init() {
	documentsListCmd.Flags().BoolVar(&documentsJSON, "json", false, "output the catalog as JSON")
	documentsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	if err := catalogService.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}

	records := catalogService.Snapshot()

	if documentsJSON {
		return outputDocumentsJSON(cmd, records)
	}

	if len(records) == 0 {
		cmd.Println("No documents indexed.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range records {
		cmd.Printf("  %s\n", records[i].ID)
		cmd.Printf("    Source: %s\n", records[i].Source)
		cmd.Printf("    Chunks: %d\n", records[i].Chunks)
		if records[i].EmbeddingModel != "" {
			cmd.Printf("    Embedding: %s\n", records[i].EmbeddingModel)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(records))
	return nil
}

func outputDocumentsJSON(cmd *cobra.Command, records []domain.DocumentRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	if !deleteYes && !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("confirmation required: pass --yes to delete without a prompt")
	}

	docID := args[0]

	err := catalogService.Delete(cmd.Context(), docID, confirmDelete(cmd))
	if errors.Is(err, domain.ErrDeleteCancelled) {
		cmd.Println("Aborted.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", docID)
	return nil
}

// confirmDelete gates the deletion. With --yes the prompt is skipped and
// the deletion proceeds; otherwise the user is asked on the terminal.
func confirmDelete(cmd *cobra.Command) func(domain.DocumentRecord) bool {
	return func(doc domain.DocumentRecord) bool {
		if deleteYes {
			return true
		}

		name := doc.Source
		if name == "" {
			name = doc.ID
		}
		cmd.Printf("Delete %q? This cannot be undone. [y/N]: ", name)

		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n') //nolint:errcheck // CLI prompt, error treated as decline
		input = strings.ToLower(strings.TrimSpace(input))

		return input == "y" || input == "yes"
	}
}
