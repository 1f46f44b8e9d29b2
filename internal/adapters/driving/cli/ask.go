package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localrag/ragchat-cli/internal/core/domain"
)

var (
	askJSON    bool
	askSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question answered from your documents",
	Long: `Sends a single question to the RAG server and prints the answer.
The answer is grounded in the uploaded documents; pass --sources to
show the retrieval citations.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askSources, "sources", false, "show retrieval citations")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the reply as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	reply, err := chatService.Ask(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAskJSON(cmd, reply)
	}

	cmd.Println(reply.Response)

	if askSources && len(reply.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i := range reply.Sources {
			cmd.Printf("  - %s\n", formatSource(reply.Sources[i]))
		}
	}

	return nil
}

func outputAskJSON(cmd *cobra.Command, reply domain.TurnReply) error {
	out := struct {
		Answer  string             `json:"answer"`
		Sources []domain.SourceRef `json:"sources,omitempty"`
	}{
		Answer:  reply.Response,
		Sources: reply.Sources,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// formatSource renders a citation as "name (p. N)".
func formatSource(ref domain.SourceRef) string {
	if ref.Page != nil {
		return fmt.Sprintf("%s (p. %d)", ref.Source, *ref.Page)
	}
	return ref.Source
}
