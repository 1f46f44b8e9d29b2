// Package cli implements the command line interface for ragchat.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localrag/ragchat-cli/internal/adapters/driven/backend"
	"github.com/localrag/ragchat-cli/internal/adapters/driven/config/file"
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
	"github.com/localrag/ragchat-cli/internal/core/services"
	"github.com/localrag/ragchat-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services shared by all commands. Wired by initServices on first use
// or injected directly by tests.
var (
	chatService     driving.ChatService
	catalogService  driving.CatalogService
	uploadService   driving.UploadService
	modelService    driving.ModelService
	settingsService driving.SettingsService

	// servicesWired suppresses initServices once the graph is built.
	servicesWired bool
)

// Persistent flag values.
var (
	flagServerURL string
	flagConfigDir string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "ragchat",
	Short: "Chat with your documents from the terminal",
	Long: `ragchat is a terminal client for a local RAG server.

Upload documents, ask questions answered from their content, and manage
the server's document catalog. Run without arguments to launch the
interactive TUI.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	RunE:              runTUI,
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context. The
// context cancels long-running commands such as watch and mcp serve.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "server base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.ragchat)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// initServices wires the service graph from configuration. Tests that
// inject services directly are left untouched.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	if servicesWired {
		return nil
	}

	configStore, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settingsService = services.NewSettingsService(configStore)
	settings := settingsService.Get()

	serverURL := settings.ServerURL
	if flagServerURL != "" {
		serverURL = flagServerURL
	}

	client := backend.NewClient(backend.Config{BaseURL: serverURL})

	chatService = services.NewChatService(client, settings.Provider, settings.Model)
	catalogService = services.NewCatalogService(client, settings.PollInterval)
	uploadService = services.NewUploadService(client)
	modelService = services.NewModelService(client)
	servicesWired = true

	return nil
}
