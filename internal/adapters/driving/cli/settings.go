package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localrag/ragchat-cli/internal/core/domain"
)

var providerModel string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the server endpoint, chat provider, and other
options. Settings persist in the configuration file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsProviderCmd = &cobra.Command{
	Use:   "provider [name]",
	Short: "Set the default chat provider",
	Long: `Sets the LLM provider used for chat turns.

Available providers: ollama, openai, gemini, anthropic.
For the local provider, use --model to pin a specific model.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsProvider,
}

var settingsServerCmd = &cobra.Command{
	Use:   "server [url]",
	Short: "Set the server base URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsServer,
}

func init() {
	settingsProviderCmd.Flags().StringVarP(&providerModel, "model", "m", "", "model override for the provider")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsProviderCmd)
	settingsCmd.AddCommand(settingsServerCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings := settingsService.Get()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Printf("  Server URL:    %s\n", settings.ServerURL)
	cmd.Printf("  Provider:      %s\n", settings.Provider)
	if settings.Model != "" {
		cmd.Printf("  Model:         %s\n", settings.Model)
	} else {
		cmd.Printf("  Model:         (server default)\n")
	}
	cmd.Printf("  Poll interval: %s\n", settings.PollInterval)

	return nil
}

func runSettingsProvider(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	provider, err := domain.ParseProvider(args[0])
	if err != nil {
		return fmt.Errorf("invalid provider: %w", err)
	}

	if err := settingsService.SetProvider(provider, providerModel); err != nil {
		return fmt.Errorf("failed to set provider: %w", err)
	}

	if providerModel != "" {
		cmd.Printf("Provider set to %s (%s).\n", provider, providerModel)
	} else {
		cmd.Printf("Provider set to %s.\n", provider)
	}
	return nil
}

func runSettingsServer(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetServerURL(args[0]); err != nil {
		return fmt.Errorf("failed to set server URL: %w", err)
	}

	cmd.Printf("Server URL set to %s.\n", args[0])
	return nil
}
