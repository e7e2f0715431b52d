package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the OpenAI API key",
	Long: `Prompts for the OpenAI API key without echoing it and stores it in the
secrets file with owner-only permissions. The DOCCHAT_OPENAI_API_KEY
environment variable is used as a fallback when no key is stored.`,
	RunE: runSettingsSetKey,
}

var settingsDeleteKeyCmd = &cobra.Command{
	Use:   "delete-key",
	Short: "Remove the stored OpenAI API key",
	RunE:  runSettingsDeleteKey,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetKeyCmd)
	settingsCmd.AddCommand(settingsDeleteKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if secretStore == nil {
		return errors.New("secret store not configured")
	}

	key, err := secretStore.Get(driven.SecretKeyOpenAI)
	if err != nil {
		return fmt.Errorf("reading key: %w", err)
	}
	if key == "" {
		cmd.Println("OpenAI API key: not set")
	} else {
		cmd.Printf("OpenAI API key: set (%s...)\n", keyPrefix(key))
	}
	return nil
}

// keyPrefix returns a short non-sensitive prefix for display.
func keyPrefix(key string) string {
	if len(key) <= 6 {
		return "***"
	}
	return key[:6]
}

func runSettingsSetKey(cmd *cobra.Command, _ []string) error {
	if secretStore == nil {
		return errors.New("secret store not configured")
	}

	fmt.Fprint(os.Stderr, "OpenAI API key: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("reading key: %w", err)
	}

	key := strings.TrimSpace(string(raw))
	if key == "" {
		return errors.New("empty key")
	}
	if err := secretStore.Set(driven.SecretKeyOpenAI, key); err != nil {
		return fmt.Errorf("storing key: %w", err)
	}
	cmd.Println("API key saved.")
	return nil
}

func runSettingsDeleteKey(cmd *cobra.Command, _ []string) error {
	if secretStore == nil {
		return errors.New("secret store not configured")
	}
	if err := secretStore.Delete(driven.SecretKeyOpenAI); err != nil {
		return fmt.Errorf("deleting key: %w", err)
	}
	cmd.Println("API key removed.")
	return nil
}
