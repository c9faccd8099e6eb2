package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage daybook configuration",
	Long: `Reads and writes configuration values stored in the daybook config file.

Common keys:
  journal.dir              OCR output directory to ingest from
  index.data_dir           index database directory
  embedding.provider       ollama or openai
  embedding.model          embedding model name
  llm.provider             ollama, anthropic or none
  llm.model                generation model name
  answer.context_budget    context size for ask, in characters`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	RunE:  runConfigList,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}

	cmd.Printf("%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	if err := configStore.Set(key, coerceValue(raw)); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	cmd.Printf("%s = %s\n", key, raw)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	keys := configStore.Keys()
	if len(keys) == 0 {
		cmd.Printf("No configuration set. Config file: %s\n", configStore.Path())
		return nil
	}

	for _, key := range keys {
		val, _ := configStore.Get(key)
		if key == "embedding.api_key" || key == "llm.api_key" {
			val = maskAPIKey(fmt.Sprintf("%v", val))
		}
		cmd.Printf("%s = %v\n", key, val)
	}
	return nil
}

// coerceValue converts flag-style string input to a typed config value.
func coerceValue(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
