// Package cli provides the cobra command tree for the daybook binary.
// Commands are wired against the driving ports so the same services back
// both the CLI and the MCP server.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/quillstone-labs/daybook-cli/internal/adapters/driven/config/file"
	anthropicllm "github.com/quillstone-labs/daybook-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/quillstone-labs/daybook-cli/internal/adapters/driven/llm/ollama"

	ollamaembed "github.com/quillstone-labs/daybook-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/quillstone-labs/daybook-cli/internal/adapters/driven/embedding/openai"
	"github.com/quillstone-labs/daybook-cli/internal/adapters/driven/source/filesystem"
	"github.com/quillstone-labs/daybook-cli/internal/adapters/driven/vector/memory"
	"github.com/quillstone-labs/daybook-cli/internal/adapters/driven/vector/sqlite"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driven"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driving"
	"github.com/quillstone-labs/daybook-cli/internal/core/services"
	"github.com/quillstone-labs/daybook-cli/internal/logger"
)

// version is the daybook release version, overridable at build time via
// -ldflags "-X ...cli.version=...".
var version = "0.1.0"

var (
	verbose   bool
	ephemeral bool
)

// servicesWired is set once the adapter graph has been built. Tests set
// it to keep command runs away from real configuration and disk.
var servicesWired bool

// Services wired at startup. Tests swap these for mocks.
var (
	configStore   driven.ConfigStore
	entrySource   driven.EntrySource
	vectorIndex   driven.VectorIndex
	snapshotter   driven.Snapshotter
	ingestService driving.Ingestor
	queryService  driving.QueryService
	answerService driving.AnswerService
	adminService  driving.AdminService
)

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "Search and question your scanned journal",
	Long: `Daybook indexes OCR output from scanned journal entries into a local
vector index and lets you search it semantically or ask questions
answered from the entries themselves.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "use an in-memory index (nothing persisted)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initServices builds the adapter and service graph from configuration.
// It is idempotent so tests can pre-populate the service variables.
func initServices() error {
	if servicesWired {
		return nil
	}
	servicesWired = true

	store, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	configStore = store

	entrySource = filesystem.NewSource(journalDir(store))

	if ephemeral {
		idx := memory.NewIndex()
		vectorIndex = idx
	} else {
		idx, err := sqlite.NewIndex(store.GetString("index.data_dir"))
		if err != nil {
			return fmt.Errorf("opening index: %w", err)
		}
		vectorIndex = idx
		snapshotter = idx
	}

	embedding, err := buildEmbeddingService(store)
	if err != nil {
		return err
	}

	llm, err := buildLLMService(store)
	if err != nil {
		return err
	}
	if llm == nil {
		logger.Info("no LLM configured, ask degrades to search-only answers")
	}

	ingestService = services.NewIngestionManager(entrySource, embedding, vectorIndex)
	engine := services.NewQueryEngine(embedding, vectorIndex)
	queryService = engine
	answerService = services.NewAnswerSynthesizer(engine, llm, store.GetInt("answer.context_budget"))
	adminService = services.NewIndexAdmin(vectorIndex, snapshotter)

	return nil
}

// journalDir resolves the journal OCR output directory.
func journalDir(store driven.ConfigStore) string {
	if dir := store.GetString("journal.dir"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "journal"
	}
	return filepath.Join(home, ".daybook", "journal")
}

// buildEmbeddingService constructs the configured embedding provider.
// Provider selection follows the embedding.provider config key.
func buildEmbeddingService(store driven.ConfigStore) (driven.EmbeddingService, error) {
	provider := store.GetString("embedding.provider")
	if provider == "" {
		provider = "ollama"
	}

	switch provider {
	case "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    store.GetString("embedding.base_url"),
			Model:      store.GetString("embedding.model"),
			Dimensions: store.GetInt("embedding.dimensions"),
		}), nil
	case "openai":
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  store.GetString("embedding.api_key"),
			BaseURL: store.GetString("embedding.base_url"),
			Model:   store.GetString("embedding.model"),
		})
		if err != nil {
			return nil, fmt.Errorf("configuring openai embeddings: %w", err)
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

// buildLLMService constructs the configured LLM provider, or nil when the
// provider is unset or "none". A nil LLM is a supported configuration.
func buildLLMService(store driven.ConfigStore) (driven.LLMService, error) {
	provider := store.GetString("llm.provider")

	switch provider {
	case "", "none":
		return nil, nil
	case "ollama":
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: store.GetString("llm.base_url"),
			Model:   store.GetString("llm.model"),
		}), nil
	case "anthropic":
		svc, err := anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey: store.GetString("llm.api_key"),
			Model:  store.GetString("llm.model"),
		})
		if err != nil {
			return nil, fmt.Errorf("configuring anthropic: %w", err)
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
