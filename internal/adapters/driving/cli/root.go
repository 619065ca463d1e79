// Package cli provides the command line interface for crisper.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
	"github.com/leehyunseo03/crisper-app/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by the commands. Wired once at startup via SetServices.
var (
	pipelineService driving.PipelineService
	graphService    driving.GraphProvider
	documentService driving.DocumentService
	chatService     driving.ChatService
	modelService    driving.ModelService
)

// Services bundles the driving ports the CLI commands call.
type Services struct {
	Pipeline driving.PipelineService
	Graph    driving.GraphProvider
	Document driving.DocumentService
	Chat     driving.ChatService
	Model    driving.ModelService
}

// SetServices wires the core services into the command tree.
func SetServices(s Services) {
	pipelineService = s.Pipeline
	graphService = s.Graph
	documentService = s.Document
	chatService = s.Chat
	modelService = s.Model
}

var rootCmd = &cobra.Command{
	Use:   "crisper",
	Short: "Local knowledge graph over your documents",
	Long: `Crisper ingests local documents, extracts entities and relations
with a local LLM, and serves the resulting knowledge graph through an
interactive terminal UI, a CLI, and an MCP server.

Run without arguments to launch the terminal UI.`,
	SilenceUsage: true,
	RunE:         runTUI,
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.SetVerbose(verbose)
	},
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
