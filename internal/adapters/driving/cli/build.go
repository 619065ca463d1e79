package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Construct the knowledge graph",
	Long: `Runs entity and relation extraction over every pending chunk and
stores the resulting nodes and edges. Chunks that were already processed
are skipped, so the command is safe to re-run.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	result, err := runBuildStage(cmd)
	if err != nil {
		return err
	}
	cmd.Println(result)
	return nil
}

// runBuildStage drives one graph construction stage through the
// pipeline controller.
func runBuildStage(cmd *cobra.Command) (string, error) {
	if pipelineService == nil {
		return "", errors.New("pipeline service not configured")
	}

	token, err := pipelineService.BeginGraphBuild()
	if err != nil {
		return "", fmt.Errorf("starting graph build: %w", err)
	}

	result, err := pipelineService.BuildGraph(cmd.Context())
	pipelineService.FinishGraphBuild(token, result, err)
	if err != nil {
		return "", fmt.Errorf("graph build failed: %w", err)
	}

	return result, nil
}
