package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
)

var (
	ingestPDFsOnly  bool
	ingestWithGraph bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Ingest documents from a directory",
	Long: `Chunks and embeds every supported document under the directory.

Supported formats are PDF (requires pdftotext), plain text, and markdown.
Use --pdfs to restrict the run to PDF files, and --graph to construct
the knowledge graph immediately after ingesting.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

var kakaoCmd = &cobra.Command{
	Use:   "kakao [file]",
	Short: "Ingest a KakaoTalk chat log export",
	Long: `Normalises a KakaoTalk text export into speaker-attributed lines
and ingests it as a single document.`,
	Args: cobra.ExactArgs(1),
	RunE: runKakao,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestPDFsOnly, "pdfs", false, "process only PDF files")
	ingestCmd.Flags().BoolVar(&ingestWithGraph, "graph", false, "construct the graph after ingesting")
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(kakaoCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	mode := driving.IngestAll
	switch {
	case ingestPDFsOnly && ingestWithGraph:
		mode = driving.IngestPDFsGraph
	case ingestPDFsOnly:
		mode = driving.IngestPDFs
	}

	if _, err := runIngestStage(cmd, mode, args[0]); err != nil {
		return err
	}

	// --graph without --pdfs ingests everything, then builds.
	if ingestWithGraph && !ingestPDFsOnly {
		buildResult, err := runBuildStage(cmd)
		if err != nil {
			return err
		}
		cmd.Println(buildResult)
	}

	return nil
}

func runKakao(cmd *cobra.Command, args []string) error {
	_, err := runIngestStage(cmd, driving.IngestKakao, args[0])
	return err
}

// runIngestStage drives one full ingest stage through the pipeline
// controller so the CLI and TUI share identical state transitions.
func runIngestStage(cmd *cobra.Command, mode driving.IngestMode, path string) (string, error) {
	if pipelineService == nil {
		return "", errors.New("pipeline service not configured")
	}

	if err := pipelineService.SelectSource(path); err != nil {
		return "", fmt.Errorf("selecting source: %w", err)
	}

	token, err := pipelineService.BeginIngest()
	if err != nil {
		return "", fmt.Errorf("starting ingest: %w", err)
	}

	result, err := pipelineService.Ingest(cmd.Context(), mode, path)
	pipelineService.FinishIngest(token, result, err)
	if err != nil {
		return "", fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Println(result)
	return result, nil
}
