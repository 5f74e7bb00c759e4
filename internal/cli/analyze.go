package cli

import (
	"context"
	"fmt"

	"resumeforge/internal/ai"
	"resumeforge/internal/common"
	"resumeforge/internal/extract"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [job-description-file]",
	Short: "Extract requirements from a job description",
	Long: `Analyze a job description with AI and extract its title, company, required
and preferred skills, experience and education requirements, responsibilities,
and keywords.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	analyzeAIConfig := cfg.GetAnalyzeConfig()
	backend, err := ai.NewGeminiBackend(&analyzeAIConfig, "analyze", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI backend: %w", err)
	}

	extractor := extract.NewExtractor(backend, logger, extract.Options{
		JobPrompt:   analyzeAIConfig.Prompt,
		Temperature: *analyzeAIConfig.Temperature,
	})

	operation := func(ctx context.Context, contents []string) (types.JobRequirements, *ai.TokenUsage, bool, error) {
		logger.Info("Starting job analysis",
			"job_chars", len(contents[0]),
			"output_format", analyzeConfig.OutputFormat)
		outcome := extractor.ExtractJob(ctx, contents[0])
		return outcome.Value, outcome.Usage, outcome.Degraded(), nil
	}

	if err := common.RunAICommand(cmd.Context(), logger, analyzeConfig, args, operation); err != nil {
		return fmt.Errorf("failed to analyze job description: %w", err)
	}
	logger.Info("Job analysis completed")
	return nil
}
