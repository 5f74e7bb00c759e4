package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"resumeforge/internal/ai"
	"resumeforge/internal/common"
	"resumeforge/internal/extract"
	"resumeforge/internal/optimize"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [resume-file] [job-description-file]",
	Short: "Rewrite a resume toward a job description",
	Long: `Optimize a resume for a specific job description using AI: reorder
experiences by relevance, reword achievements toward the job's language, and
surface overlapping skills. The resume argument may be a parsed JSON record
(from 'parse') or a raw resume document; raw documents are extracted first.
If the AI backend fails, the original resume is returned unchanged.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if optimizeConfig.OutputFormat == "" {
			optimizeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(optimizeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runOptimize,
}

var optimizeConfig common.CommandConfig

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	optimizeCmd.Flags().StringVar(&optimizeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = optimizeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	parseAIConfig := cfg.GetParseConfig()
	parseBackend, err := ai.NewGeminiBackend(&parseAIConfig, "parse", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI backend: %w", err)
	}
	extractor := extract.NewExtractor(parseBackend, logger, extract.Options{
		ResumePrompt: parseAIConfig.Prompt,
		Temperature:  *parseAIConfig.Temperature,
	})

	optimizeAIConfig := cfg.GetOptimizeConfig()
	optimizeBackend, err := ai.NewGeminiBackend(&optimizeAIConfig, "optimize", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI backend: %w", err)
	}
	optimizer := optimize.NewOptimizer(optimizeBackend, extractor, logger, optimize.Options{
		Prompt:      optimizeAIConfig.Prompt,
		Temperature: *optimizeAIConfig.Temperature,
	})

	operation := func(ctx context.Context, contents []string) (types.ResumeRecord, *ai.TokenUsage, bool, error) {
		resume, wasParsed, err := resolveResume(ctx, contents[0], extractor)
		if err != nil {
			return types.ResumeRecord{}, nil, false, err
		}

		logger.Info("Starting resume optimization",
			"resume_pre_parsed", wasParsed,
			"job_chars", len(contents[1]),
			"output_format", optimizeConfig.OutputFormat)

		outcome := optimizer.Optimize(ctx, resume, contents[1], nil)
		return outcome.Value, outcome.Usage, outcome.Degraded(), nil
	}

	if err := common.RunAICommand(cmd.Context(), logger, optimizeConfig, args, operation); err != nil {
		return fmt.Errorf("failed to optimize resume: %w", err)
	}
	logger.Info("Resume optimization completed")
	return nil
}

// resolveResume accepts either a parsed JSON record or raw resume text.
// Raw text goes through extraction; its degraded fallback is an empty record,
// which optimization would happily echo back, so that case is an error here.
func resolveResume(ctx context.Context, content string, extractor *extract.Extractor) (types.ResumeRecord, bool, error) {
	var record types.ResumeRecord
	if err := json.Unmarshal([]byte(content), &record); err == nil && !record.IsZero() {
		return record, true, nil
	}

	outcome := extractor.ExtractResume(ctx, content)
	if outcome.Degraded() {
		return types.ResumeRecord{}, false, fmt.Errorf("could not extract resume before optimizing: %w", outcome.Err)
	}
	return outcome.Value, false, nil
}
