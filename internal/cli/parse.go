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

var parseCmd = &cobra.Command{
	Use:   "parse [resume-file]",
	Short: "Extract structured data from a resume",
	Long: `Extract structured data (contact details, experience, education, skills,
certifications, projects, publications, achievements) from a resume using AI.
The resume may be a plain-text, Markdown, PDF, or DOCX file.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if parseConfig.OutputFormat == "" {
			parseConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(parseConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runParse,
}

var parseConfig common.CommandConfig

func init() {
	parseCmd.Flags().StringVarP(&parseConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().StringVar(&parseConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = parseCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	parseAIConfig := cfg.GetParseConfig()
	backend, err := ai.NewGeminiBackend(&parseAIConfig, "parse", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI backend: %w", err)
	}

	extractor := extract.NewExtractor(backend, logger, extract.Options{
		ResumePrompt: parseAIConfig.Prompt,
		Temperature:  *parseAIConfig.Temperature,
	})

	operation := func(ctx context.Context, contents []string) (types.ResumeRecord, *ai.TokenUsage, bool, error) {
		logger.Info("Starting resume extraction",
			"resume_chars", len(contents[0]),
			"output_format", parseConfig.OutputFormat)
		outcome := extractor.ExtractResume(ctx, contents[0])
		return outcome.Value, outcome.Usage, outcome.Degraded(), nil
	}

	if err := common.RunAICommand(cmd.Context(), logger, parseConfig, args, operation); err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	logger.Info("Resume extraction completed")
	return nil
}
