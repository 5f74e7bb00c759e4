package cli

import (
	"encoding/json"
	"fmt"

	"resumeforge/internal/common"
	"resumeforge/internal/match"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume-json] [job-json]",
	Short: "Compute a skill match report",
	Long: `Compare a parsed resume against analyzed job requirements and report which
resume skills line up with the job and which requirements are unmet.
Both arguments are JSON files as produced by 'parse' and 'analyze'.
No AI backend is involved; matching is local string comparison.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var matchConfig common.CommandConfig

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runMatch(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	outputHandler := common.NewOutputHandler(logger)

	resumeJSON, err := fileProcessor.ReadFile(args[0])
	if err != nil {
		return err
	}
	jobJSON, err := fileProcessor.ReadFile(args[1])
	if err != nil {
		return err
	}

	var resume types.ResumeRecord
	if err := json.Unmarshal([]byte(resumeJSON), &resume); err != nil {
		return fmt.Errorf("resume file is not a valid parsed record: %w", err)
	}
	var job types.JobRequirements
	if err := json.Unmarshal([]byte(jobJSON), &job); err != nil {
		return fmt.Errorf("job file is not a valid analyzed record: %w", err)
	}

	report := match.Resume(resume, job)

	logger.Info("Skill match computed",
		"resume_skills", len(resume.Skills),
		"matching", len(report.MatchingSkills),
		"missing", len(report.MissingSkills))

	return outputHandler.HandleOutput(report, matchConfig)
}
