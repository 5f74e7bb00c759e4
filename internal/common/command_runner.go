package common

import (
	"context"
	"fmt"
	"os"

	"resumeforge/internal/ai"
	"resumeforge/internal/errors"
)

// OperationFunc is a generic signature for a generative operation that takes
// the extracted file contents and produces an output plus token usage. The
// degraded flag signals a documented fallback value rather than a failure.
type OperationFunc[Output any] func(ctx context.Context, contents []string) (Output, *ai.TokenUsage, bool, error)

// RunAICommand encapsulates the common logic for file-based CLI commands:
// read and extract input documents, run the operation, report token usage,
// and render the output in the requested format.
func RunAICommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	args []string,
	operation OperationFunc[Output],
) error {
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	contents, err := fileProcessor.ValidateAndReadDocuments(args...)
	if err != nil {
		return err
	}

	result, tokenUsage, degraded, err := operation(ctx, contents)
	if err != nil {
		return err
	}

	if tokenUsage != nil {
		if logger != nil {
			logger.Info("AI token usage",
				"input_tokens", tokenUsage.InputTokens,
				"output_tokens", tokenUsage.OutputTokens,
				"total_tokens", tokenUsage.TotalTokens)
		} else {
			fmt.Fprintf(os.Stderr, "AI token usage: input=%d, output=%d, total=%d\n",
				tokenUsage.InputTokens, tokenUsage.OutputTokens, tokenUsage.TotalTokens)
		}
	}

	if degraded {
		fmt.Fprintln(os.Stderr, "Warning: the AI backend did not produce a usable result; output is a fallback value. Retry may help.")
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
