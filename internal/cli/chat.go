package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"resumeforge/internal/ai"
	"resumeforge/internal/chat"
	"resumeforge/internal/common"
	"resumeforge/internal/extract"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [resume-file]",
	Short: "Ask questions about a resume",
	Long: `Start an interactive conversation about a resume. The resume argument may
be a parsed JSON record (from 'parse') or a raw resume document. Ask free-form
questions; answers come from the AI backend with the resume as context.
Use --question for a single non-interactive exchange.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

var chatQuestion string

func init() {
	chatCmd.Flags().StringVarP(&chatQuestion, "question", "q", "", "Ask a single question and exit")
}

func runChat(cmd *cobra.Command, args []string) error {
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

	chatAIConfig := cfg.GetChatConfig()
	chatBackend, err := ai.NewGeminiBackend(&chatAIConfig, "chat", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI backend: %w", err)
	}
	assistant := chat.NewAssistant(chatBackend, logger, chat.Options{
		Prompt:      chatAIConfig.Prompt,
		Temperature: *chatAIConfig.Temperature,
		MaxHistory:  cfg.App.ChatMaxHistory,
	})

	fileProcessor := common.NewFileProcessor(logger)
	content, err := fileProcessor.ReadDocument(args[0])
	if err != nil {
		return err
	}

	resume, _, err := resolveResume(cmd.Context(), content, extractor)
	if err != nil {
		return err
	}

	if chatQuestion != "" {
		answer, _, err := assistant.Ask(cmd.Context(), resume, nil, chatQuestion)
		if err != nil {
			return fmt.Errorf("chat failed: %w", err)
		}
		fmt.Println(answer)
		return nil
	}

	return runChatLoop(cmd, assistant, resume)
}

// runChatLoop reads questions from stdin until EOF or "exit".
func runChatLoop(cmd *cobra.Command, assistant *chat.Assistant, resume types.ResumeRecord) error {
	logger := getLoggerFromContext(cmd.Context())

	name := resume.BasicInfo.Name
	if name == "" {
		name = "this resume"
	}
	fmt.Printf("Chatting about %s. Type 'exit' or Ctrl-D to quit.\n", name)

	var history []types.ChatTurn
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		answer, updated, err := assistant.Ask(cmd.Context(), resume, history, question)
		if err != nil {
			logger.LogError(err, "Chat turn failed")
			fmt.Fprintln(os.Stderr, "Sorry, that question could not be answered. Try again.")
			continue
		}
		history = updated
		fmt.Println(answer)
	}

	return scanner.Err()
}
