package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"skillsmith/pkg/logger"
	"skillsmith/pkg/presenter"
	"skillsmith/pkg/rules"
)

type SuggestConfig struct {
	Root string
	File string
}

func NewSuggestConfig() *SuggestConfig {
	return &SuggestConfig{
		Root: ".",
	}
}

// hookPayload is the JSON document agent hooks pipe to stdin.
type hookPayload struct {
	Prompt string `json:"prompt"`
	File   string `json:"file"`
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [prompt...]",
	Short: "Match a prompt against the installed skill activation rules",
	Long: `Evaluate a prompt against the skill activation rules installed under
--root and print the matching guidance. This is the backend for the
skill-activation-prompt hook: hooks pipe a JSON payload ({"prompt": ...,
"file": ...}) to stdin, but the prompt can also be given as arguments.

Exit status is 2 when a blocking rule matched, 0 otherwise. Nothing is
printed when no rule matched.

Examples:
  echo '{"prompt": "add a webhook endpoint"}' | skillsmith suggest
  skillsmith suggest "add retry logic" --file app/services/payment.py`,
	Run: func(cmd *cobra.Command, args []string) {
		config := getSuggestConfigFromFlags(cmd)
		runSuggest(cmd, args, config)
	},
}

func init() {
	defaults := NewSuggestConfig()
	suggestCmd.Flags().String("root", defaults.Root, "Project root containing .claude/skills/skill-rules.json")
	suggestCmd.Flags().StringP("file", "f", defaults.File, "Active file path for filePaths rule matching")
	rootCmd.AddCommand(suggestCmd)
}

func getSuggestConfigFromFlags(cmd *cobra.Command) *SuggestConfig {
	config := NewSuggestConfig()
	if root, err := cmd.Flags().GetString("root"); err == nil {
		config.Root = root
	}
	if file, err := cmd.Flags().GetString("file"); err == nil {
		config.File = file
	}
	return config
}

func runSuggest(cmd *cobra.Command, args []string, config *SuggestConfig) {
	prompt, activeFile, err := resolveSuggestInput(args, config.File, cmd.InOrStdin())
	if err != nil {
		presenter.Error(err, "Failed to read prompt")
		os.Exit(1)
	}
	if strings.TrimSpace(prompt) == "" {
		return
	}

	ruleSet, err := rules.Load(config.Root)
	if err != nil {
		presenter.Error(err, "Failed to load activation rules")
		os.Exit(1)
	}

	matches := rules.Evaluate(prompt, activeFile, ruleSet)
	logger.G(cmd.Context()).WithField("rules", len(ruleSet)).WithField("matches", len(matches)).Debug("evaluated prompt")

	output, status := rules.Format(matches)
	if output != "" {
		fmt.Print(output)
	}
	if status == rules.StatusBlocked {
		os.Exit(2)
	}
}

// resolveSuggestInput picks the prompt and active file from args or stdin.
// Args win when present; otherwise stdin is parsed as the hook's JSON payload,
// falling back to treating the raw input as the prompt text.
func resolveSuggestInput(args []string, flagFile string, stdin io.Reader) (string, string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), flagFile, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to read stdin")
	}

	var payload hookPayload
	if err := json.Unmarshal(data, &payload); err == nil {
		activeFile := payload.File
		if flagFile != "" {
			activeFile = flagFile
		}
		return payload.Prompt, activeFile, nil
	}

	return strings.TrimSpace(string(data)), flagFile, nil
}
