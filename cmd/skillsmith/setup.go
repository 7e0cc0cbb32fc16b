package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"skillsmith/pkg/installer"
	"skillsmith/pkg/logger"
	"skillsmith/pkg/presenter"
	"skillsmith/pkg/rules"
)

// componentOrder is the canonical install order; deps last so manifest edits
// happen after the files they support are in place.
var componentOrder = []string{"skills", "agents", "commands", "hooks", "examples", "deps"}

type SetupConfig struct {
	Target         string
	Components     []string
	All            bool
	NonInteractive bool
}

func NewSetupConfig() *SetupConfig {
	return &SetupConfig{
		Target: "",
	}
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Install agent infrastructure into a target project",
	Long: `Install skills, agents, commands, hooks, and examples into a target
project's .claude directory. Existing files that would be overwritten are
backed up into a timestamped .claude_backup directory first.

Examples:
  skillsmith setup --target ../my-service --all
  skillsmith setup --target ../my-service --component skills --component hooks
  skillsmith setup --target ../my-service`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getSetupConfigFromFlags(cmd)
		runSetup(cmd.Context(), config)
	},
}

func init() {
	defaults := NewSetupConfig()
	setupCmd.Flags().StringP("target", "t", defaults.Target, "Target project directory (required)")
	setupCmd.Flags().StringSliceP("component", "c", defaults.Components, "Component to install (skills, agents, commands, hooks, examples, deps); repeatable")
	setupCmd.Flags().Bool("all", defaults.All, "Install all components and write the README")
	setupCmd.Flags().Bool("non-interactive", defaults.NonInteractive, "Never prompt; without --component this installs everything")
	setupCmd.MarkFlagRequired("target")
	rootCmd.AddCommand(setupCmd)
}

func getSetupConfigFromFlags(cmd *cobra.Command) *SetupConfig {
	config := NewSetupConfig()
	if target, err := cmd.Flags().GetString("target"); err == nil {
		config.Target = target
	}
	if components, err := cmd.Flags().GetStringSlice("component"); err == nil {
		config.Components = components
	}
	if all, err := cmd.Flags().GetBool("all"); err == nil {
		config.All = all
	}
	if nonInteractive, err := cmd.Flags().GetBool("non-interactive"); err == nil {
		config.NonInteractive = nonInteractive
	}
	return config
}

func runSetup(ctx context.Context, config *SetupConfig) {
	inst, err := installer.New(config.Target)
	if err != nil {
		presenter.Error(err, "Invalid target project")
		os.Exit(1)
	}

	components := config.Components
	if config.All || (config.NonInteractive && len(components) == 0) {
		components = componentOrder
	}

	if len(components) == 0 {
		components = promptForComponents()
		if len(components) == 0 {
			presenter.Info("Nothing selected, exiting.")
			return
		}
	}

	for _, name := range components {
		if !isKnownComponent(name) {
			presenter.Error(errors.Errorf("unknown component %q (valid: %s)", name, strings.Join(componentOrder, ", ")), "Invalid selection")
			os.Exit(1)
		}
	}

	logger.G(ctx).WithField("target", config.Target).WithField("components", components).Debug("starting setup")

	if err := inst.Backup(rules.RulesPath(config.Target)); err != nil {
		presenter.Error(err, "Failed to back up existing configuration")
		os.Exit(1)
	}

	presenter.Section(fmt.Sprintf("Installing into %s", config.Target))
	for _, name := range components {
		if err := installComponent(ctx, inst, name); err != nil {
			presenter.Error(err, fmt.Sprintf("Failed to install %s", name))
			os.Exit(1)
		}
		presenter.Success(fmt.Sprintf("Installed %s", name))
	}

	if config.All {
		if err := inst.WriteReadme(ctx); err != nil {
			presenter.Error(err, "Failed to write README")
			os.Exit(1)
		}
		presenter.Success("Wrote .claude/README.md")
	}

	presenter.Separator()
	presenter.Info("Setup complete. Restart your agent session to pick up the new hooks.")
}

func installComponent(ctx context.Context, inst *installer.Installer, name string) error {
	switch name {
	case "skills":
		return inst.InstallSkills(ctx, nil)
	case "agents":
		return inst.InstallAgents(ctx)
	case "commands":
		return inst.InstallCommands(ctx)
	case "hooks":
		return inst.InstallHooks(ctx)
	case "examples":
		return inst.InstallExamples(ctx)
	case "deps":
		return inst.UpdateDependencies(ctx)
	default:
		return errors.Errorf("unknown component %q", name)
	}
}

func isKnownComponent(name string) bool {
	for _, known := range componentOrder {
		if name == known {
			return true
		}
	}
	return false
}

func promptForComponents() []string {
	presenter.Section("Available components")
	for idx, name := range componentOrder {
		presenter.Info(fmt.Sprintf("  %d. %s", idx+1, name))
	}

	answer := presenter.Prompt("Select components (numbers or names, comma-separated, 'all', or 'q' to quit)")
	selection, quit, err := parseMenuSelection(answer)
	if err != nil {
		presenter.Error(err, "Invalid selection")
		os.Exit(1)
	}
	if quit {
		return nil
	}
	return selection
}

// parseMenuSelection resolves a menu answer into component names. Numbers are
// 1-based menu indexes; names pass through. Duplicates collapse while keeping
// the canonical install order.
func parseMenuSelection(answer string) ([]string, bool, error) {
	answer = strings.TrimSpace(strings.ToLower(answer))
	switch answer {
	case "", "q", "quit":
		return nil, true, nil
	case "all", "a":
		return componentOrder, false, nil
	}

	chosen := make(map[string]bool)
	for _, token := range strings.Split(answer, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if idx, err := strconv.Atoi(token); err == nil {
			if idx < 1 || idx > len(componentOrder) {
				return nil, false, errors.Errorf("no such option: %d", idx)
			}
			chosen[componentOrder[idx-1]] = true
			continue
		}

		if !isKnownComponent(token) {
			return nil, false, errors.Errorf("no such component: %s", token)
		}
		chosen[token] = true
	}

	var selection []string
	for _, name := range componentOrder {
		if chosen[name] {
			selection = append(selection, name)
		}
	}
	return selection, false, nil
}
