package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"skillsmith/pkg/catalog"
	"skillsmith/pkg/installer"
	"skillsmith/pkg/presenter"
)

type ListConfig struct {
	Target string
}

func NewListConfig() *ListConfig {
	return &ListConfig{}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available catalog entries or installed skills",
	Long: `List the skills, agents, commands, hooks, and examples available in the
catalog. With --target, list the skills already installed in that project
instead.

Examples:
  skillsmith list
  skillsmith list --target ../my-service`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getListConfigFromFlags(cmd)
		if config.Target != "" {
			listInstalled(config.Target)
			return
		}
		listCatalog()
	},
}

func init() {
	defaults := NewListConfig()
	listCmd.Flags().StringP("target", "t", defaults.Target, "Project directory to inspect for installed skills")
	rootCmd.AddCommand(listCmd)
}

func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()
	if target, err := cmd.Flags().GetString("target"); err == nil {
		config.Target = target
	}
	return config
}

func listCatalog() {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tNAME\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t----\t-----------")

	for _, name := range catalog.SkillNames() {
		description := ""
		if skill, err := catalog.Skill(name); err == nil {
			description = truncate(skill.Description, 60)
		}
		fmt.Fprintf(tw, "skill\t%s\t%s\n", name, description)
	}
	for _, name := range catalog.AgentNames() {
		fmt.Fprintf(tw, "agent\t%s\t\n", name)
	}
	for _, name := range catalog.CommandNames() {
		fmt.Fprintf(tw, "command\t/%s\t\n", name)
	}
	for _, name := range catalog.HookNames() {
		fmt.Fprintf(tw, "hook\t%s\t\n", name)
	}
	for _, name := range catalog.ExampleNames() {
		fmt.Fprintf(tw, "example\t%s\t\n", name)
	}
	tw.Flush()
}

func listInstalled(target string) {
	installed, err := installer.InstalledSkills(target)
	if err != nil {
		presenter.Error(err, "Failed to discover installed skills")
		os.Exit(1)
	}

	if len(installed) == 0 {
		presenter.Info("No skills installed")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t---------\t-----------")
	for _, skill := range installed {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, skill.Directory, truncate(skill.Description, 60))
	}
	tw.Flush()
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}
