package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"skillsmith/pkg/logger"
	"skillsmith/pkg/presenter"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("SKILLSMITH")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillsmith")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "skillsmith",
	Short: "Scaffold agent skills, hooks, and commands into a project",
	Long: `Skillsmith installs agent infrastructure into a project's .claude directory:
skills with activation rules, subagent definitions, slash commands, hooks, and
reference examples. It also serves as the hook backend that matches prompts
against the installed activation rules.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if level := viper.GetString("log_level"); level != "" {
			if err := logger.SetLogLevel(level); err != nil {
				presenter.Warning(fmt.Sprintf("Invalid log level %q, keeping default", level))
			}
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		if viper.GetBool("quiet") {
			presenter.SetQuiet(true)
		}
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

func main() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt or json)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress informational output")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
