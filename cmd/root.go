package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dotcommander/agentfolio/internal/config"
	"github.com/dotcommander/agentfolio/internal/logging"
	"github.com/dotcommander/agentfolio/internal/output"
	"github.com/dotcommander/agentfolio/internal/outputters"
)

var (
	configFile   string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
)

// exitFunc is swapped out in tests
var exitFunc = os.Exit

var rootCmd = &cobra.Command{
	Use:   "agentfolio",
	Short: "Agentfolio - reputation scoring for AI agents",
	Long: `Agentfolio scores AI agents from the platform data collected in their profiles.

Each agent gets six category scores (code, content, identity, social, economic,
community), a weighted composite adjusted for inactivity and declared skills,
and a tier from Awakening to Pioneer.

Use 'score' for a single profile, 'batch' for a directory and the leaderboard,
'summary' for the tier distribution of stored scores, 'validate' for agent
cards and 'featured' for the agent-of-the-week rotation.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(os.Stderr, verbose)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default .agentfoliorc.json|yaml|yml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")

	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

// runCommand prints err the way every subcommand reports failure
func runCommand(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitFunc(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	return cfg, nil
}

func formatterFor(cfg *config.Config) (output.Formatter, error) {
	f, err := outputters.NewOutputter(cfg).Formatter(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("error creating formatter: %w", err)
	}
	return f, nil
}
