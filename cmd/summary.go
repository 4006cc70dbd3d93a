package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotcommander/agentfolio/internal/store"
)

var summaryTop int

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the tier distribution of stored scores",
	Long: `Summary aggregates every score saved in the scores directory and reports the
tier distribution, average category scores and the highest and lowest scoring agents.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runCommand(runSummary())
	},
}

func init() {
	summaryCmd.Flags().IntVarP(&summaryTop, "top", "n", 5, "Number of top and lowest agents to list")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	results, err := store.New(cfg.ScoresDir).LoadAll()
	if err != nil {
		return fmt.Errorf("error loading scores: %w", err)
	}

	formatter, err := formatterFor(cfg)
	if err != nil {
		return err
	}
	return formatter.FormatSummary(store.Summarize(results, summaryTop))
}
