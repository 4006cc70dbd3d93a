package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotcommander/agentfolio/internal/config"
	"github.com/dotcommander/agentfolio/internal/logging"
	"github.com/dotcommander/agentfolio/internal/profile"
	"github.com/dotcommander/agentfolio/internal/scoring"
	"github.com/dotcommander/agentfolio/internal/store"
)

var (
	scoreSave    bool
	scoreNoDecay bool
	scoreNoBoost bool
)

var scoreCmd = &cobra.Command{
	Use:   "score <profile>",
	Short: "Score one agent profile",
	Long: `Score reads a JSON or YAML agent profile and prints its category scores,
composite score and tier.

With --save the result is written to the scores directory as <handle>.json.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCommand(runScore(args[0]))
	},
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreSave, "save", false, "Save the result to the scores directory")
	scoreCmd.Flags().BoolVar(&scoreNoDecay, "no-decay", false, "Disable time decay")
	scoreCmd.Flags().BoolVar(&scoreNoBoost, "no-boost", false, "Disable the skills boost")
	rootCmd.AddCommand(scoreCmd)
}

// newCalculator builds a calculator honoring the config toggles and command flags
func newCalculator(cfg *config.Config, noDecay, noBoost bool) *scoring.Calculator {
	var opts []scoring.Option
	if noDecay || !cfg.Decay.Enabled {
		opts = append(opts, scoring.WithoutDecay())
	}
	if noBoost || !cfg.Boost.Enabled {
		opts = append(opts, scoring.WithoutSkillsBoost())
	}
	return scoring.NewCalculator(opts...)
}

func runScore(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.Named("score")

	p, err := profile.Load(path)
	if err != nil {
		return err
	}

	calc := newCalculator(cfg, scoreNoDecay, scoreNoBoost)
	result := calc.CalculateProfile(p)

	if summary, ok := calc.DecaySummary(p); ok {
		log.Debug("decay summary",
			logging.String("handle", result.Handle),
			logging.Int("raw", summary.TotalRawScore),
			logging.Int("adjusted", summary.TotalAdjustedScore),
			logging.Float64("percent", summary.OverallDecayPercent))
	}

	if scoreSave {
		saved, err := store.New(cfg.ScoresDir).Save(result)
		if err != nil {
			return fmt.Errorf("error saving score: %w", err)
		}
		log.Info("saved score", logging.String("path", saved))
	}

	formatter, err := formatterFor(cfg)
	if err != nil {
		return err
	}
	return formatter.FormatResult(result)
}
