package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotcommander/agentfolio/internal/featured"
	"github.com/dotcommander/agentfolio/internal/output"
	"github.com/dotcommander/agentfolio/internal/store"
)

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "Manage the agent of the week",
	Long: `Featured rotates the agent of the week once the current week has ended.

The pick is a weighted draw over stored scores. Agents featured within the last
few weeks, non-autonomous agents and agents below the minimum score are skipped.`,
}

var featuredSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Pick a new agent of the week if the current week has ended",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runCommand(runFeatured(output.FeaturedSelect))
	},
}

var featuredCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current agent of the week",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runCommand(runFeatured(output.FeaturedCurrent))
	},
}

var featuredHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past agents of the week",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runCommand(runFeatured(output.FeaturedHistory))
	},
}

func init() {
	featuredCmd.AddCommand(featuredSelectCmd, featuredCurrentCmd, featuredHistoryCmd)
	rootCmd.AddCommand(featuredCmd)
}

func runFeatured(action string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	h, err := featured.LoadHistory(cfg.Featured.File)
	if err != nil {
		return err
	}
	report := output.FeaturedReport{Action: action, Current: h.Current}

	switch action {
	case output.FeaturedSelect:
		results, err := store.New(cfg.ScoresDir).LoadAll()
		if err != nil {
			return fmt.Errorf("error loading scores: %w", err)
		}
		selector := featured.NewSelector(
			featured.WithMinScore(cfg.Featured.MinScore),
			featured.WithExcludeRecentWeeks(cfg.Featured.ExcludeRecentWeeks),
		)
		changed, err := selector.Rotate(featured.CandidatesFromResults(results), h)
		if errors.Is(err, featured.ErrNoEligible) {
			return fmt.Errorf("%w (%d stored scores, min score %d)", err, len(results), cfg.Featured.MinScore)
		}
		if err != nil {
			return err
		}
		if changed {
			if err := featured.SaveHistory(cfg.Featured.File, h); err != nil {
				return err
			}
		}
		report.Changed = changed
		report.Current = h.Current

	case output.FeaturedHistory:
		report.History = append(report.History, h.History...)
		if h.Current != nil {
			report.History = append(report.History, *h.Current)
		}
	}

	formatter, err := formatterFor(cfg)
	if err != nil {
		return err
	}
	return formatter.FormatFeatured(report)
}
