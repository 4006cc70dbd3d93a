package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dotcommander/agentfolio/internal/config"
	"github.com/dotcommander/agentfolio/internal/cue"
	"github.com/dotcommander/agentfolio/internal/discovery"
	"github.com/dotcommander/agentfolio/internal/git"
	"github.com/dotcommander/agentfolio/internal/logging"
	"github.com/dotcommander/agentfolio/internal/output"
	"github.com/dotcommander/agentfolio/internal/profile"
	"github.com/dotcommander/agentfolio/internal/scoring"
	"github.com/dotcommander/agentfolio/internal/store"
)

var (
	batchNoSave  bool
	batchNoDecay bool
	batchNoBoost bool
	batchPattern string
	batchChanged bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Score every profile in a directory and rebuild the leaderboard",
	Long: `Batch discovers profile documents under dir (default: profilesDir from the
config), scores them concurrently, saves one score file per agent and writes
the ranked leaderboard to index.json in the scores directory.

Agent cards embedded in profiles are checked against the card schema and
problems are logged as warnings. A profile that fails to load is reported and
makes the command exit 1 once the rest have been scored.

With --changed only profiles that differ from git HEAD (or are untracked) are
rescored; the leaderboard is then rebuilt from every stored score.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCommand(runBatch(args))
	},
}

func init() {
	batchCmd.Flags().BoolVar(&batchNoSave, "no-save", false, "Print the leaderboard without writing score files")
	batchCmd.Flags().BoolVar(&batchNoDecay, "no-decay", false, "Disable time decay")
	batchCmd.Flags().BoolVar(&batchNoBoost, "no-boost", false, "Disable the skills boost")
	batchCmd.Flags().StringVar(&batchPattern, "pattern", "", "Glob pattern for profile files (default from config)")
	batchCmd.Flags().BoolVar(&batchChanged, "changed", false, "Only score profiles changed since the last git commit")
	rootCmd.AddCommand(batchCmd)
}

type batchItem struct {
	file    discovery.File
	profile scoring.Profile
	result  scoring.ScoreResult
	err     error
}

func runBatch(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.Named("batch")

	dir := cfg.ProfilesDir
	if len(args) > 0 {
		dir = args[0]
	}
	pattern := cfg.ProfilePattern
	if batchPattern != "" {
		pattern = batchPattern
	}

	files, err := discovery.NewFileDiscovery(dir, pattern, false).DiscoverProfiles()
	if err != nil {
		return fmt.Errorf("error discovering profiles: %w", err)
	}
	log.Debug("discovered profiles", logging.String("dir", dir), logging.Int("count", len(files)))

	if batchChanged {
		if files, err = onlyChanged(dir, files); err != nil {
			return err
		}
		log.Debug("changed profiles", logging.Int("count", len(files)))
	}

	start := time.Now()
	items := scoreAll(cfg, files)

	var (
		scored   []scoring.ScoreResult
		failures []output.BatchFailure
	)
	for _, item := range items {
		if item.err != nil {
			log.Warn("profile failed", logging.String("file", item.file.RelPath), logging.Err(item.err))
			failures = append(failures, output.BatchFailure{File: item.file.RelPath, Error: item.err.Error()})
			continue
		}
		scored = append(scored, item.result)
	}

	checkCards(items, log)

	report := output.BatchReport{Scored: len(scored), Failures: failures}
	if batchNoSave {
		report.Index = store.BuildIndex(scored, time.Now())
	} else {
		st := store.New(cfg.ScoresDir)
		for _, result := range scored {
			if _, err := st.Save(result); err != nil {
				return fmt.Errorf("error saving score: %w", err)
			}
		}
		ranked := scored
		if batchChanged {
			if ranked, err = st.LoadAll(); err != nil {
				return fmt.Errorf("error loading scores: %w", err)
			}
		}
		index, err := st.WriteIndex(ranked, time.Now())
		if err != nil {
			return fmt.Errorf("error writing leaderboard: %w", err)
		}
		report.Index = index
		report.Saved = true
	}
	report.Duration = time.Since(start)

	log.Info("batch complete",
		logging.Int("scored", len(scored)),
		logging.Int("failed", len(failures)),
		logging.String("run_id", report.Index.RunID))

	formatter, err := formatterFor(cfg)
	if err != nil {
		return err
	}
	if err := formatter.FormatBatch(report); err != nil {
		return err
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d profile(s) could not be scored", len(failures))
	}
	return nil
}

// onlyChanged keeps the files git reports as changed under dir
func onlyChanged(dir string, files []discovery.File) ([]discovery.File, error) {
	if !git.IsGitRepo(dir) {
		return nil, fmt.Errorf("--changed needs a git repository: %s", dir)
	}
	changed, err := git.ChangedProfiles(dir)
	if err != nil {
		return nil, fmt.Errorf("error listing changed profiles: %w", err)
	}
	set := make(map[string]bool, len(changed))
	for _, rel := range changed {
		set[rel] = true
	}
	var kept []discovery.File
	for _, f := range files {
		if set[f.RelPath] {
			kept = append(kept, f)
		}
	}
	return kept, nil
}

// scoreAll loads and scores files with at most cfg.Concurrency in flight.
// Results keep the order of files.
func scoreAll(cfg *config.Config, files []discovery.File) []batchItem {
	calc := newCalculator(cfg, batchNoDecay, batchNoBoost)
	items := make([]batchItem, len(files))

	var g errgroup.Group
	g.SetLimit(cfg.Concurrency)
	for i, f := range files {
		g.Go(func() error {
			items[i].file = f
			p, err := profile.Load(f.Path)
			if err != nil {
				items[i].err = err
				return nil
			}
			items[i].profile = p
			items[i].result = calc.CalculateProfile(p)
			return nil
		})
	}
	_ = g.Wait()
	return items
}

// checkCards validates embedded agent cards and logs what the schema flags.
// CUE values are not safe for concurrent use, so this runs after scoring.
func checkCards(items []batchItem, log logging.Logger) {
	var validator *cue.Validator
	for _, item := range items {
		if item.err != nil {
			continue
		}
		a2a, ok := item.profile.Platforms["a2a"]
		if !ok || !a2a.IsAvailable() {
			continue
		}
		card, ok := a2a.Data["card"].(map[string]any)
		if !ok {
			continue
		}
		if validator == nil {
			validator = cue.NewValidator()
			if err := validator.LoadSchemas(); err != nil {
				log.Warn("agent card schema unavailable", logging.Err(err))
				return
			}
		}
		issues, err := validator.ValidateCard(card)
		if err != nil {
			log.Warn("agent card check failed", logging.String("handle", item.result.Handle), logging.Err(err))
			continue
		}
		for _, issue := range issues {
			log.Warn("agent card issue",
				logging.String("handle", item.result.Handle),
				logging.String("severity", issue.Severity),
				logging.String("path", issue.Path),
				logging.String("message", issue.Message))
		}
	}
}
