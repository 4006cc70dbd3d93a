package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dotcommander/agentfolio/internal/baseline"
	"github.com/dotcommander/agentfolio/internal/cue"
	"github.com/dotcommander/agentfolio/internal/discovery"
	"github.com/dotcommander/agentfolio/internal/logging"
	"github.com/dotcommander/agentfolio/internal/output"
)

var validateCmd = &cobra.Command{
	Use:   "validate <card>...",
	Short: "Validate A2A agent cards",
	Long: `Validate checks JSON or YAML agent cards against the card schema.

Missing required fields and malformed values are errors. Fields the identity
score rewards but the card lacks are reported as warnings. The command exits 1
when any card has errors.

--create-baseline records every current issue in the baseline file; later runs
with --baseline only report issues that are not in it.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCommand(runValidate(args))
	},
}

var (
	validateBaseline       string
	validateCreateBaseline bool
)

func init() {
	validateCmd.Flags().StringVar(&validateBaseline, "baseline", "", "Baseline file of accepted issues (default "+baseline.DefaultFile+")")
	validateCmd.Flags().BoolVar(&validateCreateBaseline, "create-baseline", false, "Write all current issues to the baseline file and exit 0")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(paths []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	validator := cue.NewValidator()
	if err := validator.LoadSchemas(); err != nil {
		return fmt.Errorf("error loading card schema: %w", err)
	}

	var accepted *baseline.Baseline
	switch {
	case validateCreateBaseline:
	case validateBaseline != "":
		accepted, err = baseline.LoadBaseline(validateBaseline)
	default:
		accepted, err = baseline.LoadOptional(baseline.DefaultFile)
	}
	if err != nil {
		return err
	}

	formatter, err := formatterFor(cfg)
	if err != nil {
		return err
	}

	invalid := 0
	var all []cue.ValidationError
	for _, path := range paths {
		absPath, err := discovery.ValidateFilePath(path)
		if err != nil {
			return err
		}
		issues, err := validator.ValidateCardFile(absPath)
		if err != nil {
			return err
		}
		for i := range issues {
			issues[i].File = path
		}
		all = append(all, issues...)

		report := output.ValidationReport{File: path}
		report.Issues, report.Suppressed = accepted.Filter(issues)
		if !report.Valid() {
			invalid++
		}
		if err := formatter.FormatValidation(report); err != nil {
			return err
		}
	}

	if validateCreateBaseline {
		path := validateBaseline
		if path == "" {
			path = baseline.DefaultFile
		}
		if err := baseline.CreateBaseline(all, time.Now()).SaveBaseline(path); err != nil {
			return err
		}
		logging.Named("validate").Info("baseline written", logging.String("path", path), logging.Int("issues", len(all)))
		return nil
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d agent card(s) failed validation", invalid, len(paths))
	}
	return nil
}
