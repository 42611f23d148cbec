package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schooltech/scheduler-core/internal/validator"
)

func newValidateCmd() *cobra.Command {
	var (
		schedulePath string
		dataDir      string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an existing schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(schedulePath, dataDir, verbose)
		},
	}
	cmd.Flags().StringVarP(&schedulePath, "schedule", "s", "", "path to schedule.json file")
	cmd.Flags().StringVarP(&dataDir, "data", "d", "", "directory containing input data for validation")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation results")
	cmd.MarkFlagRequired("schedule") //nolint:errcheck
	cmd.MarkFlagRequired("data")     //nolint:errcheck

	return cmd
}

func runValidate(schedulePath, dataDir string, verbose bool) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.log.Sync() //nolint:errcheck

	input, _, err := loadInput(dataDir, app.cfg.Schedule)
	if err != nil {
		return err
	}
	schedule, err := loadSchedule(schedulePath)
	if err != nil {
		return err
	}

	report := validator.Validate(schedule, input)

	if report.IsValid {
		fmt.Println("Schedule is valid")
	} else {
		fmt.Println("Schedule has violations")
		for _, v := range report.HardViolations {
			fmt.Printf("  - %s: %s\n", v.Constraint, v.Message)
		}
	}

	if verbose {
		fmt.Println("\nSoft Constraint Scores:")
		for _, s := range report.SoftScores {
			pct := 100.0
			if s.MaxScore > 0 {
				pct = (s.Score / s.MaxScore) * 100.0
			}
			fmt.Printf("  %s: %.1f%%\n", s.Constraint, pct)
		}

		fmt.Println("\nStatistics:")
		fmt.Printf("  Sections: %d\n", report.Statistics.TotalSections)
		fmt.Printf("  Assignments: %d\n", report.Statistics.TotalAssignments)
		fmt.Printf("  Unassigned: %d required, %d electives\n",
			report.Statistics.UnassignedRequired, report.Statistics.UnassignedElectives)
	}

	fmt.Printf("\nOverall Score: %.1f/100\n", report.TotalScore)
	return nil
}
