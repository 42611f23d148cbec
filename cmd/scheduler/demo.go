package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newDemoCmd() *cobra.Command {
	var monotonic bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the scheduler against bundled sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(monotonic)
		},
	}
	cmd.Flags().BoolVar(&monotonic, "monotonic", false, "only save if score improves or matches the previous run")
	return cmd
}

func runDemo(monotonic bool) error {
	fmt.Println("School Scheduler Demo")

	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.log.Sync() //nolint:errcheck

	demoDir := filepath.Join("data", "demo")
	outputDir := "output"

	if _, err := os.Stat(filepath.Join(demoDir, "students.json")); os.IsNotExist(err) {
		fmt.Println("Demo data not found. Creating sample data...")
		if err := createDemoData(demoDir); err != nil {
			return err
		}
	}

	var baseline float64
	var hasBaseline bool
	if monotonic {
		baseline, hasBaseline = loadBaselineScore(filepath.Join(outputDir, "schedule.json"))
		if hasBaseline {
			fmt.Printf("Baseline score: %.1f/100\n", baseline)
		}
	}

	fmt.Printf("Loading demo data from: %s\n", demoDir)
	input, warnings, err := loadInput(demoDir, app.cfg.Schedule)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Printf("Warning: %s\n", w)
	}
	fmt.Printf("Loaded %d students, %d teachers, %d courses, %d rooms\n",
		len(input.Students), len(input.Teachers), len(input.Courses), len(input.Rooms))

	fmt.Println("\nGenerating schedule...")
	schedule, report, err := runPipeline(context.Background(), input, nil)
	if err != nil {
		return err
	}

	shouldSave := true
	if monotonic && hasBaseline {
		switch {
		case report.TotalScore > baseline:
			fmt.Printf("Improved: %.1f -> %.1f\n", baseline, report.TotalScore)
		case report.TotalScore == baseline:
			fmt.Printf("Matched: %.1f\n", report.TotalScore)
		default:
			fmt.Printf("Regression: %.1f -> %.1f (not saving)\n", baseline, report.TotalScore)
			shouldSave = false
		}
	}

	printSummary(schedule, report)

	if shouldSave {
		if err := writeReports(schedule, input, report, outputDir, []string{"json", "markdown", "text"}); err != nil {
			return err
		}
		fmt.Printf("Reports written to: %s\n", outputDir)
	}

	return nil
}
