package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/schooltech/scheduler-core/internal/cache"
	"github.com/schooltech/scheduler-core/internal/metrics"
	"github.com/schooltech/scheduler-core/internal/pipeline"
	"github.com/schooltech/scheduler-core/internal/reporter"
)

func newScheduleCmd() *cobra.Command {
	var (
		dataDir     string
		outputDir   string
		format      string
		quiet       bool
		monotonic   bool
		persist     bool
		useCache    bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate a schedule from input data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(dataDir, outputDir, format, quiet, monotonic, persist, useCache, metricsAddr)
		},
	}
	cmd.Flags().StringVarP(&dataDir, "data", "d", "", "directory containing input JSON files")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "./output", "output directory for schedule files")
	cmd.Flags().StringVarP(&format, "format", "f", "all", "output format(s): json, markdown, text, or all")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output, print JSON summary only")
	cmd.Flags().BoolVar(&monotonic, "monotonic", false, "only save if score improves or matches the previous run")
	cmd.Flags().BoolVar(&persist, "persist", false, "also store a versioned copy in the configured database")
	cmd.Flags().BoolVar(&useCache, "cache", false, "serve byte-identical input from the Redis result cache")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "bind the /metrics, /healthz, and /reports observability server to this address")
	cmd.MarkFlagRequired("data") //nolint:errcheck

	return cmd
}

func runSchedule(dataDir, outputDir, format string, quiet, monotonic, persist, useCache bool, metricsAddr string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.log.Sync() //nolint:errcheck

	var collector *metrics.Collector
	if metricsAddr != "" {
		var shutdown func(context.Context) error
		collector, shutdown, err = startMetricsServer(app, metricsAddr)
		if err != nil {
			return err
		}
		defer shutdown(context.Background()) //nolint:errcheck
	}
	var observer pipeline.PhaseObserver
	if collector != nil {
		observer = collector
	}

	input, warnings, err := loadInput(dataDir, app.cfg.Schedule)
	if err != nil {
		return err
	}

	var baseline float64
	var hasBaseline bool
	if monotonic {
		baseline, hasBaseline = loadBaselineScore(filepath.Join(outputDir, "schedule.json"))
	}

	if !quiet {
		for _, w := range warnings {
			fmt.Printf("Warning: %s\n", w)
		}
		if hasBaseline {
			fmt.Printf("Baseline score: %.1f/100\n", baseline)
		}
		fmt.Printf("Loaded %d students, %d teachers, %d courses, %d rooms\n",
			len(input.Students), len(input.Teachers), len(input.Courses), len(input.Rooms))
	}

	ctx := context.Background()
	var store *cache.Store
	if useCache {
		store, err = openScheduleCache(ctx, app)
		if err != nil {
			return err
		}
	}

	schedule, report, err := resolveSchedule(ctx, input, store, observer, collector)
	if err != nil {
		return err
	}
	collector.SetScheduleScore(report.TotalScore)

	shouldSave := true
	if monotonic && hasBaseline {
		if report.TotalScore < baseline {
			shouldSave = false
			if !quiet {
				fmt.Printf("Regression: %.1f -> %.1f (not saving)\n", baseline, report.TotalScore)
			}
		} else if !quiet {
			if report.TotalScore > baseline {
				fmt.Printf("Improved: %.1f -> %.1f\n", baseline, report.TotalScore)
			} else {
				fmt.Printf("Matched: %.1f\n", report.TotalScore)
			}
		}
	}

	if shouldSave {
		if err := writeReports(schedule, input, report, outputDir, parseFormats(format)); err != nil {
			return err
		}
		if persist {
			if err := persistSchedule(app, "default", schedule, report); err != nil {
				return err
			}
		}
	}

	if quiet {
		summary, err := reporter.JSON(schedule, report)
		if err != nil {
			return err
		}
		var compact interface{}
		if err := json.Unmarshal(summary, &compact); err == nil {
			if data, err := json.Marshal(compact); err == nil {
				fmt.Println(string(data))
			}
		}
	} else {
		printSummary(schedule, report)
		if shouldSave {
			fmt.Printf("Reports written to: %s\n", outputDir)
		}
	}

	return nil
}
