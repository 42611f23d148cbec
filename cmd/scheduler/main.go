// Command scheduler is the constraint-based school schedule generator:
// it loads student/teacher/course/room data, runs the five-phase
// pipeline, validates the result, and writes or prints reports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/schooltech/scheduler-core/pkg/config"
	"github.com/schooltech/scheduler-core/pkg/errors"
	"github.com/schooltech/scheduler-core/pkg/logger"
)

var configDir string

func main() {
	root := &cobra.Command{
		Use:     "scheduler",
		Short:   "Constraint-based school schedule generator",
		Version: "0.1.0",
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing config.toml")

	root.AddCommand(newDemoCmd())
	root.AddCommand(newScheduleCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newReportCmd())

	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// appContext is the set of collaborators every subcommand needs, built
// once from config.Load and shared across a single invocation.
type appContext struct {
	cfg *config.Config
	log *zap.Logger
}

func newAppContext() (*appContext, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, errors.InputError("load configuration", err)
	}
	log, err := logger.New(cfg)
	if err != nil {
		return nil, errors.InputError("initialize logger", err)
	}
	return &appContext{cfg: cfg, log: log}, nil
}

// exitCode maps a returned error onto a process exit status: a
// pkg/errors.Error carries its own status, anything else is a generic
// failure.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if e := errors.FromError(err); e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		if e.Status > 0 && e.Status < 125 {
			return e.Status
		}
	}
	return 1
}
