package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/repository"
	"github.com/schooltech/scheduler-core/internal/validator"
	"github.com/schooltech/scheduler-core/pkg/database"
	"github.com/schooltech/scheduler-core/pkg/errors"
)

// persistSchedule stores a versioned copy of schedule under term in the
// configured database, used by `schedule --persist`.
func persistSchedule(app *appContext, term string, schedule *domain.Schedule, report validator.Report) error {
	ctx := context.Background()
	db, err := database.NewPostgres(ctx, app.cfg.Database)
	if err != nil {
		return errors.InputError("connect to database", err)
	}
	defer db.Close() //nolint:errcheck

	record, err := repository.NewScheduleRecord(term, schedule, report)
	if err != nil {
		return errors.InputError("encode schedule record", err)
	}

	repo := repository.NewScheduleRepository(db)
	if err := repo.CreateVersioned(ctx, nil, record); err != nil {
		return errors.InputError("persist schedule", err)
	}

	app.log.Info("persisted schedule run", zap.String("term", term), zap.Int("version", record.Version))
	return nil
}
