package domain

// ScheduleConfig fixes the shape of the weekly grid the pipeline schedules
// against: DaysPerWeek days, PeriodsPerDay periods each.
type ScheduleConfig struct {
	PeriodsPerDay uint8   `toml:"periods_per_day"`
	DaysPerWeek   uint8   `toml:"days_per_week"`
	LunchPeriods  []uint8 `toml:"lunch_periods"`
}

// DefaultScheduleConfig returns the standard 8-period, 5-day week.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		PeriodsPerDay: 8,
		DaysPerWeek:   5,
		LunchPeriods:  []uint8{3, 4},
	}
}

// ScheduleInput bundles the four input populations the pipeline consumes.
type ScheduleInput struct {
	Students []Student
	Teachers []Teacher
	Courses  []Course
	Rooms    []Room
	Config   ScheduleConfig
}
