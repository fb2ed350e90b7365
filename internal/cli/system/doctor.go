package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/traineeline/internal/calendar"
	"github.com/julianstephens/traineeline/internal/cli"
	"github.com/julianstephens/traineeline/internal/constants"
	"github.com/julianstephens/traineeline/internal/keyring"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(ctx *cli.Context) error
	opensDB  bool
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Configuration", run: checkConfig},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Keyring", run: checkKeyring, warnOnly: true},
	{name: "Database reachable", run: checkDBReachable, opensDB: true},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Holiday table", run: checkHolidays, needsDB: true},
	{name: "Working days ahead", run: checkWorkingDaysAhead, needsDB: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
			if c.opensDB {
				dbReachable = true
			}
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		return errors.New("diagnostics found problems")
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkConfig(ctx *cli.Context) error {
	cfg := ctx.Scheduler.Config()
	if err := cfg.Hours.Validate(); err != nil {
		return err
	}
	if cfg.MaxLeaveSkip < 1 {
		return fmt.Errorf("max leave skip must be at least 1, got %d", cfg.MaxLeaveSkip)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Config.Timezone != "" {
		if _, err := time.LoadLocation(ctx.Config.Timezone); err != nil {
			return fmt.Errorf("timezone %q cannot be loaded: %w", ctx.Config.Timezone, err)
		}
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return errors.New("OS keyring is not available; use TRAINEELINE_DB_CONNECTION or .pgpass for PostgreSQL credentials")
	}
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if ctx.Store == nil {
		return errors.New("no storage configured")
	}
	return ctx.Store.Load()
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema version %d is behind %d; run '%s migrate'", current, latest, constants.AppName)
	}
	if current > latest {
		return fmt.Errorf("schema version %d is newer than supported version %d", current, latest)
	}
	return nil
}

func checkHolidays(ctx *cli.Context) error {
	holidays, err := ctx.Store.GetAllHolidays(false)
	if err != nil {
		return err
	}
	var invalid []string
	for _, h := range holidays {
		if err := h.Validate(); err != nil {
			invalid = append(invalid, h.Date)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("%d holiday(s) with invalid dates: %v", len(invalid), invalid)
	}
	return nil
}

// checkWorkingDaysAhead makes sure scheduling from today cannot hit the
// leave-skip limit.
func checkWorkingDaysAhead(ctx *cli.Context) error {
	cal, err := ctx.Calendar()
	if err != nil {
		return err
	}
	today := calendar.DateOf(time.Now().In(ctx.Config.Location()))
	if _, err := cal.NextWorkingDay(today, ctx.Scheduler.Config().MaxLeaveSkip); err != nil {
		return err
	}
	return nil
}
