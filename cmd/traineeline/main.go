package main

import (
	"strings"
	_ "time/tzdata"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/traineeline/internal/cli"
	"github.com/julianstephens/traineeline/internal/cli/backups"
	"github.com/julianstephens/traineeline/internal/cli/holidays"
	"github.com/julianstephens/traineeline/internal/cli/status"
	"github.com/julianstephens/traineeline/internal/cli/system"
	"github.com/julianstephens/traineeline/internal/cli/timeline"
	"github.com/julianstephens/traineeline/internal/config"
	"github.com/julianstephens/traineeline/internal/constants"
	"github.com/julianstephens/traineeline/internal/errors"
	"github.com/julianstephens/traineeline/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	DB       string `help:"SQLite path, PostgreSQL connection string, 'keyring[:profile]' or 'env' (overrides ${env_db}). PostgreSQL credentials must NOT be embedded; use the keyring, ${env_db_connection} or .pgpass instead." name:"db"`
	EnvFile  string `help:"Optional .env file to load before reading the environment." name:"env-file" default:"${env_file}" type:"path"`
	Timezone string `help:"IANA timezone for dates without an explicit zone (overrides ${env_timezone})."`
	Debug    bool   `help:"Log debug output to stderr."`

	Init       system.InitCmd         `cmd:"" help:"Initialize the holiday store."`
	Migrate    system.MigrateCmd      `cmd:"" help:"Run database migrations."`
	Doctor     system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Validate   system.ValidateCmd     `cmd:"" help:"Validate a timeline file without scheduling it."`
	Schedule   timeline.ScheduleCmd   `cmd:"" help:"Compute start and end dates for every task of a timeline."`
	Reschedule timeline.RescheduleCmd `cmd:"" help:"Edit a scheduled timeline and recompute its dates."`
	Status     status.StatusCmd       `cmd:"" help:"Classify assessment attempt histories."`
	Holiday    struct {
		Add     holidays.HolidayAddCmd     `cmd:"" help:"Add a holiday."`
		List    holidays.HolidayListCmd    `cmd:"" help:"List holidays." default:"1"`
		Delete  holidays.HolidayDeleteCmd  `cmd:"" help:"Delete a holiday."`
		Restore holidays.HolidayRestoreCmd `cmd:"" help:"Restore a deleted holiday."`
		Import  holidays.HolidayImportCmd  `cmd:"" help:"Import holidays from a file."`
	} `cmd:"" help:"Manage the holiday calendar."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a backup of the SQLite holiday database."`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups." default:"1"`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore the holiday database from a backup."`
	} `cmd:"" help:"Manage SQLite holiday database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Training timeline scheduler and assessment status classifier"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":           constants.Version,
			"env_db":            constants.EnvDB,
			"env_db_connection": constants.EnvDBConnection,
			"env_timezone":      constants.EnvTimezone,
			"env_file":          constants.DefaultEnvFile,
		},
	)

	cfg, err := config.Load(CLI.EnvFile)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.DB != "" {
		cfg.DB = CLI.DB
	}
	if CLI.Timezone != "" {
		if _, err := config.LoadLocation(CLI.Timezone); err != nil {
			errors.Fatalf("invalid timezone %q: %v", CLI.Timezone, err)
		}
		cfg.Timezone = CLI.Timezone
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: cfg.ConfigDir,
		EnvFile:   CLI.EnvFile,
		Timezone:  cfg.Timezone,
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	appCtx := cli.NewContext(nil, cfg)

	// Keyring commands and classification never touch the store
	if !strings.HasPrefix(ctx.Command(), "keyring") && !strings.HasPrefix(ctx.Command(), "status") {
		store, err := cli.OpenStore(cfg.DB)
		if err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
		appCtx.Store = store
	}

	logger.Debug("Running command", "command", ctx.Command(), "store", storePath(appCtx))
	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

func storePath(ctx *cli.Context) string {
	if ctx.Store == nil {
		return ""
	}
	return ctx.Store.GetConfigPath()
}
