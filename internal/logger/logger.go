// Package logger writes traineeline's diagnostic log: a rotated file under
// the config directory, mirrored to stderr with --debug.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/traineeline/internal/constants"
)

// Logger is nil until Init; the package helpers are no-ops before then.
var Logger *log.Logger

// Config describes one CLI invocation. EnvFile and Timezone are attached to
// every record so a log line can be tied back to the settings that produced
// its schedule.
type Config struct {
	Debug     bool
	ConfigDir string
	EnvFile   string
	Timezone  string
}

// Path is the log file for a config directory.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.DefaultLogSubdir, constants.DefaultLogFile)
}

func Init(cfg Config) error {
	path := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
		out = io.MultiWriter(os.Stderr, out)
	}

	Logger = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	}).With(sessionFields(cfg)...)

	Logger.Debug("Logger initialized", "path", path)
	return nil
}

func sessionFields(cfg Config) []interface{} {
	tz := cfg.Timezone
	if tz == "" {
		tz = constants.DefaultTimezone
	}
	fields := []interface{}{"tz", tz}
	if cfg.EnvFile != "" {
		fields = append(fields, "env", cfg.EnvFile)
	}
	return fields
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
