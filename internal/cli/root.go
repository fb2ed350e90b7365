package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/traineeline/internal/assessment"
	"github.com/julianstephens/traineeline/internal/calendar"
	"github.com/julianstephens/traineeline/internal/config"
	"github.com/julianstephens/traineeline/internal/logger"
	"github.com/julianstephens/traineeline/internal/scheduler"
	"github.com/julianstephens/traineeline/internal/storage"
	"github.com/julianstephens/traineeline/internal/validation"
)

type Context struct {
	Store      storage.Provider
	Scheduler  *scheduler.Scheduler
	Classifier *assessment.Classifier
	Validator  *validation.Validator
	Config     config.Config
	// Out receives command output; nil means stdout
	Out io.Writer
}

// NewContext wires the core components from cfg
func NewContext(store storage.Provider, cfg config.Config) *Context {
	validator := validation.New().
		WithMaxLeaveSkip(cfg.Scheduler.MaxLeaveSkip).
		WithMaxDurationDays(cfg.Scheduler.MaxDurationDays)

	return &Context{
		Store:      store,
		Scheduler:  scheduler.NewWithConfig(cfg.Scheduler),
		Classifier: assessment.New(),
		Validator:  validator,
		Config:     cfg,
	}
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Print writes its arguments to the command's writer
func (c *Context) Print(args ...any) {
	fmt.Fprint(c.Stdout(), args...)
}

// Printf writes formatted output to the command's writer
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

// Println writes a line to the command's writer
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Calendar loads the live holidays and builds a fresh calendar snapshot
func (c *Context) Calendar() (calendar.Calendar, error) {
	if c.Store == nil {
		return calendar.New(), nil
	}
	if err := c.Store.Load(); err != nil {
		return calendar.Calendar{}, err
	}

	holidays, err := c.Store.GetAllHolidays(false)
	if err != nil {
		return calendar.Calendar{}, fmt.Errorf("failed to load holidays: %w", err)
	}

	cal, err := calendar.FromHolidays(holidays)
	if err != nil {
		return calendar.Calendar{}, err
	}
	logger.Debug("Loaded calendar", "holidays", cal.Len())
	return cal, nil
}
