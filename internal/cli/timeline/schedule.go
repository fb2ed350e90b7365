package timeline

import (
	"fmt"
	"time"

	"github.com/julianstephens/traineeline/internal/calendar"
	"github.com/julianstephens/traineeline/internal/cli"
	"github.com/julianstephens/traineeline/internal/document"
	"github.com/julianstephens/traineeline/internal/logger"
	"github.com/julianstephens/traineeline/internal/models"
	"github.com/julianstephens/traineeline/internal/scheduler"
)

// Overrides are the flags shared by schedule and reschedule
type Overrides struct {
	Start   string `help:"Override the timeline start date (YYYY-MM-DD)."`
	HalfDay bool   `help:"Start the first task in the afternoon." name:"half-day" xor:"halfday"`
	FullDay bool   `help:"Start the first task in the morning." name:"full-day" xor:"halfday"`
	JSON    bool   `help:"Print the schedule as JSON." name:"json"`
	Out     string `help:"Write the scheduled timeline to this .yaml/.yml/.json file." type:"path"`
}

func (o Overrides) apply(tl *document.Timeline) error {
	if o.Start != "" {
		start, err := document.ParseInstant(o.Start, tl.Location)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		tl.Start = start
	}
	switch {
	case o.HalfDay:
		tl.HalfDay = true
	case o.FullDay:
		tl.HalfDay = false
	}
	return nil
}

func (o Overrides) emit(ctx *cli.Context, tl document.Timeline, cal calendar.Calendar, scheduled []models.ScheduledTask) error {
	completion, err := scheduler.LatestEndDate(scheduled)
	if err != nil {
		return err
	}

	doc := document.NewScheduledFile(tl, scheduled, completion)
	if o.Out != "" {
		if err := document.Save(o.Out, doc); err != nil {
			return err
		}
		logger.Info("Wrote scheduled timeline", "path", o.Out, "tasks", len(scheduled))
	}

	if o.JSON {
		return cli.WriteJSON(ctx.Stdout(), doc)
	}
	cli.RenderSchedule(ctx.Stdout(), scheduled, completion, cal)
	if o.Out != "" {
		ctx.Printf("Saved to %s\n", o.Out)
	}
	return nil
}

type ScheduleCmd struct {
	File string `arg:"" help:"Timeline file (.yaml, .yml or .json)." type:"existingfile"`
	Overrides
}

func (c *ScheduleCmd) Run(ctx *cli.Context) error {
	tl, err := document.LoadTimeline(c.File, ctx.Config.Location())
	if err != nil {
		return err
	}
	if err := c.apply(&tl); err != nil {
		return err
	}

	cal, err := ctx.Calendar()
	if err != nil {
		return err
	}

	result := ctx.Validator.ValidateTimeline(tl.Tasks, cal, tl.Start)
	if result.HasErrors() {
		return fmt.Errorf("timeline is invalid:\n%s", result.FormatReport())
	}
	for _, conflict := range result.Conflicts {
		logger.Warn("Timeline warning", "type", conflict.Type, "description", conflict.Description)
	}

	// Declared orders decide placement; tasks without one keep file order
	tasks := scheduler.Renumber(tl.Tasks)

	started := time.Now()
	scheduled, err := ctx.Scheduler.Schedule(tasks, cal, tl.Start, tl.HalfDay)
	if err != nil {
		return err
	}
	logger.Debug("Scheduled timeline", "tasks", len(scheduled), "elapsed", time.Since(started))

	return c.emit(ctx, tl, cal, scheduled)
}
