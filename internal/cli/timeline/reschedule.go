package timeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/traineeline/internal/cli"
	"github.com/julianstephens/traineeline/internal/document"
	"github.com/julianstephens/traineeline/internal/models"
	"github.com/julianstephens/traineeline/internal/scheduler"
)

// RescheduleCmd applies one edit to a previously scheduled timeline and
// recomputes every date from the timeline start.
type RescheduleCmd struct {
	File string `arg:"" help:"Scheduled timeline file (output of 'schedule --out')." type:"existingfile"`

	Move        string  `help:"Move a task: FROM:TO (orders)." placeholder:"FROM:TO"`
	Remove      int     `help:"Remove the task at this order."`
	InsertAt    int     `help:"Insert a new task at this order." name:"insert-at"`
	Name        string  `help:"Name of the inserted task."`
	Days        float64 `help:"Duration of the inserted task in days."`
	SetDuration string  `help:"Change a task's duration: ORDER=DAYS." name:"set-duration" placeholder:"ORDER=DAYS"`

	Overrides
}

func (c *RescheduleCmd) edits() int {
	n := 0
	for _, set := range []bool{c.Move != "", c.Remove != 0, c.InsertAt != 0, c.SetDuration != ""} {
		if set {
			n++
		}
	}
	return n
}

func (c *RescheduleCmd) edit(tasks []models.Task) ([]models.Task, error) {
	switch {
	case c.Move != "":
		left, right, err := splitPair(c.Move, ":")
		if err != nil {
			return nil, fmt.Errorf("--move: %w", err)
		}
		from, err := parseOrder(left)
		if err != nil {
			return nil, fmt.Errorf("--move: %w", err)
		}
		to, err := parseOrder(right)
		if err != nil {
			return nil, fmt.Errorf("--move: %w", err)
		}
		return scheduler.Move(tasks, from, to)

	case c.Remove != 0:
		return scheduler.RemoveAt(tasks, c.Remove)

	case c.InsertAt != 0:
		task := models.Task{Name: c.Name, DurationDays: c.Days}
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("inserted task: %w", err)
		}
		return scheduler.InsertAt(tasks, c.InsertAt, task)

	case c.SetDuration != "":
		left, right, err := splitPair(c.SetDuration, "=")
		if err != nil {
			return nil, fmt.Errorf("--set-duration: %w", err)
		}
		order, err := parseOrder(left)
		if err != nil {
			return nil, fmt.Errorf("--set-duration: %w", err)
		}
		days, err := strconv.ParseFloat(right, 64)
		if err != nil {
			return nil, fmt.Errorf("--set-duration: invalid duration %q", right)
		}
		return scheduler.SetDuration(tasks, order, days)
	}
	return scheduler.Renumber(tasks), nil
}

func (c *RescheduleCmd) Run(ctx *cli.Context) error {
	if c.edits() > 1 {
		return fmt.Errorf("only one of --move, --remove, --insert-at, --set-duration may be given")
	}

	tl, err := document.LoadTimeline(c.File, ctx.Config.Location())
	if err != nil {
		return err
	}
	if err := c.apply(&tl); err != nil {
		return err
	}

	existing := tl.Scheduled
	if existing == nil {
		// Not scheduled yet; treat the listed tasks as the current timeline
		for _, task := range tl.Tasks {
			existing = append(existing, models.ScheduledTask{Task: task})
		}
	}

	if result := ctx.Validator.ValidateSchedule(tl.Scheduled); result.HasConflicts() {
		ctx.Printf("Previous schedule had problems:\n%s\n", result.FormatReport())
	}

	tasks, err := c.edit(scheduler.Renumber(scheduler.TasksOf(existing)))
	if err != nil {
		return err
	}

	if result := ctx.Validator.ValidateTasks(tasks); result.HasErrors() {
		return fmt.Errorf("timeline is invalid:\n%s", result.FormatReport())
	}

	cal, err := ctx.Calendar()
	if err != nil {
		return err
	}

	edited := make([]models.ScheduledTask, len(tasks))
	for i, task := range tasks {
		edited[i] = models.ScheduledTask{Task: task}
	}

	scheduled, err := ctx.Scheduler.Reschedule(edited, cal, tl.Start, tl.HalfDay)
	if err != nil {
		return err
	}

	return c.emit(ctx, tl, cal, scheduled)
}

func splitPair(s, sep string) (string, string, error) {
	left, right, ok := strings.Cut(s, sep)
	if !ok {
		return "", "", fmt.Errorf("expected two values separated by %q, got %q", sep, s)
	}
	return strings.TrimSpace(left), strings.TrimSpace(right), nil
}

func parseOrder(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("order must be an integer, got %q", s)
	}
	return n, nil
}
