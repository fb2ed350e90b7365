package system

import (
	"errors"

	"github.com/julianstephens/traineeline/internal/cli"
	"github.com/julianstephens/traineeline/internal/document"
)

type ValidateCmd struct {
	File string `arg:"" help:"Timeline file (.yaml, .yml or .json)." type:"existingfile"`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	tl, err := document.LoadTimeline(c.File, ctx.Config.Location())
	if err != nil {
		return err
	}

	cal, err := ctx.Calendar()
	if err != nil {
		return err
	}

	result := ctx.Validator.ValidateTimeline(tl.Tasks, cal, tl.Start)
	if tl.Scheduled != nil {
		scheduleResult := ctx.Validator.ValidateSchedule(tl.Scheduled)
		result.Conflicts = append(result.Conflicts, scheduleResult.Conflicts...)
	}

	ctx.Print(result.FormatReport())
	if result.HasErrors() {
		return errors.New("validation failed")
	}
	return nil
}
