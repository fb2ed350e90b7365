package status

import (
	"errors"

	"github.com/julianstephens/traineeline/internal/assessment"
	"github.com/julianstephens/traineeline/internal/cli"
	"github.com/julianstephens/traineeline/internal/document"
	"github.com/julianstephens/traineeline/internal/logger"
)

// ErrUnresolved is returned when at least one history could not be classified
var ErrUnresolved = errors.New("some histories could not be classified")

type StatusCmd struct {
	File string `arg:"" help:"Attempt history file (.yaml, .yml or .json)." type:"existingfile"`
	JSON bool   `help:"Print as JSON." name:"json"`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	cases, err := document.LoadStatus(c.File, ctx.Config.Location())
	if err != nil {
		return err
	}

	results := Classify(ctx.Classifier, cases)

	if c.JSON {
		if err := cli.WriteJSON(ctx.Stdout(), results); err != nil {
			return err
		}
	} else {
		cli.RenderStatuses(ctx.Stdout(), results)
	}

	for _, r := range results {
		if r.Error != "" {
			return ErrUnresolved
		}
	}
	return nil
}

// Classify runs the classifier over every case, keeping failures as rows
func Classify(classifier *assessment.Classifier, cases []document.StatusCase) []cli.StatusResult {
	results := make([]cli.StatusResult, 0, len(cases))
	for _, sc := range cases {
		r := cli.StatusResult{Trainee: sc.Trainee, Task: sc.Task}
		code, err := classifier.Classify(sc.Window, sc.History)
		if err != nil {
			logger.Warn("Could not classify history", "trainee", sc.Trainee, "task", sc.Task, "error", err)
			r.Error = err.Error()
		} else {
			r.Status = code
			r.Affordance = code.Affordance()
		}
		results = append(results, r)
	}
	return results
}
