package holidays

import (
	"fmt"
	"time"

	"github.com/julianstephens/traineeline/internal/cli"
	"github.com/julianstephens/traineeline/internal/constants"
	"github.com/julianstephens/traineeline/internal/document"
	"github.com/julianstephens/traineeline/internal/logger"
	"github.com/julianstephens/traineeline/internal/models"
)

type HolidayAddCmd struct {
	Date string `arg:"" help:"Holiday date (YYYY-MM-DD)."`
	Name string `arg:"" optional:"" help:"Holiday name."`
}

func (c *HolidayAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	h := models.Holiday{Date: c.Date, Name: c.Name}
	if err := h.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddHoliday(h); err != nil {
		return fmt.Errorf("failed to add holiday: %w", err)
	}

	logger.Info("Added holiday", "date", h.Date, "name", h.Name)
	ctx.Printf("Added holiday %s %s\n", h.Date, h.Name)
	return nil
}

type HolidayListCmd struct {
	From    string `help:"First date to include (YYYY-MM-DD)."`
	To      string `help:"Last date to include (YYYY-MM-DD)."`
	Deleted bool   `help:"Include soft-deleted holidays."`
	JSON    bool   `help:"Print as JSON." name:"json"`
}

func (c *HolidayListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var holidays []models.Holiday
	var err error
	if c.From != "" || c.To != "" {
		if c.Deleted {
			return fmt.Errorf("--deleted cannot be combined with --from/--to")
		}
		from, to, rangeErr := c.dateRange()
		if rangeErr != nil {
			return rangeErr
		}
		holidays, err = ctx.Store.GetHolidays(from, to)
	} else {
		holidays, err = ctx.Store.GetAllHolidays(c.Deleted)
	}
	if err != nil {
		return fmt.Errorf("failed to get holidays: %w", err)
	}

	if c.JSON {
		if holidays == nil {
			holidays = []models.Holiday{}
		}
		return cli.WriteJSON(ctx.Stdout(), holidays)
	}
	cli.RenderHolidays(ctx.Stdout(), holidays)
	return nil
}

func (c *HolidayListCmd) dateRange() (string, string, error) {
	from, to := c.From, c.To
	if from == "" {
		from = "0001-01-01"
	}
	if to == "" {
		to = "9999-12-31"
	}
	for _, d := range []string{from, to} {
		if _, err := time.Parse(constants.DateFormat, d); err != nil {
			return "", "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", d)
		}
	}
	if to < from {
		return "", "", fmt.Errorf("--to (%s) is before --from (%s)", to, from)
	}
	return from, to, nil
}

type HolidayDeleteCmd struct {
	Date string `arg:"" help:"Date of the holiday to delete (YYYY-MM-DD)."`
}

func (c *HolidayDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.DeleteHoliday(c.Date); err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	ctx.Printf("Deleted holiday %s (restore with 'holiday restore %s')\n", c.Date, c.Date)
	return nil
}

type HolidayRestoreCmd struct {
	Date string `arg:"" help:"Date of the holiday to restore (YYYY-MM-DD)."`
}

func (c *HolidayRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.RestoreHoliday(c.Date); err != nil {
		return fmt.Errorf("failed to restore holiday: %w", err)
	}
	ctx.Printf("Restored holiday %s\n", c.Date)
	return nil
}

type HolidayImportCmd struct {
	File string `arg:"" help:"Holiday list (.yaml, .yml or .json)." type:"existingfile"`
}

func (c *HolidayImportCmd) Run(ctx *cli.Context) error {
	holidays, err := document.LoadHolidays(c.File)
	if err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	for _, h := range holidays {
		if err := ctx.Store.AddHoliday(h); err != nil {
			return fmt.Errorf("failed to import holiday %s: %w", h.Date, err)
		}
	}

	logger.Info("Imported holidays", "count", len(holidays), "file", c.File)
	ctx.Printf("Imported %d holiday(s)\n", len(holidays))
	return nil
}
