package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/traineeline/internal/backup"
	"github.com/julianstephens/traineeline/internal/calendar"
	"github.com/julianstephens/traineeline/internal/constants"
	"github.com/julianstephens/traineeline/internal/models"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	summaryStyle = lipgloss.NewStyle().Bold(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatDays(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

func formatInstant(t time.Time) string {
	return t.Format("Mon " + constants.DateTimeFormat)
}

// RenderSchedule prints the placed tasks followed by the expected completion
// and the number of working days the timeline spans.
func RenderSchedule(w io.Writer, scheduled []models.ScheduledTask, completion time.Time, cal calendar.Calendar) {
	t := newTable("#", "Task", "Days", "Start", "End", "Ends").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, st := range scheduled {
		ends := "full day"
		if st.EndsAfternoon {
			ends = "half day"
		}
		t.Row(
			strconv.Itoa(st.Order),
			st.Label(),
			formatDays(st.DurationDays),
			formatInstant(st.Start),
			formatInstant(st.End),
			ends,
		)
	}

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, summaryStyle.Render("Expected completion: "+formatInstant(completion)))
	if len(scheduled) > 0 {
		days := cal.WorkingDaysBetween(scheduled[0].Start, completion)
		fmt.Fprintln(w, summaryStyle.Render(fmt.Sprintf("Working days: %d", days)))
	}
}

// RenderHolidays prints holidays, marking soft-deleted ones
func RenderHolidays(w io.Writer, holidays []models.Holiday) {
	if len(holidays) == 0 {
		fmt.Fprintln(w, "No holidays found")
		return
	}

	t := newTable("Date", "Day", "Name", "Status").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case holidays[row].DeletedAt != nil:
				return mutedStyle
			}
			return cellStyle
		})

	for _, h := range holidays {
		day := ""
		if d, err := h.Time(); err == nil {
			day = d.Weekday().String()[:3]
		}
		status := "active"
		if h.DeletedAt != nil {
			status = "deleted"
		}
		t.Row(h.Date, day, h.Name, status)
	}

	fmt.Fprintln(w, t.Render())
}

// RenderBackups prints snapshots newest first
func RenderBackups(w io.Writer, snaps []backup.Snapshot) {
	t := newTable("Taken", "File", "Size").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, s := range snaps {
		t.Row(
			s.TakenAt.Format(constants.DateTimeFormat+":05"),
			s.Name(),
			fmt.Sprintf("%.1f KB", float64(s.Size)/1024.0),
		)
	}

	fmt.Fprintln(w, t.Render())
}

// StatusResult is the classification outcome of one attempt history
type StatusResult struct {
	Trainee    string            `json:"trainee,omitempty"`
	Task       string            `json:"task,omitempty"`
	Status     models.StatusCode `json:"status,omitempty"`
	Affordance string            `json:"affordance,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// RenderStatuses prints one row per classified history
func RenderStatuses(w io.Writer, results []StatusResult) {
	t := newTable("Trainee", "Task", "Status", "Action").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case results[row].Error != "":
				return errorStyle
			}
			return cellStyle
		})

	for _, r := range results {
		status, action := string(r.Status), r.Affordance
		if r.Error != "" {
			status, action = "ERROR", r.Error
		}
		t.Row(r.Trainee, r.Task, status, action)
	}

	fmt.Fprintln(w, t.Render())
}
