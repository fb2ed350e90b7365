package document

import (
	"fmt"
	"time"

	"github.com/julianstephens/traineeline/internal/models"
)

// TimelineFile is a timeline as written on disk. Start/End on tasks are
// present only in scheduled output.
type TimelineFile struct {
	Start              string      `json:"start" yaml:"start"`
	HalfDay            bool        `json:"half_day" yaml:"half_day"`
	Timezone           string      `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	ExpectedCompletion string      `json:"expected_completion,omitempty" yaml:"expected_completion,omitempty"`
	Tasks              []TaskEntry `json:"tasks" yaml:"tasks"`
}

type TaskEntry struct {
	models.Task   `yaml:",inline"`
	Start         string `json:"start,omitempty" yaml:"start,omitempty"`
	End           string `json:"end,omitempty" yaml:"end,omitempty"`
	EndsAfternoon bool   `json:"ends_afternoon,omitempty" yaml:"ends_afternoon,omitempty"`
}

// Timeline is a decoded timeline ready to be scheduled
type Timeline struct {
	Start    time.Time
	HalfDay  bool
	Location *time.Location
	Tasks    []models.Task
	// Scheduled holds the previously computed placement, if the file had one
	Scheduled []models.ScheduledTask
}

// LoadTimeline reads a timeline file. Times without an explicit zone are
// read in the file's timezone, or in loc when the file names none.
func LoadTimeline(path string, loc *time.Location) (Timeline, error) {
	var f TimelineFile
	if err := decodeFile(path, &f); err != nil {
		return Timeline{}, err
	}
	return f.Resolve(loc)
}

// Resolve parses the string fields of f
func (f TimelineFile) Resolve(loc *time.Location) (Timeline, error) {
	loc, err := resolveLocation(f.Timezone, loc)
	if err != nil {
		return Timeline{}, err
	}

	start, err := ParseInstant(f.Start, loc)
	if err != nil {
		return Timeline{}, fmt.Errorf("start: %w", err)
	}

	tl := Timeline{
		Start:    start,
		HalfDay:  f.HalfDay,
		Location: loc,
		Tasks:    make([]models.Task, 0, len(f.Tasks)),
	}

	scheduled := true
	for i, e := range f.Tasks {
		tl.Tasks = append(tl.Tasks, e.Task)
		if e.Start == "" || e.End == "" {
			scheduled = false
			continue
		}
		st := models.ScheduledTask{Task: e.Task, EndsAfternoon: e.EndsAfternoon}
		if st.Start, err = ParseInstant(e.Start, loc); err != nil {
			return Timeline{}, fmt.Errorf("tasks[%d].start: %w", i, err)
		}
		if st.End, err = ParseInstant(e.End, loc); err != nil {
			return Timeline{}, fmt.Errorf("tasks[%d].end: %w", i, err)
		}
		tl.Scheduled = append(tl.Scheduled, st)
	}
	if !scheduled {
		tl.Scheduled = nil
	}

	return tl, nil
}

// ScheduledEntries returns the on-disk form of the placed tasks, with
// times rendered without a zone.
func ScheduledEntries(scheduled []models.ScheduledTask) []TaskEntry {
	entries := make([]TaskEntry, 0, len(scheduled))
	for _, st := range scheduled {
		entries = append(entries, TaskEntry{
			Task:          st.Task,
			Start:         FormatInstant(st.Start),
			End:           FormatInstant(st.End),
			EndsAfternoon: st.EndsAfternoon,
		})
	}
	return entries
}

// NewScheduledFile builds the document written by the schedule commands
func NewScheduledFile(tl Timeline, scheduled []models.ScheduledTask, completion time.Time) TimelineFile {
	tz := ""
	if tl.Location != nil {
		tz = tl.Location.String()
	}
	return TimelineFile{
		Start:              FormatInstant(tl.Start),
		HalfDay:            tl.HalfDay,
		Timezone:           tz,
		ExpectedCompletion: FormatInstant(completion),
		Tasks:              ScheduledEntries(scheduled),
	}
}
