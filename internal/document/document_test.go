package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/traineeline/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"timeline.yaml": FormatYAML,
		"timeline.YML":  FormatYAML,
		"timeline.json": FormatJSON,
		"timeline":      FormatJSON,
	}
	for path, want := range tests {
		if got := FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestParseInstant(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-01-01", want: time.Date(2024, 1, 1, 0, 0, 0, 0, loc)},
		{in: "2024-01-01 14:00", want: time.Date(2024, 1, 1, 14, 0, 0, 0, loc)},
		{in: "2024-01-01T09:30", want: time.Date(2024, 1, 1, 9, 30, 0, 0, loc)},
		{in: "2024-01-01T09:00:00Z", want: time.Date(2024, 1, 1, 9, 0, 0, 0, loc)},
		{in: "", wantErr: true},
		{in: "01/02/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInstant(tt.in, loc)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

const timelineYAML = `start: 2024-01-01
half_day: true
timezone: Asia/Kolkata
tasks:
  - id: intro
    name: Orientation
    order: 1
    duration_days: 1.5
    present_type: in_person
    task_type: learning
  - name: Capstone
    order: 2
    duration_days: 2
`

func TestLoadTimeline_YAML(t *testing.T) {
	path := writeFile(t, "timeline.yaml", timelineYAML)

	tl, err := LoadTimeline(path, time.UTC)
	if err != nil {
		t.Fatalf("LoadTimeline failed: %v", err)
	}

	if tl.Location.String() != "Asia/Kolkata" {
		t.Errorf("expected Asia/Kolkata, got %s", tl.Location)
	}
	if !tl.HalfDay {
		t.Error("expected half_day true")
	}
	if tl.Start.Year() != 2024 || tl.Start.Month() != time.January || tl.Start.Day() != 1 {
		t.Errorf("unexpected start %v", tl.Start)
	}
	if len(tl.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tl.Tasks))
	}
	if tl.Tasks[0].ID != "intro" || tl.Tasks[0].DurationDays != 1.5 || tl.Tasks[0].PresentType != "in_person" {
		t.Errorf("unexpected first task %+v", tl.Tasks[0])
	}
	if tl.Scheduled != nil {
		t.Errorf("expected no scheduled placement, got %d", len(tl.Scheduled))
	}
}

func TestLoadTimeline_JSON(t *testing.T) {
	path := writeFile(t, "timeline.json", `{
  "start": "2024-01-01 09:00",
  "half_day": false,
  "tasks": [{"id": "a", "order": 1, "duration_days": 2}]
}`)

	tl, err := LoadTimeline(path, time.UTC)
	if err != nil {
		t.Fatalf("LoadTimeline failed: %v", err)
	}
	if tl.Location != time.UTC {
		t.Errorf("expected fallback location UTC, got %s", tl.Location)
	}
	if tl.Start.Hour() != 9 {
		t.Errorf("expected 09:00 start, got %v", tl.Start)
	}
}

func TestLoadTimeline_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unknown field", "t.yaml", "start: 2024-01-01\nstrat: x\ntasks: []\n", "unknown field"},
		{"bad start", "t.json", `{"start": "tomorrow", "tasks": []}`, "start"},
		{"bad timezone", "t.json", `{"start": "2024-01-01", "timezone": "Mars/Base", "tasks": []}`, "invalid timezone"},
		{"bad yaml", "t.yaml", "start: [unclosed\n", "yaml unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTimeline(writeFile(t, tt.file, tt.content), time.UTC)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestScheduledFile_RoundTrip(t *testing.T) {
	loc := time.UTC
	tl := Timeline{
		Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, loc),
		Location: loc,
	}
	scheduled := []models.ScheduledTask{
		{
			Task:  models.Task{ID: "a", Name: "A", Order: 1, DurationDays: 1.5},
			Start: time.Date(2024, 1, 1, 9, 0, 0, 0, loc),
			End:   time.Date(2024, 1, 2, 13, 0, 0, 0, loc),
		},
		{
			Task:          models.Task{ID: "b", Name: "B", Order: 2, DurationDays: 1},
			Start:         time.Date(2024, 1, 2, 14, 0, 0, 0, loc),
			End:           time.Date(2024, 1, 3, 13, 0, 0, 0, loc),
			EndsAfternoon: true,
		},
	}

	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Save(path, NewScheduledFile(tl, scheduled, scheduled[1].End)); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			got, err := LoadTimeline(path, time.Local)
			if err != nil {
				t.Fatalf("LoadTimeline failed: %v", err)
			}
			if len(got.Scheduled) != 2 {
				t.Fatalf("expected 2 scheduled tasks, got %d", len(got.Scheduled))
			}
			for i, st := range got.Scheduled {
				want := scheduled[i]
				if st.ID != want.ID || st.Order != want.Order || st.DurationDays != want.DurationDays {
					t.Errorf("task %d: got %+v, want %+v", i, st.Task, want.Task)
				}
				if !st.Start.Equal(want.Start) || !st.End.Equal(want.End) {
					t.Errorf("task %d: got %v-%v, want %v-%v", i, st.Start, st.End, want.Start, want.End)
				}
				if st.EndsAfternoon != want.EndsAfternoon {
					t.Errorf("task %d: EndsAfternoon = %v, want %v", i, st.EndsAfternoon, want.EndsAfternoon)
				}
			}
		})
	}
}

func TestLoadHolidays(t *testing.T) {
	path := writeFile(t, "holidays.yaml", `holidays:
  - date: 2024-01-26
    name: Republic Day
  - date: 2024-08-15
    name: Independence Day
`)

	holidays, err := LoadHolidays(path)
	if err != nil {
		t.Fatalf("LoadHolidays failed: %v", err)
	}
	if len(holidays) != 2 || holidays[0].Date != "2024-01-26" || holidays[1].Name != "Independence Day" {
		t.Errorf("unexpected holidays %+v", holidays)
	}
}

func TestLoadHolidays_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad date", `{"holidays": [{"date": "26-01-2024"}]}`},
		{"duplicate date", `{"holidays": [{"date": "2024-01-26"}, {"date": "2024-01-26"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadHolidays(writeFile(t, "h.json", tt.content)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

const statusYAML = `timezone: UTC
entries:
  - trainee: asha
    task: Week 1 assessment
    window:
      start: 2024-03-04
      end: 2024-03-09
    history:
      attempts:
        - updated_at: 2024-03-05 10:00
          present_status: true
  - trainee: ravi
    task: Extension
    window:
      start: 2024-03-04
    history:
      placeholder:
        updated_at: 2024-03-04 08:00
`

func TestLoadStatus(t *testing.T) {
	cases, err := LoadStatus(writeFile(t, "status.yaml", statusYAML), time.Local)
	if err != nil {
		t.Fatalf("LoadStatus failed: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}

	first := cases[0]
	if first.Trainee != "asha" || first.Window.IsOpenEnded() {
		t.Errorf("unexpected first case %+v", first)
	}
	wantEnd := time.Date(2024, 3, 9, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	if !first.Window.End.Equal(wantEnd) {
		t.Errorf("expected window end %v, got %v", wantEnd, first.Window.End)
	}
	if len(first.History.Attempts) != 1 || !first.History.Attempts[0].PresentStatus {
		t.Errorf("unexpected attempts %+v", first.History.Attempts)
	}

	second := cases[1]
	if !second.Window.IsOpenEnded() {
		t.Error("expected open-ended window")
	}
	if second.History.Placeholder == nil || second.History.Placeholder.PresentStatus {
		t.Errorf("expected absent placeholder, got %+v", second.History.Placeholder)
	}
}

func TestLoadStatus_BadAttempt(t *testing.T) {
	path := writeFile(t, "status.json", `{"entries": [{
  "window": {"start": "2024-03-04"},
  "history": {"attempts": [{"updated_at": "yesterday"}]}
}]}`)

	_, err := LoadStatus(path, time.UTC)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "entries[0]: history.attempts[0]: updated_at") {
		t.Errorf("expected error to locate the bad field, got %v", err)
	}
}
