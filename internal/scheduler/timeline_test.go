package scheduler

import (
	"errors"
	"testing"

	"github.com/julianstephens/traineeline/internal/models"
)

func named(names ...string) []models.Task {
	tasks := make([]models.Task, len(names))
	for i, n := range names {
		tasks[i] = models.Task{ID: n, Name: n, Order: i + 1, DurationDays: 1}
	}
	return tasks
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
		if t.Order != i+1 {
			out[i] += "!"
		}
	}
	return out
}

func equalIDs(got []models.Task, want ...string) bool {
	g := ids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestRenumber(t *testing.T) {
	in := []models.Task{
		{ID: "c", Order: 9},
		{ID: "a", Order: 2},
		{ID: "b", Order: 2},
	}
	got := Renumber(in)
	if !equalIDs(got, "a", "b", "c") {
		t.Errorf("Renumber = %v", ids(got))
	}
	if in[0].Order != 9 {
		t.Error("Renumber must not modify its input")
	}
}

func TestInsertAt(t *testing.T) {
	base := named("a", "b", "c")

	tests := []struct {
		name  string
		order int
		want  []string
	}{
		{"front", 1, []string{"x", "a", "b", "c"}},
		{"middle", 2, []string{"a", "x", "b", "c"}},
		{"end", 4, []string{"a", "b", "c", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InsertAt(base, tt.order, models.Task{ID: "x", DurationDays: 0.5})
			if err != nil {
				t.Fatalf("InsertAt failed: %v", err)
			}
			if !equalIDs(got, tt.want...) {
				t.Errorf("InsertAt = %v, want %v", ids(got), tt.want)
			}
		})
	}

	if _, err := InsertAt(base, 5, models.Task{ID: "x", DurationDays: 1}); err == nil {
		t.Error("expected out-of-range error")
	}
	if _, err := InsertAt(base, 1, models.Task{ID: "x", DurationDays: 0}); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestRemoveAt(t *testing.T) {
	got, err := RemoveAt(named("a", "b", "c"), 2)
	if err != nil {
		t.Fatalf("RemoveAt failed: %v", err)
	}
	if !equalIDs(got, "a", "c") {
		t.Errorf("RemoveAt = %v", ids(got))
	}

	if _, err := RemoveAt(named("a"), 1); !errors.Is(err, ErrEmptyTimeline) {
		t.Errorf("removing the only task: expected ErrEmptyTimeline, got %v", err)
	}
	if _, err := RemoveAt(named("a", "b"), 3); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 1, 3, []string{"b", "c", "a", "d"}},
		{"backward", 4, 2, []string{"a", "d", "b", "c"}},
		{"noop", 2, 2, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Move(named("a", "b", "c", "d"), tt.from, tt.to)
			if err != nil {
				t.Fatalf("Move failed: %v", err)
			}
			if !equalIDs(got, tt.want...) {
				t.Errorf("Move = %v, want %v", ids(got), tt.want)
			}
		})
	}

	if _, err := Move(named("a", "b"), 1, 3); err == nil {
		t.Error("expected out-of-range error")
	}
	if _, err := Move(named("a", "b"), 0, 1); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestSetDuration(t *testing.T) {
	got, err := SetDuration(named("a", "b"), 2, 2.5)
	if err != nil {
		t.Fatalf("SetDuration failed: %v", err)
	}
	if got[1].DurationDays != 2.5 {
		t.Errorf("DurationDays = %v, want 2.5", got[1].DurationDays)
	}
	if _, err := SetDuration(named("a"), 1, 1.2); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
}
