// Package agenda builds the calendar view models consumed by the
// scheduling UI: month/week/day projections with per-day aggregation,
// deterministic per-job colors and a daily side panel. Everything is
// recomputed from the event list on every call; there is no incremental
// state.
package agenda

import (
	"fmt"
	"sort"
	"time"

	"github.com/bittenrichard/30-07/internal/models"
)

// ViewMode is the calendar's active view.
type ViewMode string

const (
	ViewMonth ViewMode = "month"
	ViewWeek  ViewMode = "week"
	ViewDay   ViewMode = "day"
)

// ParseViewMode accepts the wire value; empty defaults to month, the
// initial view.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case "":
		return ViewMonth, nil
	case ViewMonth, ViewWeek, ViewDay:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// NavAction is a toolbar navigation action.
type NavAction string

const (
	NavToday    NavAction = "today"
	NavNext     NavAction = "next"
	NavPrevious NavAction = "previous"
)

// Event is the UI projection of a schedule row. Derived, never persisted.
type Event struct {
	Title    string             `json:"title"`
	Start    time.Time          `json:"start"`
	End      time.Time          `json:"end"`
	Schedule models.ScheduleRow `json:"resource"`
}

// FromSchedules converts schedule rows into events sorted ascending by
// start time. Sorting here makes every downstream "first job of the day"
// choice deterministic.
func FromSchedules(rows []models.ScheduleRow) []Event {
	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, Event{
			Title:    row.Titulo,
			Start:    row.Inicio,
			End:      row.Fim,
			Schedule: row,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Start.Equal(events[j].Start) {
			return events[i].Schedule.ID < events[j].Schedule.ID
		}
		return events[i].Start.Before(events[j].Start)
	})
	return events
}

func (e Event) jobID() int {
	if len(e.Schedule.Vaga) > 0 {
		return e.Schedule.Vaga[0].ID
	}
	return 0
}

func (e Event) candidateName() string {
	if len(e.Schedule.Candidato) > 0 {
		return e.Schedule.Candidato[0].Value
	}
	return ""
}

// State is the view-mode state machine: {Month, Week, Day}, initial
// Month. Selecting an empty slot forces Day view on that date; selecting
// an event opens the detail overlay without changing the mode.
type State struct {
	Mode     ViewMode  `json:"mode"`
	Focus    time.Time `json:"focus"`
	Selected *Event    `json:"selected,omitempty"`
}

func NewState(now time.Time) *State {
	return &State{Mode: ViewMonth, Focus: now}
}

// SetView switches the active view, keeping focus and selection.
func (s *State) SetView(m ViewMode) {
	s.Mode = m
}

// SelectSlot handles a click on an empty calendar slot.
func (s *State) SelectSlot(date time.Time) {
	s.Mode = ViewDay
	s.Focus = date
}

// SelectEvent opens the detail overlay for an existing event.
func (s *State) SelectEvent(e Event) {
	s.Selected = &e
}

// ClearSelection closes the detail overlay.
func (s *State) ClearSelection() {
	s.Selected = nil
}

// Navigate steps focus by the active view's unit.
func (s *State) Navigate(action NavAction, now time.Time) {
	switch action {
	case NavToday:
		s.Focus = now
	case NavNext:
		s.Focus = step(s.Focus, s.Mode, 1)
	case NavPrevious:
		s.Focus = step(s.Focus, s.Mode, -1)
	}
}

func step(t time.Time, mode ViewMode, dir int) time.Time {
	switch mode {
	case ViewMonth:
		return t.AddDate(0, dir, 0)
	case ViewWeek:
		return t.AddDate(0, 0, 7*dir)
	default:
		return t.AddDate(0, 0, dir)
	}
}
