package agenda

import (
	"fmt"
	"time"
)

// DayCell is one cell of the month grid. Mixed-job days take the color
// of the day's first event (events arrive sorted by start).
type DayCell struct {
	Date    time.Time `json:"date"`
	InMonth bool      `json:"inMonth"`
	Count   int       `json:"count"`
	Color   string    `json:"color,omitempty"`
}

// MonthView is a grid of whole weeks (Sunday start) covering the focused
// month, with per-day event counts for compact badge rendering.
type MonthView struct {
	Label string       `json:"label"`
	Weeks [][7]DayCell `json:"weeks"`
}

// EventCard is the full rendering used by week and day views.
type EventCard struct {
	ScheduleID int       `json:"scheduleId"`
	Title      string    `json:"title"`
	Candidate  string    `json:"candidate,omitempty"`
	Color      string    `json:"color"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	TimeRange  string    `json:"timeRange"`
}

// DaySchedule is one day's worth of cards.
type DaySchedule struct {
	Date  time.Time   `json:"date"`
	Cards []EventCard `json:"events"`
}

type WeekView struct {
	Label string        `json:"label"`
	Days  []DaySchedule `json:"days"`
}

type DayView struct {
	Date  time.Time   `json:"date"`
	Cards []EventCard `json:"events"`
}

// SidebarEntry is one row of the daily side panel.
type SidebarEntry struct {
	ScheduleID int    `json:"scheduleId"`
	Time       string `json:"time"`
	Title      string `json:"title"`
	Candidate  string `json:"candidate,omitempty"`
	Color      string `json:"color"`
}

// Sidebar always reflects the focused day: that day's events sorted
// ascending by start, or a neutral empty message.
type Sidebar struct {
	Heading      string         `json:"heading"`
	Date         time.Time      `json:"date"`
	DateLabel    string         `json:"dateLabel"`
	Entries      []SidebarEntry `json:"events"`
	EmptyMessage string         `json:"emptyMessage,omitempty"`
}

const emptyDayMessage = "Nenhum compromisso para este dia."

// Projection bundles the active view's model with the sidebar and the
// job color map, ready for the UI to render as-is.
type Projection struct {
	View      ViewMode       `json:"view"`
	Date      time.Time      `json:"date"`
	Month     *MonthView     `json:"month,omitempty"`
	Week      *WeekView      `json:"week,omitempty"`
	Day       *DayView       `json:"day,omitempty"`
	Sidebar   Sidebar        `json:"sidebar"`
	JobColors map[int]string `json:"jobColors"`
}

// Build computes the projection for one view mode and focus date.
func Build(events []Event, mode ViewMode, focus time.Time) Projection {
	p := Projection{
		View:      mode,
		Date:      focus,
		Sidebar:   BuildSidebar(events, focus),
		JobColors: JobColors(events),
	}
	switch mode {
	case ViewWeek:
		w := BuildWeekView(events, focus)
		p.Week = &w
	case ViewDay:
		d := BuildDayView(events, focus)
		p.Day = &d
	default:
		m := BuildMonthView(events, focus)
		p.Month = &m
	}
	return p
}

// BuildMonthView aggregates events into the month grid. A day's count is
// the number of events on it; its badge color is the first event's job
// color, deterministic because events are sorted.
func BuildMonthView(events []Event, focus time.Time) MonthView {
	byDay := groupByDay(events)

	first := time.Date(focus.Year(), focus.Month(), 1, 0, 0, 0, 0, focus.Location())
	last := first.AddDate(0, 1, -1)
	cur := startOfWeek(first)
	end := startOfWeek(last).AddDate(0, 0, 7)

	var weeks [][7]DayCell
	for cur.Before(end) {
		var week [7]DayCell
		for i := 0; i < 7; i++ {
			cell := DayCell{Date: cur, InMonth: cur.Month() == focus.Month()}
			if dayEvents := byDay[dateKey(cur)]; len(dayEvents) > 0 {
				cell.Count = len(dayEvents)
				cell.Color = eventColor(dayEvents[0])
			}
			week[i] = cell
			cur = cur.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}

	return MonthView{
		Label: monthLabel(focus),
		Weeks: weeks,
	}
}

// BuildWeekView lays the focused week out day by day with full cards.
func BuildWeekView(events []Event, focus time.Time) WeekView {
	byDay := groupByDay(events)
	start := startOfWeek(focus)

	days := make([]DaySchedule, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		days[i] = DaySchedule{
			Date:  day,
			Cards: cards(byDay[dateKey(day)]),
		}
	}

	endLabel := start.AddDate(0, 0, 6)
	return WeekView{
		Label: fmt.Sprintf("%02d – %02d de %s", start.Day(), endLabel.Day(), ptMonths[endLabel.Month()-1]),
		Days:  days,
	}
}

// BuildDayView renders one day's full cards.
func BuildDayView(events []Event, focus time.Time) DayView {
	byDay := groupByDay(events)
	return DayView{
		Date:  focus,
		Cards: cards(byDay[dateKey(focus)]),
	}
}

// BuildSidebar builds the day-detail panel for the focused date.
func BuildSidebar(events []Event, focus time.Time) Sidebar {
	dayEvents := groupByDay(events)[dateKey(focus)]

	sb := Sidebar{
		Heading:   "Compromissos do Dia",
		Date:      focus,
		DateLabel: sidebarDateLabel(focus),
	}
	if len(dayEvents) == 0 {
		sb.EmptyMessage = emptyDayMessage
		return sb
	}
	for i, e := range dayEvents {
		sb.Entries = append(sb.Entries, SidebarEntry{
			ScheduleID: e.Schedule.ID,
			Time:       e.Start.Format("15:04"),
			Title:      e.Title,
			Candidate:  e.candidateName(),
			Color:      sidebarPalette[i%len(sidebarPalette)],
		})
	}
	return sb
}

func cards(dayEvents []Event) []EventCard {
	out := make([]EventCard, 0, len(dayEvents))
	for _, e := range dayEvents {
		out = append(out, EventCard{
			ScheduleID: e.Schedule.ID,
			Title:      e.Title,
			Candidate:  e.candidateName(),
			Color:      eventColor(e),
			Start:      e.Start,
			End:        e.End,
			TimeRange:  e.Start.Format("15:04") + " - " + e.End.Format("15:04"),
		})
	}
	return out
}

// groupByDay preserves the incoming (sorted) order inside each day.
func groupByDay(events []Event) map[string][]Event {
	byDay := make(map[string][]Event)
	for _, e := range events {
		k := dateKey(e.Start)
		byDay[k] = append(byDay[k], e)
	}
	return byDay
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.AddDate(0, 0, -int(t.Weekday()))
}

var ptMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var ptWeekdays = [...]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s de %d", ptMonths[t.Month()-1], t.Year())
}

func sidebarDateLabel(t time.Time) string {
	return fmt.Sprintf("%s, %02d de %s", ptWeekdays[t.Weekday()], t.Day(), ptMonths[t.Month()-1])
}
