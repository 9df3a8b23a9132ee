package engine

import (
	"sort"
	"time"

	"github.com/rasoihub/tiffinbox/internal/models"
)

// SelectedDateSet is an ordered, deduplicated set of calendar dates.
// Insertion order is preserved for manual toggling; Sorted gives the
// chronological view used for display and materialization.
type SelectedDateSet struct {
	dates []models.CalendarDate
}

func NewSelectedDateSet(dates ...models.CalendarDate) SelectedDateSet {
	s := SelectedDateSet{}
	for _, d := range dates {
		if !s.Contains(d) {
			s.dates = append(s.dates, d)
		}
	}
	return s
}

func (s SelectedDateSet) Len() int {
	return len(s.dates)
}

func (s SelectedDateSet) Contains(d models.CalendarDate) bool {
	for _, existing := range s.dates {
		if existing.Equal(d) {
			return true
		}
	}
	return false
}

// Dates returns the members in insertion order.
func (s SelectedDateSet) Dates() []models.CalendarDate {
	out := make([]models.CalendarDate, len(s.dates))
	copy(out, s.dates)
	return out
}

// Sorted returns the members in chronological order.
func (s SelectedDateSet) Sorted() []models.CalendarDate {
	out := s.Dates()
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// SelectDate applies one date click under the given auto-selection
// policy and returns the resulting set. Pure: the input set is never
// modified.
//
// Manual mode (days == 0) toggles the clicked date in or out, keeping
// the other members. A policy with days > 0 always replaces the whole
// set, re-expanded from the clicked anchor. Auto-selection never
// anchors on today or a past date: the anchor rolls to tomorrow.
func SelectDate(current SelectedDateSet, clicked models.CalendarDate, policy models.AutoSelectionPolicy, today models.CalendarDate) SelectedDateSet {
	if policy.Manual() {
		return toggle(current, clicked)
	}

	switch policy.Mode {
	case models.SelectionTypeWeekdaysOnly:
		return expandWeekdays(clicked, policy.Days, today)
	default:
		return expandConsecutive(clicked, policy.Days, today)
	}
}

func toggle(current SelectedDateSet, clicked models.CalendarDate) SelectedDateSet {
	if !current.Contains(clicked) {
		return SelectedDateSet{dates: append(current.Dates(), clicked)}
	}
	var kept []models.CalendarDate
	for _, d := range current.dates {
		if !d.Equal(clicked) {
			kept = append(kept, d)
		}
	}
	return SelectedDateSet{dates: kept}
}

func expandConsecutive(anchor models.CalendarDate, days int, today models.CalendarDate) SelectedDateSet {
	if !anchor.After(today) {
		anchor = today.AddDays(1)
	}
	dates := make([]models.CalendarDate, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, anchor.AddDays(i))
	}
	return SelectedDateSet{dates: dates}
}

func expandWeekdays(clicked models.CalendarDate, days int, today models.CalendarDate) SelectedDateSet {
	anchor := nextMonday(clicked)
	if !anchor.After(today) {
		anchor = nextMonday(today.AddDays(1))
	}
	dates := make([]models.CalendarDate, 0, days)
	for d := anchor; len(dates) < days; d = d.AddDays(1) {
		if d.IsWeekend() {
			continue
		}
		dates = append(dates, d)
	}
	return SelectedDateSet{dates: dates}
}

// nextMonday rolls forward to the Monday on or after d.
func nextMonday(d models.CalendarDate) models.CalendarDate {
	offset := (int(time.Monday) - int(d.Weekday()) + 7) % 7
	return d.AddDays(offset)
}
