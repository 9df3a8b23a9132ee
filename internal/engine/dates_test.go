package engine

import (
	"testing"
	"time"

	"github.com/rasoihub/tiffinbox/internal/models"
)

func date(y int, m time.Month, d int) models.CalendarDate {
	return models.CalendarDate{Year: y, Month: m, Day: d}
}

// 2024-01-01 is a Monday; the tests below lean on that.
var testToday = date(2024, time.January, 1)

func consecutivePolicy(days int) models.AutoSelectionPolicy {
	return models.AutoSelectionPolicy{Days: days, Mode: models.SelectionTypeConsecutive}
}

func weekdaysPolicy(days int) models.AutoSelectionPolicy {
	return models.AutoSelectionPolicy{Days: days, Mode: models.SelectionTypeWeekdaysOnly}
}

var manualPolicy = models.AutoSelectionPolicy{Days: 0, Mode: models.SelectionTypeConsecutive}

func TestConsecutiveExpansion(t *testing.T) {
	set := SelectDate(SelectedDateSet{}, date(2024, time.January, 10), consecutivePolicy(7), testToday)

	dates := set.Sorted()
	if len(dates) != 7 {
		t.Fatalf("len = %d, want 7", len(dates))
	}
	for i, d := range dates {
		want := date(2024, time.January, 10+i)
		if !d.Equal(want) {
			t.Errorf("dates[%d] = %v, want %v", i, d, want)
		}
	}
}

func TestConsecutiveAnchorRollsToTomorrow(t *testing.T) {
	// clicking today or a past date never anchors on it
	for _, clicked := range []models.CalendarDate{testToday, date(2023, time.December, 25)} {
		set := SelectDate(SelectedDateSet{}, clicked, consecutivePolicy(3), testToday)
		dates := set.Sorted()
		if len(dates) != 3 {
			t.Fatalf("len = %d, want 3", len(dates))
		}
		if !dates[0].Equal(testToday.AddDays(1)) {
			t.Errorf("anchor = %v, want tomorrow for clicked %v", dates[0], clicked)
		}
	}
}

func TestConsecutiveReplacesOnNewAnchor(t *testing.T) {
	policy := consecutivePolicy(7)
	first := SelectDate(SelectedDateSet{}, date(2024, time.January, 10), policy, testToday)
	second := SelectDate(first, date(2024, time.February, 5), policy, testToday)

	dates := second.Sorted()
	if len(dates) != 7 {
		t.Fatalf("len = %d, want 7", len(dates))
	}
	if !dates[0].Equal(date(2024, time.February, 5)) {
		t.Errorf("anchor = %v, want re-expansion from new anchor", dates[0])
	}
}

func TestWeekdaysOnlyFromSaturday(t *testing.T) {
	// Saturday Jan 6 rolls to Monday Jan 8, then five weekdays
	set := SelectDate(SelectedDateSet{}, date(2024, time.January, 6), weekdaysPolicy(5), testToday)

	dates := set.Sorted()
	if len(dates) != 5 {
		t.Fatalf("len = %d, want 5", len(dates))
	}
	for i, d := range dates {
		want := date(2024, time.January, 8+i)
		if !d.Equal(want) {
			t.Errorf("dates[%d] = %v, want %v", i, d, want)
		}
		if d.IsWeekend() {
			t.Errorf("dates[%d] = %v falls on a weekend", i, d)
		}
	}
}

func TestWeekdaysOnlySkipsWeekendMidRun(t *testing.T) {
	set := SelectDate(SelectedDateSet{}, date(2024, time.January, 8), weekdaysPolicy(6), testToday)

	dates := set.Sorted()
	if len(dates) != 6 {
		t.Fatalf("len = %d, want 6", len(dates))
	}
	// Jan 13/14 is the weekend; the sixth weekday is Monday Jan 15
	if !dates[5].Equal(date(2024, time.January, 15)) {
		t.Errorf("dates[5] = %v, want 2024-01-15", dates[5])
	}
}

func TestWeekdaysOnlyMondayAnchors(t *testing.T) {
	// a future Monday anchors on itself
	set := SelectDate(SelectedDateSet{}, date(2024, time.January, 15), weekdaysPolicy(5), testToday)
	if first := set.Sorted()[0]; !first.Equal(date(2024, time.January, 15)) {
		t.Errorf("anchor = %v, want the clicked Monday", first)
	}

	// today's Monday rolls a full week forward
	set = SelectDate(SelectedDateSet{}, testToday, weekdaysPolicy(5), testToday)
	if first := set.Sorted()[0]; !first.Equal(date(2024, time.January, 8)) {
		t.Errorf("anchor = %v, want next Monday", first)
	}
}

func TestWeekdaysOnlyFarPastAnchorRollsToFuture(t *testing.T) {
	// a click months in the past must not leave the expansion in the
	// past; it anchors on the first Monday after tomorrow
	today := date(2024, time.June, 3) // a Monday
	set := SelectDate(SelectedDateSet{}, date(2024, time.January, 8), weekdaysPolicy(5), today)

	dates := set.Sorted()
	if len(dates) != 5 {
		t.Fatalf("len = %d, want 5", len(dates))
	}
	for i, d := range dates {
		if !d.After(today) {
			t.Errorf("dates[%d] = %v is not after %v", i, d, today)
		}
		want := date(2024, time.June, 10+i)
		if !d.Equal(want) {
			t.Errorf("dates[%d] = %v, want %v", i, d, want)
		}
	}
}

func TestSelectDateIdempotent(t *testing.T) {
	policy := weekdaysPolicy(5)
	clicked := date(2024, time.January, 6)

	first := SelectDate(SelectedDateSet{}, clicked, policy, testToday)
	second := SelectDate(first, clicked, policy, testToday)

	a, b := first.Sorted(), second.Sorted()
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Errorf("dates[%d]: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestManualToggle(t *testing.T) {
	d1 := date(2024, time.January, 10)
	d2 := date(2024, time.January, 12)

	set := SelectDate(SelectedDateSet{}, d1, manualPolicy, testToday)
	set = SelectDate(set, d2, manualPolicy, testToday)
	if set.Len() != 2 {
		t.Fatalf("len = %d, want 2", set.Len())
	}

	// re-clicking removes, preserving the other member
	set = SelectDate(set, d1, manualPolicy, testToday)
	if set.Len() != 1 || !set.Contains(d2) {
		t.Errorf("after toggle: len = %d, contains d2 = %v", set.Len(), set.Contains(d2))
	}

	// toggling back restores the prior state
	set = SelectDate(set, d1, manualPolicy, testToday)
	if set.Len() != 2 || !set.Contains(d1) {
		t.Errorf("after re-toggle: len = %d", set.Len())
	}
}

func TestManualInsertionOrderAndSortedView(t *testing.T) {
	later := date(2024, time.January, 20)
	earlier := date(2024, time.January, 5)

	set := SelectDate(SelectedDateSet{}, later, manualPolicy, testToday)
	set = SelectDate(set, earlier, manualPolicy, testToday)

	if insertion := set.Dates(); !insertion[0].Equal(later) {
		t.Errorf("insertion order lost: first = %v", insertion[0])
	}
	if sorted := set.Sorted(); !sorted[0].Equal(earlier) {
		t.Errorf("sorted view wrong: first = %v", sorted[0])
	}
}
