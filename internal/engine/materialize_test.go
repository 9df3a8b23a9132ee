package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/rasoihub/tiffinbox/internal/models"
)

func consecutiveDates(start models.CalendarDate, n int) []models.CalendarDate {
	dates := make([]models.CalendarDate, n)
	for i := range dates {
		dates[i] = start.AddDays(i)
	}
	return dates
}

func TestMaterializeRegularMenu(t *testing.T) {
	menu := &models.MenuOption{
		Name: "Weekly Veg Plan", Price: 1500, MenuItemRef: "m1",
		HasLunch: true, HasDinner: true,
	}
	cfg := &models.OrderConfiguration{
		OrderMode:         models.OrderModeSubscription,
		Menu:              menu,
		Classification:    models.Classification{Mode: models.FulfilmentRegularMenu},
		SelectedDates:     consecutiveDates(date(2024, time.January, 15), 7),
		DeliveryLocations: models.DeliveryLocations{Full: ref("home")},
	}

	m, err := Materialize(cfg)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	// flat price regardless of the seven dates
	if m.TotalPrice != 1500 {
		t.Errorf("total = %.2f, want 1500", m.TotalPrice)
	}
	if len(m.OrderItems) != 2 {
		t.Fatalf("items = %d, want 2", len(m.OrderItems))
	}
	for _, item := range m.OrderItems {
		if item.Quantity != 7 {
			t.Errorf("%s quantity = %d, want 7", item.MealType, item.Quantity)
		}
		if item.AddressID != "home" {
			t.Errorf("%s address = %q, want primary fallback", item.MealType, item.AddressID)
		}
	}
	if TotalItems(cfg) != 1 {
		t.Errorf("TotalItems = %d, want 1", TotalItems(cfg))
	}
}

func TestMaterializeDailyRateItem(t *testing.T) {
	menu := &models.MenuOption{
		Name: "Week-Day Deluxe", Price: 120, MenuItemRef: "m2",
		HasBreakfast: true, HasLunch: true, IsDailyRateItem: true,
	}
	dates := consecutiveDates(date(2024, time.January, 8), 5) // Mon..Fri
	skips := models.SkipSelections{
		dates[2].Key(): {Breakfast: true},
	}
	cfg := &models.OrderConfiguration{
		OrderMode:      models.OrderModeSubscription,
		Menu:           menu,
		Classification: models.Classification{Mode: models.FulfilmentDailyRateItem},
		SelectedDates:  dates,
		SkipMeals:      skips,
		DeliveryLocations: models.DeliveryLocations{
			Breakfast: ref("home"), Lunch: ref("office"),
		},
	}

	m, err := Materialize(cfg)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	// per-day price, never reduced by skips
	if m.TotalPrice != 600 {
		t.Errorf("total = %.2f, want 600", m.TotalPrice)
	}
	if len(m.OrderItems) != 2 {
		t.Fatalf("items = %d, want 2", len(m.OrderItems))
	}
	byMeal := map[models.MealSlot]models.OrderItem{}
	for _, item := range m.OrderItems {
		byMeal[item.MealType] = item
	}
	if byMeal[models.SlotBreakfast].Quantity != 4 {
		t.Errorf("breakfast quantity = %d, want 4 after one skip", byMeal[models.SlotBreakfast].Quantity)
	}
	if byMeal[models.SlotLunch].Quantity != 5 {
		t.Errorf("lunch quantity = %d, want 5", byMeal[models.SlotLunch].Quantity)
	}
	if TotalItems(cfg) != 10 {
		t.Errorf("TotalItems = %d, want 2 meals x 5 days", TotalItems(cfg))
	}
}

func TestMaterializeSingleMealItem(t *testing.T) {
	menu := &models.MenuOption{
		Name: "Dinner Only Plan", Price: 900, MenuItemRef: "m3", HasDinner: true,
	}
	cfg := &models.OrderConfiguration{
		OrderMode:         models.OrderModeSubscription,
		Menu:              menu,
		Classification:    models.Classification{Mode: models.FulfilmentSingleMealItem, Slot: models.SlotDinner},
		SelectedDates:     consecutiveDates(date(2024, time.January, 10), 4),
		DeliveryLocations: models.DeliveryLocations{Dinner: ref("hostel")},
	}

	m, err := Materialize(cfg)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	if m.TotalPrice != 900 {
		t.Errorf("total = %.2f, want flat 900", m.TotalPrice)
	}
	if len(m.OrderItems) != 1 || m.OrderItems[0].Quantity != 4 {
		t.Fatalf("items = %+v, want one dinner item quantity 4", m.OrderItems)
	}
	if len(m.OrderTimes) != 1 || m.OrderTimes[0] != "Dinner" {
		t.Errorf("order times = %v, want [Dinner]", m.OrderTimes)
	}
}

func TestMaterializeComprehensiveMenu(t *testing.T) {
	menu := &models.MenuOption{
		Name: "Complete Family Combo", Price: 5000, MenuItemRef: "m4",
		HasBreakfast: true, HasLunch: true, HasDinner: true,
		IsComprehensiveMenu: true,
		MealTypes: &models.MealTypeItems{
			Breakfast: []models.SubItem{{ID: "b1", Name: "Poha"}},
			Lunch:     []models.SubItem{{ID: "l1", Name: "Dal Tadka"}, {ID: "l2", Name: "Jeera Rice"}},
			Dinner:    []models.SubItem{{ID: "d1", Name: "Khichdi"}},
		},
	}
	cfg := &models.OrderConfiguration{
		OrderMode:         models.OrderModeSubscription,
		Menu:              menu,
		Classification:    models.Classification{Mode: models.FulfilmentComprehensiveMenu},
		SelectedDates:     consecutiveDates(date(2024, time.January, 10), 30),
		SkipMeals:         models.SkipSelections{"2024-01-11": {Lunch: true}},
		DeliveryLocations: models.DeliveryLocations{Full: ref("home")},
	}

	m, err := Materialize(cfg)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	// a fixed bundle: sub-items once each, untouched by skips or dates
	if len(m.OrderItems) != 4 {
		t.Fatalf("items = %d, want 4 sub-items", len(m.OrderItems))
	}
	for _, item := range m.OrderItems {
		if item.Quantity != 1 {
			t.Errorf("%s quantity = %d, want 1", item.Name, item.Quantity)
		}
	}
	if m.TotalPrice != 5000 {
		t.Errorf("total = %.2f, want bundle price", m.TotalPrice)
	}
	if TotalItems(cfg) != 4 {
		t.Errorf("TotalItems = %d, want 4", TotalItems(cfg))
	}
}

func TestMaterializeDailyFlexible(t *testing.T) {
	d1 := date(2024, time.January, 10)
	d2 := date(2024, time.January, 11)
	lunchMenu := &models.MenuOption{Name: "Veg Thali", Price: 150, MenuItemRef: "t1", HasLunch: true}
	fullMenu := &models.MenuOption{Name: "Deluxe Thali", Price: 260, MenuItemRef: "t2", HasLunch: true, HasDinner: true}

	cfg := &models.OrderConfiguration{
		OrderMode:     models.OrderModeDailyFlexible,
		Menu:          lunchMenu,
		SelectedDates: []models.CalendarDate{d1, d2},
		DateMenuSelections: map[string]*models.MenuOption{
			d1.Key(): lunchMenu,
			d2.Key(): fullMenu,
		},
		DeliveryLocations: models.DeliveryLocations{Full: ref("home")},
	}

	m, err := Materialize(cfg)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	if m.TotalPrice != 410 {
		t.Errorf("total = %.2f, want 150+260", m.TotalPrice)
	}
	if len(m.OrderItems) != 3 {
		t.Errorf("items = %d, want 3 across both dates", len(m.OrderItems))
	}
}

func TestMaterializeDailyFlexibleUnassignedDate(t *testing.T) {
	d1 := date(2024, time.January, 10)
	d2 := date(2024, time.January, 11)
	menu := &models.MenuOption{Name: "Veg Thali", Price: 150, HasLunch: true}

	cfg := &models.OrderConfiguration{
		OrderMode:          models.OrderModeDailyFlexible,
		Menu:               menu,
		SelectedDates:      []models.CalendarDate{d1, d2},
		DateMenuSelections: map[string]*models.MenuOption{d1.Key(): menu},
	}

	_, err := Materialize(cfg)
	var unassigned *UnassignedFlexibleDateError
	if !errors.As(err, &unassigned) {
		t.Fatalf("err = %v, want UnassignedFlexibleDateError", err)
	}
	if !unassigned.Date.Equal(d2) {
		t.Errorf("offending date = %v, want %v", unassigned.Date, d2)
	}
}
