package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rasoihub/tiffinbox/internal/models"
)

// --------------------------------------------------
// Mock stock collaborator
// --------------------------------------------------

type mockStock struct {
	quantities map[string]int
	err        error
}

func (m *mockStock) Quantity(ctx context.Context, productID string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.quantities[productID], nil
}

func testGate(stock StockChecker) *Gate {
	return NewGate(testClassifier(), stock, 5)
}

func validConfig() *models.OrderConfiguration {
	menu := &models.MenuOption{
		Name: "Weekly Veg Plan", Price: 1500, MenuItemRef: "m1",
		HasLunch: true, HasDinner: true,
	}
	return &models.OrderConfiguration{
		OrderMode:         models.OrderModeSubscription,
		Menu:              menu,
		Classification:    models.Classification{Mode: models.FulfilmentRegularMenu},
		SelectedDates:     consecutiveDates(date(2024, time.January, 15), 7),
		DeliveryLocations: models.DeliveryLocations{Full: ref("home")},
	}
}

func TestValidatePasses(t *testing.T) {
	gate := testGate(&mockStock{quantities: map[string]int{"m1": 100}})

	warnings, err := gate.Validate(context.Background(), validConfig())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}

func TestValidateNoMenu(t *testing.T) {
	gate := testGate(nil)
	cfg := validConfig()
	cfg.Menu = nil

	if _, err := gate.Validate(context.Background(), cfg); !errors.Is(err, ErrNoMenuSelected) {
		t.Errorf("err = %v, want ErrNoMenuSelected", err)
	}
}

func TestValidateNoDates(t *testing.T) {
	gate := testGate(nil)
	cfg := validConfig()
	cfg.SelectedDates = nil

	if _, err := gate.Validate(context.Background(), cfg); !errors.Is(err, ErrNoDatesSelected) {
		t.Errorf("err = %v, want ErrNoDatesSelected", err)
	}
}

func TestValidateMissingAddress(t *testing.T) {
	gate := testGate(nil)
	cfg := validConfig()
	cfg.DeliveryLocations = models.DeliveryLocations{}

	_, err := gate.Validate(context.Background(), cfg)
	var missing *MissingRequiredAddressError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingRequiredAddressError", err)
	}
}

func TestValidateWeekdayViolation(t *testing.T) {
	gate := testGate(&mockStock{quantities: map[string]int{"m2": 50}})

	menu := &models.MenuOption{
		Name: "Week-Day Deluxe", Price: 120, MenuItemRef: "m2",
		HasBreakfast: true, HasLunch: true, IsDailyRateItem: true,
	}
	saturday := date(2024, time.January, 13)
	cfg := &models.OrderConfiguration{
		OrderMode:      models.OrderModeSubscription,
		Menu:           menu,
		Classification: models.Classification{Mode: models.FulfilmentDailyRateItem},
		SelectedDates:  append(consecutiveDates(date(2024, time.January, 8), 5), saturday),
		DeliveryLocations: models.DeliveryLocations{
			Breakfast: ref("home"), Lunch: ref("office"),
		},
	}

	_, err := gate.Validate(context.Background(), cfg)
	var violation *WeekdayViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("err = %v, want WeekdayViolationError", err)
	}
	if len(violation.Dates) != 1 || !violation.Dates[0].Equal(saturday) {
		t.Errorf("offending dates = %v, want the Saturday", violation.Dates)
	}
}

func TestValidateUnassignedFlexibleDate(t *testing.T) {
	gate := testGate(nil)

	cfg := validConfig()
	cfg.OrderMode = models.OrderModeDailyFlexible
	cfg.DateMenuSelections = map[string]*models.MenuOption{
		cfg.SelectedDates[0].Key(): cfg.Menu,
	}

	_, err := gate.Validate(context.Background(), cfg)
	var unassigned *UnassignedFlexibleDateError
	if !errors.As(err, &unassigned) {
		t.Fatalf("err = %v, want UnassignedFlexibleDateError", err)
	}
	if !unassigned.Date.Equal(cfg.SelectedDates[1]) {
		t.Errorf("offending date = %v, want first unassigned", unassigned.Date)
	}
}

func TestValidateOutOfStock(t *testing.T) {
	gate := testGate(&mockStock{quantities: map[string]int{"m1": 0}})

	_, err := gate.Validate(context.Background(), validConfig())
	var oos *OutOfStockError
	if !errors.As(err, &oos) {
		t.Fatalf("err = %v, want OutOfStockError", err)
	}
	if oos.ProductID != "m1" {
		t.Errorf("product = %q", oos.ProductID)
	}
}

func TestValidateLowStockWarns(t *testing.T) {
	gate := testGate(&mockStock{quantities: map[string]int{"m1": 3}})

	warnings, err := gate.Validate(context.Background(), validConfig())
	if err != nil {
		t.Fatalf("low stock must not block: %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one low-stock warning", warnings)
	}
}

func TestValidateStockCheckFailure(t *testing.T) {
	gate := testGate(&mockStock{err: errors.New("stock service down")})

	if _, err := gate.Validate(context.Background(), validConfig()); err == nil {
		t.Error("expected error when the stock collaborator fails")
	}
}

func TestValidateOrderShortCircuits(t *testing.T) {
	// everything is wrong; the first rule in order must be reported
	gate := testGate(nil)
	cfg := &models.OrderConfiguration{OrderMode: models.OrderModeDailyFlexible}

	if _, err := gate.Validate(context.Background(), cfg); !errors.Is(err, ErrNoMenuSelected) {
		t.Errorf("err = %v, want the menu check first", err)
	}
}
