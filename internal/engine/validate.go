package engine

import (
	"context"
	"fmt"

	"github.com/rasoihub/tiffinbox/internal/models"
)

// StockChecker is the remaining-quantity collaborator. Implementations
// live outside the engine.
type StockChecker interface {
	Quantity(ctx context.Context, productID string) (int, error)
}

// Gate runs the pre-submission checks in order, short-circuiting on the
// first failure. A nil StockChecker skips the stock check.
type Gate struct {
	classifier *Classifier
	stock      StockChecker
	lowStock   int
}

func NewGate(classifier *Classifier, stock StockChecker, lowStockLevel int) *Gate {
	if lowStockLevel <= 0 {
		lowStockLevel = 5
	}
	return &Gate{classifier: classifier, stock: stock, lowStock: lowStockLevel}
}

// Validate checks the assembled configuration. It returns the first
// violated rule; warnings (low stock) never block submission.
func (g *Gate) Validate(ctx context.Context, cfg *models.OrderConfiguration) ([]string, error) {
	if cfg.Menu == nil {
		return nil, ErrNoMenuSelected
	}
	if len(cfg.SelectedDates) == 0 {
		return nil, ErrNoDatesSelected
	}

	if !IsAddressSatisfied(cfg.Classification, cfg.Menu, cfg.DeliveryLocations) {
		return nil, &MissingRequiredAddressError{
			Mode: cfg.Classification.Mode,
			Slot: cfg.Classification.Slot,
		}
	}

	if g.classifier.IsWeekdayRestricted(cfg.Menu) {
		var offending []models.CalendarDate
		for _, d := range cfg.SelectedDates {
			if d.IsWeekend() {
				offending = append(offending, d)
			}
		}
		if len(offending) > 0 {
			return nil, &WeekdayViolationError{Dates: offending}
		}
	}

	if cfg.OrderMode == models.OrderModeDailyFlexible {
		for _, d := range sortedDates(cfg.SelectedDates) {
			if sel, ok := cfg.DateMenuSelections[d.Key()]; !ok || sel == nil {
				return nil, &UnassignedFlexibleDateError{Date: d}
			}
		}
	}

	if g.stock == nil {
		return nil, nil
	}
	qty, err := g.stock.Quantity(ctx, cfg.Menu.MenuItemRef)
	if err != nil {
		return nil, fmt.Errorf("stock check failed: %w", err)
	}
	if qty <= 0 {
		return nil, &OutOfStockError{ProductID: cfg.Menu.MenuItemRef, Available: qty}
	}

	var warnings []string
	if qty < g.lowStock {
		warnings = append(warnings, fmt.Sprintf("only %d left of %s", qty, cfg.Menu.Name))
	}
	return warnings, nil
}
