package engine

import (
	"strings"

	"github.com/rasoihub/tiffinbox/internal/models"
)

// Materialized is the concrete delivery plan for a configuration: the
// line items to deliver, the meal times they cover, and the total.
type Materialized struct {
	OrderItems []models.OrderItem
	OrderTimes []string
	TotalPrice float64
}

// Materialize turns an assembled configuration into line items and a
// total price according to the menu's fulfilment mode.
//
// Pricing rules differ on purpose: a daily-rate item multiplies by day
// count, everything else is priced flat. Skips reduce delivered
// quantities, never the price.
func Materialize(cfg *models.OrderConfiguration) (*Materialized, error) {
	if cfg.OrderMode == models.OrderModeDailyFlexible {
		return materializeDailyFlexible(cfg)
	}

	menu := cfg.Menu
	dates := cfg.SelectedDates
	dayCount := len(dates)

	m := &Materialized{}
	switch cfg.Classification.Mode {
	case models.FulfilmentComprehensiveMenu:
		// Fixed bundle: every sub-item once, skip matrix and day count
		// do not apply.
		if menu.MealTypes != nil {
			appendBundle(m, models.SlotBreakfast, menu.MealTypes.Breakfast, cfg.DeliveryLocations)
			appendBundle(m, models.SlotLunch, menu.MealTypes.Lunch, cfg.DeliveryLocations)
			appendBundle(m, models.SlotDinner, menu.MealTypes.Dinner, cfg.DeliveryLocations)
		}
		m.OrderTimes = offeredTimes(menu)
		m.TotalPrice = menu.Price

	case models.FulfilmentDailyRateItem:
		for _, slot := range menu.OfferedSlots() {
			m.OrderItems = append(m.OrderItems, models.OrderItem{
				MenuItemRef: menu.MenuItemRef,
				Name:        menu.Name,
				MealType:    slot,
				Quantity:    EffectiveQuantity(menu, slot, dates, cfg.SkipMeals),
				AddressID:   ResolveAddress(slot, cfg.DeliveryLocations).ID,
			})
		}
		m.OrderTimes = offeredTimes(menu)
		m.TotalPrice = menu.Price * float64(dayCount)

	case models.FulfilmentSingleMealItem:
		slot := cfg.Classification.Slot
		m.OrderItems = []models.OrderItem{{
			MenuItemRef: menu.MenuItemRef,
			Name:        menu.Name,
			MealType:    slot,
			Quantity:    dayCount,
			AddressID:   ResolveAddress(slot, cfg.DeliveryLocations).ID,
		}}
		m.OrderTimes = []string{capitalize(string(slot))}
		m.TotalPrice = menu.Price

	default: // regular menu
		for _, slot := range menu.OfferedSlots() {
			m.OrderItems = append(m.OrderItems, models.OrderItem{
				MenuItemRef: menu.MenuItemRef,
				Name:        menu.Name,
				MealType:    slot,
				Quantity:    EffectiveQuantity(menu, slot, dates, cfg.SkipMeals),
				AddressID:   ResolveAddress(slot, cfg.DeliveryLocations).ID,
			})
		}
		m.OrderTimes = offeredTimes(menu)
		m.TotalPrice = menu.Price
	}

	return m, nil
}

// materializeDailyFlexible prices each date by its own assigned menu.
// Every selected date must carry an assignment.
func materializeDailyFlexible(cfg *models.OrderConfiguration) (*Materialized, error) {
	m := &Materialized{}
	seenTimes := make(map[string]bool)

	for _, date := range sortedDates(cfg.SelectedDates) {
		sel, ok := cfg.DateMenuSelections[date.Key()]
		if !ok || sel == nil {
			return nil, &UnassignedFlexibleDateError{Date: date}
		}
		for _, slot := range sel.OfferedSlots() {
			if IsSkipped(cfg.SkipMeals, date, slot) {
				continue
			}
			m.OrderItems = append(m.OrderItems, models.OrderItem{
				MenuItemRef: sel.MenuItemRef,
				Name:        sel.Name,
				MealType:    slot,
				Quantity:    1,
				AddressID:   ResolveAddress(slot, cfg.DeliveryLocations).ID,
			})
			t := capitalize(string(slot))
			if !seenTimes[t] {
				seenTimes[t] = true
				m.OrderTimes = append(m.OrderTimes, t)
			}
		}
		m.TotalPrice += sel.Price
	}
	return m, nil
}

// TotalItems is the logical item count shown at review: a comprehensive
// menu counts its bundle, a daily-rate item counts meals times days,
// every other mode is one selected plan regardless of day count.
func TotalItems(cfg *models.OrderConfiguration) int {
	switch cfg.Classification.Mode {
	case models.FulfilmentComprehensiveMenu:
		if cfg.Menu.MealTypes == nil {
			return 0
		}
		return cfg.Menu.MealTypes.Count()
	case models.FulfilmentDailyRateItem:
		return len(cfg.Menu.OfferedSlots()) * len(cfg.SelectedDates)
	default:
		return 1
	}
}

func appendBundle(m *Materialized, slot models.MealSlot, items []models.SubItem, locations models.DeliveryLocations) {
	addressID := ResolveAddress(slot, locations).ID
	for _, item := range items {
		m.OrderItems = append(m.OrderItems, models.OrderItem{
			MenuItemRef: item.ID,
			Name:        item.Name,
			MealType:    slot,
			Quantity:    1,
			AddressID:   addressID,
		})
	}
}

func offeredTimes(menu *models.MenuOption) []string {
	var times []string
	for _, slot := range menu.OfferedSlots() {
		times = append(times, capitalize(string(slot)))
	}
	return times
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sortedDates(dates []models.CalendarDate) []models.CalendarDate {
	return NewSelectedDateSet(dates...).Sorted()
}
