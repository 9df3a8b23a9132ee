package engine

import "github.com/rasoihub/tiffinbox/internal/models"

// IsSkipped looks up the skip overlay for one date and slot. Absent
// entries mean not skipped.
func IsSkipped(skips models.SkipSelections, date models.CalendarDate, slot models.MealSlot) bool {
	if skips == nil {
		return false
	}
	return skips[date.Key()].Get(slot)
}

// EffectiveQuantity counts the selected dates on which the menu offers
// the slot and the customer has not skipped it.
func EffectiveQuantity(menu *models.MenuOption, slot models.MealSlot, dates []models.CalendarDate, skips models.SkipSelections) int {
	if !menu.Offers(slot) {
		return 0
	}
	n := 0
	for _, d := range dates {
		if !IsSkipped(skips, d, slot) {
			n++
		}
	}
	return n
}
