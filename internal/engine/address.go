package engine

import "github.com/rasoihub/tiffinbox/internal/models"

// ResolveAddress returns the effective delivery address for a meal
// slot: the slot's own address when set, otherwise the primary. An
// unset primary propagates as an empty ref for the validation gate to
// catch; resolution never invents an address.
func ResolveAddress(slot models.MealSlot, locations models.DeliveryLocations) models.AddressRef {
	if ref := locations.Get(slot); !ref.Empty() {
		return ref
	}
	return locations.Full
}

// IsAddressSatisfied encodes the mode-specific address requirement.
// The requirement is deliberately stricter than the resolution
// fallback: a single-meal item must have its own slot address even
// though resolution would fall back to the primary, and a daily-rate
// item needs a dedicated address for every meal it offers.
func IsAddressSatisfied(cls models.Classification, menu *models.MenuOption, locations models.DeliveryLocations) bool {
	switch cls.Mode {
	case models.FulfilmentSingleMealItem:
		return !locations.Get(cls.Slot).Empty()
	case models.FulfilmentDailyRateItem:
		for _, slot := range menu.OfferedSlots() {
			if locations.Get(slot).Empty() {
				return false
			}
		}
		return true
	default:
		// Comprehensive and regular menus accept the primary address or
		// any meal-specific one; unset slots resolve to the primary.
		return locations.AnySet()
	}
}
