package engine

import (
	"testing"

	"github.com/rasoihub/tiffinbox/internal/models"
)

func ref(id string) models.AddressRef {
	return models.AddressRef{ID: id, DisplayName: id}
}

func TestResolveAddressFallsBackToPrimary(t *testing.T) {
	locations := models.DeliveryLocations{
		Full:  ref("home"),
		Lunch: ref("office"),
	}

	if got := ResolveAddress(models.SlotLunch, locations); got.ID != "office" {
		t.Errorf("lunch resolved to %q, want office", got.ID)
	}
	for _, slot := range []models.MealSlot{models.SlotBreakfast, models.SlotDinner} {
		if got := ResolveAddress(slot, locations); got.ID != "home" {
			t.Errorf("%s resolved to %q, want primary fallback", slot, got.ID)
		}
	}
}

func TestResolveAddressWithNothingSet(t *testing.T) {
	var locations models.DeliveryLocations
	if got := ResolveAddress(models.SlotDinner, locations); !got.Empty() {
		t.Errorf("resolved to %q, want empty for the gate to catch", got.ID)
	}
}

func TestSingleMealRequiresOwnSlotAddress(t *testing.T) {
	cls := models.Classification{Mode: models.FulfilmentSingleMealItem, Slot: models.SlotDinner}
	menu := &models.MenuOption{Name: "Dinner Only Plan", HasDinner: true}

	// the primary alone does not satisfy a single-meal item, even
	// though resolution would fall back to it
	onlyPrimary := models.DeliveryLocations{Full: ref("home")}
	if IsAddressSatisfied(cls, menu, onlyPrimary) {
		t.Error("primary address must not satisfy a single-meal item")
	}

	onlyDinner := models.DeliveryLocations{Dinner: ref("hostel")}
	if !IsAddressSatisfied(cls, menu, onlyDinner) {
		t.Error("dedicated dinner address should satisfy")
	}
}

func TestDailyRateRequiresEveryOfferedSlot(t *testing.T) {
	cls := models.Classification{Mode: models.FulfilmentDailyRateItem}
	menu := &models.MenuOption{Name: "Week-Day Deluxe", HasBreakfast: true, HasLunch: true, IsDailyRateItem: true}

	partial := models.DeliveryLocations{Full: ref("home"), Breakfast: ref("home")}
	if IsAddressSatisfied(cls, menu, partial) {
		t.Error("missing lunch address should not satisfy a daily-rate item")
	}

	complete := models.DeliveryLocations{Breakfast: ref("home"), Lunch: ref("office")}
	if !IsAddressSatisfied(cls, menu, complete) {
		t.Error("all offered slots assigned should satisfy")
	}

	// dinner is not offered, so it is not required
	if menu.Offers(models.SlotDinner) {
		t.Fatal("fixture wrong: dinner should not be offered")
	}
}

func TestRegularMenuAcceptsPrimaryOrAnySlot(t *testing.T) {
	cls := models.Classification{Mode: models.FulfilmentRegularMenu}
	menu := &models.MenuOption{Name: "Weekly Veg Plan", HasLunch: true, HasDinner: true}

	if IsAddressSatisfied(cls, menu, models.DeliveryLocations{}) {
		t.Error("no address at all should not satisfy")
	}
	if !IsAddressSatisfied(cls, menu, models.DeliveryLocations{Full: ref("home")}) {
		t.Error("primary alone should satisfy a regular menu")
	}
	if !IsAddressSatisfied(cls, menu, models.DeliveryLocations{Lunch: ref("office")}) {
		t.Error("one meal slot alone should satisfy order-level validation")
	}
}
