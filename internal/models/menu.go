package models

// MealSlot is one addressable, skippable delivery unit within a day.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"

	// SlotFull keys the primary address that meal slots fall back to.
	SlotFull MealSlot = "full"
)

// MealSlots lists the deliverable slots in serving order.
var MealSlots = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner}

// SubItem is one pre-enumerated dish inside a comprehensive bundle.
type SubItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// MealTypeItems enumerates the fixed bundle contents of a comprehensive
// menu, keyed by meal type.
type MealTypeItems struct {
	Breakfast []SubItem `json:"breakfast"`
	Lunch     []SubItem `json:"lunch"`
	Dinner    []SubItem `json:"dinner"`
}

func (m MealTypeItems) Count() int {
	return len(m.Breakfast) + len(m.Lunch) + len(m.Dinner)
}

// MenuOption is a sellable plan as served by the catalog. Immutable once
// fetched; the classification flags are pre-computed by the catalog
// service, not inferred here.
type MenuOption struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Price               float64        `json:"price"`
	DayOfWeek           string         `json:"day_of_week,omitempty"`
	Categories          []string       `json:"categories"`
	HasBreakfast        bool           `json:"has_breakfast"`
	HasLunch            bool           `json:"has_lunch"`
	HasDinner           bool           `json:"has_dinner"`
	MenuItemRef         string         `json:"menu_item_ref"`
	IsComprehensiveMenu bool           `json:"is_comprehensive_menu"`
	IsDailyRateItem     bool           `json:"is_daily_rate_item"`
	MealTypes           *MealTypeItems `json:"meal_types,omitempty"`
}

// Offers reports whether the menu serves the given meal slot.
func (m *MenuOption) Offers(slot MealSlot) bool {
	switch slot {
	case SlotBreakfast:
		return m.HasBreakfast
	case SlotLunch:
		return m.HasLunch
	case SlotDinner:
		return m.HasDinner
	}
	return false
}

// OfferedSlots returns the meal slots the menu serves, in serving order.
func (m *MenuOption) OfferedSlots() []MealSlot {
	var slots []MealSlot
	for _, slot := range MealSlots {
		if m.Offers(slot) {
			slots = append(slots, slot)
		}
	}
	return slots
}

// AutoSelectionPolicy is the rule by which one clicked date expands into
// a full delivery-date set. Days of zero means manual selection only.
type AutoSelectionPolicy struct {
	Days int    `json:"days"`
	Mode string `json:"mode"` // SelectionTypeConsecutive or SelectionTypeWeekdaysOnly
}

func (p AutoSelectionPolicy) Manual() bool {
	return p.Days == 0
}
