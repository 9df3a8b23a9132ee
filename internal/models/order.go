package models

import "time"

// SkipFlags marks the meals a customer opts out of on one date.
type SkipFlags struct {
	Breakfast bool `json:"breakfast"`
	Lunch     bool `json:"lunch"`
	Dinner    bool `json:"dinner"`
}

func (f SkipFlags) Get(slot MealSlot) bool {
	switch slot {
	case SlotBreakfast:
		return f.Breakfast
	case SlotLunch:
		return f.Lunch
	case SlotDinner:
		return f.Dinner
	}
	return false
}

func (f *SkipFlags) Set(slot MealSlot, skipped bool) {
	switch slot {
	case SlotBreakfast:
		f.Breakfast = skipped
	case SlotLunch:
		f.Lunch = skipped
	case SlotDinner:
		f.Dinner = skipped
	}
}

// SkipSelections is the per-date skip overlay, keyed by ISO date string.
type SkipSelections map[string]SkipFlags

// Classification is the engine's verdict on a selected menu. Slot is set
// only for single-meal items.
type Classification struct {
	Mode string   `json:"mode"`
	Slot MealSlot `json:"slot,omitempty"`
}

// OrderItem is one concrete line item to deliver.
type OrderItem struct {
	MenuItemRef string   `json:"menu_item_ref"`
	Name        string   `json:"name"`
	MealType    MealSlot `json:"meal_type"`
	Quantity    int      `json:"quantity"`
	AddressID   string   `json:"address_id,omitempty"`
}

// OrderConfiguration is the assembled booking, built when the customer
// reaches the review step and consumed exactly once by the payment
// collaborator. Never mutated after submission.
type OrderConfiguration struct {
	ID                 string                 `json:"id"`
	SessionID          string                 `json:"session_id"`
	CustomerID         string                 `json:"customer_id"`
	OrderMode          string                 `json:"order_mode"`
	Menu               *MenuOption            `json:"menu"`
	Classification     Classification         `json:"classification"`
	SelectedDates      []CalendarDate         `json:"selected_dates"`
	DeliveryLocations  DeliveryLocations      `json:"delivery_locations"`
	SkipMeals          SkipSelections         `json:"skip_meals,omitempty"`
	DateMenuSelections map[string]*MenuOption `json:"date_menu_selections,omitempty"`
}

// OrderSubmission is the finalized hand-off to the order/payment
// subsystem: the configuration snapshot plus materialized line items.
type OrderSubmission struct {
	ID            string              `json:"id"`
	Configuration *OrderConfiguration `json:"configuration"`
	OrderItems    []OrderItem         `json:"order_items"`
	OrderTimes    []string            `json:"order_times"`
	TotalPrice    float64             `json:"total_price"`
	Warnings      []string            `json:"warnings,omitempty"`
	Status        string              `json:"status"`
	SubmittedAt   time.Time           `json:"submitted_at"`
}
