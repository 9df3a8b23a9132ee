package models

import (
	"fmt"
	"strings"
)

type Address struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	HouseName  string `json:"housename,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Pincode    string `json:"pincode"`
}

// DisplayName renders the address book's display string.
func (a *Address) DisplayName() string {
	parts := make([]string, 0, 2)
	if a.HouseName != "" {
		parts = append(parts, a.HouseName)
	}
	parts = append(parts, a.Street)
	return fmt.Sprintf("%s, %s - %s", strings.Join(parts, ", "), a.City, a.Pincode)
}

// AddressRef is an opaque address reference plus its cached display
// name, as held in a booking session.
type AddressRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

func (r AddressRef) Empty() bool {
	return r.ID == ""
}

func RefOf(a *Address) AddressRef {
	return AddressRef{ID: a.ID, DisplayName: a.DisplayName()}
}

// DeliveryLocations maps meal slots to delivery addresses. Full is the
// primary address; unset meal slots fall back to it at resolution time,
// never at storage time.
type DeliveryLocations struct {
	Full      AddressRef `json:"full"`
	Breakfast AddressRef `json:"breakfast"`
	Lunch     AddressRef `json:"lunch"`
	Dinner    AddressRef `json:"dinner"`
}

func (d DeliveryLocations) Get(slot MealSlot) AddressRef {
	switch slot {
	case SlotBreakfast:
		return d.Breakfast
	case SlotLunch:
		return d.Lunch
	case SlotDinner:
		return d.Dinner
	case SlotFull:
		return d.Full
	}
	return AddressRef{}
}

func (d *DeliveryLocations) Set(slot MealSlot, ref AddressRef) {
	switch slot {
	case SlotBreakfast:
		d.Breakfast = ref
	case SlotLunch:
		d.Lunch = ref
	case SlotDinner:
		d.Dinner = ref
	case SlotFull:
		d.Full = ref
	}
}

// AnySet reports whether any address, primary included, is assigned.
func (d DeliveryLocations) AnySet() bool {
	return !d.Full.Empty() || !d.Breakfast.Empty() || !d.Lunch.Empty() || !d.Dinner.Empty()
}
