package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rasoihub/tiffinbox/internal/models"
)

// Validation failures are user-recoverable: the gate returns the first
// violated rule and the caller surfaces it. None of these cross the
// engine boundary as faults.
var (
	ErrNoMenuSelected  = errors.New("no menu selected")
	ErrNoDatesSelected = errors.New("no delivery dates selected")

	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrAlreadySubmitted   = errors.New("configuration already submitted")
)

type MissingRequiredAddressError struct {
	Mode string
	Slot models.MealSlot
}

func (e *MissingRequiredAddressError) Error() string {
	if e.Slot != "" {
		return fmt.Sprintf("missing required %s address", e.Slot)
	}
	return fmt.Sprintf("missing required delivery address for %s", e.Mode)
}

type WeekdayViolationError struct {
	Dates []models.CalendarDate
}

func (e *WeekdayViolationError) Error() string {
	keys := make([]string, len(e.Dates))
	for i, d := range e.Dates {
		keys[i] = d.Key()
	}
	return fmt.Sprintf("weekday-only plan cannot deliver on: %s", strings.Join(keys, ", "))
}

type UnassignedFlexibleDateError struct {
	Date models.CalendarDate
}

func (e *UnassignedFlexibleDateError) Error() string {
	return fmt.Sprintf("no menu assigned for %s", e.Date.Key())
}

type OutOfStockError struct {
	ProductID string
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("product %s is out of stock", e.ProductID)
}
