package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lucsky/cuid"
	"github.com/rasoihub/tiffinbox/internal/models"
)

// Submitter hands a finalized submission to the order/payment
// subsystem. Persistence, payment receipts and status transitions
// happen on the other side of this boundary.
type Submitter interface {
	Submit(ctx context.Context, submission *models.OrderSubmission) error
}

// Session holds the state of one booking flow from menu selection to
// submission. All mutations are synchronous UI-event handlers; state is
// discarded on abandonment and frozen after a successful submission.
//
// Both booking flows in the product drive the same session API, which
// is what keeps their configuration semantics from drifting apart.
type Session struct {
	ID         string
	CustomerID string

	classifier *Classifier
	gate       *Gate

	orderMode string
	today     models.CalendarDate

	menu           *models.MenuOption
	classification models.Classification
	policy         models.AutoSelectionPolicy
	dates          SelectedDateSet
	locations      models.DeliveryLocations
	skips          models.SkipSelections
	dateMenus      map[string]*models.MenuOption

	submitting bool
	submitted  bool
}

func NewSession(classifier *Classifier, gate *Gate, customerID, orderMode string, today models.CalendarDate) *Session {
	return &Session{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		classifier: classifier,
		gate:       gate,
		orderMode:  orderMode,
		today:      today,
		skips:      make(models.SkipSelections),
		dateMenus:  make(map[string]*models.MenuOption),
	}
}

// SelectMenu classifies the menu and resets any date-dependent state;
// a new plan starts its selection from scratch.
func (s *Session) SelectMenu(menu *models.MenuOption) {
	s.menu = menu
	s.classification = s.classifier.Classify(menu)
	s.policy = s.classifier.AutoSelectionPolicy(menu)
	s.dates = SelectedDateSet{}
	s.skips = make(models.SkipSelections)
	s.dateMenus = make(map[string]*models.MenuOption)
}

func (s *Session) Menu() *models.MenuOption {
	return s.menu
}

func (s *Session) Classification() models.Classification {
	return s.classification
}

func (s *Session) Policy() models.AutoSelectionPolicy {
	return s.policy
}

// ClickDate applies one calendar click under the active policy.
func (s *Session) ClickDate(d models.CalendarDate) {
	s.dates = SelectDate(s.dates, d, s.policy, s.today)
	s.pruneDateMenus()
}

func (s *Session) ClearDates() {
	s.dates = SelectedDateSet{}
	s.dateMenus = make(map[string]*models.MenuOption)
}

func (s *Session) SelectedDates() []models.CalendarDate {
	return s.dates.Sorted()
}

func (s *Session) SetAddress(slot models.MealSlot, ref models.AddressRef) {
	s.locations.Set(slot, ref)
}

func (s *Session) Locations() models.DeliveryLocations {
	return s.locations
}

// SetSkip flags a meal on one date as skipped. Skipping a meal the
// selected menu does not offer is a no-op, not an error.
func (s *Session) SetSkip(date models.CalendarDate, slot models.MealSlot, skipped bool) {
	if s.orderMode != models.OrderModeDailyFlexible {
		if s.menu == nil || !s.menu.Offers(slot) {
			return
		}
	}
	flags := s.skips[date.Key()]
	flags.Set(slot, skipped)
	s.skips[date.Key()] = flags
}

// AssignDateMenu binds a menu to one selected date in daily-flexible
// mode. The date must already be selected.
func (s *Session) AssignDateMenu(date models.CalendarDate, menu *models.MenuOption) error {
	if s.orderMode != models.OrderModeDailyFlexible {
		return fmt.Errorf("per-date menus only apply in %s mode", models.OrderModeDailyFlexible)
	}
	if !s.dates.Contains(date) {
		return fmt.Errorf("date %s is not selected", date.Key())
	}
	s.dateMenus[date.Key()] = menu
	return nil
}

// pruneDateMenus keeps per-date assignments a subset of the selected
// dates after toggles and re-expansions.
func (s *Session) pruneDateMenus() {
	for key := range s.dateMenus {
		d, err := models.ParseCalendarDate(key)
		if err != nil || !s.dates.Contains(d) {
			delete(s.dateMenus, key)
		}
	}
}

// Configuration snapshots the session for the review step. Each call
// builds a fresh snapshot; edits after review require a new one.
func (s *Session) Configuration() *models.OrderConfiguration {
	cfg := &models.OrderConfiguration{
		ID:                cuid.New(),
		SessionID:         s.ID,
		CustomerID:        s.CustomerID,
		OrderMode:         s.orderMode,
		Menu:              s.menu,
		Classification:    s.classification,
		SelectedDates:     s.dates.Sorted(),
		DeliveryLocations: s.locations,
	}
	if len(s.skips) > 0 {
		cfg.SkipMeals = make(models.SkipSelections, len(s.skips))
		for k, v := range s.skips {
			cfg.SkipMeals[k] = v
		}
	}
	if s.orderMode == models.OrderModeDailyFlexible {
		cfg.DateMenuSelections = make(map[string]*models.MenuOption, len(s.dateMenus))
		for k, v := range s.dateMenus {
			cfg.DateMenuSelections[k] = v
		}
	}
	return cfg
}

// Submit validates, materializes and hands the configuration to the
// submitter. Only one submission may be outstanding, and a session
// submits at most once; edits after a failed attempt are allowed.
func (s *Session) Submit(ctx context.Context, submitter Submitter) (*models.OrderSubmission, error) {
	if s.submitting {
		return nil, ErrSubmissionInFlight
	}
	if s.submitted {
		return nil, ErrAlreadySubmitted
	}

	s.submitting = true
	defer func() { s.submitting = false }()

	cfg := s.Configuration()
	warnings, err := s.gate.Validate(ctx, cfg)
	if err != nil {
		return nil, err
	}

	materialized, err := Materialize(cfg)
	if err != nil {
		return nil, err
	}

	submission := &models.OrderSubmission{
		ID:            cuid.New(),
		Configuration: cfg,
		OrderItems:    materialized.OrderItems,
		OrderTimes:    materialized.OrderTimes,
		TotalPrice:    materialized.TotalPrice,
		Warnings:      warnings,
		Status:        models.SubmissionStatusPending,
		SubmittedAt:   time.Now().UTC(),
	}
	if err := submitter.Submit(ctx, submission); err != nil {
		return nil, fmt.Errorf("submission failed: %w", err)
	}

	submission.Status = models.SubmissionStatusSubmitted
	s.submitted = true
	return submission, nil
}
