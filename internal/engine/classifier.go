package engine

import (
	"strings"

	"github.com/rasoihub/tiffinbox/internal/models"
)

// Classifier inspects a selected menu's name and flags to decide its
// fulfilment mode, auto-selection policy and weekday restriction. The
// keyword tables are injected at construction and never mutated, so a
// Classifier is safe to share across sessions.
//
// Name-based detection is a deliberate soft-classification mechanism:
// the catalog owns the comprehensive/daily-rate flags, the engine only
// derives what the catalog cannot know from free text.
type Classifier struct {
	rules            []models.MenuTypeRule
	mealKeywords     models.MealKeywords
	weekdayKeywords  []string
	fullWeekKeywords []string
}

func NewClassifier(cfg *models.Config) *Classifier {
	return &Classifier{
		rules:            cfg.MenuTypeRulesOrDefault(),
		mealKeywords:     cfg.MealKeywordsOrDefault(),
		weekdayKeywords:  cfg.WeekdayKeywordsOrDefault(),
		fullWeekKeywords: cfg.FullWeekKeywordsOrDefault(),
	}
}

func containsAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(name, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Classify returns the menu's fulfilment mode. Single-meal naming takes
// precedence over the catalog flags; the flags are mutually exclusive
// upstream, comprehensive wins if the catalog ever sends both.
func (c *Classifier) Classify(menu *models.MenuOption) models.Classification {
	name := strings.ToLower(menu.Name)

	var matched []models.MealSlot
	if containsAny(name, c.mealKeywords.Breakfast) {
		matched = append(matched, models.SlotBreakfast)
	}
	if containsAny(name, c.mealKeywords.Lunch) {
		matched = append(matched, models.SlotLunch)
	}
	if containsAny(name, c.mealKeywords.Dinner) {
		matched = append(matched, models.SlotDinner)
	}
	if len(matched) == 1 {
		return models.Classification{Mode: models.FulfilmentSingleMealItem, Slot: matched[0]}
	}

	if menu.IsComprehensiveMenu {
		return models.Classification{Mode: models.FulfilmentComprehensiveMenu}
	}
	if menu.IsDailyRateItem {
		return models.Classification{Mode: models.FulfilmentDailyRateItem}
	}
	return models.Classification{Mode: models.FulfilmentRegularMenu}
}

// AutoSelectionPolicy walks the keyword table in declared order and
// returns the first rule whose keyword the lower-cased menu name
// contains. No match means manual selection.
func (c *Classifier) AutoSelectionPolicy(menu *models.MenuOption) models.AutoSelectionPolicy {
	name := strings.ToLower(menu.Name)
	for _, rule := range c.rules {
		if containsAny(name, rule.Keywords) {
			return models.AutoSelectionPolicy{Days: rule.AutoDays, Mode: rule.SelectionType}
		}
	}
	return models.AutoSelectionPolicy{Days: 0, Mode: models.SelectionTypeConsecutive}
}

// IsWeekdayRestricted reports whether the menu is a weekday-only plan.
// A full-week keyword in the name overrides the restriction.
func (c *Classifier) IsWeekdayRestricted(menu *models.MenuOption) bool {
	name := strings.ToLower(menu.Name)
	if containsAny(name, c.fullWeekKeywords) {
		return false
	}
	if menu.DayOfWeek != "" {
		return true
	}
	return containsAny(name, c.weekdayKeywords)
}
