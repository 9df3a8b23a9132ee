package models

const (
	OrderModeSubscription  = "subscription"
	OrderModeDailyFlexible = "daily_flexible"

	SelectionTypeConsecutive  = "consecutive"
	SelectionTypeWeekdaysOnly = "weekdays_only"

	FulfilmentComprehensiveMenu = "comprehensive_menu"
	FulfilmentDailyRateItem     = "daily_rate_item"
	FulfilmentSingleMealItem    = "single_meal_item"
	FulfilmentRegularMenu       = "regular_menu"

	SubmissionStatusPending   = "pending_payment"
	SubmissionStatusSubmitted = "submitted"
)
