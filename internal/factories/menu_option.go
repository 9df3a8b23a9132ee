package factories

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/rasoihub/tiffinbox/internal/models"
)

var fake = faker.New()

type MenuOptionFactory struct{}

var planThemes = []string{
	"Veg Thali", "Executive Thali", "Home Style", "North Indian",
	"South Indian", "Protein Power", "Diet Special", "Family Pack",
	"Office Tiffin", "Deluxe",
}

var singleMealNames = []string{
	"Breakfast Only Plan", "Morning Breakfast Box", "Office Lunch Box",
	"Lunch Only Plan", "Dinner Only Plan", "Light Dinner Box",
}

var bundleDishes = map[models.MealSlot][]string{
	models.SlotBreakfast: {"Idli Sambar", "Poha", "Masala Dosa", "Upma", "Paratha with Curd"},
	models.SlotLunch:     {"Dal Tadka", "Jeera Rice", "Paneer Butter Masala", "Roti Basket", "Veg Pulao"},
	models.SlotDinner:    {"Chapati with Sabzi", "Khichdi", "Mix Veg Curry", "Curd Rice", "Dal Fry"},
}

// CreateMenuOption generates one plan of a random fulfilment shape:
// regular subscription plans, daily-rate items, single-meal plans and
// comprehensive bundles all appear in the fake catalog. Plan names use
// the configured keyword table's vocabulary so the generated catalog
// lands in the classifier's rules.
func (mf *MenuOptionFactory) CreateMenuOption(config *models.Config) *models.MenuOption {
	periods := planPeriodsFrom(config)
	switch rand.Intn(5) {
	case 0:
		return mf.createSingleMealPlan()
	case 1:
		return mf.createComprehensiveMenu()
	case 2:
		return mf.createDailyRateItem(periods)
	default:
		return mf.createRegularPlan(periods)
	}
}

// planPeriodsFrom derives the period vocabulary from the first keyword
// of each configured menu-type rule, plus a full-week form that matches
// no rule and so yields manual selection.
func planPeriodsFrom(config *models.Config) []string {
	var periods []string
	for _, rule := range config.MenuTypeRulesOrDefault() {
		if len(rule.Keywords) > 0 {
			periods = append(periods, titleCase(rule.Keywords[0]))
		}
	}
	return append(periods, "Full Week")
}

func titleCase(s string) string {
	out := []byte(s)
	up := true
	for i, c := range out {
		if up && 'a' <= c && c <= 'z' {
			out[i] = c - ('a' - 'A')
		}
		up = c == ' ' || c == '-'
	}
	return string(out)
}

func (mf *MenuOptionFactory) createRegularPlan(periods []string) *models.MenuOption {
	period := periods[rand.Intn(len(periods))]
	menu := mf.base(fmt.Sprintf("%s %s Plan", period, planThemes[rand.Intn(len(planThemes))]))
	menu.Price = fake.Float64(0, 800, 4500)
	mf.assignMeals(menu, rand.Intn(3)+1)
	return menu
}

func (mf *MenuOptionFactory) createDailyRateItem(periods []string) *models.MenuOption {
	period := periods[rand.Intn(len(periods))]
	menu := mf.base(fmt.Sprintf("%s %s", period, planThemes[rand.Intn(len(planThemes))]))
	menu.IsDailyRateItem = true
	menu.Price = fake.Float64(0, 80, 250)
	mf.assignMeals(menu, rand.Intn(2)+1)
	return menu
}

func (mf *MenuOptionFactory) createSingleMealPlan() *models.MenuOption {
	menu := mf.base(singleMealNames[rand.Intn(len(singleMealNames))])
	menu.Price = fake.Float64(0, 400, 2500)
	name := strings.ToLower(menu.Name)
	menu.HasBreakfast = strings.Contains(name, "breakfast")
	menu.HasLunch = strings.Contains(name, "lunch")
	menu.HasDinner = strings.Contains(name, "dinner")
	return menu
}

func (mf *MenuOptionFactory) createComprehensiveMenu() *models.MenuOption {
	menu := mf.base(fmt.Sprintf("Complete %s Combo", planThemes[rand.Intn(len(planThemes))]))
	menu.IsComprehensiveMenu = true
	menu.Price = fake.Float64(0, 2000, 9000)
	menu.HasBreakfast = true
	menu.HasLunch = true
	menu.HasDinner = true
	menu.MealTypes = &models.MealTypeItems{
		Breakfast: mf.subItems(models.SlotBreakfast),
		Lunch:     mf.subItems(models.SlotLunch),
		Dinner:    mf.subItems(models.SlotDinner),
	}
	return menu
}

func (mf *MenuOptionFactory) base(name string) *models.MenuOption {
	return &models.MenuOption{
		ID:          cuid.New(),
		Name:        name,
		MenuItemRef: cuid.New(),
		Categories:  []string{fake.Lorem().Word(), "subscription"},
	}
}

func (mf *MenuOptionFactory) assignMeals(menu *models.MenuOption, count int) {
	slots := append([]models.MealSlot(nil), models.MealSlots...)
	rand.Shuffle(len(slots), func(i, j int) { slots[i], slots[j] = slots[j], slots[i] })
	for _, slot := range slots[:count] {
		switch slot {
		case models.SlotBreakfast:
			menu.HasBreakfast = true
		case models.SlotLunch:
			menu.HasLunch = true
		case models.SlotDinner:
			menu.HasDinner = true
		}
	}
}

func (mf *MenuOptionFactory) subItems(slot models.MealSlot) []models.SubItem {
	dishes := bundleDishes[slot]
	count := rand.Intn(2) + 1
	items := make([]models.SubItem, count)
	for i := 0; i < count; i++ {
		items[i] = models.SubItem{
			ID:    cuid.New(),
			Name:  dishes[rand.Intn(len(dishes))],
			Price: fake.Float64(0, 40, 180),
		}
	}
	return items
}
