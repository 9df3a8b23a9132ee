package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rasoihub/tiffinbox/internal/models"
)

type MenuOptionRepository struct {
	pool *pgxpool.Pool
}

func NewMenuOptionRepository(pool *pgxpool.Pool) *MenuOptionRepository {
	return &MenuOptionRepository{pool: pool}
}

func mealTypesJSON(menu *models.MenuOption) ([]byte, error) {
	if menu.MealTypes == nil {
		return nil, nil
	}
	return json.Marshal(menu.MealTypes)
}

func (r *MenuOptionRepository) BulkCreate(ctx context.Context, menus []*models.MenuOption) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"menu_options"},
		[]string{
			"id", "name", "price", "day_of_week", "categories",
			"has_breakfast", "has_lunch", "has_dinner", "menu_item_ref",
			"is_comprehensive_menu", "is_daily_rate_item", "meal_types",
		},
		pgx.CopyFromSlice(len(menus), func(i int) ([]interface{}, error) {
			mealTypes, err := mealTypesJSON(menus[i])
			if err != nil {
				return nil, err
			}
			return []interface{}{
				menus[i].ID,
				menus[i].Name,
				menus[i].Price,
				menus[i].DayOfWeek,
				menus[i].Categories,
				menus[i].HasBreakfast,
				menus[i].HasLunch,
				menus[i].HasDinner,
				menus[i].MenuItemRef,
				menus[i].IsComprehensiveMenu,
				menus[i].IsDailyRateItem,
				mealTypes,
			}, nil
		}),
	)
	return err
}

func (r *MenuOptionRepository) Create(ctx context.Context, menu *models.MenuOption) error {
	mealTypes, err := mealTypesJSON(menu)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO menu_options (
            id, name, price, day_of_week, categories, has_breakfast,
            has_lunch, has_dinner, menu_item_ref, is_comprehensive_menu,
            is_daily_rate_item, meal_types
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
        )
    `

	_, err = r.pool.Exec(ctx, query,
		menu.ID,
		menu.Name,
		menu.Price,
		menu.DayOfWeek,
		menu.Categories,
		menu.HasBreakfast,
		menu.HasLunch,
		menu.HasDinner,
		menu.MenuItemRef,
		menu.IsComprehensiveMenu,
		menu.IsDailyRateItem,
		mealTypes,
	)
	return err
}

func scanMenuOption(rows pgx.Rows) (*models.MenuOption, error) {
	menu := &models.MenuOption{}
	var mealTypes []byte
	err := rows.Scan(
		&menu.ID,
		&menu.Name,
		&menu.Price,
		&menu.DayOfWeek,
		&menu.Categories,
		&menu.HasBreakfast,
		&menu.HasLunch,
		&menu.HasDinner,
		&menu.MenuItemRef,
		&menu.IsComprehensiveMenu,
		&menu.IsDailyRateItem,
		&mealTypes,
	)
	if err != nil {
		return nil, err
	}
	if len(mealTypes) > 0 {
		menu.MealTypes = &models.MealTypeItems{}
		if err := json.Unmarshal(mealTypes, menu.MealTypes); err != nil {
			return nil, err
		}
	}
	return menu, nil
}

const menuOptionColumns = `
            id,
            name,
            price,
            day_of_week,
            categories,
            has_breakfast,
            has_lunch,
            has_dinner,
            menu_item_ref,
            is_comprehensive_menu,
            is_daily_rate_item,
            meal_types
`

func (r *MenuOptionRepository) GetAll(ctx context.Context) (map[string]*models.MenuOption, error) {
	query := `SELECT ` + menuOptionColumns + ` FROM menu_options`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	menus := make(map[string]*models.MenuOption)
	for rows.Next() {
		menu, err := scanMenuOption(rows)
		if err != nil {
			return nil, err
		}
		menus[menu.ID] = menu
	}
	return menus, rows.Err()
}

func (r *MenuOptionRepository) GetByCategory(ctx context.Context, category string) ([]*models.MenuOption, error) {
	query := `SELECT ` + menuOptionColumns + ` FROM menu_options WHERE $1 = ANY(categories)`
	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []*models.MenuOption
	for rows.Next() {
		menu, err := scanMenuOption(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}
	return menus, rows.Err()
}

func (r *MenuOptionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM menu_options").Scan(&count)
	return count, err
}

func (r *MenuOptionRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE menu_options CASCADE")
	return err
}
