package repositories

import (
	"context"

	"github.com/rasoihub/tiffinbox/internal/models"
)

type MenuOptionRepository interface {
	BulkCreate(ctx context.Context, menus []*models.MenuOption) error
	Create(ctx context.Context, menu *models.MenuOption) error
	GetAll(ctx context.Context) (map[string]*models.MenuOption, error)
	GetByCategory(ctx context.Context, category string) ([]*models.MenuOption, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type AddressRepository interface {
	BulkCreate(ctx context.Context, addresses []*models.Address) error
	Create(ctx context.Context, address *models.Address) error
	GetByCustomerID(ctx context.Context, customerID string) ([]*models.Address, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type StockRepository interface {
	BulkSet(ctx context.Context, quantities map[string]int) error
	Quantity(ctx context.Context, productID string) (int, error)
	GetAll(ctx context.Context) (map[string]int, error)
	Decrement(ctx context.Context, productID string, by int) error
	DeleteAll(ctx context.Context) error
}
