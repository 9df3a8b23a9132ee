package factories

import (
	"github.com/lucsky/cuid"
	"github.com/rasoihub/tiffinbox/internal/models"
)

type CustomerFactory struct{}

func (cf *CustomerFactory) CreateCustomer() *models.Customer {
	return &models.Customer{
		ID:    cuid.New(),
		Name:  fake.Person().Name(),
		Email: fake.Internet().Email(),
		Phone: fake.Phone().Number(),
	}
}
