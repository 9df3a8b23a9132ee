package factories

import (
	"fmt"
	"math/rand"

	"github.com/lucsky/cuid"
	"github.com/rasoihub/tiffinbox/internal/models"
)

type AddressFactory struct{}

var houseNames = []string{
	"Shanti Nivas", "Green View Apartments", "Lotus Residency",
	"Sai Krupa", "Gokul Heights", "",
	"", "", // most addresses carry no house name
}

func (af *AddressFactory) CreateAddress(customerID string) *models.Address {
	return &models.Address{
		ID:         cuid.New(),
		CustomerID: customerID,
		HouseName:  houseNames[rand.Intn(len(houseNames))],
		Street:     fake.Address().StreetName(),
		City:       fake.Address().City(),
		Pincode:    fmt.Sprintf("%06d", fake.IntBetween(110001, 999999)),
	}
}
