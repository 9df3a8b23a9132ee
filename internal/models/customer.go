package models

type Customer struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	PrimaryAddressID string `json:"primary_address_id,omitempty"`
}
