package domain

import "time"

// Client is a registered customer. Document holds the CPF/CNPJ as entered;
// checksum validation happens outside this system.
type Client struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Document     string    `json:"document"`
	BirthDate    string    `json:"birth_date,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CellPhone    string    `json:"cell_phone"`
	Email        string    `json:"email,omitempty"`
	PostalCode   string    `json:"postal_code,omitempty"`
	Address      string    `json:"address,omitempty"`
	Neighborhood string    `json:"neighborhood,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	RegisteredOn time.Time `json:"registered_on"`
}
