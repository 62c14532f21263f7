package entity

import "time"

// Depositor is a counterparty (vendor or payer). Address fields are
// independently optional; when a CEP lookup succeeds, street, neighborhood,
// city and state are filled from that single lookup result.
type Depositor struct {
	ID           string
	UserID       string
	DisplayName  string
	CEP          string
	Street       string
	Number       string
	Neighborhood string
	City         string
	State        string // two-letter state code
	CPF          string
	CNPJ         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
