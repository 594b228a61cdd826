package bank

import "time"

type CreateInput struct {
	Name string
}

type BankDTO struct {
	BankID    string    `json:"bank_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
