package breeders

import "time"

// Breeder es una entrada de la libreta de criaderos. No participa del pedigree.
type Breeder struct {
	ID int64

	Name        string // nombre del criadero (cattery)
	ContactName string
	Email       string
	Phone       string
	Address     string
	City        string
	Country     string
	Website     string
	Notes       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListFilter struct {
	Query   string // nombre, contacto o email
	Country string
	Limit   int
	Offset  int
}
