package owners

import (
	"time"

	"cat-registry/internal/ports/auth"
)

// Owner es el titular legal de uno o más gatos; también es el usuario que inicia sesión.
type Owner struct {
	ID int64

	Firstname string
	Surname   string
	Email     string // único, en minúsculas
	Phone     string
	Address   string
	City      string
	Country   string

	Permission   auth.Permission // 1 admin, 2 owner
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o Owner) DisplayName() string {
	switch {
	case o.Firstname != "" && o.Surname != "":
		return o.Firstname + " " + o.Surname
	case o.Firstname != "":
		return o.Firstname
	default:
		return o.Surname
	}
}

type ListFilter struct {
	Query      string // nombre o email
	Permission auth.Permission
	Limit      int
	Offset     int
}
