package cats

import (
	"strings"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

type Status string

const (
	StatusActive   Status = "active"
	StatusRetired  Status = "retired"
	StatusSold     Status = "sold"
	StatusDeceased Status = "deceased"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusRetired, StatusSold, StatusDeceased:
		return true
	default:
		return false
	}
}

// Cat es el registro central. DamID/SireID forman el grafo de pedigree.
type Cat struct {
	ID int64

	Firstname string
	Surname   string
	Callname  string
	Gender    Gender
	Birthday  time.Time // fecha (UTC, 00:00)
	Microchip string    // se espera único, no se fuerza

	DamID     *int64
	SireID    *int64
	BreederID *int64
	OwnerID   int64

	// Atributos descriptivos; el pedigree no los usa.
	Colour             string
	LitterCode         string
	Titles             string
	Status             Status
	Neutered           bool
	HCMTested          bool
	PKDTested          bool
	BirthWeightGrams   *int
	CurrentWeightGrams *int
	Notes              string
	PhotoPaths         []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName: "Firstname Surname", con el callname entre comillas si existe.
func (c Cat) DisplayName() string {
	name := strings.TrimSpace(c.Firstname + " " + c.Surname)
	if c.Callname != "" {
		name += " \"" + c.Callname + "\""
	}
	return name
}

func (c Cat) ParentID(role ParentRole) *int64 {
	if role == RoleDam {
		return c.DamID
	}
	return c.SireID
}

type ParentRole string

const (
	RoleDam  ParentRole = "dam"
	RoleSire ParentRole = "sire"
)

// ListFilter: valores cero = sin filtro.
type ListFilter struct {
	Text      string // firstname, surname, callname o microchip
	Gender    Gender
	OwnerID   int64
	BreederID int64
	Status    Status
	BornFrom  *time.Time
	BornTo    *time.Time
	DamID     int64
	SireID    int64
	Limit     int
	Offset    int
}

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)
