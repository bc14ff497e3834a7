package entity

import (
	"time"
)

type Company struct {
	ID        int64
	LegalName string
	TradeName string
	CNPJ      string
	Email     string
	Phone     string
	Address   Address
	Headcount int
	Sector    string
	FoundedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Address struct {
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	CEP        string
}

func (a Address) String() string {
	s := a.Street
	if a.Number != "" {
		s += ", " + a.Number
	}
	if a.District != "" {
		s += " - " + a.District
	}
	if a.City != "" {
		s += ", " + a.City
	}
	if a.State != "" {
		s += "/" + a.State
	}
	return s
}
