// Package models defines the core domain models for the customer registry:
// the Customer entity, its Address value object and the CustomerType
// enumeration.
package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerType discriminates between the two recognized customer variants.
type CustomerType string

const (
	// Individual is a natural person, identified by an 11-digit CPF.
	Individual CustomerType = "INDIVIDUAL"
	// Company is a legal entity, identified by a 14-digit CNPJ.
	Company CustomerType = "COMPANY"
)

// Known reports whether t is one of the recognized customer types.
func (t CustomerType) Known() bool {
	return t == Individual || t == Company
}

// Address is the customer's postal address. It has no identity of its own
// and is always replaced wholesale on update.
type Address struct {
	ZipCode      string `gorm:"size:9"`
	Street       string `gorm:"size:200"`
	Number       string `gorm:"size:10"`
	Neighborhood string `gorm:"size:100"`
	City         string `gorm:"size:100"`
	State        string `gorm:"size:2"`
}

// Customer is the registry aggregate. ID, Document, Type and CreatedAt are
// fixed at construction; only Name, Phone, Email and Address change through
// Update. Document and Email carry unique indexes so the store settles
// uniqueness races that slip past the handler pre-checks.
type Customer struct {
	// ID is the unique identifier for the customer.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// Name is the customer's full or corporate name.
	Name string `gorm:"size:100"`
	// Document is the normalized (digits only) CPF or CNPJ.
	Document string `gorm:"size:14;uniqueIndex"`
	// Email is the customer's contact address.
	Email string `gorm:"size:100;uniqueIndex"`
	// Phone is the customer's phone in (99) 99999-9999 form.
	Phone string `gorm:"size:15"`
	// Type discriminates Individual from Company.
	Type CustomerType `gorm:"size:20"`
	// BirthDate is set only for Individual customers.
	BirthDate *time.Time
	// StateRegistration applies to Company customers unless exempt.
	StateRegistration string `gorm:"size:50"`
	// StateRegistrationExempt marks a Company free of state registration.
	StateRegistrationExempt bool
	// Address is the customer's postal address.
	Address Address `gorm:"embedded;embeddedPrefix:address_"`
	// CreatedAt records when the customer entered the registry.
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	// UpdatedAt stays nil until the first mutation.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

// CustomerDraft carries a proposed customer payload before validation and
// persistence. Document may still contain formatting punctuation.
type CustomerDraft struct {
	Name                    string
	Document                string
	Email                   string
	Phone                   string
	Type                    CustomerType
	BirthDate               *time.Time
	StateRegistration       string
	StateRegistrationExempt bool
	Address                 Address
}

// CustomerUpdate names the fields the update command is allowed to change.
// Document, Type and ID are never revisited by an update.
type CustomerUpdate struct {
	ID      uuid.UUID
	Name    string
	Phone   string
	Email   string
	Address Address
}

// NewCustomer builds a Customer from a draft, assigning identity and the
// creation timestamp.
func NewCustomer(d CustomerDraft) *Customer {
	return &Customer{
		ID:                      uuid.New(),
		Name:                    d.Name,
		Document:                d.Document,
		Email:                   d.Email,
		Phone:                   d.Phone,
		Type:                    d.Type,
		BirthDate:               d.BirthDate,
		StateRegistration:       d.StateRegistration,
		StateRegistrationExempt: d.StateRegistrationExempt,
		Address:                 d.Address,
		CreatedAt:               time.Now().UTC(),
	}
}

// Update replaces the mutable fields and stamps UpdatedAt.
func (c *Customer) Update(name, phone, email string, address Address) {
	c.Name = name
	c.Phone = phone
	c.Email = email
	c.Address = address
	now := time.Now().UTC()
	c.UpdatedAt = &now
}
