// Package validation implements the admission rules for a proposed customer
// payload. Rules are independent: a single call reports every violated
// field, never just the first.
package validation

import (
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/rbarros/cadastro/internal/customer/document"
	e "github.com/rbarros/cadastro/internal/customer/errors"
	"github.com/rbarros/cadastro/internal/customer/models"
)

const (
	nameMinLen  = 3
	nameMaxLen  = 100
	emailMaxLen = 100
	minimumAge  = 18

	streetMaxLen       = 200
	numberMaxLen       = 10
	neighborhoodMaxLen = 100
	cityMaxLen         = 100
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
	zipPattern   = regexp.MustCompile(`^\d{5}-\d{3}$`)
	statePattern = regexp.MustCompile(`^[A-Z]{2}$`)
)

// ValidateDraft checks a full customer payload. An empty result means the
// draft is admissible.
func ValidateDraft(d models.CustomerDraft) []e.FieldError {
	var errs []e.FieldError
	errs = append(errs, validateName(d.Name)...)
	errs = append(errs, validateDocument(d.Document)...)
	errs = append(errs, validateEmail(d.Email)...)
	errs = append(errs, validatePhone(d.Phone)...)
	errs = append(errs, validateType(d, time.Now())...)
	errs = append(errs, validateAddress(d.Address)...)
	return errs
}

// ValidateUpdate checks the mutable fields of an update command. Document
// and type are immutable and therefore not revisited here.
func ValidateUpdate(u models.CustomerUpdate) []e.FieldError {
	var errs []e.FieldError
	errs = append(errs, validateName(u.Name)...)
	errs = append(errs, validatePhone(u.Phone)...)
	errs = append(errs, validateEmail(u.Email)...)
	errs = append(errs, validateAddress(u.Address)...)
	return errs
}

func validateName(name string) []e.FieldError {
	if name == "" {
		return fieldErr("name", "name is required")
	}
	if n := utf8.RuneCountInString(name); n < nameMinLen || n > nameMaxLen {
		return fieldErr("name", "name must have between 3 and 100 characters")
	}
	return nil
}

func validateDocument(doc string) []e.FieldError {
	if doc == "" {
		return fieldErr("document", "document is required")
	}
	digits := document.Normalize(doc)
	if len(digits) != 11 && len(digits) != 14 {
		return fieldErr("document", "document must be a valid CPF or CNPJ")
	}
	if !document.Valid(digits) {
		return fieldErr("document", "document must be a valid CPF or CNPJ")
	}
	return nil
}

func validateEmail(email string) []e.FieldError {
	if email == "" {
		return fieldErr("email", "email is required")
	}
	var errs []e.FieldError
	if !emailPattern.MatchString(email) {
		errs = append(errs, e.FieldError{Field: "email", Message: "email is not a valid address"})
	}
	if utf8.RuneCountInString(email) > emailMaxLen {
		errs = append(errs, e.FieldError{Field: "email", Message: "email must have at most 100 characters"})
	}
	return errs
}

func validatePhone(phone string) []e.FieldError {
	if phone == "" {
		return fieldErr("phone", "phone is required")
	}
	if !phonePattern.MatchString(phone) {
		return fieldErr("phone", "phone must match the format (99) 99999-9999")
	}
	return nil
}

// validateType checks the type discriminant and the rules conditional on it:
// individuals must be adults, companies must carry a state registration
// unless exempt.
func validateType(d models.CustomerDraft, now time.Time) []e.FieldError {
	if !d.Type.Known() {
		return fieldErr("type", "type must be INDIVIDUAL or COMPANY")
	}
	switch d.Type {
	case models.Individual:
		if d.BirthDate == nil {
			return fieldErr("birthDate", "birth date is required for individual customers")
		}
		if ageAt(*d.BirthDate, now) < minimumAge {
			return fieldErr("birthDate", "individual customers must be at least 18 years old")
		}
	case models.Company:
		if d.StateRegistration == "" && !d.StateRegistrationExempt {
			return fieldErr("stateRegistration", "state registration is required for companies unless exempt")
		}
	}
	return nil
}

// ageAt computes age in full years, decremented when the birthday has not
// yet occurred in the reference year.
func ageAt(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if birth.AddDate(years, 0, 0).After(now) {
		years--
	}
	return years
}

func validateAddress(a models.Address) []e.FieldError {
	var errs []e.FieldError

	if a.ZipCode == "" {
		errs = append(errs, e.FieldError{Field: "address.zipCode", Message: "zip code is required"})
	} else if !zipPattern.MatchString(a.ZipCode) {
		errs = append(errs, e.FieldError{Field: "address.zipCode", Message: "zip code must match the format 99999-999"})
	}

	errs = append(errs, requiredBounded("address.street", a.Street, streetMaxLen)...)
	errs = append(errs, requiredBounded("address.number", a.Number, numberMaxLen)...)
	errs = append(errs, requiredBounded("address.neighborhood", a.Neighborhood, neighborhoodMaxLen)...)
	errs = append(errs, requiredBounded("address.city", a.City, cityMaxLen)...)

	if a.State == "" {
		errs = append(errs, e.FieldError{Field: "address.state", Message: "state is required"})
	} else if !statePattern.MatchString(a.State) {
		errs = append(errs, e.FieldError{Field: "address.state", Message: "state must be a two-letter code (e.g. SP)"})
	}

	return errs
}

func requiredBounded(field, value string, maxLen int) []e.FieldError {
	if value == "" {
		return fieldErr(field, field+" is required")
	}
	if utf8.RuneCountInString(value) > maxLen {
		return fieldErr(field, field+" is too long")
	}
	return nil
}

func fieldErr(field, message string) []e.FieldError {
	return []e.FieldError{{Field: field, Message: message}}
}
