package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Person is a member of the household. People are reference data: the
// ledger stores charges against their display name and settles against
// their account.
type Person struct {
	Model
	Code          string `json:"code" gorm:"uniqueIndex"` // Unique short identifier, referenced as PID in custom splits
	Name          string `json:"name"`                    // Display name used on transactions
	AccountNumber string `json:"accountNumber"`
}

var ErrPersonCodeRequired = errors.New("people need a code")

func (p *Person) BeforeSave(_ *gorm.DB) error {
	p.Code = strings.TrimSpace(p.Code)
	p.Name = strings.TrimSpace(p.Name)
	p.AccountNumber = strings.TrimSpace(p.AccountNumber)

	if p.Code == "" {
		return ErrPersonCodeRequired
	}

	return nil
}

func (p *Person) BeforeCreate(tx *gorm.DB) error {
	if p.ID != 0 {
		return nil
	}

	id, err := nextID(tx, &Person{}, 1)
	if err != nil {
		return err
	}

	p.ID = id
	return nil
}

// PersonNameByCode resolves a person code to the display name.
//
// An unknown code is returned unchanged so that a charge can still be
// recorded when a custom split references a person that has no row yet.
func PersonNameByCode(db *gorm.DB, code string) string {
	var person Person

	err := db.Where(&Person{Code: code}).First(&person).Error
	if err != nil {
		return code
	}

	return person.Name
}

// PersonAccountByCode resolves a person code to the account reference.
// Unknown codes resolve to an empty account.
func PersonAccountByCode(db *gorm.DB, code string) string {
	var person Person

	err := db.Where(&Person{Code: code}).First(&person).Error
	if err != nil {
		return ""
	}

	return person.AccountNumber
}

// PersonCodeByName resolves a display name back to the person code.
// The second return value reports whether a person with that name exists.
func PersonCodeByName(db *gorm.DB, name string) (string, bool) {
	var person Person

	err := db.Where(&Person{Name: name}).First(&person).Error
	if err != nil {
		return "", false
	}

	return person.Code, true
}

// PersonAccountByName resolves a display name to the account reference.
func PersonAccountByName(db *gorm.DB, name string) string {
	var person Person

	err := db.Where(&Person{Name: name}).First(&person).Error
	if err != nil {
		return ""
	}

	return person.AccountNumber
}
