package models

import (
	"strings"

	"github.com/splithaus/backend/internal/types"
	"gorm.io/gorm"
)

// OvernightStay records PersonCount people staying at the house for the
// inclusive date range [StartDate, EndDate].
//
// The "stays" of a record are its inclusive day count times PersonCount,
// the person-nights the record contributes to occupancy splits.
type OvernightStay struct {
	Model
	PersonCode  string    `json:"personCode"` // Code of the person who booked the stay
	PersonName  string    `json:"personName"` // Display name, denormalized like the source sheet
	StartDate   types.Day `json:"startDate"`
	EndDate     types.Day `json:"endDate"`
	PersonCount int       `json:"personCount"`
	Note        string    `json:"note,omitempty"`
}

func (s *OvernightStay) BeforeSave(_ *gorm.DB) error {
	s.PersonCode = strings.TrimSpace(s.PersonCode)
	s.PersonName = strings.TrimSpace(s.PersonName)
	s.Note = strings.TrimSpace(s.Note)

	if s.EndDate.Before(s.StartDate) {
		return ErrStayDatesInverted
	}

	if s.PersonCount < 1 {
		return ErrStayPersonCountInvalid
	}

	return nil
}

func (s *OvernightStay) BeforeCreate(tx *gorm.DB) error {
	// Fill the display name from the people table when only the code is set
	if s.PersonName == "" {
		s.PersonName = PersonNameByCode(tx, s.PersonCode)
	}

	if s.ID != 0 {
		return nil
	}

	id, err := nextID(tx, &OvernightStay{}, 100001)
	if err != nil {
		return err
	}

	s.ID = id
	return nil
}

// Days returns the inclusive day count of the stay.
func (s OvernightStay) Days() int {
	return s.StartDate.DaysUntil(s.EndDate) + 1
}

// Stays returns the person-nights of the stay.
func (s OvernightStay) Stays() int {
	return s.Days() * s.PersonCount
}
