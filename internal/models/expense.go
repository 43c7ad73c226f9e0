package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/splithaus/backend/internal/types"
	"gorm.io/gorm"
)

// Expense is a shared cost to be apportioned between people.
//
// StartDate and EndDate describe the period the expense covers. They are
// required for occupancy splits and for the provisional/reconciliation
// workflow, and unused otherwise.
type Expense struct {
	Model
	Date                   types.Day       `json:"date"`
	Type                   string          `json:"type"` // Expense category code
	Amount                 decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	SplitMethodID          uint            `json:"splitMethodId"`
	SplitMethodType        SplitType       `json:"splitMethodType"` // Denormalized from the split method
	Status                 Status          `json:"status"`
	StartDate              *types.Day      `json:"startDate,omitempty"`
	EndDate                *types.Day      `json:"endDate,omitempty"`
	LastReconciliationDate *types.Day      `json:"lastReconciliationDate,omitempty"`
	Note                   string          `json:"note,omitempty"`
}

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Type = strings.TrimSpace(e.Type)
	e.Note = strings.TrimSpace(e.Note)

	if !e.Amount.IsPositive() {
		return ErrExpenseAmountNotPositive
	}

	return nil
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID != 0 {
		return nil
	}

	id, err := nextID(tx, &Expense{}, 100001)
	if err != nil {
		return err
	}

	e.ID = id
	return nil
}

// Period returns the start and end date of the expense. The second
// return value reports whether both are set.
func (e Expense) Period() (start, end types.Day, ok bool) {
	if e.StartDate == nil || e.EndDate == nil {
		return types.Day{}, types.Day{}, false
	}

	return *e.StartDate, *e.EndDate, true
}
