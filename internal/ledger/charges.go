package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/splithaus/backend/internal/models"
	"gorm.io/gorm"
)

var cents = decimal.New(1, 2)

// round2 rounds to two decimal places with halves rounding toward
// positive infinity. Negative half cents round up, -0.125 becomes
// -0.12, so amounts keep matching ledgers built with JavaScript's
// Math.round.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Mul(cents).Add(decimal.New(5, -1)).Floor().Div(cents)
}

// CreateCharges apportions an expense between the people its split
// method resolves to and appends one signed charge transaction per
// person. The created transactions are returned in resolver order.
//
// The sum of the created charges equals the negated expense amount
// exactly: every share is rounded to cents independently except the last
// one, which receives the remainder.
//
// All validation happens before any write. The operation either fully
// succeeds or leaves the ledger untouched.
func CreateCharges(db *gorm.DB, expenseID uint) ([]models.Transaction, error) {
	expense, err := loadExpense(db, expenseID)
	if err != nil {
		return nil, err
	}

	transactions, err := buildCharges(db, expense)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&transactions).Error
		if err != nil {
			return err
		}

		// Only advance to Charged from Pending, this path must never
		// overwrite a provisional or reconciled status
		if expense.Status.State == models.StatePending {
			return tx.Model(&expense).Update("status", models.Status{State: models.StateCharged}).Error
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("expense", expense.ID).Int("charges", len(transactions)).Msg("charges created")
	return transactions, nil
}

// CreateProvisionalCharges creates charges for an expense and marks it
// Provisionally Charged, entering the two-phase workflow that is settled
// by ReconcileCharges once the covered period has elapsed.
func CreateProvisionalCharges(db *gorm.DB, expenseID uint) ([]models.Transaction, error) {
	expense, err := loadExpense(db, expenseID)
	if err != nil {
		return nil, err
	}

	if _, _, ok := expense.Period(); !ok {
		return nil, fmt.Errorf("%w: start and end date must be set for provisional charges", ErrValidation)
	}

	switch expense.Status.State {
	case models.StateProvisionallyCharged:
		return nil, fmt.Errorf("%w: provisional charges already exist for expense %d", ErrConflict, expense.ID)
	case models.StateReconciled:
		return nil, fmt.Errorf("%w: expense %d has already been reconciled", ErrConflict, expense.ID)
	}

	transactions, err := buildCharges(db, expense)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&transactions).Error
		if err != nil {
			return err
		}

		return tx.Model(&expense).Update("status", models.Status{State: models.StateProvisionallyCharged}).Error
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("expense", expense.ID).Int("charges", len(transactions)).Msg("provisional charges created")
	return transactions, nil
}

// DeleteCharges removes all transactions of an expense and resets its
// status to Pending. It returns the number of removed transactions; zero
// with a nil error means there was nothing to delete.
//
// Reconciled expenses are refused: reconciliation adjustments must never
// be deleted, a wrong distribution is corrected by reconciling again.
func DeleteCharges(db *gorm.DB, expenseID uint) (int, error) {
	expense, err := loadExpense(db, expenseID)
	if err != nil {
		return 0, err
	}

	switch expense.Status.State {
	case models.StateReconciled:
		return 0, fmt.Errorf("%w: expense %d has already been reconciled, reconciliation adjustments must not be deleted", ErrConflict, expense.ID)
	case models.StatePending:
		return 0, nil
	}

	transactions, err := models.TransactionsForExpense(db, expense.ID)
	if err != nil {
		return 0, err
	}

	if len(transactions) == 0 {
		return 0, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("expense_id = ?", expense.ID).Delete(&models.Transaction{}).Error
		if err != nil {
			return err
		}

		return tx.Model(&expense).Update("status", models.Status{State: models.StatePending}).Error
	})
	if err != nil {
		return 0, err
	}

	log.Info().Uint("expense", expense.ID).Int("charges", len(transactions)).Msg("charges deleted")
	return len(transactions), nil
}

func loadExpense(db *gorm.DB, expenseID uint) (models.Expense, error) {
	var expense models.Expense

	err := db.First(&expense, expenseID).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			return models.Expense{}, fmt.Errorf("%w: expense %d", ErrNotFound, expenseID)
		}
		return models.Expense{}, err
	}

	return expense, nil
}

// buildCharges validates the expense and computes its charge
// transactions without writing anything.
func buildCharges(db *gorm.DB, expense models.Expense) ([]models.Transaction, error) {
	if !expense.SplitMethodType.Valid() {
		return nil, fmt.Errorf("%w: unsupported split method type %d", ErrValidation, expense.SplitMethodType)
	}

	if expense.Date.IsZero() || !expense.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: the expense needs a date and a positive amount", ErrValidation)
	}

	if expense.SplitMethodType == models.SplitTypeOccupancy {
		if _, _, ok := expense.Period(); !ok {
			return nil, fmt.Errorf("%w: occupancy splits need a start and end date", ErrValidation)
		}
	}

	// Prevent duplicate charges
	var existing int64
	err := db.Model(&models.Transaction{}).Where("expense_id = ?", expense.ID).Count(&existing).Error
	if err != nil {
		return nil, err
	}

	if existing > 0 {
		return nil, fmt.Errorf("%w: charges already exist for expense %d", ErrConflict, expense.ID)
	}

	resolution, err := ResolveSplits(db, expense)
	if err != nil {
		return nil, err
	}

	nextID, err := models.NextTransactionID(db)
	if err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, 0, len(resolution.Shares))
	runningTotal := decimal.Zero

	for i, share := range resolution.Shares {
		var charge decimal.Decimal

		if i < len(resolution.Shares)-1 {
			charge = round2(expense.Amount.Mul(share.Fraction))
			runningTotal = runningTotal.Add(charge)
		} else {
			// The last share absorbs the rounding remainder so that the
			// charges sum to the expense amount exactly
			charge = round2(expense.Amount.Sub(runningTotal))
		}

		account := models.PersonAccountByName(db, share.Person)
		if share.Code != "" {
			account = models.PersonAccountByCode(db, share.Code)
		}

		transactions = append(transactions, models.Transaction{
			Model:       models.Model{ID: nextID},
			Date:        expense.Date,
			Type:        models.TransactionCharge,
			ExpenseID:   &expense.ID,
			ExpenseType: expense.Type,
			Amount:      charge.Neg(),
			Person:      share.Person,
			Account:     account,
			Note:        chargeNote(expense, resolution, share),
		})

		nextID++
	}

	return transactions, nil
}

// chargeNote builds the audit note of one charge: the percentage, the
// base amount and the rationale of the split method.
func chargeNote(expense models.Expense, resolution SplitResolution, share Share) string {
	pct := share.Fraction.Mul(hundred).StringFixed(2)
	base := expense.Amount.StringFixed(2)

	switch expense.SplitMethodType {
	case models.SplitTypeEqual:
		return fmt.Sprintf("%s%% of %s based on equal split between %d owners.", pct, base, len(resolution.Shares))

	case models.SplitTypeOwnership:
		return fmt.Sprintf("%s%% of %s based on ownership%%.", pct, base)

	case models.SplitTypeOccupancy:
		return fmt.Sprintf("%s%% of %s based on %d/%d overnight stays.", pct, base, share.Stays, resolution.TotalStays)

	case models.SplitTypeCustom:
		return fmt.Sprintf("%s%% of %s based on %s.", pct, base, customBreakdown(*resolution.Custom))
	}

	return ""
}

// customBreakdown enumerates every participant's raw split value, e.g.
// "custom fixed amounts: P1 (30 EUR), P2 (70 EUR)".
func customBreakdown(custom models.CustomSplit) string {
	parts := make([]string, 0, len(custom.Splits))

	switch custom.Type {
	case models.CustomSplitPercentage:
		for _, split := range custom.Splits {
			parts = append(parts, fmt.Sprintf("%s (%s%%)", split.PID, split.Pct))
		}
		return "custom split: " + strings.Join(parts, ", ")

	case models.CustomSplitFixed:
		for _, split := range custom.Splits {
			parts = append(parts, fmt.Sprintf("%s (%s EUR)", split.PID, split.Amt))
		}
		return "custom fixed amounts: " + strings.Join(parts, ", ")

	default:
		for _, split := range custom.Splits {
			parts = append(parts, fmt.Sprintf("%s (weight %s)", split.PID, split.Weight))
		}
		return "custom weights: " + strings.Join(parts, ", ")
	}
}
