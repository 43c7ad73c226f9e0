package ledger

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/splithaus/backend/internal/models"
	"github.com/splithaus/backend/internal/types"
	"gorm.io/gorm"
)

// ReconciliationResult summarizes a reconciliation run.
type ReconciliationResult struct {
	ExpenseIDs   []uint               `json:"expenseIds"`   // The reconciled group
	TotalCost    decimal.Decimal      `json:"totalCost"`    // Sum of the group's expense amounts
	Adjustments  []models.Transaction `json:"adjustments"`  // The emitted adjustment transactions
	ReconciledOn types.Day            `json:"reconciledOn"` // The day the run happened
}

// ReconcileCharges settles a group of provisionally charged expenses
// against actual occupancy.
//
// The group is every provisionally charged or reconciled expense sharing
// the trigger's exact start date, end date and expense type. Fair shares
// are weighted by occupancy days elapsed up to today; the difference to
// what each person has been charged so far is emitted as an adjustment
// transaction. People who were charged but have no occupancy in the
// window are refunded in full. Adjustments always sum to zero against
// the charges, the last person in order absorbs rounding.
//
// Re-running reconciliation on an already reconciled group is allowed
// and emits further adjustments on top of the earlier ones.
func ReconcileCharges(db *gorm.DB, expenseID uint) (*ReconciliationResult, error) {
	trigger, err := loadExpense(db, expenseID)
	if err != nil {
		return nil, err
	}

	start, end, ok := trigger.Period()
	if !ok {
		return nil, fmt.Errorf("%w: start and end date must be set for reconciliation", ErrValidation)
	}

	if trigger.Status.State != models.StateProvisionallyCharged && trigger.Status.State != models.StateReconciled {
		return nil, fmt.Errorf("%w: only provisionally charged or reconciled expenses can be reconciled", ErrValidation)
	}

	group, err := reconciliationGroup(db, start, end, trigger.Type)
	if err != nil {
		return nil, err
	}

	if len(group) == 0 {
		return nil, fmt.Errorf("%w: no provisionally charged or reconciled expenses in this date window and expense type", ErrNotFound)
	}

	totalCost := decimal.Zero
	for _, expense := range group {
		totalCost = totalCost.Add(expense.Amount)
	}

	if totalCost.IsZero() {
		return nil, fmt.Errorf("%w: the total cost of the reconciliation group is zero", ErrValidation)
	}

	// The stays-weighted shares the provisional charges were based on.
	// The final allocation below is days-weighted; these only identify
	// the participants and document the drift.
	staysShares, err := SharesByStays(db, start, end)
	if err != nil {
		return nil, err
	}

	if len(staysShares) == 0 {
		return nil, fmt.Errorf("%w: no overnight stays in this period, nothing to reconcile", ErrNotFound)
	}

	for _, code := range sortedKeys(staysShares) {
		log.Debug().
			Str("person", code).
			Str("stays-weighted cost", round2(totalCost.Mul(staysShares[code])).String()).
			Msg("reconciliation")
	}

	chargedSoFar, err := chargedSoFarByPerson(db, group)
	if err != nil {
		return nil, err
	}

	adjustments, err := buildAdjustments(db, group, staysShares, chargedSoFar, start, end)
	if err != nil {
		return nil, err
	}

	reconciledOn := today()

	err = db.Transaction(func(tx *gorm.DB) error {
		if len(adjustments) > 0 {
			err := tx.Create(&adjustments).Error
			if err != nil {
				return err
			}
		}

		// The update runs on the loaded rows so that the BeforeSave
		// validation sees the actual expense values
		for i := range group {
			err := tx.Model(&group[i]).
				Updates(map[string]any{
					"status":                   models.StatusReconciled(reconciledOn),
					"last_reconciliation_date": reconciledOn,
				}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &ReconciliationResult{
		TotalCost:    totalCost,
		Adjustments:  adjustments,
		ReconciledOn: reconciledOn,
	}
	for _, expense := range group {
		result.ExpenseIDs = append(result.ExpenseIDs, expense.ID)
	}

	log.Info().
		Uints("expenses", result.ExpenseIDs).
		Int("adjustments", len(adjustments)).
		Msg("reconciliation completed")

	return result, nil
}

// reconciliationGroup returns the expenses sharing one provisioning
// period and category: exact same start and end date (calendar day
// comparison, not overlap) and the same expense type, in a state that
// participates in reconciliation.
func reconciliationGroup(db *gorm.DB, start, end types.Day, expenseType string) ([]models.Expense, error) {
	var candidates []models.Expense

	err := db.
		Where("date(start_date) = date(?) AND date(end_date) = date(?)", start, end).
		Where("type = ?", expenseType).
		Order("id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	var group []models.Expense
	for _, expense := range candidates {
		if expense.Status.State == models.StateProvisionallyCharged || expense.Status.State == models.StateReconciled {
			group = append(group, expense)
		}
	}

	return group, nil
}

// chargedSoFarByPerson sums all existing transactions of the group's
// expenses, keyed by person display name.
func chargedSoFarByPerson(db *gorm.DB, group []models.Expense) (map[string]decimal.Decimal, error) {
	ids := make([]uint, 0, len(group))
	for _, expense := range group {
		ids = append(ids, expense.ID)
	}

	var transactions []models.Transaction
	err := db.Where("expense_id IN ?", ids).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	charged := make(map[string]decimal.Decimal)
	for _, transaction := range transactions {
		if transaction.Person == "" {
			continue
		}

		charged[transaction.Person] = charged[transaction.Person].Add(transaction.Amount)
	}

	return charged, nil
}

// buildAdjustments computes the adjustment transactions of a
// reconciliation run without writing anything.
func buildAdjustments(db *gorm.DB, group []models.Expense, staysShares map[string]decimal.Decimal, chargedSoFar map[string]decimal.Decimal, start, end types.Day) ([]models.Transaction, error) {
	asOf := today()

	days, err := DaysByPerson(db, start, end, asOf)
	if err != nil {
		return nil, err
	}

	totalDays := 0
	for _, personDays := range days {
		totalDays += personDays
	}

	groupTotalCharged := decimal.Zero
	for _, amount := range chargedSoFar {
		groupTotalCharged = groupTotalCharged.Add(amount)
	}

	// Fair shares are days-weighted with the same last-in-order
	// remainder rule as charging, so they sum to the charged total
	// exactly
	codes := sortedKeys(staysShares)
	fairShares := make(map[string]decimal.Decimal, len(codes))
	runningTotal := decimal.Zero

	for i, code := range codes {
		if i < len(codes)-1 {
			fairShare := decimal.Zero
			if totalDays != 0 {
				fairShare = round2(groupTotalCharged.
					Mul(decimal.NewFromInt(int64(days[code]))).
					Div(decimal.NewFromInt(int64(totalDays))))
			}

			fairShares[code] = fairShare
			runningTotal = runningTotal.Add(fairShare)
		} else {
			fairShares[code] = round2(groupTotalCharged.Sub(runningTotal))
		}
	}

	primaryExpense := group[0]

	nextID, err := models.NextTransactionID(db)
	if err != nil {
		return nil, err
	}

	var adjustments []models.Transaction

	appendAdjustment := func(person, account string, fairShare, charged, adjustment decimal.Decimal, personDays int) {
		adjustments = append(adjustments, models.Transaction{
			Model:       models.Model{ID: nextID},
			Date:        asOf,
			Type:        models.TransactionReconciliation,
			ExpenseID:   &primaryExpense.ID,
			ExpenseType: primaryExpense.Type,
			Amount:      adjustment, // negative: owes more, positive: refund
			Person:      person,
			Account:     account,
			Note:        adjustmentNote(start, end, asOf, fairShare, charged, adjustment, personDays, totalDays),
		})

		nextID++
	}

	seen := make(map[string]bool, len(codes))

	for _, code := range codes {
		person := models.PersonNameByCode(db, code)
		seen[person] = true

		charged := chargedSoFar[person]
		adjustment := round2(fairShares[code].Sub(charged))
		if adjustment.IsZero() {
			continue
		}

		appendAdjustment(person, models.PersonAccountByCode(db, code), fairShares[code], charged, adjustment, days[code])
	}

	// People who were charged but have no occupancy in the window get
	// everything back
	for _, person := range sortedKeys(chargedSoFar) {
		if seen[person] {
			continue
		}

		if _, ok := models.PersonCodeByName(db, person); !ok {
			continue
		}

		charged := chargedSoFar[person]
		if charged.IsZero() {
			continue
		}

		adjustment := round2(charged.Neg())
		if adjustment.IsZero() {
			continue
		}

		appendAdjustment(person, models.PersonAccountByName(db, person), decimal.Zero, charged, adjustment, 0)
	}

	return adjustments, nil
}

// adjustmentNote documents how an adjustment came about: the period, the
// fair cost, the charged total and the days ratio behind the share.
func adjustmentNote(start, end, asOf types.Day, fairShare, charged, adjustment decimal.Decimal, personDays, totalDays int) string {
	costLabel := fmt.Sprintf("cost (%s)", asOf.FormatDMY())
	if asOf.After(end) {
		costLabel = "final cost"
	}

	return fmt.Sprintf("Period: %s – %s, %s: %s, charged so far: %s, adjustment: %s (%d/%d).",
		start.FormatDMY(), end.FormatDMY(),
		costLabel, fairShare.StringFixed(2),
		charged.StringFixed(2), adjustment.StringFixed(2),
		personDays, totalDays)
}
