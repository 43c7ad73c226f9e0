package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/splithaus/backend/internal/ledger"
	"github.com/splithaus/backend/internal/models"
	"github.com/splithaus/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// provisionExpense creates an expense covering [start, end] and runs the
// provisional charge phase on it.
func (suite *TestSuiteStandard) provisionExpense(amount float64, expenseType string, start, end types.Day) models.Expense {
	expense := suite.createTestExpense(models.Expense{
		Date:            start,
		Type:            expenseType,
		Amount:          decimal.NewFromFloat(amount),
		SplitMethodType: models.SplitTypeEqual,
		StartDate:       &start,
		EndDate:         &end,
	})

	_, err := ledger.CreateProvisionalCharges(models.DB, expense.ID)
	if err != nil {
		suite.Assert().FailNow("Provisional charges could not be created", "Error: %s, Expense: %#v", err, expense)
	}

	return expense
}

func (suite *TestSuiteStandard) TestReconcileConvergence() {
	suite.createTestHousehold()

	start := types.NewDay(2024, 1, 1)
	end := types.NewDay(2024, 1, 20)

	// Equal thirds of 500: -166.67, -166.67, -166.66
	expense := suite.provisionExpense(500, "UTIL", start, end)

	// Actual presence: Alice 10 days, Bob 5, Carol 5
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P1", StartDate: types.NewDay(2024, 1, 1), EndDate: types.NewDay(2024, 1, 10), PersonCount: 1})
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P2", StartDate: types.NewDay(2024, 1, 11), EndDate: types.NewDay(2024, 1, 15), PersonCount: 1})
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P3", StartDate: types.NewDay(2024, 1, 16), EndDate: types.NewDay(2024, 1, 20), PersonCount: 1})

	result, err := ledger.ReconcileCharges(models.DB, expense.ID)
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), []uint{expense.ID}, result.ExpenseIDs)
	assert.Equal(suite.T(), "500", result.TotalCost.String())
	require.Len(suite.T(), result.Adjustments, 3)

	// Fair shares by days are -250, -125, -125
	assert.Equal(suite.T(), []string{"-83.33", "41.67", "41.66"}, amounts(result.Adjustments))
	assert.Equal(suite.T(), "Alice", result.Adjustments[0].Person)
	assert.Equal(suite.T(), "Bob", result.Adjustments[1].Person)
	assert.Equal(suite.T(), "Carol", result.Adjustments[2].Person)
	assert.Equal(suite.T(), models.TransactionReconciliation, result.Adjustments[0].Type)

	assert.Equal(suite.T(), "Period: 01/01/24 – 20/01/24, final cost: -250.00, charged so far: -166.67, adjustment: -83.33 (10/20).", result.Adjustments[0].Note)
	assert.Equal(suite.T(), "Period: 01/01/24 – 20/01/24, final cost: -125.00, charged so far: -166.66, adjustment: 41.66 (5/20).", result.Adjustments[2].Note)

	// The adjustments cancel out against the charges
	sum := decimal.Zero
	for _, adjustment := range result.Adjustments {
		sum = sum.Add(adjustment.Amount)
	}
	assert.True(suite.T(), sum.IsZero(), "sum is %s", sum)

	var reloaded models.Expense
	require.Nil(suite.T(), models.DB.First(&reloaded, expense.ID).Error)
	assert.Equal(suite.T(), models.StateReconciled, reloaded.Status.State)
	assert.True(suite.T(), reloaded.Status.ReconciledOn.Equal(types.Today()))
	require.NotNil(suite.T(), reloaded.LastReconciliationDate)
	assert.True(suite.T(), reloaded.LastReconciliationDate.Equal(types.Today()))
}

func (suite *TestSuiteStandard) TestReconcileAgainIsStable() {
	suite.createTestHousehold()

	start := types.NewDay(2024, 1, 1)
	end := types.NewDay(2024, 1, 20)
	expense := suite.provisionExpense(500, "UTIL", start, end)

	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P1", StartDate: types.NewDay(2024, 1, 1), EndDate: types.NewDay(2024, 1, 10), PersonCount: 1})
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P2", StartDate: types.NewDay(2024, 1, 11), EndDate: types.NewDay(2024, 1, 15), PersonCount: 1})
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P3", StartDate: types.NewDay(2024, 1, 16), EndDate: types.NewDay(2024, 1, 20), PersonCount: 1})

	_, err := ledger.ReconcileCharges(models.DB, expense.ID)
	require.Nil(suite.T(), err)

	// Everyone is at their fair share now, so a second run converges to
	// zero adjustments
	result, err := ledger.ReconcileCharges(models.DB, expense.ID)
	require.Nil(suite.T(), err)
	assert.Empty(suite.T(), result.Adjustments)

	var count int64
	models.DB.Model(&models.Transaction{}).Where("type = ?", models.TransactionReconciliation).Count(&count)
	assert.Equal(suite.T(), int64(3), count)
}

func (suite *TestSuiteStandard) TestReconcileRefundsAbsentPeople() {
	suite.createTestHousehold()

	start := types.NewDay(2024, 1, 1)
	end := types.NewDay(2024, 1, 20)
	expense := suite.provisionExpense(500, "UTIL", start, end)

	// Carol paid her provisional third but never stayed
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P1", StartDate: types.NewDay(2024, 1, 1), EndDate: types.NewDay(2024, 1, 10), PersonCount: 1})
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P2", StartDate: types.NewDay(2024, 1, 11), EndDate: types.NewDay(2024, 1, 20), PersonCount: 1})

	result, err := ledger.ReconcileCharges(models.DB, expense.ID)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), result.Adjustments, 3)

	assert.Equal(suite.T(), []string{"-83.33", "-83.33", "166.66"}, amounts(result.Adjustments))

	refund := result.Adjustments[2]
	assert.Equal(suite.T(), "Carol", refund.Person)
	assert.Equal(suite.T(), "DE33", refund.Account)
	assert.Equal(suite.T(), "Period: 01/01/24 – 20/01/24, final cost: 0.00, charged so far: -166.66, adjustment: 166.66 (0/20).", refund.Note)
}

func (suite *TestSuiteStandard) TestReconcileMidPeriod() {
	suite.createTestPerson(models.Person{Code: "P1", Name: "Alice", AccountNumber: "DE11"})
	suite.createTestPerson(models.Person{Code: "P2", Name: "Bob", AccountNumber: "DE22"})

	set := suite.createTestOwnershipSet(models.OwnershipSet{Date: types.NewDay(2020, 1, 1)})
	suite.createTestOwnershipShare(models.OwnershipShare{OwnershipSetID: set.ID, Owner: "Alice", Percentage: decimal.NewFromFloat(50)})
	suite.createTestOwnershipShare(models.OwnershipShare{OwnershipSetID: set.ID, Owner: "Bob", Percentage: decimal.NewFromFloat(50)})

	start := types.NewDay(2024, 1, 1)
	end := types.NewDay(2024, 1, 20)
	expense := suite.provisionExpense(100, "UTIL", start, end)

	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P1", StartDate: start, EndDate: end, PersonCount: 1})
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P2", StartDate: types.NewDay(2024, 1, 11), EndDate: end, PersonCount: 1})

	// Reconcile halfway through the covered period: only the days
	// elapsed so far count, and Bob has not arrived yet
	restore := ledger.PinToday(types.NewDay(2024, 1, 10))
	defer restore()

	result, err := ledger.ReconcileCharges(models.DB, expense.ID)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), result.Adjustments, 2)

	assert.Equal(suite.T(), []string{"-50.00", "50.00"}, amounts(result.Adjustments))
	assert.Equal(suite.T(), "Period: 01/01/24 – 20/01/24, cost (10/01/24): -100.00, charged so far: -50.00, adjustment: -50.00 (10/10).", result.Adjustments[0].Note)
	assert.Equal(suite.T(), "Period: 01/01/24 – 20/01/24, cost (10/01/24): 0.00, charged so far: -50.00, adjustment: 50.00 (0/10).", result.Adjustments[1].Note)

	assert.True(suite.T(), result.ReconciledOn.Equal(types.NewDay(2024, 1, 10)))

	var reloaded models.Expense
	require.Nil(suite.T(), models.DB.First(&reloaded, expense.ID).Error)
	assert.Equal(suite.T(), "Reconciled (10/01/24)", reloaded.Status.String())
}

func (suite *TestSuiteStandard) TestReconcileGroupsByPeriodAndType() {
	suite.createTestHousehold()

	start := types.NewDay(2024, 1, 1)
	end := types.NewDay(2024, 1, 20)

	first := suite.provisionExpense(100, "UTIL", start, end)
	second := suite.provisionExpense(50, "UTIL", start, end)
	other := suite.provisionExpense(80, "CLEAN", start, end)

	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P1", StartDate: start, EndDate: end, PersonCount: 1})

	result, err := ledger.ReconcileCharges(models.DB, first.ID)
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), []uint{first.ID, second.ID}, result.ExpenseIDs)
	assert.Equal(suite.T(), "150", result.TotalCost.String())

	// Adjustments are booked against the group's first expense
	for _, adjustment := range result.Adjustments {
		require.NotNil(suite.T(), adjustment.ExpenseID)
		assert.Equal(suite.T(), first.ID, *adjustment.ExpenseID)
	}

	// The other category is untouched
	var reloaded models.Expense
	require.Nil(suite.T(), models.DB.First(&reloaded, other.ID).Error)
	assert.Equal(suite.T(), models.StateProvisionallyCharged, reloaded.Status.State)
}

func (suite *TestSuiteStandard) TestReconcileValidation() {
	suite.createTestHousehold()

	start := types.NewDay(2024, 1, 1)
	end := types.NewDay(2024, 1, 20)

	suite.T().Run("Unknown expense", func(t *testing.T) {
		_, err := ledger.ReconcileCharges(models.DB, 99999)
		require.NotNil(t, err)
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})

	suite.T().Run("No period", func(t *testing.T) {
		expense := suite.createTestExpense(models.Expense{
			Date:            start,
			Type:            "UTIL",
			Amount:          decimal.NewFromFloat(100),
			SplitMethodType: models.SplitTypeEqual,
		})

		_, err := ledger.ReconcileCharges(models.DB, expense.ID)
		require.NotNil(t, err)
		assert.ErrorIs(t, err, ledger.ErrValidation)
	})

	suite.T().Run("Not provisionally charged", func(t *testing.T) {
		expense := suite.createTestExpense(models.Expense{
			Date:            start,
			Type:            "UTIL",
			Amount:          decimal.NewFromFloat(100),
			SplitMethodType: models.SplitTypeEqual,
			StartDate:       &start,
			EndDate:         &end,
		})

		_, err := ledger.ReconcileCharges(models.DB, expense.ID)
		require.NotNil(t, err)
		assert.ErrorIs(t, err, ledger.ErrValidation)
	})

	suite.T().Run("No overnight stays", func(t *testing.T) {
		expense := suite.provisionExpense(100, "HEAT", start, end)

		_, err := ledger.ReconcileCharges(models.DB, expense.ID)
		require.NotNil(t, err)
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})
}
